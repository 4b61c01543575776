// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package common provides the types shared by every decoder in this module.
//
// # Key Files by Purpose
//
//   - common.go: fixed-size hashes, signatures and public keys
//   - errors.go: DecodeError, its kinds and the matching sentinel errors
//   - network.go: Network definitions and lookup by name or ID
//
// Every decoding failure can be classified with errors.Is against one of the
// sentinels (ErrTruncated, ErrUnrecognizedTag, ...) or with KindOf.
package common
