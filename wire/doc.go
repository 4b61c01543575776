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

// Package wire provides the cursor used by every Stacks binary decoder.
//
// All multi-byte integers on the Stacks wire are big-endian. Reads past the
// end of input return common.TruncatedError and never panic. Raw spans of
// decoded structures are taken with Position and Since so callers can keep
// the exact bytes (for hashing or re-export) without copying.
package wire
