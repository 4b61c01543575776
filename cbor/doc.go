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

// Package cbor wraps github.com/fxamacker/cbor/v2 for the CBOR output format.
//
// Encoding is deterministic: map keys are sorted using the core
// deterministic ordering, so the same document always produces the same
// bytes. Hashes and signatures carry MarshalCBOR methods that emit byte
// strings, and addresses emit their c32check text.
package cbor
