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
// Package clarity implements the Clarity value serialization format: a
// recursive, self-describing binary encoding of integers, buffers, strings,
// principals, optionals, responses, lists and tuples.
//
// Decoding never panics on malformed input and validates every declared
// length against both MaxValueSize and the remaining input before
// allocating. Nesting is limited to MaxDepth levels.
package clarity
