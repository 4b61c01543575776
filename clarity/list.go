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
package clarity

import (
	"fmt"

	"github.com/blinklabs-io/gostacks/wire"
)

// DecodeValueList decodes a u32 count followed by values. The count is not
// trusted: values are read until the input is exhausted. Inputs of 4 bytes or
// fewer yield an empty list.
func DecodeValueList(data []byte, opts ...DecodeOptionFunc) ([]Value, error) {
	if len(data) <= 4 {
		return []Value{}, nil
	}
	r := wire.NewReader(data[4:])
	var ret []Value
	for !r.EOF() {
		v, err := DecodeFromReader(r, opts...)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", len(ret), err)
		}
		ret = append(ret, v)
	}
	return ret, nil
}
