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

// Package utils provides random utility functions
package utils

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// HexPrefixed returns the 0x-prefixed lowercase hex form of data
func HexPrefixed(data []byte) string {
	return "0x" + hex.EncodeToString(data)
}

// DecodeHex decodes a hex string with an optional 0x prefix. Surrounding
// whitespace is ignored.
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	ret, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return ret, nil
}
