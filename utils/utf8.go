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

package utils

import (
	"strings"
)

// ReplacementChar is the UTF-8 encoding of U+FFFD
var ReplacementChar = []byte{0xef, 0xbf, 0xbd}

// LossyUTF8Chars splits data into one byte group per decoded character.
// Invalid input is replaced with U+FFFD using the "maximal subpart" rule:
// each maximal prefix of a valid sequence produces a single replacement
// character. The standard library replaces every invalid byte on its own,
// which yields a different character count for truncated sequences.
func LossyUTF8Chars(data []byte) [][]byte {
	ret := make([][]byte, 0, len(data))
	for i := 0; i < len(data); {
		n, ok := utf8Prefix(data[i:])
		if ok {
			ret = append(ret, data[i:i+n])
		} else {
			ret = append(ret, ReplacementChar)
		}
		i += n
	}
	return ret
}

// LossyUTF8String decodes data as UTF-8 the same way as LossyUTF8Chars
func LossyUTF8String(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, c := range LossyUTF8Chars(data) {
		sb.Write(c)
	}
	return sb.String()
}

// utf8Prefix returns the length of the character or maximal invalid
// subpart at the start of data and whether it is a valid character
func utf8Prefix(data []byte) (int, bool) {
	b := data[0]
	if b < 0x80 {
		return 1, true
	}
	var width int
	lo, hi := byte(0x80), byte(0xbf)
	switch {
	case b >= 0xc2 && b <= 0xdf:
		width = 2
	case b == 0xe0:
		width, lo = 3, 0xa0
	case b >= 0xe1 && b <= 0xec, b == 0xee, b == 0xef:
		width = 3
	case b == 0xed:
		width, hi = 3, 0x9f
	case b == 0xf0:
		width, lo = 4, 0x90
	case b >= 0xf1 && b <= 0xf3:
		width = 4
	case b == 0xf4:
		width, hi = 4, 0x8f
	default:
		return 1, false
	}
	if len(data) < 2 || data[1] < lo || data[1] > hi {
		return 1, false
	}
	for i := 2; i < width; i++ {
		if len(data) <= i || data[i] < 0x80 || data[i] > 0xbf {
			return i, false
		}
	}
	return width, true
}
