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

// Package c32 implements the Crockford base32 variant used by Stacks
// addresses, along with the c32check checksummed form.
package c32

import (
	"slices"

	"github.com/blinklabs-io/gostacks/ledger/common"
)

const Alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

const invalidSymbol = 0xff

// decodeTable maps an ASCII code to its 5-bit value. Lowercase letters are
// accepted, O decodes as 0 and L/I decode as 1.
var decodeTable = [128]byte{
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, // 0x00
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, // 0x10
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, // 0x20
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0, 1, 2, 3, 4, 5, 6, 7, // '0'..'7'
	8, 9, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, // '8', '9'
	0xff, 10, 11, 12, 13, 14, 15, 16, // '@', 'A'..'G'
	17, 1, 18, 19, 1, 20, 21, 0, // 'H'..'O'
	22, 23, 24, 25, 26, 0xff, 27, 28, // 'P'..'W'
	29, 30, 31, 0xff, 0xff, 0xff, 0xff, 0xff, // 'X'..'Z'
	0xff, 10, 11, 12, 13, 14, 15, 16, // '`', 'a'..'g'
	17, 1, 18, 19, 1, 20, 21, 0, // 'h'..'o'
	22, 23, 24, 25, 26, 0xff, 27, 28, // 'p'..'w'
	29, 30, 31, 0xff, 0xff, 0xff, 0xff, 0xff, // 'x'..'z'
}

// maxEncodedLen returns an upper bound on the encoded length of n bytes
func maxEncodedLen(n int) int {
	return (n*8+4)/5 + 1
}

// Encode returns the C32 encoding of data. Each leading zero byte is
// represented by a leading '0' symbol.
func Encode(data []byte) string {
	out := make([]byte, 0, maxEncodedLen(len(data)))
	var carry byte
	var carryBits uint
	for i := len(data) - 1; i >= 0; i-- {
		cur := data[i]
		lowBitsToTake := 5 - carryBits
		lowBits := cur & ((1 << lowBitsToTake) - 1)
		out = append(out, Alphabet[(lowBits<<carryBits)+carry])
		carryBits = carryBits + 8 - 5
		carry = cur >> (8 - carryBits)
		if carryBits >= 5 {
			out = append(out, Alphabet[carry&0x1f])
			carryBits -= 5
			carry >>= 5
		}
	}
	if carryBits > 0 {
		out = append(out, Alphabet[carry])
	}
	// Output is built least-significant symbol first, so zeros at the end
	// are the encoding's leading zeros
	for len(out) > 0 && out[len(out)-1] == Alphabet[0] {
		out = out[:len(out)-1]
	}
	for _, b := range data {
		if b != 0 {
			break
		}
		out = append(out, Alphabet[0])
	}
	slices.Reverse(out)
	return string(out)
}

// Decode parses a C32 string. The input must be ASCII.
func Decode(s string) ([]byte, error) {
	return decodeASCII([]byte(s))
}

func symbolValue(c byte) (byte, bool) {
	if c >= 0x80 {
		return 0, false
	}
	v := decodeTable[c]
	if v == invalidSymbol {
		return 0, false
	}
	return v, true
}

func decodeASCII(input []byte) ([]byte, error) {
	digits := make([]byte, len(input))
	for i := range input {
		c := input[len(input)-1-i]
		v, ok := symbolValue(c)
		if !ok {
			return nil, common.NewError(
				common.ErrorKindInvalidEncoding,
				"invalid c32 character %q",
				c,
			)
		}
		digits[i] = v
	}
	result := make([]byte, 0, len(input))
	var carry uint16
	var carryBits uint
	for _, d := range digits {
		carry += uint16(d) << carryBits
		carryBits += 5
		if carryBits >= 8 {
			result = append(result, byte(carry&0xff))
			carryBits -= 8
			carry >>= 8
		}
	}
	if carryBits > 0 {
		result = append(result, byte(carry))
	}
	for len(result) > 0 && result[len(result)-1] == 0 {
		result = result[:len(result)-1]
	}
	for i := len(digits) - 1; i >= 0; i-- {
		if digits[i] != 0 {
			break
		}
		result = append(result, 0)
	}
	slices.Reverse(result)
	return result, nil
}
