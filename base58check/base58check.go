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

// Package base58check implements the checksummed Base58 encoding used by
// Bitcoin addresses
package base58check

import (
	"bytes"
	"encoding/binary"

	"github.com/blinklabs-io/gostacks/ledger/common"
	"github.com/btcsuite/btcd/btcutil/base58"
)

const checksumSize = 4

// EncodeRaw appends the double-SHA256 checksum to data and encodes the result
func EncodeRaw(data []byte) string {
	sum := common.DoubleSha256(data)
	buf := make([]byte, 0, len(data)+checksumSize)
	buf = append(buf, data...)
	buf = append(buf, sum[:checksumSize]...)
	return base58.Encode(buf)
}

// Encode encodes a version byte followed by payload
func Encode(version uint8, payload []byte) string {
	data := make([]byte, 0, len(payload)+1)
	data = append(data, version)
	data = append(data, payload...)
	return EncodeRaw(data)
}

// Decode parses a Base58Check string and returns the data without its checksum
func Decode(s string) ([]byte, error) {
	decoded := base58.Decode(s)
	// The library signals a bad character with an empty result, and only the
	// empty string legitimately decodes to nothing
	if len(decoded) == 0 && s != "" {
		return nil, common.NewError(
			common.ErrorKindInvalidEncoding,
			"invalid base58 string %q",
			s,
		)
	}
	if len(decoded) < checksumSize {
		return nil, common.NewError(
			common.ErrorKindTooShort,
			"base58check data is %d bytes, need at least %d",
			len(decoded),
			checksumSize,
		)
	}
	split := len(decoded) - checksumSize
	data, embedded := decoded[:split], decoded[split:]
	sum := common.DoubleSha256(data)
	if !bytes.Equal(sum[:checksumSize], embedded) {
		return nil, common.ChecksumMismatchError{
			Expected: binary.LittleEndian.Uint32(sum[:checksumSize]),
			Actual:   binary.LittleEndian.Uint32(embedded),
		}
	}
	return data, nil
}

// DecodeVersioned parses a Base58Check string into its version byte and payload
func DecodeVersioned(s string) (uint8, []byte, error) {
	data, err := Decode(s)
	if err != nil {
		return 0, nil, err
	}
	if len(data) < 1 {
		return 0, nil, common.NewError(
			common.ErrorKindTooShort,
			"base58check data has no version byte",
		)
	}
	return data[0], data[1:], nil
}
