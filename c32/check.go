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

package c32

import (
	"bytes"
	"encoding/binary"

	"github.com/blinklabs-io/gostacks/ledger/common"
)

const (
	// AddressPrefix is the leading character of every Stacks address
	AddressPrefix = 'S'

	checksumSize = 4
	maxVersion   = 31
)

func checksum(version byte, data []byte) []byte {
	buf := make([]byte, 0, len(data)+1)
	buf = append(buf, version)
	buf = append(buf, data...)
	sum := common.DoubleSha256(buf)
	return sum[:checksumSize]
}

// CheckEncode returns the version character followed by the C32 encoding of
// data with its checksum appended
func CheckEncode(version uint8, data []byte) (string, error) {
	if version > maxVersion {
		return "", common.NewError(
			common.ErrorKindInvalidVersion,
			"c32 version %d is not below 32",
			version,
		)
	}
	payload := make([]byte, 0, len(data)+checksumSize)
	payload = append(payload, data...)
	payload = append(payload, checksum(version, data)...)
	return string(Alphabet[version]) + Encode(payload), nil
}

// CheckEncodePrefix is CheckEncode with a single leading prefix character
func CheckEncodePrefix(prefix byte, version uint8, data []byte) (string, error) {
	encoded, err := CheckEncode(version, data)
	if err != nil {
		return "", err
	}
	return string(prefix) + encoded, nil
}

// CheckDecode parses the output of CheckEncode and returns the version and data
func CheckDecode(s string) (uint8, []byte, error) {
	if !isASCII(s) {
		return 0, nil, common.NewError(
			common.ErrorKindInvalidEncoding,
			"c32check string must be ascii",
		)
	}
	if len(s) < 2 {
		return 0, nil, common.NewError(
			common.ErrorKindTooShort,
			"c32check string must be at least 2 characters, got %d",
			len(s),
		)
	}
	version, ok := symbolValue(s[0])
	if !ok {
		return 0, nil, common.NewError(
			common.ErrorKindInvalidEncoding,
			"invalid c32 version character %q",
			s[0],
		)
	}
	decoded, err := decodeASCII([]byte(s[1:]))
	if err != nil {
		return 0, nil, err
	}
	if len(decoded) < checksumSize {
		return 0, nil, common.NewError(
			common.ErrorKindTooShort,
			"c32check payload decodes to %d bytes, need at least %d",
			len(decoded),
			checksumSize,
		)
	}
	split := len(decoded) - checksumSize
	data, embedded := decoded[:split], decoded[split:]
	computed := checksum(version, data)
	if !bytes.Equal(computed, embedded) {
		return 0, nil, common.ChecksumMismatchError{
			Expected: binary.LittleEndian.Uint32(computed),
			Actual:   binary.LittleEndian.Uint32(embedded),
		}
	}
	return version, data, nil
}

// Address returns the Stacks address for a version and hash
func Address(version uint8, hash []byte) (string, error) {
	return CheckEncodePrefix(AddressPrefix, version, hash)
}

// AddressDecode parses a Stacks address into its version and 20-byte hash.
// The leading network-class character is not checked.
func AddressDecode(addr string) (uint8, [common.Hash160Size]byte, error) {
	var hash [common.Hash160Size]byte
	if len(addr) <= 5 {
		return 0, hash, common.NewError(
			common.ErrorKindTooShort,
			"address %q is too short",
			addr,
		)
	}
	if !isASCII(addr) {
		return 0, hash, common.NewError(
			common.ErrorKindInvalidEncoding,
			"address must be ascii",
		)
	}
	version, data, err := CheckDecode(addr[1:])
	if err != nil {
		return 0, hash, err
	}
	if len(data) != common.Hash160Size {
		return 0, hash, common.NewError(
			common.ErrorKindLengthMismatch,
			"address hash is %d bytes, expected %d",
			len(data),
			common.Hash160Size,
		)
	}
	copy(hash[:], data)
	return version, hash, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
