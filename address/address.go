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

// Package address models Stacks and Bitcoin addresses and the translation
// between them
package address

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/blinklabs-io/gostacks/c32"
	"github.com/blinklabs-io/gostacks/cbor"
	"github.com/blinklabs-io/gostacks/ledger/common"
)

// Stacks address versions
const (
	VersionMainnetSingleSig uint8 = 22 // P
	VersionMainnetMultiSig  uint8 = 20 // M
	VersionTestnetSingleSig uint8 = 26 // T
	VersionTestnetMultiSig  uint8 = 21 // N

	// MaxVersion is the largest version representable by a c32 symbol
	MaxVersion uint8 = 31
)

// StacksAddress is a version byte and a hash160
type StacksAddress struct {
	Version uint8
	Hash160 common.Hash160
}

// NewStacksAddress builds an address from its parts. The version must be
// representable as a c32 symbol.
func NewStacksAddress(version uint8, hash []byte) (StacksAddress, error) {
	if version > MaxVersion {
		return StacksAddress{}, common.NewError(
			common.ErrorKindInvalidVersion,
			"address version %d is not below 32",
			version,
		)
	}
	if len(hash) != common.Hash160Size {
		return StacksAddress{}, common.NewError(
			common.ErrorKindLengthMismatch,
			"address hash is %d bytes, expected %d",
			len(hash),
			common.Hash160Size,
		)
	}
	return StacksAddress{
		Version: version,
		Hash160: common.NewHash160(hash),
	}, nil
}

// ParseStacksAddress decodes a c32 Stacks address string
func ParseStacksAddress(addr string) (StacksAddress, error) {
	version, hash, err := c32.AddressDecode(addr)
	if err != nil {
		return StacksAddress{}, fmt.Errorf("decode stacks address: %w", err)
	}
	return StacksAddress{
		Version: version,
		Hash160: common.Hash160(hash),
	}, nil
}

// IsValidStacksAddress reports whether addr decodes as a Stacks address
func IsValidStacksAddress(addr string) bool {
	_, _, err := c32.AddressDecode(addr)
	return err == nil
}

// Encode returns the c32 string form of the address
func (a StacksAddress) Encode() (string, error) {
	return c32.Address(a.Version, a.Hash160[:])
}

// String returns the c32 form of the address. Addresses built by this module
// always carry a valid version; anything else is rendered as raw hex.
func (a StacksAddress) String() string {
	ret, err := a.Encode()
	if err != nil {
		return fmt.Sprintf("%02x%s", a.Version, hex.EncodeToString(a.Hash160[:]))
	}
	return ret
}

// IsMainnet reports whether the version is one of the mainnet versions
func (a StacksAddress) IsMainnet() bool {
	return a.Version == VersionMainnetSingleSig ||
		a.Version == VersionMainnetMultiSig
}

func (a StacksAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a StacksAddress) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(a.String())
}
