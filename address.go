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

package stacks

import (
	"github.com/blinklabs-io/gostacks/address"
)

// StacksToBitcoinAddress converts a Stacks address to the base58 Bitcoin
// address with the same hash. A non-standard version byte is carried over
// as the Bitcoin version.
func StacksToBitcoinAddress(addr string) (string, error) {
	return address.StacksToBitcoinBestEffort(addr)
}

// BitcoinToStacksAddress converts a base58 Bitcoin address to a Stacks
// address
func BitcoinToStacksAddress(addr string) (string, error) {
	return address.BitcoinToStacks(addr)
}

// IsValidStacksAddress reports whether addr is a well-formed c32check
// Stacks address
func IsValidStacksAddress(addr string) bool {
	return address.IsValidStacksAddress(addr)
}

// DecodeStacksAddress splits a Stacks address into its version and the
// unprefixed hex of its hash160
func DecodeStacksAddress(addr string) (uint8, string, error) {
	parsed, err := address.ParseStacksAddress(addr)
	if err != nil {
		return 0, "", err
	}
	return parsed.Version, parsed.Hash160.String(), nil
}

// StacksAddressFromParts encodes a version and a 20-byte hash as a Stacks
// address
func StacksAddressFromParts(version uint8, hash []byte) (string, error) {
	addr, err := address.NewStacksAddress(version, hash)
	if err != nil {
		return "", err
	}
	return addr.Encode()
}
