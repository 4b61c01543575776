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

package address

import (
	"fmt"

	"github.com/blinklabs-io/gostacks/base58check"
	"github.com/blinklabs-io/gostacks/ledger/common"
)

// Bitcoin base58 address versions
const (
	BitcoinVersionMainnetP2PKH uint8 = 0x00
	BitcoinVersionMainnetP2SH  uint8 = 0x05
	BitcoinVersionTestnetP2PKH uint8 = 0x6f
	BitcoinVersionTestnetP2SH  uint8 = 0xc4
)

var stacksToBitcoinVersion = map[uint8]uint8{
	VersionMainnetSingleSig: BitcoinVersionMainnetP2PKH,
	VersionMainnetMultiSig:  BitcoinVersionMainnetP2SH,
	VersionTestnetSingleSig: BitcoinVersionTestnetP2PKH,
	VersionTestnetMultiSig:  BitcoinVersionTestnetP2SH,
}

var bitcoinToStacksVersion = map[uint8]uint8{
	BitcoinVersionMainnetP2PKH: VersionMainnetSingleSig,
	BitcoinVersionMainnetP2SH:  VersionMainnetMultiSig,
	BitcoinVersionTestnetP2PKH: VersionTestnetSingleSig,
	BitcoinVersionTestnetP2SH:  VersionTestnetMultiSig,
}

// BitcoinAddress is a legacy base58 Bitcoin address
type BitcoinAddress struct {
	Version uint8
	Hash160 common.Hash160
}

// ParseBitcoinAddress decodes a base58check Bitcoin address
func ParseBitcoinAddress(addr string) (BitcoinAddress, error) {
	data, err := base58check.Decode(addr)
	if err != nil {
		return BitcoinAddress{}, fmt.Errorf("decode bitcoin address: %w", err)
	}
	if len(data) != 1+common.Hash160Size {
		return BitcoinAddress{}, common.NewError(
			common.ErrorKindLengthMismatch,
			"bitcoin address is %d bytes, expected %d",
			len(data),
			1+common.Hash160Size,
		)
	}
	return BitcoinAddress{
		Version: data[0],
		Hash160: common.NewHash160(data[1:]),
	}, nil
}

func (a BitcoinAddress) String() string {
	return base58check.Encode(a.Version, a.Hash160[:])
}

// StacksToBitcoin converts a Stacks address into the Bitcoin address with the
// same hash. Versions outside the four standard ones are rejected.
func StacksToBitcoin(addr string) (string, error) {
	stx, err := ParseStacksAddress(addr)
	if err != nil {
		return "", err
	}
	btcVersion, ok := stacksToBitcoinVersion[stx.Version]
	if !ok {
		return "", common.NewError(
			common.ErrorKindInvalidVersion,
			"no bitcoin version for stacks address version %d",
			stx.Version,
		)
	}
	return base58check.Encode(btcVersion, stx.Hash160[:]), nil
}

// StacksToBitcoinBestEffort is StacksToBitcoin but passes an unknown version
// through unchanged as the Bitcoin version byte
func StacksToBitcoinBestEffort(addr string) (string, error) {
	stx, err := ParseStacksAddress(addr)
	if err != nil {
		return "", err
	}
	btcVersion, ok := stacksToBitcoinVersion[stx.Version]
	if !ok {
		btcVersion = stx.Version
	}
	return base58check.Encode(btcVersion, stx.Hash160[:]), nil
}

// BitcoinToStacks converts a base58 Bitcoin address into a Stacks address
func BitcoinToStacks(addr string) (string, error) {
	btc, err := ParseBitcoinAddress(addr)
	if err != nil {
		return "", err
	}
	stxVersion, ok := bitcoinToStacksVersion[btc.Version]
	if !ok {
		return "", common.NewError(
			common.ErrorKindInvalidVersion,
			"unknown bitcoin version byte %d",
			btc.Version,
		)
	}
	return StacksAddress{Version: stxVersion, Hash160: btc.Hash160}.Encode()
}
