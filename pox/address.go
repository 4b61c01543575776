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

package pox

import (
	"fmt"

	"github.com/blinklabs-io/gostacks/address"
	"github.com/blinklabs-io/gostacks/base58check"
	"github.com/blinklabs-io/gostacks/ledger/common"
	"github.com/btcsuite/btcd/btcutil/bech32"
)

// AddressVersion is the version byte of a PoX reward address
type AddressVersion uint8

const (
	AddressVersionP2PKH      AddressVersion = 0x00
	AddressVersionP2SH       AddressVersion = 0x01
	AddressVersionP2SHP2WPKH AddressVersion = 0x02
	AddressVersionP2SHP2WSH  AddressVersion = 0x03
	AddressVersionP2WPKH     AddressVersion = 0x04
	AddressVersionP2WSH      AddressVersion = 0x05
	AddressVersionP2TR       AddressVersion = 0x06
)

// Witness program length limits from BIP141
const (
	minWitnessProgramLen = 2
	maxWitnessProgramLen = 40
)

// BitcoinAddress renders a PoX reward address for the given network. Legacy
// versions use base58check. Segwit versions use bech32, or bech32m for
// taproot, with the network's human readable part.
func BitcoinAddress(
	version AddressVersion,
	hashBytes []byte,
	network common.Network,
) (string, error) {
	mainnet := network.IsMainnet()
	switch version {
	case AddressVersionP2PKH:
		btcVersion := address.BitcoinVersionTestnetP2PKH
		if mainnet {
			btcVersion = address.BitcoinVersionMainnetP2PKH
		}
		return base58check.Encode(btcVersion, hashBytes), nil
	case AddressVersionP2SH, AddressVersionP2SHP2WPKH, AddressVersionP2SHP2WSH:
		btcVersion := address.BitcoinVersionTestnetP2SH
		if mainnet {
			btcVersion = address.BitcoinVersionMainnetP2SH
		}
		return base58check.Encode(btcVersion, hashBytes), nil
	case AddressVersionP2WPKH, AddressVersionP2WSH:
		return encodeSegwit(segwitHrp(network), 0, hashBytes)
	case AddressVersionP2TR:
		return encodeSegwit(segwitHrp(network), 1, hashBytes)
	}
	return "", common.NewError(
		common.ErrorKindInvalidVersion,
		"unknown PoX address version %d",
		version,
	)
}

func segwitHrp(network common.Network) string {
	if network.BitcoinHrp != "" {
		return network.BitcoinHrp
	}
	if network.IsMainnet() {
		return common.NetworkMainnet.BitcoinHrp
	}
	return common.NetworkTestnet.BitcoinHrp
}

func encodeSegwit(hrp string, witnessVersion byte, program []byte) (string, error) {
	if len(program) < minWitnessProgramLen || len(program) > maxWitnessProgramLen {
		return "", common.NewError(
			common.ErrorKindLengthMismatch,
			"invalid witness program length %d",
			len(program),
		)
	}
	if witnessVersion == 0 && len(program) != 20 && len(program) != 32 {
		return "", common.NewError(
			common.ErrorKindLengthMismatch,
			"invalid segwit v0 program length %d",
			len(program),
		)
	}
	converted, err := bech32.ConvertBits(program, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("convert witness program: %w", err)
	}
	data := make([]byte, 0, len(converted)+1)
	data = append(data, witnessVersion)
	data = append(data, converted...)
	if witnessVersion == 0 {
		return bech32.Encode(hrp, data)
	}
	return bech32.EncodeM(hrp, data)
}
