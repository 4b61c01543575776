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
	"encoding/json"

	"github.com/blinklabs-io/gostacks/ledger/common"
)

// AddressHashMode selects how a spending condition's public keys are hashed
// into the signer address
type AddressHashMode uint8

const (
	HashModeP2PKH              AddressHashMode = 0x00
	HashModeP2SH               AddressHashMode = 0x01
	HashModeP2WPKH             AddressHashMode = 0x02
	HashModeP2WSH              AddressHashMode = 0x03
	HashModeP2SHNonSequential  AddressHashMode = 0x05
	HashModeP2WSHNonSequential AddressHashMode = 0x07
)

// NewAddressHashMode validates a hash mode byte
func NewAddressHashMode(b byte) (AddressHashMode, error) {
	mode := AddressHashMode(b)
	switch mode {
	case HashModeP2PKH,
		HashModeP2SH,
		HashModeP2WPKH,
		HashModeP2WSH,
		HashModeP2SHNonSequential,
		HashModeP2WSHNonSequential:
		return mode, nil
	}
	return 0, common.NewError(
		common.ErrorKindUnrecognizedTag,
		"unrecognized address hash mode %d",
		b,
	)
}

func (m AddressHashMode) String() string {
	switch m {
	case HashModeP2PKH:
		return "p2pkh"
	case HashModeP2SH:
		return "p2sh"
	case HashModeP2WPKH:
		return "p2wpkh"
	case HashModeP2WSH:
		return "p2wsh"
	case HashModeP2SHNonSequential:
		return "p2sh-non-sequential"
	case HashModeP2WSHNonSequential:
		return "p2wsh-non-sequential"
	default:
		return "unknown"
	}
}

func (m AddressHashMode) IsSingleSig() bool {
	return m == HashModeP2PKH || m == HashModeP2WPKH
}

func (m AddressHashMode) IsMultiSig() bool {
	switch m {
	case HashModeP2SH,
		HashModeP2WSH,
		HashModeP2SHNonSequential,
		HashModeP2WSHNonSequential:
		return true
	}
	return false
}

// IsNonSequential reports whether signatures may be supplied in any order
func (m AddressHashMode) IsNonSequential() bool {
	return m == HashModeP2SHNonSequential || m == HashModeP2WSHNonSequential
}

// IsSegwit reports whether the mode wraps a segwit program
func (m AddressHashMode) IsSegwit() bool {
	return m == HashModeP2WPKH ||
		m == HashModeP2WSH ||
		m == HashModeP2WSHNonSequential
}

// Version returns the address version of a signer using this hash mode.
// Only P2PKH maps to a singlesig version.
func (m AddressHashMode) Version(mainnet bool) uint8 {
	switch {
	case m == HashModeP2PKH && mainnet:
		return VersionMainnetSingleSig
	case m == HashModeP2PKH:
		return VersionTestnetSingleSig
	case mainnet:
		return VersionMainnetMultiSig
	default:
		return VersionTestnetMultiSig
	}
}

func (m AddressHashMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}
