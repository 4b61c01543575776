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
	"crypto/sha256"

	"github.com/blinklabs-io/gostacks/ledger/common"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // hash160 is defined in terms of RIPEMD-160
)

// Hash160 returns RIPEMD160(SHA256(data))
func Hash160(data []byte) common.Hash160 {
	shaSum := sha256.Sum256(data)
	h := ripemd160.New()
	h.Write(shaSum[:])
	return common.NewHash160(h.Sum(nil))
}

// FromPublicKey returns the P2PKH address of a serialized secp256k1 public key
func FromPublicKey(pubKey []byte, mainnet bool) (StacksAddress, error) {
	if len(pubKey) != 33 && len(pubKey) != 65 {
		return StacksAddress{}, common.NewError(
			common.ErrorKindLengthMismatch,
			"public key is %d bytes, expected 33 or 65",
			len(pubKey),
		)
	}
	return StacksAddress{
		Version: HashModeP2PKH.Version(mainnet),
		Hash160: Hash160(pubKey),
	}, nil
}
