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

package common

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"

	"github.com/blinklabs-io/gostacks/cbor"
)

const (
	Hash160Size          = 20
	Sha512Trunc256Size   = 32
	ConsensusHashSize    = 20
	MessageSignatureSize = 65
	PublicKeySize        = 33
)

// hexPrefixed renders bytes the way the JSON documents expect them
func hexPrefixed(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

type Hash160 [Hash160Size]byte

func NewHash160(data []byte) Hash160 {
	h := Hash160{}
	copy(h[:], data)
	return h
}

func (h Hash160) String() string {
	return hex.EncodeToString(h[:])
}

func (h Hash160) Bytes() []byte {
	return h[:]
}

func (h Hash160) MarshalJSON() ([]byte, error) {
	return json.Marshal(hexPrefixed(h[:]))
}

func (h Hash160) MarshalCBOR() ([]byte, error) {
	// Ensure we always encode a full-sized bytestring, even if the hash is zero-valued
	hashBytes := make([]byte, Hash160Size)
	copy(hashBytes, h[:])
	return cbor.Encode(hashBytes)
}

// Sha512Trunc256 is a SHA-512/256 digest, used for txids and block hashes
type Sha512Trunc256 [Sha512Trunc256Size]byte

func NewSha512Trunc256(data []byte) Sha512Trunc256 {
	h := Sha512Trunc256{}
	copy(h[:], data)
	return h
}

// Sha512Trunc256Hash generates a SHA-512/256 hash from the provided data
func Sha512Trunc256Hash(data []byte) Sha512Trunc256 {
	return Sha512Trunc256(sha512.Sum512_256(data))
}

func (h Sha512Trunc256) String() string {
	return hex.EncodeToString(h[:])
}

func (h Sha512Trunc256) Bytes() []byte {
	return h[:]
}

func (h Sha512Trunc256) MarshalJSON() ([]byte, error) {
	return json.Marshal(hexPrefixed(h[:]))
}

func (h Sha512Trunc256) MarshalCBOR() ([]byte, error) {
	hashBytes := make([]byte, Sha512Trunc256Size)
	copy(hashBytes, h[:])
	return cbor.Encode(hashBytes)
}

type ConsensusHash [ConsensusHashSize]byte

func (h ConsensusHash) String() string {
	return hex.EncodeToString(h[:])
}

func (h ConsensusHash) Bytes() []byte {
	return h[:]
}

func (h ConsensusHash) MarshalJSON() ([]byte, error) {
	return json.Marshal(hexPrefixed(h[:]))
}

func (h ConsensusHash) MarshalCBOR() ([]byte, error) {
	hashBytes := make([]byte, ConsensusHashSize)
	copy(hashBytes, h[:])
	return cbor.Encode(hashBytes)
}

// MessageSignature is a recoverable secp256k1 signature
type MessageSignature [MessageSignatureSize]byte

func (s MessageSignature) String() string {
	return hex.EncodeToString(s[:])
}

func (s MessageSignature) Bytes() []byte {
	return s[:]
}

func (s MessageSignature) MarshalJSON() ([]byte, error) {
	return json.Marshal(hexPrefixed(s[:]))
}

func (s MessageSignature) MarshalCBOR() ([]byte, error) {
	sigBytes := make([]byte, MessageSignatureSize)
	copy(sigBytes, s[:])
	return cbor.Encode(sigBytes)
}

// PublicKey is a 33-byte secp256k1 public key as carried in multisig auth fields
type PublicKey [PublicKeySize]byte

func (k PublicKey) String() string {
	return hex.EncodeToString(k[:])
}

func (k PublicKey) Bytes() []byte {
	return k[:]
}

func (k PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(hexPrefixed(k[:]))
}

func (k PublicKey) MarshalCBOR() ([]byte, error) {
	keyBytes := make([]byte, PublicKeySize)
	copy(keyBytes, k[:])
	return cbor.Encode(keyBytes)
}

// DoubleSha256 returns sha256(sha256(data))
func DoubleSha256(data []byte) [32]byte {
	first := sha256.Sum256(data)
	return sha256.Sum256(first[:])
}

// HexBytes is a byte slice that renders as 0x-prefixed hex in JSON
type HexBytes []byte

func (b HexBytes) String() string {
	return hexPrefixed(b)
}

func (b HexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(hexPrefixed(b))
}
