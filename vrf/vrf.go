// Copyright 2024 Cardano Foundation
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

// Package vrf implements ECVRF-ED25519-SHA512-TAI as specified in IETF
// draft-irtf-cfrg-vrf-03, which Stacks miners use to prove sortition
// eligibility. The 80-byte proofs appear in legacy block headers and in
// Nakamoto coinbase payloads.
//
// # Cryptographic Hash Selection
//
// SHA-512 is mandated by the VRF suite and by RFC 8032 key derivation. It is
// used to derive secret scalars from seeds, to generate deterministic nonces,
// to hash messages to the curve and to compute the VRF output. Protocol
// interoperability requires exact algorithm matching.
//
// # References
//
//   - IETF draft-irtf-cfrg-vrf-03: https://datatracker.ietf.org/doc/html/draft-irtf-cfrg-vrf-03
//   - RFC 8032 (Ed25519): https://datatracker.ietf.org/doc/html/rfc8032#section-5.1.5
package vrf

import (
	"crypto/sha512"
	"crypto/subtle"

	"filippo.io/edwards25519"

	"github.com/blinklabs-io/gostacks/ledger/common"
)

const (
	// Suite is the VRF suite identifier for ECVRF-ED25519-SHA512-TAI
	Suite = 0x03

	// ProofSize is the size of a VRF proof in bytes
	ProofSize = 80

	// OutputSize is the size of a VRF output in bytes
	OutputSize = 64

	// SeedSize is the size of a VRF seed/secret key in bytes
	SeedSize = 32

	// PublicKeySize is the size of a VRF public key in bytes
	PublicKeySize = 32

	challengeSize = 16
)

// Proof is a decoded VRF proof: the Gamma point, the 16-byte challenge c and
// the response scalar s
type Proof struct {
	Gamma *edwards25519.Point
	C     [challengeSize]byte
	S     *edwards25519.Scalar
}

// ParseProof decodes an 80-byte proof. Gamma must be a valid point encoding
// and s must be a canonical scalar.
func ParseProof(pi []byte) (*Proof, error) {
	if len(pi) != ProofSize {
		return nil, common.NewError(
			common.ErrorKindLengthMismatch,
			"vrf proof is %d bytes, expected %d",
			len(pi),
			ProofSize,
		)
	}
	gamma := &edwards25519.Point{}
	if _, err := gamma.SetBytes(pi[:32]); err != nil {
		return nil, common.WrapError(
			common.ErrorKindInvalidEncoding,
			err,
			"invalid gamma encoding",
		)
	}
	s := edwards25519.NewScalar()
	if _, err := s.SetCanonicalBytes(pi[48:80]); err != nil {
		return nil, common.WrapError(
			common.ErrorKindInvalidEncoding,
			err,
			"invalid proof scalar",
		)
	}
	ret := &Proof{
		Gamma: gamma,
		S:     s,
	}
	copy(ret.C[:], pi[32:48])
	return ret, nil
}

// Bytes encodes the proof as Gamma (32) || c (16) || s (32)
func (p *Proof) Bytes() []byte {
	ret := make([]byte, 0, ProofSize)
	ret = append(ret, p.Gamma.Bytes()...)
	ret = append(ret, p.C[:]...)
	ret = append(ret, p.S.Bytes()...)
	return ret
}

// Hash returns the VRF output of the proof
func (p *Proof) Hash() []byte {
	// beta_string = Hash(suite_string || three_string || point_to_string(cofactor * Gamma))
	var hashInput [34]byte
	hashInput[0] = Suite
	hashInput[1] = 0x03
	gamma := (&edwards25519.Point{}).MultByCofactor(p.Gamma)
	copy(hashInput[2:], gamma.Bytes())
	result := sha512.Sum512(hashInput[:])
	return result[:]
}

// ProofToHash extracts the hash output from an encoded VRF proof.
func ProofToHash(pi []byte) ([]byte, error) {
	proof, err := ParseProof(pi)
	if err != nil {
		return nil, err
	}
	return proof.Hash(), nil
}

// KeyGen generates a new VRF keypair from a 32-byte seed.
// Returns (publicKey, secretKey) where secretKey is the original seed.
func KeyGen(seed []byte) ([]byte, []byte, error) {
	if len(seed) != SeedSize {
		return nil, nil, common.NewError(
			common.ErrorKindLengthMismatch,
			"seed must be %d bytes",
			SeedSize,
		)
	}
	// #nosec G401 -- SHA-512 is required by RFC 8032 and the VRF suite
	h := sha512.Sum512(seed)
	xScalar := edwards25519.NewScalar()
	if _, err := xScalar.SetBytesWithClamping(h[:32]); err != nil {
		return nil, nil, err
	}
	Y := (&edwards25519.Point{}).ScalarBaseMult(xScalar)
	secretKey := make([]byte, SeedSize)
	copy(secretKey, seed)
	return Y.Bytes(), secretKey, nil
}

// Prove generates a VRF proof for the given secret key and input.
// Returns (proof, output) where proof is 80 bytes and output is 64 bytes.
func Prove(secretKey []byte, alpha []byte) ([]byte, []byte, error) {
	if len(secretKey) != SeedSize {
		return nil, nil, common.NewError(
			common.ErrorKindLengthMismatch,
			"secret key must be %d bytes",
			SeedSize,
		)
	}

	// #nosec G401 -- SHA-512 is required by RFC 8032 and the VRF suite
	skHash := sha512.Sum512(secretKey)
	xScalar := edwards25519.NewScalar()
	if _, err := xScalar.SetBytesWithClamping(skHash[:32]); err != nil {
		return nil, nil, err
	}
	Y := (&edwards25519.Point{}).ScalarBaseMult(xScalar)

	H, err := hashToCurveTryAndIncrement(Y, alpha)
	if err != nil {
		return nil, nil, err
	}
	Gamma := (&edwards25519.Point{}).ScalarMult(xScalar, H)

	// k = SHA512(SHA512(sk)[32:64] || H) mod L
	var nonceInput [64]byte
	copy(nonceInput[:32], skHash[32:64])
	copy(nonceInput[32:], H.Bytes())
	nonceHash := sha512.Sum512(nonceInput[:])
	kScalar := edwards25519.NewScalar()
	if _, err := kScalar.SetUniformBytes(nonceHash[:]); err != nil {
		return nil, nil, err
	}

	U := (&edwards25519.Point{}).ScalarBaseMult(kScalar)
	V := (&edwards25519.Point{}).ScalarMult(kScalar, H)
	cScalar := hashPoints(H, Gamma, U, V)

	// s = (k + c * x) mod L
	sScalar := edwards25519.NewScalar()
	sScalar.MultiplyAdd(cScalar, xScalar, kScalar)

	proof := &Proof{
		Gamma: Gamma,
		S:     sScalar,
	}
	copy(proof.C[:], cScalar.Bytes()[:challengeSize])
	return proof.Bytes(), proof.Hash(), nil
}

// VerifyAndHash verifies a VRF proof and returns the hash output.
func VerifyAndHash(publicKey []byte, pi []byte, alpha []byte) ([]byte, error) {
	if len(publicKey) != PublicKeySize {
		return nil, common.NewError(
			common.ErrorKindLengthMismatch,
			"vrf public key is %d bytes, expected %d",
			len(publicKey),
			PublicKeySize,
		)
	}
	Y := &edwards25519.Point{}
	if _, err := Y.SetBytes(publicKey); err != nil {
		return nil, common.WrapError(
			common.ErrorKindInvalidEncoding,
			err,
			"invalid vrf public key",
		)
	}
	isSmallOrder := (&edwards25519.Point{}).MultByCofactor(Y).
		Equal(edwards25519.NewIdentityPoint()) ==
		1
	if isSmallOrder {
		return nil, common.NewError(
			common.ErrorKindInvalidEncoding,
			"public key is a small order point",
		)
	}
	proof, err := ParseProof(pi)
	if err != nil {
		return nil, err
	}
	ok, err := verify(Y, proof, alpha)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.NewError(
			common.ErrorKindStructuralInvariantViolation,
			"vrf proof does not verify",
		)
	}
	return proof.Hash(), nil
}

// Verify verifies a VRF proof and compares the output to expected.
func Verify(
	publicKey []byte,
	pi []byte,
	expectedOutput []byte,
	alpha []byte,
) (bool, error) {
	output, err := VerifyAndHash(publicKey, pi, alpha)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(output, expectedOutput) == 1, nil
}

func verify(Y *edwards25519.Point, proof *Proof, alpha []byte) (bool, error) {
	H, err := hashToCurveTryAndIncrement(Y, alpha)
	if err != nil {
		return false, err
	}

	var cScalarBytes [32]byte
	copy(cScalarBytes[:], proof.C[:])
	c := edwards25519.NewScalar()
	if _, err := c.SetCanonicalBytes(cScalarBytes[:]); err != nil {
		return false, err
	}

	// U = s*B - c*Y
	tmp1 := (&edwards25519.Point{}).ScalarBaseMult(proof.S)
	tmp2 := (&edwards25519.Point{}).ScalarMult(c, Y)
	U := (&edwards25519.Point{}).Subtract(tmp1, tmp2)

	// V = s*H - c*Gamma
	tmp1 = (&edwards25519.Point{}).ScalarMult(proof.S, H)
	tmp2 = (&edwards25519.Point{}).ScalarMult(c, proof.Gamma)
	V := (&edwards25519.Point{}).Subtract(tmp1, tmp2)

	cprime := hashPoints(H, proof.Gamma, U, V)
	cmp := subtle.ConstantTimeCompare(
		proof.C[:],
		cprime.Bytes()[:challengeSize],
	)
	return cmp == 1, nil
}

// hashPoints hashes four curve points for the VRF challenge
func hashPoints(P1, P2, P3, P4 *edwards25519.Point) *edwards25519.Scalar {
	var result [32]byte
	var str [2 + (32 * 4)]byte

	str[0] = Suite
	str[1] = 0x02
	copy(str[2+(32*0):], P1.Bytes())
	copy(str[2+(32*1):], P2.Bytes())
	copy(str[2+(32*2):], P3.Bytes())
	copy(str[2+(32*3):], P4.Bytes())
	sum := sha512.Sum512(str[:])
	copy(result[:], sum[:challengeSize])
	r := edwards25519.NewScalar()
	// A 16-byte value is always below the group order
	if _, err := r.SetCanonicalBytes(result[:]); err != nil {
		panic(err)
	}
	return r
}

// hashToCurveTryAndIncrement hashes the public key and message with an
// increasing one-byte counter until the digest decodes as a point, then
// clears the cofactor
func hashToCurveTryAndIncrement(
	Y *edwards25519.Point,
	alpha []byte,
) (*edwards25519.Point, error) {
	pk := Y.Bytes()
	for ctr := range 256 {
		hs := sha512.New()
		hs.Write([]byte{Suite, 0x01})
		hs.Write(pk)
		hs.Write(alpha)
		// #nosec G115 -- ctr is below 256
		hs.Write([]byte{byte(ctr)})
		digest := hs.Sum(nil)
		candidate := &edwards25519.Point{}
		if _, err := candidate.SetBytes(digest[:32]); err != nil {
			continue
		}
		return candidate.MultByCofactor(candidate), nil
	}
	return nil, common.NewError(
		common.ErrorKindStructuralInvariantViolation,
		"hash to curve found no valid point",
	)
}
