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

package ledger

import (
	"fmt"
	"strconv"

	"github.com/blinklabs-io/gostacks/address"
	"github.com/blinklabs-io/gostacks/ledger/common"
	"github.com/blinklabs-io/gostacks/utils"
	"github.com/blinklabs-io/gostacks/wire"
)

// AuthType is the transaction authorization flag
type AuthType uint8

const (
	AuthTypeStandard  AuthType = 0x04
	AuthTypeSponsored AuthType = 0x05
)

// PublicKeyEncoding is the key encoding of a singlesig spending condition
type PublicKeyEncoding uint8

const (
	PublicKeyEncodingCompressed   PublicKeyEncoding = 0x00
	PublicKeyEncodingUncompressed PublicKeyEncoding = 0x01
)

// AuthFieldType tags a multisig auth field
type AuthFieldType uint8

const (
	AuthFieldTypePublicKeyCompressed   AuthFieldType = 0x00
	AuthFieldTypePublicKeyUncompressed AuthFieldType = 0x01
	AuthFieldTypeSignatureCompressed   AuthFieldType = 0x02
	AuthFieldTypeSignatureUncompressed AuthFieldType = 0x03
)

// IsSignature reports whether the field carries a signature rather than a
// public key
func (t AuthFieldType) IsSignature() bool {
	return t == AuthFieldTypeSignatureCompressed ||
		t == AuthFieldTypeSignatureUncompressed
}

// IsCompressed reports whether the field's key is compressed
func (t AuthFieldType) IsCompressed() bool {
	return t == AuthFieldTypePublicKeyCompressed ||
		t == AuthFieldTypeSignatureCompressed
}

// Smallest multisig field on the wire: a type byte and a public key
const minAuthFieldSize = 1 + common.PublicKeySize

// AuthField is a public key or signature of a multisig spending condition
type AuthField struct {
	Type AuthFieldType
	// Set for public key fields
	PublicKey common.PublicKey
	// Set for signature fields
	Signature common.MessageSignature
}

// Address returns the P2PKH address of a compressed public key field.
// Uncompressed keys are hashed in their 65-byte form, which the wire does
// not carry, so they are rejected along with signature fields.
func (f AuthField) Address(mainnet bool) (address.StacksAddress, error) {
	if f.Type != AuthFieldTypePublicKeyCompressed {
		return address.StacksAddress{}, common.NewError(
			common.ErrorKindStructuralInvariantViolation,
			"auth field type %d does not hold a compressed public key",
			f.Type,
		)
	}
	return address.FromPublicKey(f.PublicKey[:], mainnet)
}

// TransactionAuth holds the origin spending condition and, for sponsored
// transactions, the sponsor's
type TransactionAuth struct {
	Type    AuthType
	Origin  SpendingCondition
	Sponsor *SpendingCondition
}

// SpendingCondition authorizes a transaction for one account. Singlesig
// conditions use KeyEncoding and Signature. Multisig conditions use Fields
// and SignaturesRequired.
type SpendingCondition struct {
	HashMode           address.AddressHashMode
	Signer             common.Hash160
	Nonce              uint64
	Fee                uint64
	KeyEncoding        PublicKeyEncoding
	Signature          common.MessageSignature
	Fields             []AuthField
	SignaturesRequired uint16
}

// IsMultiSig reports whether the condition is a multisig condition
func (c *SpendingCondition) IsMultiSig() bool {
	return c.HashMode.IsMultiSig()
}

// SignerAddress returns the signer as an address for the given network
func (c *SpendingCondition) SignerAddress(mainnet bool) address.StacksAddress {
	return address.StacksAddress{
		Version: c.HashMode.Version(mainnet),
		Hash160: c.Signer,
	}
}

// SignatureCount returns the number of signature fields of a multisig
// condition
func (c *SpendingCondition) SignatureCount() int {
	count := 0
	for _, field := range c.Fields {
		if field.Type.IsSignature() {
			count++
		}
	}
	return count
}

func decodeTransactionAuth(r *wire.Reader) (TransactionAuth, error) {
	authType, err := r.ReadByte()
	if err != nil {
		return TransactionAuth{}, err
	}
	ret := TransactionAuth{
		Type: AuthType(authType),
	}
	switch ret.Type {
	case AuthTypeStandard:
		origin, err := decodeSpendingCondition(r)
		if err != nil {
			return TransactionAuth{}, fmt.Errorf("origin condition: %w", err)
		}
		ret.Origin = origin
	case AuthTypeSponsored:
		origin, err := decodeSpendingCondition(r)
		if err != nil {
			return TransactionAuth{}, fmt.Errorf("origin condition: %w", err)
		}
		sponsor, err := decodeSpendingCondition(r)
		if err != nil {
			return TransactionAuth{}, fmt.Errorf("sponsor condition: %w", err)
		}
		ret.Origin = origin
		ret.Sponsor = &sponsor
	default:
		return TransactionAuth{}, common.NewError(
			common.ErrorKindUnrecognizedTag,
			"unrecognized auth flag 0x%02x",
			authType,
		)
	}
	return ret, nil
}

func decodeSpendingCondition(r *wire.Reader) (SpendingCondition, error) {
	modeByte, err := r.ReadByte()
	if err != nil {
		return SpendingCondition{}, err
	}
	hashMode, err := address.NewAddressHashMode(modeByte)
	if err != nil {
		return SpendingCondition{}, err
	}
	ret := SpendingCondition{
		HashMode: hashMode,
	}
	if err := r.ReadInto(ret.Signer[:]); err != nil {
		return SpendingCondition{}, err
	}
	if ret.Nonce, err = r.ReadUint64(); err != nil {
		return SpendingCondition{}, err
	}
	if ret.Fee, err = r.ReadUint64(); err != nil {
		return SpendingCondition{}, err
	}
	if hashMode.IsSingleSig() {
		if err := decodeSinglesig(r, &ret); err != nil {
			return SpendingCondition{}, err
		}
		return ret, nil
	}
	if err := decodeMultisig(r, &ret); err != nil {
		return SpendingCondition{}, err
	}
	return ret, nil
}

func decodeSinglesig(r *wire.Reader, cond *SpendingCondition) error {
	encoding, err := r.ReadByte()
	if err != nil {
		return err
	}
	cond.KeyEncoding = PublicKeyEncoding(encoding)
	switch cond.KeyEncoding {
	case PublicKeyEncodingCompressed, PublicKeyEncodingUncompressed:
	default:
		return common.NewError(
			common.ErrorKindUnrecognizedTag,
			"unrecognized public key encoding 0x%02x",
			encoding,
		)
	}
	if err := r.ReadInto(cond.Signature[:]); err != nil {
		return err
	}
	if cond.HashMode == address.HashModeP2WPKH &&
		cond.KeyEncoding != PublicKeyEncodingCompressed {
		return common.NewError(
			common.ErrorKindStructuralInvariantViolation,
			"p2wpkh spending condition requires a compressed key",
		)
	}
	return nil
}

func decodeMultisig(r *wire.Reader, cond *SpendingCondition) error {
	count, err := r.ReadCount(minAuthFieldSize, MaxBlockSize)
	if err != nil {
		return fmt.Errorf("auth field count: %w", err)
	}
	cond.Fields = make([]AuthField, 0, count)
	for range count {
		field, err := decodeAuthField(r)
		if err != nil {
			return err
		}
		cond.Fields = append(cond.Fields, field)
	}
	if cond.SignaturesRequired, err = r.ReadUint16(); err != nil {
		return err
	}
	segwit := cond.HashMode == address.HashModeP2WSH ||
		cond.HashMode == address.HashModeP2WSHNonSequential
	if segwit {
		for _, field := range cond.Fields {
			if !field.Type.IsCompressed() {
				return common.NewError(
					common.ErrorKindStructuralInvariantViolation,
					"%s spending condition forbids uncompressed keys",
					cond.HashMode.String(),
				)
			}
		}
	}
	sigCount := cond.SignatureCount()
	required := int(cond.SignaturesRequired)
	if cond.HashMode.IsNonSequential() {
		// Signers may over-sign when order does not matter
		if sigCount < required {
			return common.NewError(
				common.ErrorKindStructuralInvariantViolation,
				"%d signatures present, %d required",
				sigCount,
				required,
			)
		}
	} else if sigCount != required {
		return common.NewError(
			common.ErrorKindStructuralInvariantViolation,
			"%d signatures present, exactly %d required",
			sigCount,
			required,
		)
	}
	return nil
}

func decodeAuthField(r *wire.Reader) (AuthField, error) {
	fieldType, err := r.ReadByte()
	if err != nil {
		return AuthField{}, err
	}
	ret := AuthField{
		Type: AuthFieldType(fieldType),
	}
	switch ret.Type {
	case AuthFieldTypePublicKeyCompressed, AuthFieldTypePublicKeyUncompressed:
		err = r.ReadInto(ret.PublicKey[:])
	case AuthFieldTypeSignatureCompressed, AuthFieldTypeSignatureUncompressed:
		err = r.ReadInto(ret.Signature[:])
	default:
		return AuthField{}, common.NewError(
			common.ErrorKindUnrecognizedTag,
			"unrecognized auth field type 0x%02x",
			fieldType,
		)
	}
	if err != nil {
		return AuthField{}, err
	}
	return ret, nil
}

func (a *TransactionAuth) document(mainnet bool) map[string]any {
	ret := map[string]any{
		"type_id":          uint8(a.Type),
		"origin_condition": a.Origin.document(mainnet),
	}
	if a.Sponsor != nil {
		ret["sponsor_condition"] = a.Sponsor.document(mainnet)
	}
	return ret
}

func (c *SpendingCondition) document(mainnet bool) map[string]any {
	signer := map[string]any{}
	addressDocument(signer, c.SignerAddress(mainnet))
	ret := map[string]any{
		"hash_mode": uint8(c.HashMode),
		"signer":    signer,
		"nonce":     strconv.FormatUint(c.Nonce, 10),
		"tx_fee":    strconv.FormatUint(c.Fee, 10),
	}
	if !c.IsMultiSig() {
		ret["key_encoding"] = uint8(c.KeyEncoding)
		ret["signature"] = utils.HexPrefixed(c.Signature[:])
		return ret
	}
	fields := make([]any, 0, len(c.Fields))
	for _, field := range c.Fields {
		fieldDoc := map[string]any{
			"type_id": uint8(field.Type),
		}
		if field.Type.IsSignature() {
			fieldDoc["signature"] = utils.HexPrefixed(field.Signature[:])
		} else {
			fieldDoc["public_key"] = utils.HexPrefixed(field.PublicKey[:])
		}
		fields = append(fields, fieldDoc)
	}
	ret["fields"] = fields
	ret["signatures_required"] = c.SignaturesRequired
	return ret
}
