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

// Package ledger decodes Stacks transactions, post-conditions and blocks
// from their consensus serialization.
package ledger

import (
	"fmt"

	"github.com/blinklabs-io/gostacks/ledger/common"
	"github.com/blinklabs-io/gostacks/utils"
	"github.com/blinklabs-io/gostacks/wire"
)

// MaxBlockSize bounds every variable-length section of a transaction or
// block
const MaxBlockSize = 2 * 1024 * 1024

// AnchorMode controls whether a transaction may be mined in a block, a
// microblock, or either
type AnchorMode uint8

const (
	AnchorModeOnChainOnly  AnchorMode = 0x01
	AnchorModeOffChainOnly AnchorMode = 0x02
	AnchorModeAny          AnchorMode = 0x03
)

// Transaction is a decoded Stacks transaction. Slices reference the input
// buffer, which must not be modified while the transaction is in use.
type Transaction struct {
	Version           common.TransactionVersion
	ChainId           uint32
	Auth              TransactionAuth
	AnchorMode        AnchorMode
	PostConditionMode PostConditionMode
	PostConditions    []PostCondition
	Payload           Payload
	raw               []byte
	postConditionsRaw []byte
	payloadRaw        []byte
}

// DecodeTransaction decodes a single transaction that must span all of data
func DecodeTransaction(data []byte) (*Transaction, error) {
	r := wire.NewReader(data)
	tx, err := DecodeTransactionFromReader(r)
	if err != nil {
		return nil, err
	}
	if !r.EOF() {
		return nil, common.NewError(
			common.ErrorKindStructuralInvariantViolation,
			"%d trailing bytes after transaction",
			r.Remaining(),
		)
	}
	return tx, nil
}

// DecodeTransactionFromReader decodes a transaction at the reader's position
func DecodeTransactionFromReader(r *wire.Reader) (*Transaction, error) {
	start := r.Position()
	tx := &Transaction{}
	version, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("version: %w", err)
	}
	tx.Version = common.TransactionVersion(version)
	if tx.ChainId, err = r.ReadUint32(); err != nil {
		return nil, fmt.Errorf("chain id: %w", err)
	}
	if tx.Auth, err = decodeTransactionAuth(r); err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}
	anchorMode, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("anchor mode: %w", err)
	}
	tx.AnchorMode = AnchorMode(anchorMode)
	switch tx.AnchorMode {
	case AnchorModeOnChainOnly, AnchorModeOffChainOnly, AnchorModeAny:
	default:
		return nil, common.NewError(
			common.ErrorKindUnrecognizedTag,
			"invalid anchor mode 0x%02x",
			anchorMode,
		)
	}
	pcStart := r.Position()
	pcMode, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("post-condition mode: %w", err)
	}
	if tx.PostConditionMode, err = newPostConditionMode(pcMode); err != nil {
		return nil, err
	}
	if tx.PostConditions, err = decodePostConditions(r); err != nil {
		return nil, err
	}
	tx.postConditionsRaw = r.Since(pcStart)
	payloadStart := r.Position()
	if tx.Payload, err = decodePayload(r); err != nil {
		return nil, err
	}
	tx.payloadRaw = r.Since(payloadStart)
	tx.raw = r.Since(start)
	return tx, nil
}

// Id returns the transaction id, the SHA512/256 hash of its serialization
func (tx *Transaction) Id() common.Sha512Trunc256 {
	return common.Sha512Trunc256Hash(tx.raw)
}

// Bytes returns the transaction exactly as it was serialized
func (tx *Transaction) Bytes() []byte {
	return tx.raw
}

// PostConditionsBytes returns the post-condition section, from the mode byte
// through the last record
func (tx *Transaction) PostConditionsBytes() []byte {
	return tx.postConditionsRaw
}

// PayloadBytes returns the serialized payload
func (tx *Transaction) PayloadBytes() []byte {
	return tx.payloadRaw
}

// IsMainnet reports whether the transaction targets mainnet
func (tx *Transaction) IsMainnet() bool {
	return tx.Version.IsMainnet()
}

// Document renders the transaction for JSON, CBOR and YAML output
func (tx *Transaction) Document() map[string]any {
	mainnet := tx.IsMainnet()
	version := common.TransactionVersionTestnet
	if mainnet {
		version = common.TransactionVersionMainnet
	}
	postConditions := make([]any, 0, len(tx.PostConditions))
	for i := range tx.PostConditions {
		postConditions = append(postConditions, tx.PostConditions[i].Document())
	}
	id := tx.Id()
	return map[string]any{
		"tx_id":                  utils.HexPrefixed(id[:]),
		"version":                uint8(version),
		"chain_id":               tx.ChainId,
		"auth":                   tx.Auth.document(mainnet),
		"anchor_mode":            uint8(tx.AnchorMode),
		"post_condition_mode":    uint8(tx.PostConditionMode),
		"post_conditions":        postConditions,
		"post_conditions_buffer": utils.HexPrefixed(tx.postConditionsRaw),
		"payload":                tx.Payload.Document(),
	}
}
