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

	"github.com/blinklabs-io/gostacks/ledger/common"
	"github.com/blinklabs-io/gostacks/utils"
	"github.com/blinklabs-io/gostacks/wire"
)

// MaxSignerSignatures bounds the signer signature list of a Nakamoto header
const MaxSignerSignatures = MaxBitVecLen

type BlockHeader interface {
	BlockHash() common.Sha512Trunc256
	Bytes() []byte
	Document() map[string]any
}

type Block interface {
	BlockHash() common.Sha512Trunc256
	Transactions() []*Transaction
	Document() map[string]any
}

var (
	_ BlockHeader = (*NakamotoBlockHeader)(nil)
	_ BlockHeader = (*StacksBlockHeader)(nil)
	_ Block       = (*NakamotoBlock)(nil)
	_ Block       = (*StacksBlock)(nil)
)

// NakamotoBlockHeader is the header of a Stacks 3.x block
type NakamotoBlockHeader struct {
	Version         uint8
	ChainLength     uint64
	BurnSpent       uint64
	ConsensusHash   common.ConsensusHash
	ParentBlockId   common.Sha512Trunc256
	TxMerkleRoot    common.Sha512Trunc256
	StateIndexRoot  common.Sha512Trunc256
	Timestamp       uint64
	MinerSignature  common.MessageSignature
	SignerSignature []common.MessageSignature
	PoxTreatment    BitVec
}

// DecodeNakamotoBlockHeader decodes a header that must span all of data
func DecodeNakamotoBlockHeader(data []byte) (*NakamotoBlockHeader, error) {
	r := wire.NewReader(data)
	ret, err := decodeNakamotoBlockHeader(r)
	if err != nil {
		return nil, err
	}
	if err := requireEOF(r, "block header"); err != nil {
		return nil, err
	}
	return ret, nil
}

func decodeNakamotoBlockHeader(r *wire.Reader) (*NakamotoBlockHeader, error) {
	h := &NakamotoBlockHeader{}
	var err error
	if h.Version, err = r.ReadByte(); err != nil {
		return nil, err
	}
	if h.ChainLength, err = r.ReadUint64(); err != nil {
		return nil, err
	}
	if h.BurnSpent, err = r.ReadUint64(); err != nil {
		return nil, err
	}
	if err := r.ReadInto(h.ConsensusHash[:]); err != nil {
		return nil, err
	}
	if err := r.ReadInto(h.ParentBlockId[:]); err != nil {
		return nil, err
	}
	if err := r.ReadInto(h.TxMerkleRoot[:]); err != nil {
		return nil, err
	}
	if err := r.ReadInto(h.StateIndexRoot[:]); err != nil {
		return nil, err
	}
	if h.Timestamp, err = r.ReadUint64(); err != nil {
		return nil, err
	}
	if err := r.ReadInto(h.MinerSignature[:]); err != nil {
		return nil, err
	}
	count, err := r.ReadCount(common.MessageSignatureSize, MaxSignerSignatures)
	if err != nil {
		return nil, fmt.Errorf("signer signature count: %w", err)
	}
	h.SignerSignature = make([]common.MessageSignature, count)
	for i := range h.SignerSignature {
		if err := r.ReadInto(h.SignerSignature[i][:]); err != nil {
			return nil, err
		}
	}
	if h.PoxTreatment, err = decodeBitVec(r); err != nil {
		return nil, fmt.Errorf("pox treatment: %w", err)
	}
	return h, nil
}

func (h *NakamotoBlockHeader) encode(w *wire.Writer, withSigners bool) {
	_ = w.WriteByte(h.Version)
	w.WriteUint64(h.ChainLength)
	w.WriteUint64(h.BurnSpent)
	_, _ = w.Write(h.ConsensusHash[:])
	_, _ = w.Write(h.ParentBlockId[:])
	_, _ = w.Write(h.TxMerkleRoot[:])
	_, _ = w.Write(h.StateIndexRoot[:])
	w.WriteUint64(h.Timestamp)
	_, _ = w.Write(h.MinerSignature[:])
	if withSigners {
		w.WriteUint32(uint32(len(h.SignerSignature))) // #nosec G115
		for _, sig := range h.SignerSignature {
			_, _ = w.Write(sig[:])
		}
	}
	h.PoxTreatment.encode(w)
}

// Bytes returns the serialized header
func (h *NakamotoBlockHeader) Bytes() []byte {
	w := wire.NewWriter()
	h.encode(w, true)
	return w.Bytes()
}

// BlockHash covers every header field except the signer signatures, which
// sign this hash
func (h *NakamotoBlockHeader) BlockHash() common.Sha512Trunc256 {
	w := wire.NewWriter()
	h.encode(w, false)
	return common.Sha512Trunc256Hash(w.Bytes())
}

// BlockId is the index block hash, binding the block hash to its consensus
// hash
func (h *NakamotoBlockHeader) BlockId() common.Sha512Trunc256 {
	blockHash := h.BlockHash()
	buf := make([]byte, 0, common.Sha512Trunc256Size+common.ConsensusHashSize)
	buf = append(buf, blockHash[:]...)
	buf = append(buf, h.ConsensusHash[:]...)
	return common.Sha512Trunc256Hash(buf)
}

func (h *NakamotoBlockHeader) Document() map[string]any {
	signers := make([]any, 0, len(h.SignerSignature))
	for _, sig := range h.SignerSignature {
		signers = append(signers, utils.HexPrefixed(sig[:]))
	}
	blockHash := h.BlockHash()
	blockId := h.BlockId()
	return map[string]any{
		"version":          h.Version,
		"chain_length":     strconv.FormatUint(h.ChainLength, 10),
		"burn_spent":       strconv.FormatUint(h.BurnSpent, 10),
		"consensus_hash":   utils.HexPrefixed(h.ConsensusHash[:]),
		"parent_block_id":  utils.HexPrefixed(h.ParentBlockId[:]),
		"tx_merkle_root":   utils.HexPrefixed(h.TxMerkleRoot[:]),
		"state_index_root": utils.HexPrefixed(h.StateIndexRoot[:]),
		"timestamp":        strconv.FormatUint(h.Timestamp, 10),
		"miner_signature":  utils.HexPrefixed(h.MinerSignature[:]),
		"signer_signature": signers,
		"pox_treatment": map[string]any{
			"len":  h.PoxTreatment.Len(),
			"data": utils.HexPrefixed(h.PoxTreatment.data),
			"bits": h.PoxTreatment.Bits(),
		},
		"block_hash":       utils.HexPrefixed(blockHash[:]),
		"index_block_hash": utils.HexPrefixed(blockId[:]),
	}
}

type NakamotoBlock struct {
	Header *NakamotoBlockHeader
	Txs    []*Transaction
}

// DecodeNakamotoBlock decodes a header followed by its transactions. The
// block must span all of data.
func DecodeNakamotoBlock(data []byte) (*NakamotoBlock, error) {
	r := wire.NewReader(data)
	header, err := decodeNakamotoBlockHeader(r)
	if err != nil {
		return nil, fmt.Errorf("block header: %w", err)
	}
	txs, err := decodeBlockTransactions(r)
	if err != nil {
		return nil, err
	}
	return &NakamotoBlock{
		Header: header,
		Txs:    txs,
	}, nil
}

func (b *NakamotoBlock) BlockHash() common.Sha512Trunc256 {
	return b.Header.BlockHash()
}

func (b *NakamotoBlock) Transactions() []*Transaction {
	return b.Txs
}

func (b *NakamotoBlock) Document() map[string]any {
	blockId := b.Header.BlockId()
	return map[string]any{
		"block_id": utils.HexPrefixed(blockId[:]),
		"header":   b.Header.Document(),
		"txs":      transactionDocuments(b.Txs),
	}
}

// StacksBlockHeader is the header of a Stacks 2.x block
type StacksBlockHeader struct {
	Version                  uint8
	TotalWorkBurn            uint64
	TotalWorkWork            uint64
	Proof                    VrfProof
	ParentBlock              common.Sha512Trunc256
	ParentMicroblock         common.Sha512Trunc256
	ParentMicroblockSequence uint16
	TxMerkleRoot             common.Sha512Trunc256
	StateIndexRoot           common.Sha512Trunc256
	MicroblockPubkeyHash     common.Hash160
	raw                      []byte
}

// DecodeStacksBlockHeader decodes a Stacks 2.x header that must span all of
// data
func DecodeStacksBlockHeader(data []byte) (*StacksBlockHeader, error) {
	r := wire.NewReader(data)
	ret, err := decodeStacksBlockHeader(r)
	if err != nil {
		return nil, err
	}
	if err := requireEOF(r, "block header"); err != nil {
		return nil, err
	}
	return ret, nil
}

func decodeStacksBlockHeader(r *wire.Reader) (*StacksBlockHeader, error) {
	start := r.Position()
	h := &StacksBlockHeader{}
	var err error
	if h.Version, err = r.ReadByte(); err != nil {
		return nil, err
	}
	if h.TotalWorkBurn, err = r.ReadUint64(); err != nil {
		return nil, err
	}
	if h.TotalWorkWork, err = r.ReadUint64(); err != nil {
		return nil, err
	}
	if err := r.ReadInto(h.Proof[:]); err != nil {
		return nil, err
	}
	if err := r.ReadInto(h.ParentBlock[:]); err != nil {
		return nil, err
	}
	if err := r.ReadInto(h.ParentMicroblock[:]); err != nil {
		return nil, err
	}
	if h.ParentMicroblockSequence, err = r.ReadUint16(); err != nil {
		return nil, err
	}
	if err := r.ReadInto(h.TxMerkleRoot[:]); err != nil {
		return nil, err
	}
	if err := r.ReadInto(h.StateIndexRoot[:]); err != nil {
		return nil, err
	}
	if err := r.ReadInto(h.MicroblockPubkeyHash[:]); err != nil {
		return nil, err
	}
	h.raw = r.Since(start)
	return h, nil
}

// Bytes returns the header exactly as it was serialized
func (h *StacksBlockHeader) Bytes() []byte {
	return h.raw
}

// BlockHash is the SHA512/256 hash of the serialized header
func (h *StacksBlockHeader) BlockHash() common.Sha512Trunc256 {
	return common.Sha512Trunc256Hash(h.raw)
}

func (h *StacksBlockHeader) Document() map[string]any {
	blockHash := h.BlockHash()
	return map[string]any{
		"version": h.Version,
		"total_work": map[string]any{
			"burn": strconv.FormatUint(h.TotalWorkBurn, 10),
			"work": strconv.FormatUint(h.TotalWorkWork, 10),
		},
		"proof":                      utils.HexPrefixed(h.Proof[:]),
		"parent_block":               utils.HexPrefixed(h.ParentBlock[:]),
		"parent_microblock":          utils.HexPrefixed(h.ParentMicroblock[:]),
		"parent_microblock_sequence": h.ParentMicroblockSequence,
		"tx_merkle_root":             utils.HexPrefixed(h.TxMerkleRoot[:]),
		"state_index_root":           utils.HexPrefixed(h.StateIndexRoot[:]),
		"microblock_pubkey_hash":     utils.HexPrefixed(h.MicroblockPubkeyHash[:]),
		"block_hash":                 utils.HexPrefixed(blockHash[:]),
	}
}

type StacksBlock struct {
	Header *StacksBlockHeader
	Txs    []*Transaction
}

// DecodeStacksBlock decodes a Stacks 2.x block that must span all of data
func DecodeStacksBlock(data []byte) (*StacksBlock, error) {
	r := wire.NewReader(data)
	header, err := decodeStacksBlockHeader(r)
	if err != nil {
		return nil, fmt.Errorf("block header: %w", err)
	}
	txs, err := decodeBlockTransactions(r)
	if err != nil {
		return nil, err
	}
	return &StacksBlock{
		Header: header,
		Txs:    txs,
	}, nil
}

func (b *StacksBlock) BlockHash() common.Sha512Trunc256 {
	return b.Header.BlockHash()
}

func (b *StacksBlock) Transactions() []*Transaction {
	return b.Txs
}

func (b *StacksBlock) Document() map[string]any {
	blockHash := b.Header.BlockHash()
	return map[string]any{
		"block_hash": utils.HexPrefixed(blockHash[:]),
		"header":     b.Header.Document(),
		"txs":        transactionDocuments(b.Txs),
	}
}

// Smallest transaction on the wire: version, chain id, a standard auth
// with an empty multisig condition, anchor mode, post-condition section and
// a payload id
const minTransactionSize = 1 + 4 + 1 + (1 + 20 + 8 + 8 + 4 + 2) + 1 + (1 + 4) + 1

func decodeBlockTransactions(r *wire.Reader) ([]*Transaction, error) {
	count, err := r.ReadCount(minTransactionSize, MaxBlockSize)
	if err != nil {
		return nil, fmt.Errorf("transaction count: %w", err)
	}
	txs := make([]*Transaction, 0, count)
	for i := range count {
		tx, err := DecodeTransactionFromReader(r)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		txs = append(txs, tx)
	}
	if err := requireEOF(r, "block"); err != nil {
		return nil, err
	}
	return txs, nil
}

func requireEOF(r *wire.Reader, what string) error {
	if r.EOF() {
		return nil
	}
	return common.NewError(
		common.ErrorKindStructuralInvariantViolation,
		"%d trailing bytes after %s",
		r.Remaining(),
		what,
	)
}

func transactionDocuments(txs []*Transaction) []any {
	ret := make([]any, 0, len(txs))
	for _, tx := range txs {
		ret = append(ret, tx.Document())
	}
	return ret
}
