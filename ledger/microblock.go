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
	"github.com/blinklabs-io/gostacks/ledger/common"
	"github.com/blinklabs-io/gostacks/utils"
	"github.com/blinklabs-io/gostacks/wire"
)

// MicroblockHeader is the header of a legacy microblock, as carried by a
// poison-microblock payload
type MicroblockHeader struct {
	Version      uint8
	Sequence     uint16
	PrevBlock    common.Sha512Trunc256
	TxMerkleRoot common.Sha512Trunc256
	Signature    common.MessageSignature
	raw          []byte
}

// Bytes returns the header exactly as it was serialized
func (h *MicroblockHeader) Bytes() []byte {
	return h.raw
}

func decodeMicroblockHeader(r *wire.Reader) (MicroblockHeader, error) {
	start := r.Position()
	var ret MicroblockHeader
	var err error
	if ret.Version, err = r.ReadByte(); err != nil {
		return MicroblockHeader{}, err
	}
	if ret.Sequence, err = r.ReadUint16(); err != nil {
		return MicroblockHeader{}, err
	}
	if err := r.ReadInto(ret.PrevBlock[:]); err != nil {
		return MicroblockHeader{}, err
	}
	if err := r.ReadInto(ret.TxMerkleRoot[:]); err != nil {
		return MicroblockHeader{}, err
	}
	if err := r.ReadInto(ret.Signature[:]); err != nil {
		return MicroblockHeader{}, err
	}
	ret.raw = r.Since(start)
	return ret, nil
}

func (h *MicroblockHeader) document() map[string]any {
	return map[string]any{
		"buffer":         utils.HexPrefixed(h.raw),
		"version":        h.Version,
		"sequence":       h.Sequence,
		"prev_block":     utils.HexPrefixed(h.PrevBlock[:]),
		"tx_merkle_root": utils.HexPrefixed(h.TxMerkleRoot[:]),
		"signature":      utils.HexPrefixed(h.Signature[:]),
	}
}
