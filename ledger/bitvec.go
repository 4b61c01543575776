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
	"github.com/blinklabs-io/gostacks/wire"
)

// MaxBitVecLen is the largest bit count accepted for a PoX treatment vector
const MaxBitVecLen = 4000

// BitVec is a length-prefixed bit vector, most significant bit first
type BitVec struct {
	len  uint16
	data []byte
}

// Len returns the number of bits
func (b BitVec) Len() uint16 {
	return b.len
}

// Get returns bit i. The second return is false when i is out of range.
func (b BitVec) Get(i uint16) (bool, bool) {
	if i >= b.len {
		return false, false
	}
	return b.data[i/8]&(0x80>>(i%8)) != 0, true
}

// Bits returns every bit in order
func (b BitVec) Bits() []bool {
	ret := make([]bool, b.len)
	for i := range b.len {
		ret[i], _ = b.Get(i)
	}
	return ret
}

func (b BitVec) encode(w *wire.Writer) {
	w.WriteUint16(b.len)
	w.WriteUint32(uint32(len(b.data))) // #nosec G115
	_, _ = w.Write(b.data)
}

// Bytes returns the serialized vector
func (b BitVec) Bytes() []byte {
	w := wire.NewWriter()
	b.encode(w)
	return w.Bytes()
}

func decodeBitVec(r *wire.Reader) (BitVec, error) {
	bitLen, err := r.ReadUint16()
	if err != nil {
		return BitVec{}, err
	}
	if bitLen == 0 {
		return BitVec{}, common.NewError(
			common.ErrorKindStructuralInvariantViolation,
			"bitvec length must be positive",
		)
	}
	if bitLen > MaxBitVecLen {
		return BitVec{}, common.NewError(
			common.ErrorKindSizeExceeded,
			"bitvec length %d exceeds %d",
			bitLen,
			MaxBitVecLen,
		)
	}
	dataLen, err := r.ReadUint32()
	if err != nil {
		return BitVec{}, err
	}
	expected := (uint32(bitLen) + 7) / 8
	if dataLen != expected {
		return BitVec{}, common.NewError(
			common.ErrorKindLengthMismatch,
			"bitvec of %d bits needs %d data bytes, got %d",
			bitLen,
			expected,
			dataLen,
		)
	}
	data, err := r.ReadBytes(int(dataLen))
	if err != nil {
		return BitVec{}, err
	}
	return BitVec{len: bitLen, data: data}, nil
}
