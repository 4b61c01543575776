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

package wire

import (
	"encoding/binary"

	"github.com/blinklabs-io/gostacks/ledger/common"
)

// Reader provides sequential big-endian decoding over a borrowed byte slice
// with position tracking. Slices returned by ReadBytes and RawBytes are views
// into the original data and are never copied.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a reader positioned at the start of data
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Position returns the current byte position in the input.
func (r *Reader) Position() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Data returns the underlying byte slice.
func (r *Reader) Data() []byte {
	return r.data
}

// EOF returns true if the reader has reached the end of the data.
func (r *Reader) EOF() bool {
	return r.pos >= len(r.data)
}

func (r *Reader) need(n int) error {
	if n < 0 || n > len(r.data)-r.pos {
		return common.TruncatedError{
			Offset: r.pos,
			Need:   n,
			Have:   len(r.data) - r.pos,
		}
	}
	return nil
}

// ReadByte reads a single byte
func (r *Reader) ReadByte() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// PeekByte returns the next byte without consuming it
func (r *Reader) PeekByte() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	return r.data[r.pos], nil
}

func (r *Reader) ReadUint16() (uint16, error) {
	buf, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf), nil
}

func (r *Reader) ReadUint32() (uint32, error) {
	buf, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf), nil
}

func (r *Reader) ReadUint64() (uint64, error) {
	buf, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf), nil
}

// ReadBytes returns a view of the next n bytes and advances past them
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	ret := r.data[r.pos : r.pos+n]
	r.pos += n
	return ret, nil
}

// ReadInto fills dst from the input. It is meant for fixed-size arrays.
func (r *Reader) ReadInto(dst []byte) error {
	buf, err := r.ReadBytes(len(dst))
	if err != nil {
		return err
	}
	copy(dst, buf)
	return nil
}

// ReadCount reads a u32 element count and checks it against limit and
// against the remaining input, assuming each element takes at least
// minElemSize bytes. Nothing should be allocated from a count that has not
// passed through here.
func (r *Reader) ReadCount(minElemSize int, limit uint32) (int, error) {
	start := r.pos
	count, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	if count > limit {
		return 0, common.NewError(
			common.ErrorKindSizeExceeded,
			"count %d at offset %d exceeds limit %d",
			count,
			start,
			limit,
		)
	}
	if minElemSize > 0 && uint64(count)*uint64(minElemSize) > uint64(r.Remaining()) {
		return 0, common.TruncatedError{
			Offset: r.pos,
			Need:   int(count) * minElemSize,
			Have:   r.Remaining(),
		}
	}
	return int(count), nil
}

// RawBytes returns the raw bytes for the given offset and length.
func (r *Reader) RawBytes(offset, length int) []byte {
	// Check for negative values and integer overflow
	if offset < 0 || length < 0 {
		return nil
	}
	end := offset + length
	if end < offset || end > len(r.data) {
		return nil
	}
	return r.data[offset:end]
}

// Since returns the bytes between start and the current position
func (r *Reader) Since(start int) []byte {
	if start < 0 || start > r.pos {
		return nil
	}
	return r.data[start:r.pos]
}

// Advance moves the reader position forward by n bytes without decoding.
// Returns an error if n would advance past the end of data.
func (r *Reader) Advance(n int) error {
	if err := r.need(n); err != nil {
		return err
	}
	r.pos += n
	return nil
}
