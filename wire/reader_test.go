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
	"errors"
	"testing"

	"github.com/blinklabs-io/gostacks/ledger/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderSequential(t *testing.T) {
	data := []byte{
		0x01,
		0x02, 0x03,
		0x00, 0x00, 0x01, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x2a,
		0xaa, 0xbb,
	}
	r := NewReader(data)
	b, err := r.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), b)
	u16, err := r.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0203), u16)
	u32, err := r.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(256), u32)
	u64, err := r.ReadUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(42), u64)
	start := r.Position()
	tail, err := r.ReadBytes(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xaa, 0xbb}, tail)
	assert.Equal(t, tail, r.Since(start))
	assert.True(t, r.EOF())
	// Returned slices are views into the input
	assert.Same(t, &data[15], &tail[0])
}

func TestReaderTruncated(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03})
	_, err := r.ReadUint32()
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrTruncated))
	var truncErr common.TruncatedError
	require.True(t, errors.As(err, &truncErr))
	assert.Equal(t, 4, truncErr.Need)
	assert.Equal(t, 3, truncErr.Have)
	// Failed reads do not move the cursor
	assert.Equal(t, 0, r.Position())
	_, err = r.ReadBytes(-1)
	assert.Error(t, err)
	assert.Error(t, r.Advance(4))
	assert.NoError(t, r.Advance(3))
	_, err = r.PeekByte()
	assert.ErrorIs(t, err, common.ErrTruncated)
}

func TestReaderReadCount(t *testing.T) {
	testDefs := []struct {
		name        string
		data        []byte
		minElemSize int
		limit       uint32
		expected    int
		expectedErr error
	}{
		{
			name:     "zero",
			data:     []byte{0, 0, 0, 0},
			limit:    10,
			expected: 0,
		},
		{
			name:        "fits",
			data:        []byte{0, 0, 0, 2, 1, 2},
			minElemSize: 1,
			limit:       10,
			expected:    2,
		},
		{
			name:        "over limit",
			data:        []byte{0, 0, 0, 11},
			limit:       10,
			expectedErr: common.ErrSizeExceeded,
		},
		{
			name:        "more than remaining input",
			data:        []byte{0xff, 0xff, 0xff, 0xff},
			minElemSize: 1,
			limit:       0xffffffff,
			expectedErr: common.ErrTruncated,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			r := NewReader(testDef.data)
			count, err := r.ReadCount(testDef.minElemSize, testDef.limit)
			if testDef.expectedErr != nil {
				assert.ErrorIs(t, err, testDef.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testDef.expected, count)
		})
	}
}

func TestReaderRawBytes(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4})
	assert.Equal(t, []byte{2, 3}, r.RawBytes(1, 2))
	assert.Nil(t, r.RawBytes(-1, 2))
	assert.Nil(t, r.RawBytes(3, 2))
	assert.Nil(t, r.Since(1))
}

func TestWriter(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.WriteByte(0x01))
	w.WriteUint16(0x0203)
	w.WriteUint32(0x04050607)
	w.WriteUint64(0x08)
	_, _ = w.Write([]byte{0xff})
	assert.Equal(
		t,
		[]byte{1, 2, 3, 4, 5, 6, 7, 0, 0, 0, 0, 0, 0, 0, 8, 0xff},
		w.Bytes(),
	)
	assert.Equal(t, 16, w.Len())
}
