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
	"bytes"
	"encoding/binary"
)

// Writer accumulates big-endian encoded fields
type Writer struct {
	buf bytes.Buffer
}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) WriteByte(b byte) error {
	return w.buf.WriteByte(b)
}

func (w *Writer) WriteUint16(v uint16) {
	w.buf.Write(binary.BigEndian.AppendUint16(nil, v))
}

func (w *Writer) WriteUint32(v uint32) {
	w.buf.Write(binary.BigEndian.AppendUint32(nil, v))
}

func (w *Writer) WriteUint64(v uint64) {
	w.buf.Write(binary.BigEndian.AppendUint64(nil, v))
}

// Write appends raw bytes
func (w *Writer) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

// Len returns the number of bytes written so far
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Bytes returns the accumulated output
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}
