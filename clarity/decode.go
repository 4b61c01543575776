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

package clarity

import (
	"fmt"
	"math/big"

	"github.com/blinklabs-io/gostacks/address"
	"github.com/blinklabs-io/gostacks/ledger/common"
	"github.com/blinklabs-io/gostacks/utils"
	"github.com/blinklabs-io/gostacks/wire"
)

// Minimum serialized sizes, used to bound counts against the remaining input
const (
	minValueSize      = 1
	minTupleEntrySize = 2
)

type decodeOptions struct {
	withBytes bool
	maxDepth  int
}

// DecodeOptionFunc configures a decode
type DecodeOptionFunc func(*decodeOptions)

// WithBytes retains the raw input span of every decoded value, including
// nested ones. The spans are views into the input.
func WithBytes() DecodeOptionFunc {
	return func(o *decodeOptions) {
		o.withBytes = true
	}
}

// WithMaxDepth lowers the nesting limit. Values above MaxDepth are ignored.
func WithMaxDepth(maxDepth int) DecodeOptionFunc {
	return func(o *decodeOptions) {
		if maxDepth >= 0 && maxDepth < MaxDepth {
			o.maxDepth = maxDepth
		}
	}
}

type decoder struct {
	r    *wire.Reader
	opts decodeOptions
}

// Decode decodes a single value from the start of data and returns it along
// with the number of bytes consumed
func Decode(data []byte, opts ...DecodeOptionFunc) (Value, int, error) {
	r := wire.NewReader(data)
	v, err := DecodeFromReader(r, opts...)
	if err != nil {
		return nil, 0, err
	}
	return v, r.Position(), nil
}

// DecodeFromReader decodes a single value at the reader's position
func DecodeFromReader(r *wire.Reader, opts ...DecodeOptionFunc) (Value, error) {
	d := decoder{
		r: r,
		opts: decodeOptions{
			maxDepth: MaxDepth,
		},
	}
	for _, opt := range opts {
		opt(&d.opts)
	}
	return d.decode(0)
}

func (d *decoder) decode(depth int) (Value, error) {
	if depth > d.opts.maxDepth {
		return nil, common.NewError(
			common.ErrorKindDepthExceeded,
			"value nesting depth %d exceeds %d",
			depth,
			d.opts.maxDepth,
		)
	}
	start := d.r.Position()
	prefixByte, err := d.r.ReadByte()
	if err != nil {
		return nil, err
	}
	prefix := TypePrefix(prefixByte)
	var ret Value
	switch prefix {
	case TypePrefixInt:
		raw, err := d.r.ReadBytes(16)
		if err != nil {
			return nil, err
		}
		ret = Int{Value: int128FromBytes(raw)}
	case TypePrefixUInt:
		raw, err := d.r.ReadBytes(16)
		if err != nil {
			return nil, err
		}
		ret = UInt{Value: new(big.Int).SetBytes(raw)}
	case TypePrefixBuffer:
		data, err := d.readSized("buffer")
		if err != nil {
			return nil, err
		}
		ret = Buffer{Data: data}
	case TypePrefixBoolTrue:
		ret = Bool{Value: true}
	case TypePrefixBoolFalse:
		ret = Bool{Value: false}
	case TypePrefixPrincipalStandard:
		addr, err := readStandardPrincipal(d.r)
		if err != nil {
			return nil, err
		}
		ret = PrincipalStandard{Address: addr}
	case TypePrefixPrincipalContract:
		issuer, err := readStandardPrincipal(d.r)
		if err != nil {
			return nil, err
		}
		name, err := ReadContractName(d.r, MaxStringLength)
		if err != nil {
			return nil, fmt.Errorf("contract principal: %w", err)
		}
		ret = PrincipalContract{Issuer: issuer, Name: name}
	case TypePrefixResponseOk:
		inner, err := d.decode(depth + 1)
		if err != nil {
			return nil, err
		}
		ret = ResponseOk{Value: inner}
	case TypePrefixResponseErr:
		inner, err := d.decode(depth + 1)
		if err != nil {
			return nil, err
		}
		ret = ResponseErr{Value: inner}
	case TypePrefixOptionalNone:
		ret = OptionalNone{}
	case TypePrefixOptionalSome:
		inner, err := d.decode(depth + 1)
		if err != nil {
			return nil, err
		}
		ret = OptionalSome{Value: inner}
	case TypePrefixList:
		count, err := d.r.ReadCount(minValueSize, MaxValueSize)
		if err != nil {
			return nil, fmt.Errorf("list length: %w", err)
		}
		items := make([]Value, 0, count)
		for range count {
			item, err := d.decode(depth + 1)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		ret = List{Items: items}
	case TypePrefixTuple:
		tuple, err := d.decodeTuple(depth)
		if err != nil {
			return nil, err
		}
		ret = tuple
	case TypePrefixStringASCII:
		data, err := d.readSized("string-ascii")
		if err != nil {
			return nil, err
		}
		ret = StringASCII{Data: data}
	case TypePrefixStringUTF8:
		data, err := d.readSized("string-utf8")
		if err != nil {
			return nil, err
		}
		ret = StringUTF8{Chars: utils.LossyUTF8Chars(data)}
	default:
		return nil, common.NewError(
			common.ErrorKindUnrecognizedTag,
			"bad type prefix 0x%02x at offset %d",
			prefixByte,
			start,
		)
	}
	if d.opts.withBytes {
		ret = withRaw(ret, d.r.Since(start))
	}
	return ret, nil
}

func (d *decoder) decodeTuple(depth int) (Tuple, error) {
	count, err := d.r.ReadCount(minTupleEntrySize, MaxValueSize)
	if err != nil {
		return Tuple{}, fmt.Errorf("tuple length: %w", err)
	}
	fields := make([]TupleField, 0, count)
	seen := make(map[string]struct{}, count)
	for range count {
		name, err := ReadClarityName(d.r)
		if err != nil {
			return Tuple{}, fmt.Errorf("tuple key: %w", err)
		}
		if _, ok := seen[name]; ok {
			return Tuple{}, common.NewError(
				common.ErrorKindStructuralInvariantViolation,
				"duplicate tuple key %q",
				name,
			)
		}
		seen[name] = struct{}{}
		value, err := d.decode(depth + 1)
		if err != nil {
			return Tuple{}, err
		}
		fields = append(fields, TupleField{Name: name, Value: value})
	}
	return NewTuple(fields...), nil
}

// readSized reads a u32 length prefixed byte string capped at MaxValueSize
func (d *decoder) readSized(kind string) ([]byte, error) {
	size, err := d.r.ReadCount(1, MaxValueSize)
	if err != nil {
		return nil, fmt.Errorf("%s length: %w", kind, err)
	}
	return d.r.ReadBytes(size)
}

func readStandardPrincipal(r *wire.Reader) (address.StacksAddress, error) {
	version, err := r.ReadByte()
	if err != nil {
		return address.StacksAddress{}, err
	}
	hash, err := r.ReadBytes(common.Hash160Size)
	if err != nil {
		return address.StacksAddress{}, err
	}
	addr, err := address.NewStacksAddress(version, hash)
	if err != nil {
		return address.StacksAddress{}, fmt.Errorf("principal: %w", err)
	}
	return addr, nil
}

// int128FromBytes interprets 16 big-endian bytes as two's complement
func int128FromBytes(raw []byte) *big.Int {
	ret := new(big.Int).SetBytes(raw)
	if raw[0]&0x80 != 0 {
		ret.Sub(ret, twoTo128)
	}
	return ret
}

func withRaw(v Value, raw []byte) Value {
	base := valueBase{raw: raw}
	switch tmp := v.(type) {
	case Int:
		tmp.valueBase = base
		return tmp
	case UInt:
		tmp.valueBase = base
		return tmp
	case Bool:
		tmp.valueBase = base
		return tmp
	case Buffer:
		tmp.valueBase = base
		return tmp
	case PrincipalStandard:
		tmp.valueBase = base
		return tmp
	case PrincipalContract:
		tmp.valueBase = base
		return tmp
	case ResponseOk:
		tmp.valueBase = base
		return tmp
	case ResponseErr:
		tmp.valueBase = base
		return tmp
	case OptionalNone:
		tmp.valueBase = base
		return tmp
	case OptionalSome:
		tmp.valueBase = base
		return tmp
	case List:
		tmp.valueBase = base
		return tmp
	case Tuple:
		tmp.valueBase = base
		return tmp
	case StringASCII:
		tmp.valueBase = base
		return tmp
	case StringUTF8:
		tmp.valueBase = base
		return tmp
	}
	return v
}
