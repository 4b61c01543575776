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
	"bytes"
	"math/big"
	"slices"
	"strings"

	"github.com/blinklabs-io/gostacks/address"
	"github.com/blinklabs-io/gostacks/utils"
)

const (
	// MaxValueSize caps every buffer, string, list and tuple length
	MaxValueSize uint32 = 1024 * 1024
	// MaxDepth is the deepest nesting level accepted by the decoder
	MaxDepth = 16
	// MaxStringLength caps ClarityName and contract name lengths
	MaxStringLength = 128
)

// TypePrefix is the leading byte of every serialized value
type TypePrefix uint8

const (
	TypePrefixInt               TypePrefix = 0x00
	TypePrefixUInt              TypePrefix = 0x01
	TypePrefixBuffer            TypePrefix = 0x02
	TypePrefixBoolTrue          TypePrefix = 0x03
	TypePrefixBoolFalse         TypePrefix = 0x04
	TypePrefixPrincipalStandard TypePrefix = 0x05
	TypePrefixPrincipalContract TypePrefix = 0x06
	TypePrefixResponseOk        TypePrefix = 0x07
	TypePrefixResponseErr       TypePrefix = 0x08
	TypePrefixOptionalNone      TypePrefix = 0x09
	TypePrefixOptionalSome      TypePrefix = 0x0a
	TypePrefixList              TypePrefix = 0x0b
	TypePrefixTuple             TypePrefix = 0x0c
	TypePrefixStringASCII       TypePrefix = 0x0d
	TypePrefixStringUTF8        TypePrefix = 0x0e
)

var typePrefixNames = map[TypePrefix]string{
	TypePrefixInt:               "Int",
	TypePrefixUInt:              "UInt",
	TypePrefixBuffer:            "Buffer",
	TypePrefixBoolTrue:          "BoolTrue",
	TypePrefixBoolFalse:         "BoolFalse",
	TypePrefixPrincipalStandard: "PrincipalStandard",
	TypePrefixPrincipalContract: "PrincipalContract",
	TypePrefixResponseOk:        "ResponseOk",
	TypePrefixResponseErr:       "ResponseErr",
	TypePrefixOptionalNone:      "OptionalNone",
	TypePrefixOptionalSome:      "OptionalSome",
	TypePrefixList:              "List",
	TypePrefixTuple:             "Tuple",
	TypePrefixStringASCII:       "StringASCII",
	TypePrefixStringUTF8:        "StringUTF8",
}

func (p TypePrefix) String() string {
	if name, ok := typePrefixNames[p]; ok {
		return name
	}
	return "Unknown"
}

// Valid reports whether p is one of the known type prefixes
func (p TypePrefix) Valid() bool {
	return p <= TypePrefixStringUTF8
}

// Value is a decoded Clarity value. The set of implementations is closed.
type Value interface {
	// Prefix returns the serialized type prefix
	Prefix() TypePrefix
	// Raw returns the exact input bytes the value was decoded from, or nil
	// when the decoder was not asked to keep them
	Raw() []byte
	isValue()
}

type valueBase struct {
	raw []byte
}

func (v valueBase) Raw() []byte {
	return v.raw
}

func (valueBase) isValue() {}

// Int is a signed 128-bit integer
type Int struct {
	valueBase
	Value *big.Int
}

func (Int) Prefix() TypePrefix { return TypePrefixInt }

// UInt is an unsigned 128-bit integer
type UInt struct {
	valueBase
	Value *big.Int
}

func (UInt) Prefix() TypePrefix { return TypePrefixUInt }

type Bool struct {
	valueBase
	Value bool
}

func (b Bool) Prefix() TypePrefix {
	if b.Value {
		return TypePrefixBoolTrue
	}
	return TypePrefixBoolFalse
}

type Buffer struct {
	valueBase
	Data []byte
}

func (Buffer) Prefix() TypePrefix { return TypePrefixBuffer }

// PrincipalStandard is an account principal
type PrincipalStandard struct {
	valueBase
	Address address.StacksAddress
}

func (PrincipalStandard) Prefix() TypePrefix { return TypePrefixPrincipalStandard }

// PrincipalContract identifies a deployed contract by issuer and name
type PrincipalContract struct {
	valueBase
	Issuer address.StacksAddress
	Name   string
}

func (PrincipalContract) Prefix() TypePrefix { return TypePrefixPrincipalContract }

// String returns the fully qualified contract identifier
func (p PrincipalContract) String() string {
	return p.Issuer.String() + "." + p.Name
}

type ResponseOk struct {
	valueBase
	Value Value
}

func (ResponseOk) Prefix() TypePrefix { return TypePrefixResponseOk }

type ResponseErr struct {
	valueBase
	Value Value
}

func (ResponseErr) Prefix() TypePrefix { return TypePrefixResponseErr }

type OptionalNone struct {
	valueBase
}

func (OptionalNone) Prefix() TypePrefix { return TypePrefixOptionalNone }

type OptionalSome struct {
	valueBase
	Value Value
}

func (OptionalSome) Prefix() TypePrefix { return TypePrefixOptionalSome }

type List struct {
	valueBase
	Items []Value
}

func (List) Prefix() TypePrefix { return TypePrefixList }

// TupleField is a single named entry of a tuple
type TupleField struct {
	Name  string
	Value Value
}

// Tuple holds its fields sorted bytewise by name with no duplicates
type Tuple struct {
	valueBase
	Fields []TupleField
}

func (Tuple) Prefix() TypePrefix { return TypePrefixTuple }

// Get returns the value of the named field
func (t Tuple) Get(name string) (Value, bool) {
	idx, found := slices.BinarySearchFunc(
		t.Fields,
		name,
		func(f TupleField, name string) int {
			return strings.Compare(f.Name, name)
		},
	)
	if !found {
		return nil, false
	}
	return t.Fields[idx].Value, true
}

type StringASCII struct {
	valueBase
	Data []byte
}

func (StringASCII) Prefix() TypePrefix { return TypePrefixStringASCII }

// StringUTF8 keeps one byte group per character
type StringUTF8 struct {
	valueBase
	Chars [][]byte
}

func (StringUTF8) Prefix() TypePrefix { return TypePrefixStringUTF8 }

// Bytes returns the concatenated UTF-8 bytes
func (s StringUTF8) Bytes() []byte {
	return bytes.Join(s.Chars, nil)
}

func (s StringUTF8) String() string {
	return string(s.Bytes())
}

// NewInt returns an Int holding v
func NewInt(v int64) Int {
	return Int{Value: big.NewInt(v)}
}

// NewUInt returns a UInt holding v
func NewUInt(v uint64) UInt {
	return UInt{Value: new(big.Int).SetUint64(v)}
}

func NewBool(v bool) Bool {
	return Bool{Value: v}
}

func NewBuffer(data []byte) Buffer {
	return Buffer{Data: data}
}

func NewStringASCII(s string) StringASCII {
	return StringASCII{Data: []byte(s)}
}

// NewStringUTF8 splits s into per-character byte groups. Invalid UTF-8 is
// replaced with U+FFFD.
func NewStringUTF8(s string) StringUTF8 {
	return StringUTF8{Chars: utils.LossyUTF8Chars([]byte(s))}
}

func NewList(items ...Value) List {
	return List{Items: items}
}

func NewSome(v Value) OptionalSome {
	return OptionalSome{Value: v}
}

func NewOk(v Value) ResponseOk {
	return ResponseOk{Value: v}
}

func NewErr(v Value) ResponseErr {
	return ResponseErr{Value: v}
}

// NewTuple builds a tuple from fields, sorting them by name. Duplicate names
// are rejected by Encode.
func NewTuple(fields ...TupleField) Tuple {
	sorted := slices.Clone(fields)
	slices.SortStableFunc(sorted, func(a, b TupleField) int {
		return strings.Compare(a.Name, b.Name)
	})
	return Tuple{Fields: sorted}
}

// Equal reports whether two values are structurally equal. Retained raw
// bytes are ignored.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case Int:
		bv, ok := b.(Int)
		return ok && av.Value.Cmp(bv.Value) == 0
	case UInt:
		bv, ok := b.(UInt)
		return ok && av.Value.Cmp(bv.Value) == 0
	case Bool:
		bv, ok := b.(Bool)
		return ok && av.Value == bv.Value
	case Buffer:
		bv, ok := b.(Buffer)
		return ok && bytes.Equal(av.Data, bv.Data)
	case PrincipalStandard:
		bv, ok := b.(PrincipalStandard)
		return ok && av.Address == bv.Address
	case PrincipalContract:
		bv, ok := b.(PrincipalContract)
		return ok && av.Issuer == bv.Issuer && av.Name == bv.Name
	case ResponseOk:
		bv, ok := b.(ResponseOk)
		return ok && Equal(av.Value, bv.Value)
	case ResponseErr:
		bv, ok := b.(ResponseErr)
		return ok && Equal(av.Value, bv.Value)
	case OptionalNone:
		_, ok := b.(OptionalNone)
		return ok
	case OptionalSome:
		bv, ok := b.(OptionalSome)
		return ok && Equal(av.Value, bv.Value)
	case List:
		bv, ok := b.(List)
		return ok && slices.EqualFunc(av.Items, bv.Items, Equal)
	case Tuple:
		bv, ok := b.(Tuple)
		if !ok || len(av.Fields) != len(bv.Fields) {
			return false
		}
		for i := range av.Fields {
			if av.Fields[i].Name != bv.Fields[i].Name ||
				!Equal(av.Fields[i].Value, bv.Fields[i].Value) {
				return false
			}
		}
		return true
	case StringASCII:
		bv, ok := b.(StringASCII)
		return ok && bytes.Equal(av.Data, bv.Data)
	case StringUTF8:
		bv, ok := b.(StringUTF8)
		return ok && slices.EqualFunc(av.Chars, bv.Chars, bytes.Equal)
	}
	return false
}
