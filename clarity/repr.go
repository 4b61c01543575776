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
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/blinklabs-io/gostacks/utils"
)

// Repr returns the canonical textual form of a value, for display only
func Repr(v Value) string {
	var sb strings.Builder
	writeRepr(&sb, v)
	return sb.String()
}

func writeRepr(sb *strings.Builder, v Value) {
	switch tmp := v.(type) {
	case Int:
		sb.WriteString(tmp.Value.String())
	case UInt:
		sb.WriteString("u")
		sb.WriteString(tmp.Value.String())
	case Bool:
		sb.WriteString(strconv.FormatBool(tmp.Value))
	case OptionalSome:
		sb.WriteString("(some ")
		writeRepr(sb, tmp.Value)
		sb.WriteString(")")
	case OptionalNone:
		sb.WriteString("none")
	case ResponseOk:
		sb.WriteString("(ok ")
		writeRepr(sb, tmp.Value)
		sb.WriteString(")")
	case ResponseErr:
		sb.WriteString("(err ")
		writeRepr(sb, tmp.Value)
		sb.WriteString(")")
	case Tuple:
		sb.WriteString("(tuple")
		for _, field := range tmp.Fields {
			sb.WriteString(" (")
			sb.WriteString(field.Name)
			sb.WriteString(" ")
			writeRepr(sb, field.Value)
			sb.WriteString(")")
		}
		sb.WriteString(")")
	case PrincipalStandard:
		sb.WriteString("'")
		sb.WriteString(tmp.Address.String())
	case PrincipalContract:
		sb.WriteString("'")
		sb.WriteString(tmp.String())
	case Buffer:
		sb.WriteString(utils.HexPrefixed(tmp.Data))
	case List:
		sb.WriteString("(list")
		for _, item := range tmp.Items {
			sb.WriteString(" ")
			writeRepr(sb, item)
		}
		sb.WriteString(")")
	case StringASCII:
		sb.WriteString(`"`)
		for _, c := range tmp.Data {
			writeEscapedByte(sb, c)
		}
		sb.WriteString(`"`)
	case StringUTF8:
		sb.WriteString(`u"`)
		for _, c := range tmp.Chars {
			if len(c) == 1 {
				writeEscapedByte(sb, c[0])
				continue
			}
			sb.WriteString(`\u{`)
			sb.WriteString(hex.EncodeToString(c))
			sb.WriteString("}")
		}
		sb.WriteString(`"`)
	}
}

const hexDigits = "0123456789abcdef"

// writeEscapedByte escapes a byte for a quoted string literal. Printable
// ASCII is kept, common control characters use backslash escapes and
// everything else becomes \xNN.
func writeEscapedByte(sb *strings.Builder, c byte) {
	switch c {
	case '\t':
		sb.WriteString(`\t`)
	case '\r':
		sb.WriteString(`\r`)
	case '\n':
		sb.WriteString(`\n`)
	case '\\', '\'', '"':
		sb.WriteByte('\\')
		sb.WriteByte(c)
	default:
		if c >= 0x20 && c < 0x7f {
			sb.WriteByte(c)
			return
		}
		sb.WriteString(`\x`)
		sb.WriteByte(hexDigits[c>>4])
		sb.WriteByte(hexDigits[c&0x0f])
	}
}

// TypeSignature returns the type descriptor of a value. A list is described
// by its first item only.
func TypeSignature(v Value) string {
	var sb strings.Builder
	writeTypeSignature(&sb, v)
	return sb.String()
}

func writeTypeSignature(sb *strings.Builder, v Value) {
	switch tmp := v.(type) {
	case Int:
		sb.WriteString("int")
	case UInt:
		sb.WriteString("uint")
	case Bool:
		sb.WriteString("bool")
	case OptionalSome:
		sb.WriteString("(optional ")
		writeTypeSignature(sb, tmp.Value)
		sb.WriteString(")")
	case OptionalNone:
		sb.WriteString("(optional UnknownType)")
	case ResponseOk:
		sb.WriteString("(response ")
		writeTypeSignature(sb, tmp.Value)
		sb.WriteString(" UnknownType)")
	case ResponseErr:
		sb.WriteString("(response UnknownType ")
		writeTypeSignature(sb, tmp.Value)
		sb.WriteString(")")
	case Tuple:
		sb.WriteString("(tuple")
		for _, field := range tmp.Fields {
			sb.WriteString(" (")
			sb.WriteString(field.Name)
			sb.WriteString(" ")
			writeTypeSignature(sb, field.Value)
			sb.WriteString(")")
		}
		sb.WriteString(")")
	case PrincipalStandard, PrincipalContract:
		sb.WriteString("principal")
	case Buffer:
		sb.WriteString("(buff ")
		sb.WriteString(strconv.Itoa(len(tmp.Data)))
		sb.WriteString(")")
	case List:
		sb.WriteString("(list ")
		sb.WriteString(strconv.Itoa(len(tmp.Items)))
		sb.WriteString(" ")
		if len(tmp.Items) > 0 {
			// TODO: use the least common supertype of all items
			writeTypeSignature(sb, tmp.Items[0])
		} else {
			sb.WriteString("UnknownType")
		}
		sb.WriteString(")")
	case StringASCII:
		sb.WriteString("(string-ascii ")
		sb.WriteString(strconv.Itoa(len(tmp.Data)))
		sb.WriteString(")")
	case StringUTF8:
		sb.WriteString("(string-utf8 ")
		sb.WriteString(strconv.Itoa(len(tmp.Chars) * 4))
		sb.WriteString(")")
	}
}
