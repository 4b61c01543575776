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
	"github.com/blinklabs-io/gostacks/utils"
)

// Document renders a value as the generic map used for JSON, CBOR and YAML
// output. Every document carries repr, hex and type_id. With deep set, the
// decoded contents are included as well, recursively. Integers are rendered
// as decimal strings since they do not fit a JSON number.
func Document(v Value, deep bool) map[string]any {
	ret := map[string]any{
		"repr":    Repr(v),
		"hex":     utils.HexPrefixed(rawOrEncoded(v)),
		"type_id": uint8(v.Prefix()),
	}
	if !deep {
		return ret
	}
	switch tmp := v.(type) {
	case Int:
		ret["value"] = tmp.Value.String()
	case UInt:
		ret["value"] = tmp.Value.String()
	case Bool:
		ret["value"] = tmp.Value
	case Buffer:
		ret["buffer"] = utils.HexPrefixed(tmp.Data)
	case List:
		items := make([]any, 0, len(tmp.Items))
		for _, item := range tmp.Items {
			items = append(items, Document(item, deep))
		}
		ret["list"] = items
	case StringASCII:
		ret["data"] = utils.LossyUTF8String(tmp.Data)
	case StringUTF8:
		ret["data"] = utils.LossyUTF8String(tmp.Bytes())
	case PrincipalStandard:
		ret["address_version"] = tmp.Address.Version
		ret["address_hash_bytes"] = utils.HexPrefixed(tmp.Address.Hash160[:])
		ret["address"] = tmp.Address.String()
	case PrincipalContract:
		ret["address_version"] = tmp.Issuer.Version
		ret["address_hash_bytes"] = utils.HexPrefixed(tmp.Issuer.Hash160[:])
		ret["address"] = tmp.Issuer.String()
		ret["contract_name"] = tmp.Name
	case Tuple:
		data := make(map[string]any, len(tmp.Fields))
		for _, field := range tmp.Fields {
			data[field.Name] = Document(field.Value, deep)
		}
		ret["data"] = data
	case OptionalSome:
		ret["value"] = Document(tmp.Value, deep)
	case OptionalNone:
		ret["value"] = nil
	case ResponseOk:
		ret["value"] = Document(tmp.Value, deep)
	case ResponseErr:
		ret["value"] = Document(tmp.Value, deep)
	}
	return ret
}

// rawOrEncoded returns the retained input bytes of v, re-encoding it when
// none were kept
func rawOrEncoded(v Value) []byte {
	if raw := v.Raw(); raw != nil {
		return raw
	}
	ret, err := Encode(v)
	if err != nil {
		return nil
	}
	return ret
}
