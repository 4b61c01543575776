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

package stacks

import (
	"fmt"

	"github.com/blinklabs-io/gostacks/clarity"
)

func decodeClarityValue(data []byte, opts decodeOptions) (clarity.Value, error) {
	v, _, err := clarity.Decode(data, opts.clarityOptions()...)
	if err != nil {
		return nil, fmt.Errorf("clarity value: %w", err)
	}
	return v, nil
}

// DecodeClarityValue decodes a Clarity value into a document. The contents
// are included unless disabled with WithDeep(false).
func DecodeClarityValue(data []byte, opts ...DecodeOptionFunc) (map[string]any, error) {
	o := newDecodeOptions(true, opts)
	v, err := decodeClarityValue(data, o)
	if err != nil {
		return nil, err
	}
	return clarity.Document(v, o.deep), nil
}

// DecodeClarityValueToRepr decodes a Clarity value and returns its repr
func DecodeClarityValueToRepr(data []byte, opts ...DecodeOptionFunc) (string, error) {
	v, err := decodeClarityValue(data, newDecodeOptions(true, opts))
	if err != nil {
		return "", err
	}
	return clarity.Repr(v), nil
}

// DecodeClarityValueToTypeName decodes a Clarity value and returns its type
// signature
func DecodeClarityValueToTypeName(data []byte, opts ...DecodeOptionFunc) (string, error) {
	v, err := decodeClarityValue(data, newDecodeOptions(true, opts))
	if err != nil {
		return "", err
	}
	return clarity.TypeSignature(v), nil
}

// DecodeClarityValueList decodes a count-prefixed run of Clarity values. The
// documents are shallow unless WithDeep(true) is given.
func DecodeClarityValueList(data []byte, opts ...DecodeOptionFunc) ([]map[string]any, error) {
	o := newDecodeOptions(false, opts)
	values, err := clarity.DecodeValueList(data, o.clarityOptions()...)
	if err != nil {
		return nil, fmt.Errorf("clarity value list: %w", err)
	}
	ret := make([]map[string]any, 0, len(values))
	for _, v := range values {
		ret = append(ret, clarity.Document(v, o.deep))
	}
	return ret, nil
}

// DecodeClarityValueToPrincipal decodes a principal value, or a 21-byte
// buffer holding a version and hash160, into its address form
func DecodeClarityValueToPrincipal(data []byte) (string, error) {
	v, err := decodeClarityValue(data, newDecodeOptions(false, nil))
	if err != nil {
		return "", err
	}
	return clarity.PrincipalString(v)
}
