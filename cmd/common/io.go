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

package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/blinklabs-io/gostacks"
	"github.com/blinklabs-io/gostacks/cbor"
	"gopkg.in/yaml.v3"
)

// Input size limit for stdin, well above the largest block
const maxInputSize = 16 * 1024 * 1024

// ErrReprUnavailable is returned by WriteResult for the repr format when the
// result carries no repr
var ErrReprUnavailable = errors.New("repr format is only available for clarity values")

// ReadInput returns arg, or the contents of stdin when arg is "-"
func ReadInput(arg string, stdin io.Reader) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	data, err := io.ReadAll(io.LimitReader(stdin, maxInputSize+1))
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	if len(data) > maxInputSize {
		return "", fmt.Errorf("input exceeds %d bytes", maxInputSize)
	}
	return string(data), nil
}

// ReadHexInput is ReadInput followed by hex decoding
func ReadHexInput(arg string, stdin io.Reader) ([]byte, error) {
	input, err := ReadInput(arg, stdin)
	if err != nil {
		return nil, err
	}
	return stacks.ParseInput(input)
}

// WriteResult writes a command result in the given format. CBOR output is
// the raw encoded bytes.
func WriteResult(w io.Writer, format string, result any) error {
	switch format {
	case FormatCbor:
		data, err := cbor.Encode(result)
		if err != nil {
			return fmt.Errorf("encode CBOR: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatYaml:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		return enc.Close()
	case FormatRepr:
		switch tmp := result.(type) {
		case string:
			_, err := fmt.Fprintln(w, tmp)
			return err
		case map[string]any:
			if repr, ok := tmp["repr"].(string); ok {
				_, err := fmt.Fprintln(w, repr)
				return err
			}
		case []map[string]any:
			for _, item := range tmp {
				repr, ok := item["repr"].(string)
				if !ok {
					return ErrReprUnavailable
				}
				if _, err := fmt.Fprintln(w, repr); err != nil {
					return err
				}
			}
			return nil
		}
		return ErrReprUnavailable
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
}
