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

// Package stacks is the entry point for decoding Stacks wire formats. Each
// operation takes raw bytes, as produced by ParseInput for hex text, and
// returns either a Go value or a generic document ready for JSON, CBOR or
// YAML output.
//
// Errors returned by these operations can be classified with errors.Is
// against the sentinels in ledger/common, and rendered with ErrorString.
package stacks

import (
	"strings"

	"github.com/blinklabs-io/gostacks/ledger/common"
	"github.com/blinklabs-io/gostacks/utils"
)

// ParseInput decodes hex text, with or without a 0x prefix, into bytes
func ParseInput(input string) ([]byte, error) {
	ret, err := utils.DecodeHex(input)
	if err != nil {
		return nil, common.WrapError(
			common.ErrorKindInvalidEncoding,
			err,
			"input is not hex",
		)
	}
	return ret, nil
}

// ErrorString renders an error for display. Classified errors always start
// with their kind.
func ErrorString(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	kind := common.KindOf(err)
	if kind == common.ErrorKindUnknown || strings.HasPrefix(msg, kind.String()+":") {
		return msg
	}
	return kind.String() + ": " + msg
}
