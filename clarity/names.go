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
	"regexp"

	"github.com/blinklabs-io/gostacks/ledger/common"
	"github.com/blinklabs-io/gostacks/wire"
)

const (
	// ContractNameMinLength and ContractNameMaxLength bound the asset
	// contract names carried by post-conditions
	ContractNameMinLength = 1
	ContractNameMaxLength = 40
)

var (
	clarityNameRegex = regexp.MustCompile(
		`^[a-zA-Z]([a-zA-Z0-9]|[-_!?+<>=/*])*$|^[-+=/*]$|^[<>]=?$`,
	)
	contractNameRegex = regexp.MustCompile(
		`^[a-zA-Z]([a-zA-Z0-9]|[-_])*$|^__transient$`,
	)
)

// IsClarityName reports whether name is a valid tuple key or asset name
func IsClarityName(name string) bool {
	return len(name) <= MaxStringLength && clarityNameRegex.MatchString(name)
}

// IsContractName reports whether name is a valid contract name
func IsContractName(name string) bool {
	return len(name) <= MaxStringLength && contractNameRegex.MatchString(name)
}

// ReadClarityName reads a 1-byte length prefixed ClarityName
func ReadClarityName(r *wire.Reader) (string, error) {
	name, err := readName(r, 0, MaxStringLength)
	if err != nil {
		return "", err
	}
	if !clarityNameRegex.MatchString(name) {
		return "", common.NewError(
			common.ErrorKindInvalidEncoding,
			"invalid clarity name %q",
			name,
		)
	}
	return name, nil
}

// ReadContractName reads a 1-byte length prefixed contract name bounded by
// the given maximum length
func ReadContractName(r *wire.Reader, maxLen int) (string, error) {
	name, err := readName(r, ContractNameMinLength, maxLen)
	if err != nil {
		return "", err
	}
	if !contractNameRegex.MatchString(name) {
		return "", common.NewError(
			common.ErrorKindInvalidEncoding,
			"invalid contract name %q",
			name,
		)
	}
	return name, nil
}

func readName(r *wire.Reader, minLen int, maxLen int) (string, error) {
	nameLen, err := r.ReadByte()
	if err != nil {
		return "", err
	}
	if int(nameLen) < minLen {
		return "", common.NewError(
			common.ErrorKindTooShort,
			"name length %d is below %d",
			nameLen,
			minLen,
		)
	}
	if int(nameLen) > maxLen {
		return "", common.NewError(
			common.ErrorKindSizeExceeded,
			"name length %d exceeds %d",
			nameLen,
			maxLen,
		)
	}
	nameBytes, err := r.ReadBytes(int(nameLen))
	if err != nil {
		return "", err
	}
	return string(nameBytes), nil
}

// WriteClarityName writes a validated, length prefixed ClarityName
func WriteClarityName(w *wire.Writer, name string) error {
	if !IsClarityName(name) {
		return common.NewError(
			common.ErrorKindInvalidEncoding,
			"invalid clarity name %q",
			name,
		)
	}
	return writeName(w, name)
}

// WriteContractName writes a validated, length prefixed contract name
func WriteContractName(w *wire.Writer, name string) error {
	if !IsContractName(name) {
		return common.NewError(
			common.ErrorKindInvalidEncoding,
			"invalid contract name %q",
			name,
		)
	}
	return writeName(w, name)
}

func writeName(w *wire.Writer, name string) error {
	if err := w.WriteByte(byte(len(name))); err != nil {
		return err
	}
	_, err := w.Write([]byte(name))
	return err
}
