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

package common_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/blinklabs-io/gostacks/ledger/common"
	"github.com/stretchr/testify/assert"
)

func TestDecodeErrorIs(t *testing.T) {
	testDefs := []struct {
		kind     common.ErrorKind
		sentinel error
		name     string
	}{
		{kind: common.ErrorKindInvalidEncoding, sentinel: common.ErrInvalidEncoding, name: "InvalidEncoding"},
		{kind: common.ErrorKindInvalidVersion, sentinel: common.ErrInvalidVersion, name: "InvalidVersion"},
		{kind: common.ErrorKindTooShort, sentinel: common.ErrTooShort, name: "TooShort"},
		{kind: common.ErrorKindChecksumMismatch, sentinel: common.ErrChecksumMismatch, name: "ChecksumMismatch"},
		{kind: common.ErrorKindLengthMismatch, sentinel: common.ErrLengthMismatch, name: "LengthMismatch"},
		{kind: common.ErrorKindUnrecognizedTag, sentinel: common.ErrUnrecognizedTag, name: "UnrecognizedTag"},
		{kind: common.ErrorKindDepthExceeded, sentinel: common.ErrDepthExceeded, name: "DepthExceeded"},
		{kind: common.ErrorKindSizeExceeded, sentinel: common.ErrSizeExceeded, name: "SizeExceeded"},
		{kind: common.ErrorKindStructuralInvariantViolation, sentinel: common.ErrStructuralInvariantViolation, name: "StructuralInvariantViolation"},
		{kind: common.ErrorKindTruncated, sentinel: common.ErrTruncated, name: "Truncated"},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			assert.Equal(t, testDef.name, testDef.kind.String())
			assert.Equal(t, testDef.sentinel, testDef.kind.Sentinel())
			err := fmt.Errorf("context: %w", common.NewError(testDef.kind, "value %d", 5))
			assert.ErrorIs(t, err, testDef.sentinel)
			assert.Equal(t, testDef.kind, common.KindOf(err))
			assert.Equal(t, "context: "+testDef.name+": value 5", err.Error())
		})
	}
}

func TestDecodeErrorIsOnlyItsKind(t *testing.T) {
	err := common.NewError(common.ErrorKindTooShort, "short")
	assert.NotErrorIs(t, err, common.ErrTruncated)
	assert.Equal(t, "Unknown", common.ErrorKindUnknown.String())
	assert.Nil(t, common.ErrorKindUnknown.Sentinel())
}

func TestWrapError(t *testing.T) {
	cause := errors.New("bad digit")
	err := common.WrapError(common.ErrorKindInvalidEncoding, cause, "parse %s", "input")
	assert.ErrorIs(t, err, common.ErrInvalidEncoding)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "InvalidEncoding: parse input: bad digit", err.Error())
}

func TestChecksumMismatchError(t *testing.T) {
	var err error = common.ChecksumMismatchError{Expected: 1, Actual: 2}
	wrapped := fmt.Errorf("address: %w", err)
	assert.ErrorIs(t, wrapped, common.ErrChecksumMismatch)
	assert.Equal(t, common.ErrorKindChecksumMismatch, common.KindOf(wrapped))
	var csErr common.ChecksumMismatchError
	assert.ErrorAs(t, wrapped, &csErr)
	assert.Equal(t, uint32(1), csErr.Expected)
	assert.Equal(t, uint32(2), csErr.Actual)
}

func TestTruncatedError(t *testing.T) {
	err := fmt.Errorf("header: %w", common.TruncatedError{Offset: 10, Need: 4, Have: 2})
	assert.ErrorIs(t, err, common.ErrTruncated)
	assert.Equal(t, common.ErrorKindTruncated, common.KindOf(err))
	assert.Equal(t, "header: Truncated: need 4 bytes at offset 10, have 2", err.Error())
}

func TestKindOfUnclassified(t *testing.T) {
	assert.Equal(t, common.ErrorKindUnknown, common.KindOf(nil))
	assert.Equal(t, common.ErrorKindUnknown, common.KindOf(errors.New("other")))
}
