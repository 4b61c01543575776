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
	"errors"
	"fmt"
)

// ErrorKind classifies every failure produced by the codecs in this module
type ErrorKind uint8

const (
	ErrorKindUnknown ErrorKind = iota
	ErrorKindInvalidEncoding
	ErrorKindInvalidVersion
	ErrorKindTooShort
	ErrorKindChecksumMismatch
	ErrorKindLengthMismatch
	ErrorKindUnrecognizedTag
	ErrorKindDepthExceeded
	ErrorKindSizeExceeded
	ErrorKindStructuralInvariantViolation
	ErrorKindTruncated
)

// Sentinel errors so callers can use errors.Is
var (
	ErrInvalidEncoding              = errors.New("invalid encoding")
	ErrInvalidVersion               = errors.New("invalid version")
	ErrTooShort                     = errors.New("input too short")
	ErrChecksumMismatch             = errors.New("checksum mismatch")
	ErrLengthMismatch               = errors.New("length mismatch")
	ErrUnrecognizedTag              = errors.New("unrecognized tag")
	ErrDepthExceeded                = errors.New("depth exceeded")
	ErrSizeExceeded                 = errors.New("size exceeded")
	ErrStructuralInvariantViolation = errors.New("structural invariant violation")
	ErrTruncated                    = errors.New("unexpected end of input")
)

var errorKindSentinels = map[ErrorKind]error{
	ErrorKindInvalidEncoding:              ErrInvalidEncoding,
	ErrorKindInvalidVersion:               ErrInvalidVersion,
	ErrorKindTooShort:                     ErrTooShort,
	ErrorKindChecksumMismatch:             ErrChecksumMismatch,
	ErrorKindLengthMismatch:               ErrLengthMismatch,
	ErrorKindUnrecognizedTag:              ErrUnrecognizedTag,
	ErrorKindDepthExceeded:                ErrDepthExceeded,
	ErrorKindSizeExceeded:                 ErrSizeExceeded,
	ErrorKindStructuralInvariantViolation: ErrStructuralInvariantViolation,
	ErrorKindTruncated:                    ErrTruncated,
}

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindInvalidEncoding:
		return "InvalidEncoding"
	case ErrorKindInvalidVersion:
		return "InvalidVersion"
	case ErrorKindTooShort:
		return "TooShort"
	case ErrorKindChecksumMismatch:
		return "ChecksumMismatch"
	case ErrorKindLengthMismatch:
		return "LengthMismatch"
	case ErrorKindUnrecognizedTag:
		return "UnrecognizedTag"
	case ErrorKindDepthExceeded:
		return "DepthExceeded"
	case ErrorKindSizeExceeded:
		return "SizeExceeded"
	case ErrorKindStructuralInvariantViolation:
		return "StructuralInvariantViolation"
	case ErrorKindTruncated:
		return "Truncated"
	default:
		return "Unknown"
	}
}

// Sentinel returns the sentinel error matching the kind
func (k ErrorKind) Sentinel() error {
	if err, ok := errorKindSentinels[k]; ok {
		return err
	}
	return nil
}

// DecodeError is the general error type returned by the codecs. It carries
// the error kind, a human readable message and an optional wrapped cause.
type DecodeError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// NewError builds a DecodeError with a formatted message
func NewError(kind ErrorKind, format string, args ...any) *DecodeError {
	return &DecodeError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError builds a DecodeError that wraps an underlying cause
func WrapError(kind ErrorKind, err error, format string, args ...any) *DecodeError {
	return &DecodeError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind.String(), e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind.String(), e.Message)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool {
	return target == e.Kind.Sentinel()
}

// ChecksumMismatchError reports a checksum failure. Both values are the four
// checksum bytes read as a little-endian uint32.
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e ChecksumMismatchError) Error() string {
	return fmt.Sprintf(
		"ChecksumMismatch: expected %d, got %d",
		e.Expected,
		e.Actual,
	)
}

func (ChecksumMismatchError) Is(target error) bool {
	return target == ErrChecksumMismatch
}

// TruncatedError indicates a read past the end of the input
type TruncatedError struct {
	Offset int
	Need   int
	Have   int
}

func (e TruncatedError) Error() string {
	return fmt.Sprintf(
		"Truncated: need %d bytes at offset %d, have %d",
		e.Need,
		e.Offset,
		e.Have,
	)
}

func (TruncatedError) Is(target error) bool {
	return target == ErrTruncated
}

// KindOf returns the kind of the first classified error in the chain
func KindOf(err error) ErrorKind {
	if err == nil {
		return ErrorKindUnknown
	}
	var decErr *DecodeError
	if errors.As(err, &decErr) {
		return decErr.Kind
	}
	var csErr ChecksumMismatchError
	if errors.As(err, &csErr) {
		return ErrorKindChecksumMismatch
	}
	var truncErr TruncatedError
	if errors.As(err, &truncErr) {
		return ErrorKindTruncated
	}
	return ErrorKindUnknown
}
