// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package hasherrors defines the closed set of failures reported by the
// hashing packages.
//
// Every failure is a *HashError carrying an ErrorType. Callers match on
// the exported sentinels with errors.Is, or extract the structured error
// with errors.As when they need the reported lengths:
//
//	d, err := digests.FromBytes(buf)
//	if errors.Is(err, hasherrors.ErrInvalidLength) {
//	    // buf was not 32 bytes long
//	}
//
// I/O failures from readers and files are not represented here: they are
// returned to the caller exactly as the reader produced them.
package hasherrors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of a hashing error.
type ErrorType int

const (
	// ErrTypeUnknown indicates an unclassified error.
	ErrTypeUnknown ErrorType = iota

	// ErrTypeInvalidLength indicates a digest was decoded from input of the wrong length.
	ErrTypeInvalidLength

	// ErrTypeEngineFinalized indicates an engine was used after it produced its digest.
	ErrTypeEngineFinalized

	// ErrTypeLengthOverflow indicates the total input exceeded what SHA-256 can encode.
	ErrTypeLengthOverflow

	// ErrTypeInvalidFormat indicates textual input that is not a valid encoding.
	ErrTypeInvalidFormat
)

// String returns a human-readable name for the error type.
func (e ErrorType) String() string {
	switch e {
	case ErrTypeInvalidLength:
		return "InvalidLength"
	case ErrTypeEngineFinalized:
		return "EngineAlreadyFinalized"
	case ErrTypeLengthOverflow:
		return "LengthOverflow"
	case ErrTypeInvalidFormat:
		return "InvalidFormat"
	default:
		return "UnknownError"
	}
}

// Sentinels for errors.Is. A *HashError matches the sentinel of its Type.
var (
	ErrInvalidLength          = &HashError{Type: ErrTypeInvalidLength, Message: "invalid length"}
	ErrEngineAlreadyFinalized = &HashError{Type: ErrTypeEngineFinalized, Message: "engine already finalized"}
	ErrLengthOverflow         = &HashError{Type: ErrTypeLengthOverflow, Message: "message length overflow"}
	ErrInvalidFormat          = &HashError{Type: ErrTypeInvalidFormat, Message: "invalid format"}
)

// HashError is the structured error returned by the hashing packages.
type HashError struct {
	// Type categorizes the error for programmatic handling.
	Type ErrorType

	// Message is a human-readable description of what went wrong.
	Message string

	// Expected and Actual hold the lengths involved in an
	// ErrTypeInvalidLength or ErrTypeLengthOverflow error.
	Expected uint64
	Actual   uint64

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *HashError) Error() string {
	switch {
	case e.Type == ErrTypeInvalidLength && (e.Expected != 0 || e.Actual != 0):
		return fmt.Sprintf("%s: %s: expected %d, got %d", e.Type, e.Message, e.Expected, e.Actual)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	default:
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
}

// Unwrap returns the underlying cause for error chain unwrapping.
func (e *HashError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a *HashError of the same Type. This lets
// errors.Is match the package sentinels regardless of message or lengths.
func (e *HashError) Is(target error) bool {
	t, ok := target.(*HashError)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

// InvalidLength reports a decode of actual bytes where expected were required.
func InvalidLength(expected, actual int) *HashError {
	return &HashError{
		Type:     ErrTypeInvalidLength,
		Message:  "invalid digest length",
		Expected: uint64(expected),
		Actual:   uint64(actual),
	}
}

// EngineAlreadyFinalized reports that op was attempted on a finalized engine.
func EngineAlreadyFinalized(op string) *HashError {
	return &HashError{
		Type:    ErrTypeEngineFinalized,
		Message: fmt.Sprintf("%s called after the digest was computed", op),
	}
}

// LengthOverflow reports that adding add bytes to total would exceed the
// maximum message length.
func LengthOverflow(limit, total, add uint64) *HashError {
	return &HashError{
		Type:     ErrTypeLengthOverflow,
		Message:  fmt.Sprintf("adding %d bytes to %d exceeds the maximum message length", add, total),
		Expected: limit,
		Actual:   total,
	}
}

// InvalidFormat reports malformed textual input.
func InvalidFormat(message string, cause error) *HashError {
	return &HashError{
		Type:    ErrTypeInvalidFormat,
		Message: message,
		Cause:   cause,
	}
}

// IsType checks if an error is a HashError of a specific type.
func IsType(err error, errType ErrorType) bool {
	var hashErr *HashError
	if errors.As(err, &hashErr) {
		return hashErr.Type == errType
	}
	return false
}
