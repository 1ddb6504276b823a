// Package errors defines the coded errors shared by the library, the CLI and
// the HTTP API.
//
// Codes are grouped by prefix. INVALID_* marks a caller contract violation
// (bad depth, radius, spacing, index, color, label or payload) and maps to
// HTTP 400. NOT_FOUND and FILE_NOT_FOUND map to 404. Anything else is an
// internal failure.
//
//	if err := errors.ValidateDepth(d, layout.MaxDepth); err != nil {
//	    return err
//	}
//	return errors.Wrap(errors.ErrCodeInvalidPayload, err, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidDepth   Code = "INVALID_DEPTH"
	ErrCodeInvalidRadius  Code = "INVALID_RADIUS"
	ErrCodeInvalidCoord   Code = "INVALID_COORDINATE"
	ErrCodeInvalidSpacing Code = "INVALID_SPACING"
	ErrCodeInvalidIndex   Code = "INVALID_INDEX"
	ErrCodeInvalidColor   Code = "INVALID_COLOR"
	ErrCodeInvalidLabel   Code = "INVALID_LABEL"
	ErrCodeInvalidPayload Code = "INVALID_PAYLOAD"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle   Code = "INVALID_STYLE"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeInvalidPath    Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error carries a Code alongside the message. The server maps codes to
// HTTP statuses and the CLI prints Message without the code.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an *Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with an underlying cause, reachable through errors.Is and
// errors.As.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the first *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsValidation reports whether err carries one of the INVALID_* codes.
func IsValidation(err error) bool {
	return strings.HasPrefix(string(GetCode(err)), "INVALID_")
}

// UserMessage is the message of the first *Error in err's chain, or
// err.Error() for plain errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
