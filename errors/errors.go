package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRequiredField     = errors.New("required field is missing")
	ErrFileTooLarge      = errors.New("file exceeds maximum upload size")
	ErrUnsupportedMethod = errors.New("unsupported request method")
	ErrDecodeResponse    = errors.New("response body does not match result type")
	ErrFileField         = errors.New("file field cannot be form encoded")
	ErrAPI               = errors.New("chatwork api request failed")
)

// ValidationError reports a required parameter field that was absent at marshal time.
// No request is sent when it is returned.
type ValidationError struct {
	Type  string // parameter type, e.g. "NewRoomParams"
	Field string // Go field name, e.g. "MembersAdminIDs"
	Wire  string // wire name, e.g. "members_admin_ids"
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("chatwork: %s.%s (%s) is required", e.Type, e.Field, e.Wire)
}

func (e *ValidationError) Unwrap() error { return ErrRequiredField }

// SizeLimitError reports a file payload larger than the configured maximum.
type SizeLimitError struct {
	Field    string
	Filename string
	Max      int64
}

func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("chatwork: file %q for field %s exceeds %d bytes", e.Filename, e.Field, e.Max)
}

func (e *SizeLimitError) Unwrap() error { return ErrFileTooLarge }

// UnsupportedMethodError reports a method the dispatcher cannot send, either because
// it is not GET/POST/PUT/DELETE or because a multipart body was built for GET/DELETE.
type UnsupportedMethodError struct {
	Method    string
	Multipart bool
}

func (e *UnsupportedMethodError) Error() string {
	if e.Multipart {
		return fmt.Sprintf("chatwork: multipart body cannot be sent with %s", e.Method)
	}
	return fmt.Sprintf("chatwork: unsupported method %q", e.Method)
}

func (e *UnsupportedMethodError) Unwrap() error { return ErrUnsupportedMethod }

// SerializationError reports a success response whose body could not be decoded
// into the expected result type.
type SerializationError struct {
	StatusCode int
	Type       string
	Err        error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("chatwork: decoding %d response as %s: %v", e.StatusCode, e.Type, e.Err)
}

func (e *SerializationError) Unwrap() []error { return []error{ErrDecodeResponse, e.Err} }

// APIError is the error view of a failure envelope.
type APIError struct {
	StatusCode int
	Errors     []string
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("chatwork: http %d", e.StatusCode)
	}
	return fmt.Sprintf("chatwork: http %d: %s", e.StatusCode, strings.Join(e.Errors, "; "))
}

func (e *APIError) Unwrap() error { return ErrAPI }
