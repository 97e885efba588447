package core

import (
	json "github.com/goccy/go-json"

	moderr "github.com/lizzyg/chatwork/errors"
)

// Response is the envelope returned by every API call.
// Success is StatusCode < 400; Error is set iff !Success and Data is the zero value then.
type Response[T any] struct {
	Success    bool       `json:"success"`
	StatusCode int        `json:"status_code"`
	Data       T          `json:"data"`
	Error      *ErrorData `json:"error,omitempty"`
}

// envelope is the JSON form of Response; data is present only on success.
type envelope[T any] struct {
	Success    bool       `json:"success"`
	StatusCode int        `json:"status_code"`
	Data       *T         `json:"data,omitempty"`
	Error      *ErrorData `json:"error,omitempty"`
}

func (r Response[T]) MarshalJSON() ([]byte, error) {
	e := envelope[T]{Success: r.Success, StatusCode: r.StatusCode, Error: r.Error}
	if r.Success {
		e.Data = &r.Data
	}
	return json.Marshal(e)
}

// ErrorData is the error body returned by the API, e.g. {"errors":["Invalid API token"]}.
type ErrorData struct {
	Errors []string `json:"errors"`
}

// TransportStatus is the status recorded when no response was received.
const TransportStatus = 400

// Ok builds a success envelope.
func Ok[T any](status int, data T) Response[T] {
	return Response[T]{Success: true, StatusCode: status, Data: data}
}

// Fail builds a failure envelope.
func Fail[T any](status int, e ErrorData) Response[T] {
	return Response[T]{StatusCode: status, Error: &e}
}

// Err returns nil for a success envelope and an *moderr.APIError otherwise.
func (r Response[T]) Err() error {
	if r.Success {
		return nil
	}
	apiErr := &moderr.APIError{StatusCode: r.StatusCode}
	if r.Error != nil {
		apiErr.Errors = append([]string(nil), r.Error.Errors...)
	}
	return apiErr
}
