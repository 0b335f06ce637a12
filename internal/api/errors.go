package api

import (
	"errors"
	"fmt"
	"net/http"
)

// The gateway surfaces exactly four kinds of failure. Callers discriminate
// with errors.As; nothing inspects error text.

// EncodeError means the local JSON encode of a request body failed. This is
// a client bug, not a server or network condition.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string { return "encode request: " + e.Err.Error() }
func (e *EncodeError) Unwrap() error { return e.Err }

// DecodeError means the response body did not match the expected shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decode response: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// ServerError is a non-2xx response. Message carries the server-supplied
// {"error": "..."} text when the body had one.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// NotFound reports whether the server answered with a not-found-class status.
func (e *ServerError) NotFound() bool { return e.StatusCode == http.StatusNotFound }

// NetworkError is a transport-level failure: no connectivity, DNS, timeout,
// cancelled context.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// UserMessage renders an error the way screens present it: the
// server-supplied message when there is one, otherwise a generic hint.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var srv *ServerError
	if errors.As(err, &srv) && srv.Message != "" {
		return srv.Message
	}
	var net *NetworkError
	if errors.As(err, &net) {
		return "Could not reach the server. Check your connection and try again."
	}
	return "Something went wrong. Please try again."
}
