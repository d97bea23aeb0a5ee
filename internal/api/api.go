package api

import (
	"net/http"
	"net/url"
)

const (
	// ErrUnauthorized is returned for every 401 response regardless of the
	// body. Callers are expected to drop the cached credential and ask the
	// user to log in again.
	ErrUnauthorized Error = "not authorized, please log in again"

	// ErrUnsupportedMovement is returned before any request is made when the
	// stock movement kind has no endpoint
	ErrUnsupportedMovement Error = "unsupported stock movement kind"
)

type Error string

func (e Error) Error() string { return string(e) }

// APIError is returned for any non-2xx response other than 401. Message is
// the JSON "message" field of the body when present, the raw body text
// otherwise, or the status text when the body is empty.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

// Credentials supplies the cached Basic token attached to each request. An
// empty token means no Authorization header is sent.
type Credentials interface {
	Token() string
}

// Request describes an API call. The zero value is a GET without a body.
type Request struct {
	Method string

	// Query is appended to the path when non-empty
	Query url.Values

	// Body is encoded as JSON when non-nil
	Body interface{}

	// Header is merged into the request before Content-Type and
	// Authorization are set, so it can not override either of them
	Header http.Header
}

func (r *Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}

	return r.Method
}

// errorPayload is the error body shape the backend uses
type errorPayload struct {
	Message string `json:"message"`
}
