package api

import "errors"

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// RequestError is a non-2xx API response that is neither an auth failure
// nor a transport problem. Message carries the server-provided text, or a
// generic fallback when the body had none.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}
