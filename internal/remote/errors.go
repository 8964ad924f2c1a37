package remote

import (
	"fmt"
	"net/http"

	"github.com/go-faster/errors"
)

// TransportError is returned when the backend could not be reached or did
// not answer in time. Timeouts and network failures are not distinguished.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError is returned for a non-2xx response.
type StatusError struct {
	Op     string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Body)
}

// APIError is the error object of a response envelope whose success flag is
// false.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsTransport reports whether err means the backend is unreachable.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status == http.StatusUnauthorized
	}
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Status == http.StatusUnauthorized
	}
	return false
}

// IsRejection reports whether err is an explicit refusal by a reachable
// backend, as opposed to a transport failure.
func IsRejection(err error) bool {
	var se *StatusError
	var ae *APIError
	return errors.As(err, &se) || errors.As(err, &ae)
}
