// internal/domain/practicum/client.go
package practicum

import (
	"context"
	"errors"
)

// ErrTransport marks network-layer failures (timeouts, DNS, connection resets)
// as opposed to a response the server actually returned.
var ErrTransport = errors.New("homework API unreachable")

// TransportError is a network-layer failure with a stable Reason such as
// "timeout" or "connection reset". Reason carries no addresses or ports, so
// repeats of the same fault compare equal.
type TransportError struct {
	Reason string
	Err    error
}

func (e *TransportError) Error() string {
	return ErrTransport.Error() + ": " + e.Reason
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// Response is a raw reply from the homework statuses endpoint.
type Response struct {
	StatusCode int
	Body       []byte
}

// Client fetches homework statuses changed since fromDate (Unix seconds).
// Implementations report network failures as *TransportError; any reply the
// server sends, successful or not, is returned as a Response.
type Client interface {
	HomeworkStatuses(ctx context.Context, fromDate int64) (*Response, error)
}
