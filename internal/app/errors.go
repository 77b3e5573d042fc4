// internal/app/errors.go
package app

import (
	"errors"
	"fmt"
)

// Faults raised while processing a poll cycle.
var (
	ErrShape             = errors.New("unexpected homework API response shape")
	ErrDecode            = errors.New("homework API response is not valid JSON")
	ErrAPIStatus         = errors.New("homework API returned a non-success status")
	ErrBadTimestamp      = errors.New("implausible current_date in homework API response")
	ErrUnexpectedVerdict = errors.New("unexpected homework status")
	ErrMissingField      = errors.New("homework record is missing a required field")
)

// FatalError is returned by Poller.Run when a fault requires operator
// attention. The final notification has already been attempted.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("poller stopped: %v", e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}
