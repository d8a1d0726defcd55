package resolver

import (
	"context"
	"errors"
	"fmt"

	"locationservice/internal/models"
)

// Resolution error sentinels. NotFound is a result, not an error.
var (
	ErrInvalidInput  = errors.New("invalid call number request")
	ErrLookupFailure = errors.New("location lookup failed")
	ErrCancelled     = errors.New("resolution cancelled")
)

// LookupError reports a Lookup failure for one tier and window.
type LookupError struct {
	Tier models.Tier
	Code string
	Err  error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: %s %q: %v", ErrLookupFailure, e.Tier, e.Code, e.Err)
}

// Unwrap exposes both ErrLookupFailure and the underlying store error.
func (e *LookupError) Unwrap() []error {
	return []error{ErrLookupFailure, e.Err}
}

func invalidInput(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, reason)
}

func cancelled(cause error) error {
	return fmt.Errorf("%w: %w", ErrCancelled, cause)
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// storeErr classifies an error returned by a store port other than Lookup.
func storeErr(err error, what string) error {
	if isContextErr(err) {
		return cancelled(err)
	}
	return fmt.Errorf("%w: %s: %w", ErrLookupFailure, what, err)
}
