package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAccessDenied       = errors.New("access denied")
	ErrMissingUserContext = errors.New("missing user context")
	ErrUnauthorized       = errors.New("unauthorized")
)

// AccessDeniedError is the single caller-visible fault raised at the require
// boundary. It carries the denying decision's reason verbatim.
type AccessDeniedError struct {
	Resource string
	PolicyID string
	Reason   string
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("access denied for %s: %s", e.Resource, e.Reason)
}

func (e *AccessDeniedError) Unwrap() error {
	return ErrAccessDenied
}
