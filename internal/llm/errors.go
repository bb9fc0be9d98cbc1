package llm

import (
	"errors"
	"fmt"
)

// Sentinel errors for completion service operations.
var (
	ErrService     = errors.New("llm: service error")
	ErrTimeout     = errors.New("llm: request timed out")
	ErrRateLimited = errors.New("llm: rate limited by server")
	ErrMalformed   = errors.New("llm: malformed response")
	ErrNoJSON      = errors.New("llm: no JSON object in response")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op         string // Operation: "complete", "extract"
	Deployment string
	Err        error
}

func (e *Error) Error() string {
	if e.Deployment != "" {
		return fmt.Sprintf("llm %s [%s]: %v", e.Op, e.Deployment, e.Err)
	}
	return fmt.Sprintf("llm %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrapError creates an Error with context.
func wrapError(op, deployment string, err error) error {
	return &Error{
		Op:         op,
		Deployment: deployment,
		Err:        err,
	}
}
