package service

import (
	"errors"
	"fmt"

	"ragstore/internal/storage"
)

// ErrUpstream is returned when an external collaborator (embedder, labeler,
// QA generator, vector mirror) fails.
var ErrUpstream = errors.New("upstream collaborator failed")

// ValidationError is the store's validation error, re-exported for callers of this package.
type ValidationError = storage.ValidationError

// UpstreamError wraps a collaborator failure with the collaborator's name.
type UpstreamError struct {
	Collaborator string
	Err          error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Collaborator, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Is allows errors.Is() to match against ErrUpstream.
func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
