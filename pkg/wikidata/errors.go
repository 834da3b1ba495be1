package wikidata

import (
	"context"
	"errors"
	"fmt"
)

// Common knowledge-base client errors
var (
	// ErrNotFound indicates the id has no record in the knowledge base.
	ErrNotFound = errors.New("entity not found in knowledge base")

	// ErrCancelled indicates the operation was superseded or aborted
	// before completion. It is never user-visible; callers discard it.
	ErrCancelled = errors.New("operation cancelled")

	// ErrInvalidID indicates an identifier that does not match Q<digits>.
	ErrInvalidID = errors.New("invalid entity identifier")
)

// TransportError represents a network or HTTP failure, including a
// non-success status from the knowledge base.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: knowledge base returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support for TransportError.
// This allows errors.Is(err, &TransportError{}) to work with wrapped errors.
func (e *TransportError) Is(target error) bool {
	_, ok := target.(*TransportError)
	return ok
}

// IsCancelled reports whether err denotes a superseded or aborted
// operation, whichever layer produced it.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
