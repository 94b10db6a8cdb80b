// ABOUTME: Typed error kinds shared across the retrieval engine
// ABOUTME: Sentinels and struct errors usable with errors.Is / errors.As
package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions callers branch on.
var (
	// ErrNotFound indicates an event or embedding is absent.
	ErrNotFound = errors.New("not found")
	// ErrBusy indicates a conflicting exclusive operation is in flight.
	ErrBusy = errors.New("operation already in progress")
	// ErrTimeout indicates an upstream call exceeded its deadline.
	ErrTimeout = errors.New("operation timed out")
	// ErrNotImplemented indicates a declared-but-unimplemented provider variant.
	ErrNotImplemented = errors.New("not implemented")
)

// DimensionMismatchError reports a vector whose length does not match
// the expected dimension.
type DimensionMismatchError struct {
	Expected int
	Got      int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("invalid embedding dimension: expected %d, got %d", e.Expected, e.Got)
}

// ValidationError reports a bad parameter value (negative limit, threshold
// out of range).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ProviderError wraps an upstream embedding or LLM provider failure.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
