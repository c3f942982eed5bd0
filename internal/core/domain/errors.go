package domain

import (
	"errors"
	"fmt"
)

// Core errors.
var (
	// ErrInvalidChunking indicates bad chunk/overlap parameters.
	// Rejected before any work starts.
	ErrInvalidChunking = errors.New("lore: invalid chunking parameters")

	// ErrNoDocuments indicates a build found zero usable documents.
	// The build is aborted and nothing is written.
	ErrNoDocuments = errors.New("lore: no documents found in corpus")

	// ErrIndexIncompatible indicates the persisted index cannot serve
	// the current encoder (dimension or model mismatch).
	ErrIndexIncompatible = errors.New("lore: index incompatible with encoder")

	// ErrIndexNotFound indicates no index has been built yet.
	ErrIndexNotFound = errors.New("lore: index not found, run 'lore index' first")
)

// EmbeddingError wraps a failure from the embedding encoder. It is
// fatal to the in-progress build (no partial write) but the caller
// may retry the whole build.
type EmbeddingError struct {
	// Batch is the zero-based batch number that failed.
	Batch int

	// Err is the underlying cause.
	Err error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("lore: embedding batch %d failed: %v", e.Batch, e.Err)
}

func (e *EmbeddingError) Unwrap() error {
	return e.Err
}

// IncompatibilityError reports the specific index/encoder mismatch
// that caused a query to be rejected.
type IncompatibilityError struct {
	// Field names the mismatched setting.
	Field string

	// Index is the value the index was built with.
	Index any

	// Query is the value the current encoder declares.
	Query any
}

func (e *IncompatibilityError) Error() string {
	return fmt.Sprintf("lore: index incompatible: %s is %v in index but %v for encoder", e.Field, e.Index, e.Query)
}

// Is lets errors.Is(err, ErrIndexIncompatible) match.
func (e *IncompatibilityError) Is(target error) bool {
	return target == ErrIndexIncompatible
}

// IsEmbeddingFailure checks if the error came from the embedding
// encoder.
func IsEmbeddingFailure(err error) bool {
	var embErr *EmbeddingError
	return errors.As(err, &embErr)
}
