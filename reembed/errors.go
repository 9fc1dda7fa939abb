package reembed

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when a retry budget of zero or
	// fewer attempts is requested.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrStoreRequired is returned when no content store is provided.
	ErrStoreRequired = errors.New("content store is required")

	// ErrEmbedderRequired is returned when no embedder is provided.
	ErrEmbedderRequired = errors.New("embedder is required")
)
