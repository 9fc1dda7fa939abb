package ingestion

import "errors"

var (
	// ErrStoreRequired is returned when a content store is not provided.
	ErrStoreRequired = errors.New("content store required")

	// ErrExtractorRequired is returned when an extractor is not provided.
	ErrExtractorRequired = errors.New("extractor required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrFileManagerRequired is returned when a file manager is not provided.
	ErrFileManagerRequired = errors.New("file manager required")

	// ErrEmbeddingFailed wraps a batch embedding failure when the
	// service is configured to treat it as fatal.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrServiceClosed is returned when submitting to a released service.
	ErrServiceClosed = errors.New("ingestion service is closed")
)
