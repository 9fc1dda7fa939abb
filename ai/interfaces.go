package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions reports the vector length this embedder produces.
	// Callers use it to build zero-filled placeholder vectors for chunks
	// whose embedding failed.
	Dimensions() int
}

// TextCorrector fixes OCR errors in extracted text using a language model.
// Implementations must be thread-safe for concurrent use.
type TextCorrector interface {
	// CorrectText returns a corrected version of the given text. The
	// correction is conservative: terminology and digit/letter confusions
	// are fixed, content is otherwise preserved. On an empty model
	// response the original text is returned unchanged.
	CorrectText(ctx context.Context, text string) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder and TextCorrector instances,
// ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// TextCorrector returns the OCR correction service.
	// The returned TextCorrector is safe for concurrent use.
	TextCorrector() TextCorrector

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
