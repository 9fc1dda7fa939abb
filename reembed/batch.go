package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/grayiron/foundrydocs/ai"
	"github.com/grayiron/foundrydocs/core"
	"github.com/grayiron/foundrydocs/storage"
)

// BatchProcessor regenerates the vectors for one batch of chunks and
// writes them back.
type BatchProcessor struct {
	store          storage.ContentStore
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a batch processor. Embedding calls are
// retried up to maxRetries times with exponential backoff from
// retryBaseDelay.
func NewBatchProcessor(store storage.ContentStore, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		store:          store,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process embeds the texts of the given chunks, normalizes the resulting
// vectors to unit length, and updates the stored records in place.
func (bp *BatchProcessor) Process(ctx context.Context, chunks []*core.ChunkRecord) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var embedErr error
		embeddings, embedErr = bp.embedder.EmbedTexts(ctx, texts)
		return embedErr
	}, bp.maxRetries, bp.retryBaseDelay)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(chunks), len(embeddings))
	}

	for i := range chunks {
		chunks[i].Vector = NormalizeVector(embeddings[i])
	}

	if err := bp.store.UpdateChunkVectors(ctx, chunks...); err != nil {
		return fmt.Errorf("failed to update chunk vectors: %w", err)
	}

	return nil
}
