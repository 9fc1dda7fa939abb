// Copyright 2026 Gray Iron Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/grayiron/foundrydocs/ai"
	"github.com/grayiron/foundrydocs/extract"
)

// minEmbeddableLength is the shortest chunk worth sending to the
// embedding model; shorter fragments get a zero vector directly.
const minEmbeddableLength = 2

// embeddingStage turns chunks into vectors, one vector per chunk, in
// input order. A failed batch poisons only its own chunks: they receive
// zero vectors (or, with failHard, fail the job) while every other
// batch embeds normally.
type embeddingStage struct {
	embedder ai.Embedder
	failHard bool
	logger   *slog.Logger
}

func newEmbeddingStage(embedder ai.Embedder, failHard bool) *embeddingStage {
	return &embeddingStage{
		embedder: embedder,
		failHard: failHard,
		logger:   slog.Default().With("component", "embedding-stage"),
	}
}

// Embed returns exactly one vector per input chunk. progress receives
// (chunksDone, chunksTotal) after each batch.
func (s *embeddingStage) Embed(ctx context.Context, chunks []string, progress func(done, total int)) ([][]float32, error) {
	if progress == nil {
		progress = func(int, int) {}
	}

	vectors := make([][]float32, len(chunks))

	// Indices of chunks that actually go to the model.
	embeddable := make([]int, 0, len(chunks))
	for i, chunk := range chunks {
		if utf8.RuneCountInString(chunk) >= minEmbeddableLength {
			embeddable = append(embeddable, i)
		} else {
			vectors[i] = zeroVector(s.embedder.Dimensions())
		}
	}

	total := len(embeddable)
	batchSize := adaptiveBatchSize(total)
	s.logger.Debug("embedding chunks", "chunks", total, "batch_size", batchSize)

	for start := 0; start < total; start += batchSize {
		end := min(start+batchSize, total)
		batch := embeddable[start:end]

		texts := make([]string, len(batch))
		for i, idx := range batch {
			texts[i] = chunks[idx]
		}

		embedded, err := s.embedder.EmbedTexts(ctx, texts)
		if err == nil && len(embedded) != len(texts) {
			err = fmt.Errorf("expected %d vectors, received %d", len(texts), len(embedded))
		}
		if err != nil {
			if s.failHard {
				return nil, fmt.Errorf("%w: batch %d-%d: %v", ErrEmbeddingFailed, start, end, err)
			}
			s.logger.Warn("embedding batch failed, storing zero vectors",
				"from", start, "to", end, "error", err)
			for _, idx := range batch {
				vectors[idx] = zeroVector(s.embedder.Dimensions())
			}
			progress(end, total)
			continue
		}

		for i, idx := range batch {
			vectors[idx] = embedded[i]
		}
		progress(end, total)
	}

	return vectors, nil
}

// adaptiveBatchSize picks the embedding batch size from the workload.
// Small documents use small batches for fast first progress; large
// documents scale the batch with available memory.
func adaptiveBatchSize(chunks int) int {
	switch {
	case chunks < 50:
		return 16
	case chunks < 200:
		return 32
	}

	switch avail := extract.AvailableMemoryMB(); {
	case avail >= 8192:
		return 128
	case avail >= 4096:
		return 64
	default:
		return 32
	}
}

func zeroVector(dim int) []float32 {
	return make([]float32, dim)
}
