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

package reembed

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/grayiron/foundrydocs/ai"
	"github.com/grayiron/foundrydocs/core"
	"github.com/grayiron/foundrydocs/storage"
)

// Config holds tuning parameters for a re-embedding run.
type Config struct {
	// BatchSize is the number of chunks embedded per API call.
	BatchSize int

	// ReportInterval is how often progress is reported, in chunks.
	ReportInterval int

	// MaxRetries is the retry budget per embedding batch.
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff.
	RetryDelay time.Duration

	// OnlyZeroVectors restricts the run to chunks stored with a zero
	// placeholder vector, repairing failed ingestion batches without
	// touching healthy chunks.
	OnlyZeroVectors bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     time.Second,
	}
}

// Reembedder drives a full re-embedding pass over the content store.
type Reembedder struct {
	store     storage.ContentStore
	embedder  ai.Embedder
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
	iterator  *ChunkIterator
}

// NewReembedder creates a re-embedder that reports progress to the
// given writer, typically os.Stderr.
func NewReembedder(store storage.ContentStore, embedder ai.Embedder, config *Config, progress io.Writer) (*Reembedder, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}

	return &Reembedder{
		store:     store,
		embedder:  embedder,
		config:    config,
		progress:  progress,
		processor: NewBatchProcessor(store, embedder, config.MaxRetries, config.RetryDelay),
		iterator:  NewChunkIterator(store, config.BatchSize),
	}, nil
}

// Run re-embeds stored chunks and reports how many were updated.
// With OnlyZeroVectors set, chunks that already carry a real vector are
// counted as skipped.
func (r *Reembedder) Run(ctx context.Context) (updated int, err error) {
	total, err := r.iterator.TotalChunks(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	if total == 0 {
		fmt.Fprintln(r.progress, "No chunks found in store")
		return 0, nil
	}

	fmt.Fprintf(r.progress, "Re-embedding %d chunks (batch size: %d)\n", total, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	skipped := 0
	err = r.iterator.ForEach(ctx, func(chunks []*core.ChunkRecord) error {
		batch := chunks
		if r.config.OnlyZeroVectors {
			batch = make([]*core.ChunkRecord, 0, len(chunks))
			for _, chunk := range chunks {
				if IsZeroVector(chunk.Vector) {
					batch = append(batch, chunk)
				} else {
					skipped++
				}
			}
		}

		if err := r.processor.Process(ctx, batch); err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		updated += len(batch)
		tracker.Increment(len(chunks))
		return nil
	})
	if err != nil {
		return updated, err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Re-embedding complete. Updated %d of %d chunks in %v",
		updated, total, elapsed.Round(time.Second))
	if skipped > 0 {
		fmt.Fprintf(r.progress, " (%d already embedded)", skipped)
	}
	fmt.Fprintln(r.progress)

	return updated, nil
}
