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

	"github.com/grayiron/foundrydocs/core"
	"github.com/grayiron/foundrydocs/storage"
)

// DefaultBatchSize is the number of chunks handed to fn per call when no
// batch size is configured.
const DefaultBatchSize = 100

// ChunkIterator walks every stored chunk, document by document, in
// batches. Chunks within a document arrive in chunk-index order.
type ChunkIterator struct {
	store     storage.ContentStore
	batchSize int
}

// NewChunkIterator creates an iterator over all stored chunks.
// A batchSize of zero or less falls back to DefaultBatchSize.
func NewChunkIterator(store storage.ContentStore, batchSize int) *ChunkIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &ChunkIterator{store: store, batchSize: batchSize}
}

// ForEach calls fn for each batch of chunks. Iteration stops at the
// first error from fn; context cancellation is checked between batches.
// A batch never spans two documents.
func (it *ChunkIterator) ForEach(ctx context.Context, fn func([]*core.ChunkRecord) error) error {
	docs, err := it.store.ListDocuments(ctx)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}

		chunks, err := it.store.GetChunks(ctx, core.DocumentID(doc.DocumentID))
		if err != nil {
			return err
		}

		for start := 0; start < len(chunks); start += it.batchSize {
			end := min(start+it.batchSize, len(chunks))
			if err := fn(chunks[start:end]); err != nil {
				return err
			}

			if err := ctx.Err(); err != nil {
				return err
			}
		}
	}

	return nil
}

// TotalChunks reports how many chunks the iterator will visit.
func (it *ChunkIterator) TotalChunks(ctx context.Context) (int, error) {
	docs, err := it.store.ListDocuments(ctx)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, doc := range docs {
		total += doc.Chunks
	}
	return total, nil
}
