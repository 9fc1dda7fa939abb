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
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aimock "github.com/grayiron/foundrydocs/ai/mock"
	"github.com/grayiron/foundrydocs/core"
	"github.com/grayiron/foundrydocs/storage"
	storagebadger "github.com/grayiron/foundrydocs/storage/badger"
)

func newSeededStore(t *testing.T) storage.ContentStore {
	t.Helper()

	store, err := storagebadger.NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func seedChunks(t *testing.T, store storage.ContentStore, docID string, vectors ...[]float32) {
	t.Helper()

	records := make([]*core.ChunkRecord, len(vectors))
	for i, vector := range vectors {
		records[i] = &core.ChunkRecord{
			DocumentID:  docID,
			Filename:    docID + ".pdf",
			ChunkIndex:  i,
			ContentType: "text",
			Text:        fmt.Sprintf("%s 청크 %d 본문", docID, i),
			Vector:      vector,
		}
	}
	require.NoError(t, store.AddChunks(context.Background(), records...))
}

func TestReembedderUpdatesAllChunks(t *testing.T) {
	store := newSeededStore(t)
	seedChunks(t, store, "doc_alpha", []float32{9, 9, 9}, []float32{8, 8, 8})
	seedChunks(t, store, "doc_beta", []float32{7, 7, 7})

	embedder := aimock.NewMockEmbedder()
	embedder.Dim = 3

	var out bytes.Buffer
	r, err := NewReembedder(store, embedder, nil, &out)
	require.NoError(t, err)

	updated, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, updated)
	assert.Contains(t, out.String(), "Re-embedding complete")

	for _, docID := range []core.DocumentID{"doc_alpha", "doc_beta"} {
		chunks, err := store.GetChunks(context.Background(), docID)
		require.NoError(t, err)
		for _, chunk := range chunks {
			require.Len(t, chunk.Vector, 3)
			assert.NotEqual(t, float32(9), chunk.Vector[0], "vector was regenerated")

			var sumSquares float64
			for _, v := range chunk.Vector {
				sumSquares += float64(v) * float64(v)
			}
			assert.InDelta(t, 1.0, sumSquares, 1e-5, "stored vectors are unit length")
		}
	}
}

func TestReembedderOnlyZeroVectors(t *testing.T) {
	store := newSeededStore(t)
	healthy := NormalizeVector([]float32{1, 2, 2})
	seedChunks(t, store, "doc_mixed", healthy, []float32{0, 0, 0}, []float32{0, 0, 0})

	embedder := aimock.NewMockEmbedder()
	embedder.Dim = 3

	config := DefaultConfig()
	config.OnlyZeroVectors = true

	var out bytes.Buffer
	r, err := NewReembedder(store, embedder, config, &out)
	require.NoError(t, err)

	updated, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	chunks, err := store.GetChunks(context.Background(), "doc_mixed")
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assert.Equal(t, healthy, chunks[0].Vector, "healthy chunk untouched")
	assert.False(t, IsZeroVector(chunks[1].Vector))
	assert.False(t, IsZeroVector(chunks[2].Vector))
}

func TestReembedderEmptyStore(t *testing.T) {
	store := newSeededStore(t)
	embedder := aimock.NewMockEmbedder()

	var out bytes.Buffer
	r, err := NewReembedder(store, embedder, nil, &out)
	require.NoError(t, err)

	updated, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, updated)
	assert.Contains(t, out.String(), "No chunks found")
}

func TestReembedderEmbeddingFailure(t *testing.T) {
	store := newSeededStore(t)
	seedChunks(t, store, "doc_gamma", []float32{1, 0, 0})

	embedder := aimock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(context.Context, []string) ([][]float32, error) {
		return nil, errors.New("model unavailable")
	}

	config := DefaultConfig()
	config.MaxRetries = 2
	config.RetryDelay = time.Millisecond

	var out bytes.Buffer
	r, err := NewReembedder(store, embedder, config, &out)
	require.NoError(t, err)

	_, err = r.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model unavailable")

	chunks, err := store.GetChunks(context.Background(), "doc_gamma")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0, 0}, chunks[0].Vector, "failed run leaves vectors unchanged")
}

func TestNewReembedderValidation(t *testing.T) {
	store := newSeededStore(t)

	_, err := NewReembedder(nil, aimock.NewMockEmbedder(), nil, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrStoreRequired)

	_, err = NewReembedder(store, nil, nil, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}
