package badger

import (
	"context"
	"fmt"
	"testing"

	"github.com/grayiron/foundrydocs/core"
	"github.com/grayiron/foundrydocs/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) storage.ContentStore {
	t.Helper()
	store, err := NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func makeChunks(docID string, n int) []*core.ChunkRecord {
	records := make([]*core.ChunkRecord, n)
	for i := range records {
		records[i] = &core.ChunkRecord{
			DocumentID:  docID,
			Filename:    "report.pdf",
			ChunkIndex:  i,
			ContentType: "text_chunk",
			Text:        fmt.Sprintf("chunk %d text", i),
			Vector:      []float32{float32(i), 0.5},
		}
	}
	return records
}

func TestContentStore_AddAndGetChunks(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.AddChunks(ctx, makeChunks("doc_11111111", 5)...)
	require.NoError(t, err)

	chunks, err := store.GetChunks(ctx, "doc_11111111")
	require.NoError(t, err)
	require.Len(t, chunks, 5)

	// Ordered by chunk index
	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.ChunkIndex)
		assert.Equal(t, fmt.Sprintf("chunk %d text", i), chunk.Text)
		assert.False(t, chunk.InsertedAt.IsZero())
	}
}

func TestContentStore_AddChunks_Invalid(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.AddChunks(ctx, &core.ChunkRecord{Text: "orphan chunk"})
	assert.ErrorIs(t, err, core.ErrEmptyDocumentID)

	// The failed transaction must not leave partial data behind
	chunks, err := store.GetChunks(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestContentStore_Overwrite(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := &core.ChunkRecord{DocumentID: "doc_1", ChunkIndex: 0, Text: "first"}
	second := &core.ChunkRecord{DocumentID: "doc_1", ChunkIndex: 0, Text: "second"}

	require.NoError(t, store.AddChunks(ctx, first))
	require.NoError(t, store.AddChunks(ctx, second))

	chunks, err := store.GetChunks(ctx, "doc_1")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "second", chunks[0].Text)
}

func TestContentStore_GetChunks_Unknown(t *testing.T) {
	store := newTestStore(t)

	chunks, err := store.GetChunks(context.Background(), "doc_missing")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestContentStore_OrderedAboveByteBoundary(t *testing.T) {
	// More than 255 chunks would break ordering if the index were a
	// single byte or a decimal string.
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddChunks(ctx, makeChunks("doc_big", 300)...))

	chunks, err := store.GetChunks(ctx, "doc_big")
	require.NoError(t, err)
	require.Len(t, chunks, 300)
	for i, chunk := range chunks {
		require.Equal(t, i, chunk.ChunkIndex)
	}
}

func TestContentStore_UpdateChunkVectors(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddChunks(ctx, makeChunks("doc_1", 2)...))

	err := store.UpdateChunkVectors(ctx, &core.ChunkRecord{
		DocumentID: "doc_1",
		ChunkIndex: 1,
		Vector:     []float32{9, 9, 9},
	})
	require.NoError(t, err)

	chunks, err := store.GetChunks(ctx, "doc_1")
	require.NoError(t, err)
	assert.Equal(t, []float32{9, 9, 9}, chunks[1].Vector)
	// Text untouched
	assert.Equal(t, "chunk 1 text", chunks[1].Text)
}

func TestContentStore_UpdateChunkVectors_NotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.UpdateChunkVectors(context.Background(), &core.ChunkRecord{
		DocumentID: "doc_missing",
		ChunkIndex: 0,
		Vector:     []float32{1},
	})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestContentStore_CountDocument(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddChunks(ctx, makeChunks("doc_1", 3)...))
	require.NoError(t, store.AddImages(ctx,
		&core.ImageRecord{DocumentID: "doc_1", Index: 0},
		&core.ImageRecord{DocumentID: "doc_1", Index: 1},
	))
	require.NoError(t, store.AddTables(ctx,
		&core.TableRecord{DocumentID: "doc_1", Index: 0},
	))

	chunks, images, tables, err := store.CountDocument(ctx, "doc_1")
	require.NoError(t, err)
	assert.Equal(t, 3, chunks)
	assert.Equal(t, 2, images)
	assert.Equal(t, 1, tables)
}

func TestContentStore_DeleteDocument(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddChunks(ctx, makeChunks("doc_1", 3)...))
	require.NoError(t, store.AddChunks(ctx, makeChunks("doc_2", 2)...))
	require.NoError(t, store.AddImages(ctx, &core.ImageRecord{DocumentID: "doc_1", Index: 0}))
	require.NoError(t, store.AddTables(ctx, &core.TableRecord{DocumentID: "doc_1", Index: 0}))

	removed, err := store.DeleteDocument(ctx, "doc_1")
	require.NoError(t, err)
	assert.Equal(t, 5, removed)

	chunks, err := store.GetChunks(ctx, "doc_1")
	require.NoError(t, err)
	assert.Empty(t, chunks)

	// Other documents untouched
	chunks, err = store.GetChunks(ctx, "doc_2")
	require.NoError(t, err)
	assert.Len(t, chunks, 2)
}

func TestContentStore_DeleteDocument_Idempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddChunks(ctx, makeChunks("doc_1", 2)...))

	removed, err := store.DeleteDocument(ctx, "doc_1")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	// Second delete reports zero entries and no error
	removed, err = store.DeleteDocument(ctx, "doc_1")
	require.NoError(t, err)
	assert.Zero(t, removed)

	// Unknown document behaves the same
	removed, err = store.DeleteDocument(ctx, "doc_never_seen")
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestContentStore_DeleteAll(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddChunks(ctx, makeChunks("doc_1", 2)...))
	require.NoError(t, store.AddChunks(ctx, makeChunks("doc_2", 2)...))
	require.NoError(t, store.AddImages(ctx, &core.ImageRecord{DocumentID: "doc_1", Index: 0}))

	require.NoError(t, store.DeleteAll(ctx))

	docs, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestContentStore_ListDocuments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddChunks(ctx, makeChunks("doc_1", 3)...))
	require.NoError(t, store.AddChunks(ctx, makeChunks("doc_2", 1)...))
	require.NoError(t, store.AddImages(ctx, &core.ImageRecord{DocumentID: "doc_1", Index: 0}))
	require.NoError(t, store.AddTables(ctx,
		&core.TableRecord{DocumentID: "doc_2", Index: 0},
		&core.TableRecord{DocumentID: "doc_2", Index: 1},
	))

	docs, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	byID := map[string]*core.DocumentInfo{}
	for _, doc := range docs {
		byID[doc.DocumentID] = doc
	}

	require.Contains(t, byID, "doc_1")
	assert.Equal(t, 3, byID["doc_1"].Chunks)
	assert.Equal(t, 1, byID["doc_1"].Images)
	assert.Equal(t, 0, byID["doc_1"].Tables)
	assert.Equal(t, "report.pdf", byID["doc_1"].Filename)

	require.Contains(t, byID, "doc_2")
	assert.Equal(t, 1, byID["doc_2"].Chunks)
	assert.Equal(t, 2, byID["doc_2"].Tables)
}

func TestContentStore_ZeroVectorSurvivesStorage(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	record := &core.ChunkRecord{
		DocumentID: "doc_1",
		ChunkIndex: 0,
		Text:       "chunk whose embedding failed",
		Vector:     make([]float32, 8),
	}
	require.NoError(t, store.AddChunks(ctx, record))

	chunks, err := store.GetChunks(ctx, "doc_1")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Len(t, chunks[0].Vector, 8)
	for _, v := range chunks[0].Vector {
		assert.Zero(t, v)
	}
}
