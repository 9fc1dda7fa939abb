package storage

import (
	"context"

	"github.com/grayiron/foundrydocs/core"
)

// ContentStore persists the three record collections produced by document
// ingestion: text chunks, images, and tables. Implementations must be
// thread-safe and support concurrent access.
type ContentStore interface {
	// AddChunks stores text chunk records. Writes are atomic per call:
	// either all records land or none do. Rewriting an existing chunk
	// key overwrites it in place.
	// Sets InsertedAt timestamp if not already set.
	AddChunks(ctx context.Context, records ...*core.ChunkRecord) error

	// AddImages stores image records for a document.
	AddImages(ctx context.Context, records ...*core.ImageRecord) error

	// AddTables stores table records for a document.
	AddTables(ctx context.Context, records ...*core.TableRecord) error

	// GetChunks retrieves all chunk records for a document, ordered by
	// chunk index. Returns an empty slice if the document is unknown.
	GetChunks(ctx context.Context, docID core.DocumentID) ([]*core.ChunkRecord, error)

	// UpdateChunkVectors replaces the stored vectors of existing chunks.
	// Returns ErrNotFound if any chunk doesn't exist.
	UpdateChunkVectors(ctx context.Context, records ...*core.ChunkRecord) error

	// CountDocument reports how many chunk, image, and table records are
	// stored for a document.
	CountDocument(ctx context.Context, docID core.DocumentID) (chunks, images, tables int, err error)

	// DeleteDocument removes every record belonging to a document across
	// all three collections. Deleting an unknown document is not an
	// error; the call reports how many entries were removed.
	DeleteDocument(ctx context.Context, docID core.DocumentID) (removed int, err error)

	// DeleteAll removes every record in all three collections.
	DeleteAll(ctx context.Context) error

	// ListDocuments enumerates stored documents with per-collection counts.
	ListDocuments(ctx context.Context) ([]*core.DocumentInfo, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}
