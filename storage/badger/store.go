package badger

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/grayiron/foundrydocs/core"
	"github.com/grayiron/foundrydocs/storage"
)

// ContentStore implements storage.ContentStore for BadgerDB.
type ContentStore struct {
	backend *Backend
}

var _ storage.ContentStore = (*ContentStore)(nil)

// NewContentStore opens a content store at the given path.
func NewContentStore(path string) (storage.ContentStore, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return &ContentStore{backend: backend}, nil
}

// newContentStore wraps an existing backend. Used by tests and the
// in-memory constructor.
func newContentStore(backend *Backend) *ContentStore {
	return &ContentStore{backend: backend}
}

// Close closes the underlying backend.
func (s *ContentStore) Close() error {
	return s.backend.Close()
}

// WithTransaction delegates to the backend.
func (s *ContentStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.backend.WithTransaction(ctx, fn)
}

// AddChunks stores text chunk records. All records land in a single
// transaction; writing an existing key overwrites it in place.
func (s *ContentStore) AddChunks(ctx context.Context, records ...*core.ChunkRecord) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			if err := core.ValidateChunkRecord(record); err != nil {
				return err
			}
			if record.InsertedAt.IsZero() {
				record.InsertedAt = time.Now().UTC()
			}
			key := makeRecordKey(chunkPrefix, core.DocumentID(record.DocumentID), record.ChunkIndex)
			if err := tx.Set(key, storage.MarshalChunkRecord(record)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// AddImages stores image records for a document.
func (s *ContentStore) AddImages(ctx context.Context, records ...*core.ImageRecord) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			if record.DocumentID == "" {
				return core.ErrEmptyDocumentID
			}
			if record.InsertedAt.IsZero() {
				record.InsertedAt = time.Now().UTC()
			}
			key := makeRecordKey(imagePrefix, core.DocumentID(record.DocumentID), record.Index)
			if err := tx.Set(key, storage.MarshalImageRecord(record)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// AddTables stores table records for a document.
func (s *ContentStore) AddTables(ctx context.Context, records ...*core.TableRecord) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			if record.DocumentID == "" {
				return core.ErrEmptyDocumentID
			}
			if record.InsertedAt.IsZero() {
				record.InsertedAt = time.Now().UTC()
			}
			key := makeRecordKey(tablePrefix, core.DocumentID(record.DocumentID), record.Index)
			if err := tx.Set(key, storage.MarshalTableRecord(record)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetChunks retrieves all chunk records for a document, ordered by index.
func (s *ContentStore) GetChunks(ctx context.Context, docID core.DocumentID) ([]*core.ChunkRecord, error) {
	var results []*core.ChunkRecord
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeDocumentPrefix(chunkPrefix, docID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var record *core.ChunkRecord
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalChunkRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			results = append(results, record)
		}
		return nil
	}, false)
	return results, err
}

// UpdateChunkVectors replaces the stored vectors of existing chunks.
func (s *ContentStore) UpdateChunkVectors(ctx context.Context, records ...*core.ChunkRecord) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			key := makeRecordKey(chunkPrefix, core.DocumentID(record.DocumentID), record.ChunkIndex)
			stored, err := readChunk(tx, key)
			if err != nil {
				return err
			}
			if stored == nil {
				return fmt.Errorf("%w: %s", storage.ErrNotFound,
					core.ChunkID(core.DocumentID(record.DocumentID), record.ChunkIndex))
			}
			stored.Vector = record.Vector
			if err := tx.Set(key, storage.MarshalChunkRecord(stored)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// CountDocument reports per-collection record counts for a document.
func (s *ContentStore) CountDocument(ctx context.Context, docID core.DocumentID) (chunks, images, tables int, err error) {
	err = s.backend.WithTx(func(tx *badger.Txn) error {
		chunks = countPrefix(tx, makeDocumentPrefix(chunkPrefix, docID))
		images = countPrefix(tx, makeDocumentPrefix(imagePrefix, docID))
		tables = countPrefix(tx, makeDocumentPrefix(tablePrefix, docID))
		return nil
	}, false)
	return chunks, images, tables, err
}

// DeleteDocument removes every record belonging to a document across all
// three collections. Unknown documents delete zero entries without error.
func (s *ContentStore) DeleteDocument(ctx context.Context, docID core.DocumentID) (int, error) {
	removed := 0
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		for _, prefix := range collectionPrefixes {
			keys, err := collectKeys(tx, makeDocumentPrefix(prefix, docID))
			if err != nil {
				return err
			}
			for _, key := range keys {
				if err := tx.Delete(key); err != nil {
					return err
				}
				removed++
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// DeleteAll removes every record in all three collections.
func (s *ContentStore) DeleteAll(ctx context.Context) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		for _, prefix := range collectionPrefixes {
			keys, err := collectKeys(tx, makeCollectionPrefix(prefix))
			if err != nil {
				return err
			}
			for _, key := range keys {
				if err := tx.Delete(key); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)
}

// ListDocuments enumerates stored documents with per-collection counts.
// Filename and insertion time come from each document's first chunk.
func (s *ContentStore) ListDocuments(ctx context.Context) ([]*core.DocumentInfo, error) {
	infos := make(map[core.DocumentID]*core.DocumentInfo)

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeCollectionPrefix(chunkPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			docID := documentIDFromKey(chunkPrefix, iter.Item().Key())
			if docID == "" {
				continue
			}
			info, ok := infos[docID]
			if !ok {
				var record *core.ChunkRecord
				err := iter.Item().Value(func(val []byte) error {
					var err error
					record, err = storage.UnmarshalChunkRecord(val)
					return err
				})
				if err != nil {
					return err
				}
				info = &core.DocumentInfo{
					DocumentID: string(docID),
					Filename:   record.Filename,
					InsertedAt: record.InsertedAt,
				}
				infos[docID] = info
			}
			info.Chunks++
		}

		for docID, info := range infos {
			info.Images = countPrefix(tx, makeDocumentPrefix(imagePrefix, docID))
			info.Tables = countPrefix(tx, makeDocumentPrefix(tablePrefix, docID))
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	results := make([]*core.DocumentInfo, 0, len(infos))
	for _, info := range infos {
		results = append(results, info)
	}
	return results, nil
}

// Helper methods

// readChunk reads a chunk record from the transaction.
func readChunk(tx *badger.Txn, key []byte) (*core.ChunkRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.ChunkRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalChunkRecord(val)
		return unmarshalErr
	})
	return record, err
}

// collectKeys gathers all keys under a prefix. Keys are copied out so they
// survive after the iterator closes.
func collectKeys(tx *badger.Txn, prefix []byte) ([][]byte, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	opts.PrefetchValues = false
	iter := tx.NewIterator(opts)
	defer iter.Close()

	var keys [][]byte
	for iter.Rewind(); iter.Valid(); iter.Next() {
		keys = append(keys, iter.Item().KeyCopy(nil))
	}
	return keys, nil
}

// countPrefix counts keys under a prefix without fetching values.
func countPrefix(tx *badger.Txn, prefix []byte) int {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	opts.PrefetchValues = false
	iter := tx.NewIterator(opts)
	defer iter.Close()

	count := 0
	for iter.Rewind(); iter.Valid(); iter.Next() {
		if bytes.HasPrefix(iter.Item().Key(), prefix) {
			count++
		}
	}
	return count
}
