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

package foundrydocs

import (
	"io"
	"log/slog"

	"github.com/grayiron/foundrydocs/ai"
	"github.com/grayiron/foundrydocs/ai/openai"
	"github.com/grayiron/foundrydocs/extract"
	"github.com/grayiron/foundrydocs/files"
	"github.com/grayiron/foundrydocs/ingestion"
	"github.com/grayiron/foundrydocs/ocr"
	"github.com/grayiron/foundrydocs/ocr/tesseract"
	"github.com/grayiron/foundrydocs/reembed"
	"github.com/grayiron/foundrydocs/storage"
	"github.com/grayiron/foundrydocs/storage/badger"
)

// Database bundles the content store, file storage, AI provider, and
// optional OCR engine behind a single open/close lifecycle. It is the
// entry point for embedding the document service into a host program.
type Database struct {
	store     storage.ContentStore
	provider  ai.AIProvider
	fileMgr   *files.Manager
	ocrEngine ocr.Engine
	extConfig *extract.Config
	logger    *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig      *ai.Config
	uploadDir     string
	extractConfig *extract.Config
	enableOCR     bool
	ocrLanguages  []string
}

// WithAIConfig sets the AI provider configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = config
	}
}

// WithUploadDir sets the directory for uploaded files and extracted
// artifacts. Default is "uploads".
func WithUploadDir(dir string) DatabaseOption {
	return func(o *databaseOptions) {
		o.uploadDir = dir
	}
}

// WithExtractConfig sets the PDF extraction configuration.
func WithExtractConfig(config *extract.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.extractConfig = config
	}
}

// WithOCR enables Tesseract OCR for scanned pages and extracted tables,
// optionally overriding the recognition languages. Without it documents
// still ingest, but image-only pages yield no text.
func WithOCR(languages ...string) DatabaseOption {
	return func(o *databaseOptions) {
		o.enableOCR = true
		o.ocrLanguages = languages
	}
}

// NewDatabase opens the content store at filePath and wires up the
// surrounding services.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig:      ai.DefaultConfig(),
		uploadDir:     "uploads",
		extractConfig: extract.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	store, err := badger.NewContentStore(filePath)
	if err != nil {
		return nil, err
	}

	fileMgr, err := files.NewManager(options.uploadDir)
	if err != nil {
		store.Close()
		return nil, err
	}

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		store.Close()
		return nil, err
	}

	var engine ocr.Engine
	if options.enableOCR {
		var engineOpts []tesseract.Option
		if len(options.ocrLanguages) > 0 {
			engineOpts = append(engineOpts, tesseract.WithLanguages(options.ocrLanguages...))
		}
		engine, err = tesseract.NewEngine(engineOpts...)
		if err != nil {
			provider.Close()
			store.Close()
			return nil, err
		}
	}

	return &Database{
		store:     store,
		provider:  provider,
		fileMgr:   fileMgr,
		ocrEngine: engine,
		extConfig: options.extractConfig,
		logger:    slog.Default(),
	}, nil
}

// Close releases the AI provider, the OCR engine, and the store.
func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}
	if db.ocrEngine != nil {
		if err := db.ocrEngine.Close(); err != nil {
			db.logger.Error("error closing OCR engine", "err", err)
		}
	}

	if err := db.store.Close(); err != nil {
		db.logger.Error("error closing content store", "err", err)
		return err
	}
	return nil
}

// ContentStore exposes the underlying record store.
func (db *Database) ContentStore() storage.ContentStore {
	return db.store
}

// FileManager exposes upload and artifact file storage.
func (db *Database) FileManager() *files.Manager {
	return db.fileMgr
}

// Provider exposes the AI provider.
func (db *Database) Provider() ai.AIProvider {
	return db.provider
}

// NewIngestionService creates the background ingestion scheduler over
// this database's store, files, and AI provider.
func (db *Database) NewIngestionService(config *ingestion.Config, opts ...ingestion.Option) (*ingestion.Service, error) {
	extractor, err := extract.NewExtractor(db.extConfig, db.ocrEngine)
	if err != nil {
		return nil, err
	}
	return ingestion.NewService(db.store, db.provider, extractor, db.fileMgr, config, opts...)
}

// NewReembedder creates a re-embedding pass over the stored chunks,
// reporting progress to the given writer.
func (db *Database) NewReembedder(config *reembed.Config, progress io.Writer) (*reembed.Reembedder, error) {
	return reembed.NewReembedder(db.store, db.provider.Embedder(), config, progress)
}
