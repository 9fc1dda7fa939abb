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

package files

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/grayiron/foundrydocs/core"
)

const (
	// defaultMaxSize caps uploads at 100MB. Scanned foundry manuals are
	// big; anything larger is almost certainly not a document.
	defaultMaxSize = 100 << 20

	pdfHeader = "%PDF-"
)

var (
	// ErrNotPDF indicates the file does not carry a PDF header or extension.
	ErrNotPDF = fmt.Errorf("%w: file is not a PDF", core.ErrUnsupportedFormat)

	// ErrFileTooLarge indicates the upload exceeds the size cap.
	ErrFileTooLarge = errors.New("file exceeds maximum size")

	// ErrEmptyFile indicates a zero-byte upload.
	ErrEmptyFile = errors.New("file is empty")
)

// Manager owns the on-disk layout for uploads and extracted content.
//
//	<base>/<docID>.pdf                 uploaded document
//	<base>/<docID>_content/images/     extracted page images
//	<base>/<docID>_content/tables/     extracted table crops
type Manager struct {
	baseDir string
	maxSize int64
	logger  *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithMaxSize sets the upload size cap in bytes.
func WithMaxSize(size int64) Option {
	return func(m *Manager) {
		if size > 0 {
			m.maxSize = size
		}
	}
}

// NewManager creates a file manager rooted at baseDir, creating the
// directory if needed.
func NewManager(baseDir string, opts ...Option) (*Manager, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	m := &Manager{
		baseDir: baseDir,
		maxSize: defaultMaxSize,
		logger:  slog.Default().With("component", "files"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// UploadPath returns where the document for docID lives on disk.
func (m *Manager) UploadPath(docID core.DocumentID) string {
	return filepath.Join(m.baseDir, string(docID)+".pdf")
}

// ContentDir returns the artifact directory for docID.
func (m *Manager) ContentDir(docID core.DocumentID) string {
	return filepath.Join(m.baseDir, string(docID)+"_content")
}

// SaveUpload validates and persists an uploaded document, returning its
// path and content hash. The filename is only checked for its
// extension; the stored name is derived from docID.
func (m *Manager) SaveUpload(docID core.DocumentID, filename string, r io.Reader) (path, hash string, err error) {
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return "", "", fmt.Errorf("%w: %s", ErrNotPDF, filename)
	}

	data, err := io.ReadAll(io.LimitReader(r, m.maxSize+1))
	if err != nil {
		return "", "", fmt.Errorf("failed to read upload: %w", err)
	}
	if err := m.validate(data); err != nil {
		return "", "", err
	}

	path = m.UploadPath(docID)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", "", fmt.Errorf("failed to save upload: %w", err)
	}

	m.logger.Info("upload saved", "document_id", docID, "size", len(data))
	return path, core.ContentHash(data), nil
}

// validate applies the header and size rules to raw upload bytes.
func (m *Manager) validate(data []byte) error {
	if len(data) == 0 {
		return ErrEmptyFile
	}
	if int64(len(data)) > m.maxSize {
		return fmt.Errorf("%w: %d bytes", ErrFileTooLarge, len(data))
	}
	if !strings.HasPrefix(string(data[:min(len(data), len(pdfHeader))]), pdfHeader) {
		return fmt.Errorf("%w: bad header", ErrNotPDF)
	}
	return nil
}

// Cleanup removes the uploaded file and the content directory for a
// document. Missing paths are not errors; cleanup is idempotent.
func (m *Manager) Cleanup(docID core.DocumentID) error {
	var errs []error

	if err := os.Remove(m.UploadPath(docID)); err != nil && !os.IsNotExist(err) {
		errs = append(errs, err)
	}
	if err := os.RemoveAll(m.ContentDir(docID)); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("cleanup of %s incomplete: %w", docID, errors.Join(errs...))
	}

	m.logger.Debug("document files removed", "document_id", docID)
	return nil
}

// HasContent reports whether any on-disk traces of a document remain.
func (m *Manager) HasContent(docID core.DocumentID) bool {
	if _, err := os.Stat(m.UploadPath(docID)); err == nil {
		return true
	}
	if _, err := os.Stat(m.ContentDir(docID)); err == nil {
		return true
	}
	return false
}
