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

package extract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	_ "image/jpeg"

	"github.com/grayiron/foundrydocs/core"
	"github.com/grayiron/foundrydocs/ocr"
	"github.com/grayiron/foundrydocs/vocab"
)

// ProgressFunc receives fine-grained extraction progress. The substage
// tag identifies the sub-step within the page ("text", "ocr", "images",
// "tables", "table_ocr").
type ProgressFunc func(page, total int, substage, message string)

// Options control a single extraction run.
type Options struct {
	// ContentDir is the directory receiving image and table artifact
	// files, laid out as ContentDir/images and ContentDir/tables.
	ContentDir string

	// ForceOCR runs recognition on every page's raster content even
	// when selectable text is present. Scanned manuals sometimes carry
	// a broken hidden text layer worth ignoring.
	ForceOCR bool
}

// Extractor pulls text, images, and tables out of PDF documents.
type Extractor interface {
	// Extract processes the document at path. Per-page failures are
	// recorded inline and do not abort the run; the returned bundle
	// always reflects every page that could be touched. Fails with
	// core.ErrFileMissing, core.ErrOpenFailure, or
	// core.ErrEmptyExtraction.
	Extract(ctx context.Context, path string, docID core.DocumentID, opts Options, progress ProgressFunc) (*core.ContentBundle, error)
}

type extractor struct {
	config *Config
	engine ocr.Engine
	terms  *vocab.Corrector
	open   sourceOpener
	logger *slog.Logger
}

// NewExtractor creates a content extractor. The recognition engine is
// optional: with a nil engine, scanned pages yield no text and table
// regions are saved without OCR content.
func NewExtractor(config *Config, engine ocr.Engine) (Extractor, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &extractor{
		config: config,
		engine: engine,
		terms:  vocab.NewCorrector(),
		open:   openPDF,
		logger: slog.Default().With("component", "extractor"),
	}, nil
}

func (e *extractor) Extract(ctx context.Context, path string, docID core.DocumentID, opts Options, progress ProgressFunc) (*core.ContentBundle, error) {
	if progress == nil {
		progress = func(int, int, string, string) {}
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", core.ErrFileMissing, path)
	}

	src, err := e.open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrOpenFailure, err)
	}
	defer src.Close()

	total := src.PageCount()
	bundle := &core.ContentBundle{
		ContentDir: opts.ContentDir,
		TotalPages: total,
	}

	if opts.ContentDir != "" {
		for _, sub := range []string{"images", "tables"} {
			if err := os.MkdirAll(filepath.Join(opts.ContentDir, sub), 0o755); err != nil {
				return nil, fmt.Errorf("%w: %v", core.ErrOpenFailure, err)
			}
		}
	}

	e.logger.Info("extraction started",
		"document_id", docID,
		"pages", total,
		"batch_size", pageBatchSize(e.config.MemoryBudgetMB),
		"force_ocr", opts.ForceOCR)

	var text strings.Builder
	batch := pageBatchSize(e.config.MemoryBudgetMB)

	for start := 1; start <= total; start += batch {
		end := min(start+batch-1, total)

		for page := start; page <= end; page++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			result := e.processPage(ctx, src, page, total, docID, opts, bundle, &text, progress)
			bundle.PageResults = append(bundle.PageResults, result)
			bundle.ProcessedPages++
			if result.Failed {
				bundle.FailedPages++
			}
		}

		// Raster buffers for the finished batch are unreachable now.
		// Collect before decoding the next batch so peak memory stays
		// bounded by one batch regardless of document length.
		runtime.GC()
	}

	bundle.Text = strings.TrimSpace(text.String())

	if bundle.Empty() {
		return nil, fmt.Errorf("%w: %s", core.ErrEmptyExtraction, path)
	}

	e.logger.Info("extraction finished",
		"document_id", docID,
		"text_length", len(bundle.Text),
		"images", len(bundle.Images),
		"tables", len(bundle.Tables),
		"failed_pages", bundle.FailedPages)

	return bundle, nil
}

// processPage handles one page end to end. Failures are folded into the
// returned PageResult and, for text failures, into an inline marker so
// downstream stages see where a page went missing.
func (e *extractor) processPage(ctx context.Context, src pageSource, page, total int, docID core.DocumentID, opts Options, bundle *core.ContentBundle, text *strings.Builder, progress ProgressFunc) core.PageResult {
	result := core.PageResult{Page: page}

	progress(page, total, "text", fmt.Sprintf("페이지 %d/%d 텍스트 추출 중...", page, total))

	pageText, err := src.PageText(page)
	if err != nil {
		e.logger.Warn("page text extraction failed", "page", page, "error", err)
		result.Failed = true
		result.Err = err.Error()
		pageText = fmt.Sprintf("[Error processing page %d: %v]", page, err)
	}

	progress(page, total, "images", fmt.Sprintf("페이지 %d/%d 이미지 추출 중...", page, total))

	images, err := src.PageImages(page)
	if err != nil {
		e.logger.Warn("page image extraction failed", "page", page, "error", err)
	}

	if !result.Failed && e.engine != nil && len(images) > 0 && (pageText == "" || opts.ForceOCR) {
		progress(page, total, "ocr", fmt.Sprintf("페이지 %d/%d OCR 처리 중...", page, total))

		ocrText, ocrErr := e.engine.ImageText(ctx, largestImage(images).Data)
		switch {
		case ocrErr != nil:
			e.logger.Warn("page recognition failed", "page", page, "error", ocrErr)
			pageText = joinPageText(pageText, fmt.Sprintf("[OCR Error on page %d: %v]", page, ocrErr))
		case ocrText != "":
			pageText = joinPageText(pageText, ocrText)
		}
	}

	if opts.ContentDir != "" {
		for i, img := range images {
			artifact, saveErr := e.saveImage(docID, page, i+1, img, opts.ContentDir)
			if saveErr != nil {
				e.logger.Warn("image artifact save failed", "page", page, "index", i+1, "error", saveErr)
				continue
			}
			bundle.Images = append(bundle.Images, artifact)
			result.Images++
		}

		if len(images) > 0 {
			result.Tables = e.extractTables(ctx, page, total, docID, images, opts.ContentDir, bundle, progress)
		}
	}

	if pageText != "" {
		if text.Len() > 0 {
			text.WriteByte('\n')
		}
		text.WriteString(pageText)
		result.TextLength = len(pageText)
	}

	return result
}

// saveImage writes one embedded image to the content directory.
func (e *extractor) saveImage(docID core.DocumentID, page, index int, img pageImage, contentDir string) (core.ImageArtifact, error) {
	ext := img.FileType
	if ext == "" {
		ext = "png"
	}

	filename := core.ArtifactFilename(docID, page, index, ext)
	path := filepath.Join(contentDir, "images", filename)
	if err := os.WriteFile(path, img.Data, 0o644); err != nil {
		return core.ImageArtifact{}, err
	}

	return core.ImageArtifact{
		Filename:  filename,
		Path:      path,
		Page:      page,
		Index:     index,
		SizeBytes: int64(len(img.Data)),
	}, nil
}

// extractTables runs table detection over the page's largest raster
// image, crops each candidate region to its own PNG artifact, and OCRs
// the region. Returns the number of tables kept.
func (e *extractor) extractTables(ctx context.Context, page, total int, docID core.DocumentID, images []pageImage, contentDir string, bundle *core.ContentBundle, progress ProgressFunc) int {
	progress(page, total, "tables", fmt.Sprintf("페이지 %d/%d 표 감지 중...", page, total))

	pageImg, _, err := image.Decode(bytes.NewReader(largestImage(images).Data))
	if err != nil {
		e.logger.Debug("page image not decodable for table detection", "page", page, "error", err)
		return 0
	}

	regions := detectTableRegions(pageImg, e.config.MinTableArea, e.config.MaxTablesPerPage)
	if len(regions) == 0 {
		return 0
	}

	sub, ok := pageImg.(interface {
		SubImage(image.Rectangle) image.Image
	})
	if !ok {
		return 0
	}

	kept := 0
	for i, region := range regions {
		index := i + 1
		progress(page, total, "table_ocr", fmt.Sprintf("표 %d/%d OCR 중... (%d/%d)", index, len(regions), page, total))

		var buf bytes.Buffer
		if err := png.Encode(&buf, sub.SubImage(region)); err != nil {
			e.logger.Warn("table region encode failed", "page", page, "index", index, "error", err)
			continue
		}

		filename := core.TableFilename(docID, page, index)
		path := filepath.Join(contentDir, "tables", filename)
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			e.logger.Warn("table artifact save failed", "page", page, "index", index, "error", err)
			continue
		}

		rawText := ""
		if e.engine != nil {
			recognized, ocrErr := e.engine.ImageText(ctx, buf.Bytes())
			if ocrErr != nil {
				e.logger.Warn("table recognition failed", "page", page, "index", index, "error", ocrErr)
			} else {
				rawText = e.terms.Correct(recognized)
			}
		}

		bundle.Tables = append(bundle.Tables, core.TableArtifact{
			Filename:  filename,
			Path:      path,
			Page:      page,
			Index:     index,
			X:         region.Min.X,
			Y:         region.Min.Y,
			Width:     region.Dx(),
			Height:    region.Dy(),
			RawText:   rawText,
			SizeBytes: int64(buf.Len()),
		})
		kept++
	}
	return kept
}

// largestImage picks the page's biggest embedded raster, used as a
// stand-in for a full page render, which the PDF toolkit cannot produce.
// Scanned pages embed exactly one full-page image, so this is exact for
// the documents that need OCR most.
func largestImage(images []pageImage) pageImage {
	best := images[0]
	for _, img := range images[1:] {
		if len(img.Data) > len(best.Data) {
			best = img
		}
	}
	return best
}

func joinPageText(existing, extra string) string {
	if existing == "" {
		return extra
	}
	return existing + "\n" + extra
}
