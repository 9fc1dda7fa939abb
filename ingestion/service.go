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
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/grayiron/foundrydocs/ai"
	"github.com/grayiron/foundrydocs/core"
	"github.com/grayiron/foundrydocs/correct"
	"github.com/grayiron/foundrydocs/extract"
	"github.com/grayiron/foundrydocs/files"
	"github.com/grayiron/foundrydocs/storage"
)

// submitQueueDepth bounds how many jobs may wait for dispatch. Hitting
// it means uploads are arriving far faster than they can ever process.
const submitQueueDepth = 1024

// Service is the ingestion scheduler: it admits document jobs up to the
// concurrency ceiling, queues the rest in FIFO order, and drives each
// admitted job through extraction, correction, chunking, embedding, and
// storage. Submission never blocks; progress is observable through the
// tracker for the job's whole life.
type Service struct {
	store      storage.ContentStore
	extractor  extract.Extractor
	corrector  *correct.Corrector
	chunker    *Chunker
	embedStage *embeddingStage
	tracker    *Tracker
	fileMgr    *files.Manager
	pool       *ants.Pool
	config     *Config
	logger     *slog.Logger

	mu           sync.Mutex
	closed       bool
	jobs         chan *core.Job
	dispatchDone chan struct{}
	sweepStop    chan struct{}
}

// Option configures a Service.
type Option func(*Service) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewService creates the ingestion service and starts its dispatch and
// sweep loops. Call Release when done.
func NewService(
	store storage.ContentStore,
	provider ai.AIProvider,
	extractor extract.Extractor,
	fileMgr *files.Manager,
	config *Config,
	opts ...Option,
) (*Service, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}
	if extractor == nil {
		return nil, ErrExtractorRequired
	}
	if fileMgr == nil {
		return nil, ErrFileManagerRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	pool, err := ants.NewPool(config.Concurrency)
	if err != nil {
		return nil, err
	}

	s := &Service{
		store:        store,
		extractor:    extractor,
		corrector:    correct.NewCorrector(provider.TextCorrector()),
		chunker:      NewChunker(config),
		embedStage:   newEmbeddingStage(provider.Embedder(), config.FailOnEmbeddingError),
		tracker:      NewTracker(config.CompletedTTL, config.StaleAfter),
		fileMgr:      fileMgr,
		pool:         pool,
		config:       config,
		logger:       slog.Default(),
		jobs:         make(chan *core.Job, submitQueueDepth),
		dispatchDone: make(chan struct{}),
		sweepStop:    make(chan struct{}),
	}

	for _, opt := range opts {
		if optErr := opt(s); optErr != nil {
			pool.Release()
			return nil, optErr
		}
	}

	go s.dispatch()
	go s.sweep()

	return s, nil
}

// Submit accepts a job for asynchronous processing and returns its
// document identity immediately. When the concurrency ceiling is
// reached the job is recorded as Queued with its position; it will run
// when a worker frees up, in submission order.
func (s *Service) Submit(job *core.Job) (core.DocumentID, error) {
	if job == nil {
		return "", fmt.Errorf("job required")
	}
	if err := core.ValidateDocumentID(job.DocumentID); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", ErrServiceClosed
	}

	active, queued := s.tracker.Counts()
	if active >= s.config.Concurrency {
		position := active + queued + 1
		s.tracker.Set(job.DocumentID, core.ProgressRecord{
			Stage:   core.StageQueued,
			Message: fmt.Sprintf("대기 중... (%d번째)", position),
			Details: core.QueueDetails{Position: position},
		})
	} else {
		s.tracker.Set(job.DocumentID, core.ProgressRecord{
			Stage:   core.StagePreparing,
			Message: "처리 준비 중...",
		})
	}

	select {
	case s.jobs <- job:
	default:
		s.tracker.Delete(job.DocumentID)
		return "", fmt.Errorf("submission queue full")
	}

	s.logger.Info("job submitted",
		"document_id", job.DocumentID,
		"filename", job.Filename,
		"active", active,
		"queued", queued)

	return job.DocumentID, nil
}

// Progress returns the current status of a document job.
func (s *Service) Progress(docID core.DocumentID) (core.ProgressRecord, bool) {
	return s.tracker.Get(docID)
}

// Delete removes a document entirely: its progress record, its files,
// and its stored content. Reports how many stored records were removed.
func (s *Service) Delete(ctx context.Context, docID core.DocumentID) (int, error) {
	s.tracker.Delete(docID)

	if err := s.fileMgr.Cleanup(docID); err != nil {
		s.logger.Warn("file cleanup incomplete", "document_id", docID, "error", err)
	}

	return s.store.DeleteDocument(ctx, docID)
}

// ListDocuments enumerates stored documents.
func (s *Service) ListDocuments(ctx context.Context) ([]*core.DocumentInfo, error) {
	return s.store.ListDocuments(ctx)
}

// Release stops accepting jobs, shuts down the dispatcher, the worker
// pool, and the sweep loop. Jobs still waiting in the queue are dropped.
func (s *Service) Release() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.jobs)
	s.mu.Unlock()

	<-s.dispatchDone
	s.pool.Release()
	close(s.sweepStop)
	s.tracker.Close()
}

// dispatch feeds queued jobs into the worker pool in submission order.
// Pool admission blocks when all workers are busy, which is exactly the
// queueing discipline: FIFO, bounded by the concurrency ceiling.
func (s *Service) dispatch() {
	defer close(s.dispatchDone)

	for job := range s.jobs {
		job := job
		if err := s.pool.Submit(func() { s.run(job) }); err != nil {
			s.fail(context.Background(), job.DocumentID, err)
		}
	}
}

// sweep periodically drops stale progress records.
func (s *Service) sweep() {
	ticker := time.NewTicker(s.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tracker.SweepStale()
		case <-s.sweepStop:
			return
		}
	}
}

// chunkStagePercents maps each chunking sub-stage to its slot in the
// progress band.
var chunkStagePercents = map[core.Stage]int{
	core.StageTextPreprocessing: 56,
	core.StageTextSplitting:     58,
	core.StageChunkValidation:   60,
	core.StageChunkCorrection:   61,
	core.StageChunkPreparation:  62,
}

// run executes the full pipeline for one job. Any failure cleans up the
// job's files and stored records and leaves a terminal Error status.
func (s *Service) run(job *core.Job) {
	ctx := context.Background()
	docID := job.DocumentID

	prev, _ := s.tracker.Get(docID)
	wasQueued := prev.Stage == core.StageQueued

	s.update(docID, core.StageStarting, 2, "문서 처리 시작...", core.StartDetails{WasQueued: wasQueued}, 0, 0)
	s.update(docID, core.StageAnalyzing, 5, "문서 분석 중...", nil, 0, 0)

	bundle, err := s.runExtract(ctx, job)
	if err != nil {
		s.fail(ctx, docID, err)
		return
	}

	text := bundle.Text
	if job.OCRCorrect || job.LLMCorrect {
		text = s.runCorrection(ctx, job, text)
	}

	chunks, err := s.runChunking(job, text)
	if err != nil {
		s.fail(ctx, docID, err)
		return
	}

	vectors, err := s.runEmbedding(ctx, docID, chunks)
	if err != nil {
		s.fail(ctx, docID, err)
		return
	}
	if len(vectors) != len(chunks) {
		s.fail(ctx, docID, fmt.Errorf("%w: %d chunks, %d vectors",
			storage.ErrSizeMismatch, len(chunks), len(vectors)))
		return
	}

	s.update(docID, core.StageMetadata, 75, "메타데이터 구성 중...", nil, 0, 0)
	chunkRecords, imageRecords, tableRecords := buildRecords(job, chunks, vectors, bundle)

	s.update(docID, core.StageStoring, 80, "콘텐츠 저장 중...", nil, 0, 0)
	if err := s.storeRecords(ctx, chunkRecords, imageRecords, tableRecords); err != nil {
		s.fail(ctx, docID, err)
		return
	}

	s.update(docID, core.StageCompleted, 100, "처리 완료", core.CompletedDetails{
		TotalPages: bundle.TotalPages,
		Chunks:     len(chunkRecords),
		Images:     len(imageRecords),
		Tables:     len(tableRecords),
		TextLength: len(text),
	}, bundle.TotalPages, bundle.TotalPages)

	s.logger.Info("document ingested",
		"document_id", docID,
		"pages", bundle.TotalPages,
		"chunks", len(chunkRecords),
		"images", len(imageRecords),
		"tables", len(tableRecords))
}

// runExtract drives the extraction stage, mapping page progress into
// the 10-50 percent band.
func (s *Service) runExtract(ctx context.Context, job *core.Job) (*core.ContentBundle, error) {
	docID := job.DocumentID

	stage := core.StageFastExtract
	if job.OCRCorrect {
		stage = core.StageOCR
	}

	opts := extract.Options{
		ContentDir: s.fileMgr.ContentDir(docID),
		ForceOCR:   job.OCRCorrect,
	}

	progress := func(page, total int, substage, message string) {
		percent := 10
		if total > 0 {
			percent = 10 + (40*page)/total
		}
		s.update(docID, stage, percent, message,
			core.ExtractDetails{Substage: substage, PagesDone: page}, page, total)
	}

	bundle, err := s.extractor.Extract(ctx, job.Path, docID, opts, progress)
	if err != nil {
		return nil, err
	}

	s.update(docID, core.StageFastExtract, 50, "콘텐츠 추출 완료", core.ExtractDetails{
		Substage:    "done",
		PagesDone:   bundle.ProcessedPages,
		ImagesFound: len(bundle.Images),
		TablesFound: len(bundle.Tables),
	}, bundle.ProcessedPages, bundle.TotalPages)

	return bundle, nil
}

// runCorrection drives the correction chain, mapping batch progress
// into the 50-55 percent band. Correction never fails the job.
func (s *Service) runCorrection(ctx context.Context, job *core.Job, text string) string {
	docID := job.DocumentID

	s.update(docID, core.StageTextCorrection, 50, "텍스트 교정 중...", nil, 0, 0)

	return s.corrector.Correct(ctx, text, job.LLMCorrect, func(cur, total int, message string) {
		percent := 50
		if total > 0 {
			percent = 50 + (5*cur)/total
		}
		s.update(docID, core.StageTextCorrection, percent, message, core.CorrectionDetails{
			BatchCurrent: cur,
			BatchTotal:   total,
			TextLength:   len(text),
		}, 0, 0)
	})
}

// runChunking drives the chunker, surfacing each sub-stage at its slot
// in the 56-62 percent band.
func (s *Service) runChunking(job *core.Job, text string) ([]string, error) {
	docID := job.DocumentID

	return s.chunker.Chunk(text, job.OCRCorrect, func(stage core.Stage, message string) {
		s.update(docID, stage, chunkStagePercents[stage], message,
			core.ChunkDetails{TextLength: len(text)}, 0, 0)
	})
}

// runEmbedding drives the embedding stage across the 65-74 band.
func (s *Service) runEmbedding(ctx context.Context, docID core.DocumentID, chunks []string) ([][]float32, error) {
	s.update(docID, core.StageEmbedding, 65, "임베딩 생성 중...",
		core.EmbedDetails{Chunks: len(chunks)}, 0, 0)

	return s.embedStage.Embed(ctx, chunks, func(done, total int) {
		percent := 65
		if total > 0 {
			percent = 65 + (9*done)/total
		}
		s.update(docID, core.StageEmbedding, percent,
			fmt.Sprintf("임베딩 생성 중... (%d/%d)", done, total),
			core.EmbedDetails{Chunks: total}, 0, 0)
	})
}

// storeRecords persists all three collections. Each Add call is atomic;
// a failure part-way is repaired by the caller's cleanup.
func (s *Service) storeRecords(ctx context.Context, chunks []*core.ChunkRecord, images []*core.ImageRecord, tables []*core.TableRecord) error {
	if err := s.store.AddChunks(ctx, chunks...); err != nil {
		return err
	}
	if len(images) > 0 {
		if err := s.store.AddImages(ctx, images...); err != nil {
			return err
		}
	}
	if len(tables) > 0 {
		if err := s.store.AddTables(ctx, tables...); err != nil {
			return err
		}
	}
	return nil
}

// buildRecords assembles the persisted record sets from pipeline output.
func buildRecords(job *core.Job, chunks []string, vectors [][]float32, bundle *core.ContentBundle) ([]*core.ChunkRecord, []*core.ImageRecord, []*core.TableRecord) {
	chunkRecords := make([]*core.ChunkRecord, len(chunks))
	for i, chunk := range chunks {
		chunkRecords[i] = &core.ChunkRecord{
			DocumentID:  string(job.DocumentID),
			Filename:    job.Filename,
			ChunkIndex:  i,
			ContentType: "text",
			Text:        chunk,
			Vector:      vectors[i],
		}
	}

	imageRecords := make([]*core.ImageRecord, len(bundle.Images))
	for i, artifact := range bundle.Images {
		imageRecords[i] = &core.ImageRecord{
			DocumentID:  string(job.DocumentID),
			Index:       i,
			Description: fmt.Sprintf("%s %d페이지 이미지 %d", job.Filename, artifact.Page, artifact.Index),
			Artifact:    artifact,
		}
	}

	tableRecords := make([]*core.TableRecord, len(bundle.Tables))
	for i, artifact := range bundle.Tables {
		tableRecords[i] = &core.TableRecord{
			DocumentID: string(job.DocumentID),
			Index:      i,
			Content:    tableContent(artifact),
			Artifact:   artifact,
		}
	}

	return chunkRecords, imageRecords, tableRecords
}

// tableContent renders a table artifact's OCR text as a pipe-separated
// grid, falling back to the raw text when no grid structure is found.
func tableContent(artifact core.TableArtifact) string {
	grid := extract.ParseGrid(artifact.RawText)
	if len(grid) == 0 {
		return artifact.RawText
	}

	rows := make([]string, len(grid))
	for i, row := range grid {
		rows[i] = strings.Join(row, " | ")
	}
	return strings.Join(rows, "\n")
}

// fail cleans up a failed job and records its terminal error status.
// Cleanup is compensating: uploaded file, content directory, and any
// stored records all go, so no orphaned artifacts outlive the job.
func (s *Service) fail(ctx context.Context, docID core.DocumentID, cause error) {
	s.logger.Error("ingestion failed", "document_id", docID, "error", cause)

	if err := s.fileMgr.Cleanup(docID); err != nil {
		s.logger.Warn("file cleanup incomplete", "document_id", docID, "error", err)
	}
	if _, err := s.store.DeleteDocument(ctx, docID); err != nil {
		s.logger.Warn("stored content cleanup failed", "document_id", docID, "error", err)
	}

	prev, _ := s.tracker.Get(docID)
	s.tracker.Set(docID, core.ProgressRecord{
		Stage:   core.StageError,
		Message: cause.Error(),
		Percent: prev.Percent,
		Details: core.ErrorDetails{Reason: cause.Error()},
	})
}

// update writes a fresh progress snapshot for the document.
func (s *Service) update(docID core.DocumentID, stage core.Stage, percent int, message string, details core.Details, page, total int) {
	s.tracker.Set(docID, core.ProgressRecord{
		Stage:       stage,
		Message:     message,
		Percent:     percent,
		CurrentPage: page,
		TotalPages:  total,
		Details:     details,
	})
}
