package core

//go:generate go run ../cmd/musgen

import (
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
	"github.com/google/uuid"
)

// DocumentID is the unique key for a single ingested document.
// It is derived from the original filename plus a random suffix, so two
// uploads of the same file never collide.
type DocumentID string

// NewDocumentID derives a document identity from the original filename.
// The filename stem is sanitized to key-safe characters and suffixed with
// the first eight hex digits of a random UUID.
func NewDocumentID(filename string) DocumentID {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	stem = sanitizeKey(stem)
	if stem == "" {
		stem = "document"
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return DocumentID(stem + "_" + suffix)
}

func sanitizeKey(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return strings.Trim(sb.String(), "_")
}

// ContentHash returns the hex-encoded BLAKE2b-256 digest of the given bytes.
// Used for upload validation and deduplication hints.
func ContentHash(data []byte) string {
	h, _ := blake2b.New(32, nil)
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Job is the unit of work handed to the ingestion scheduler.
// A job is owned exclusively by the worker executing it.
type Job struct {
	DocumentID DocumentID
	Path       string // path to the uploaded source file
	Filename   string // original filename as uploaded
	OCRCorrect bool   // apply pattern-based OCR correction
	LLMCorrect bool   // additionally apply LLM batch correction
}

// Stage identifies the current step of a document job.
type Stage int

const (
	StageUnknown Stage = iota
	StageQueued
	StagePreparing
	StageStarting
	StageAnalyzing
	StageOCR
	StageFastExtract
	StageTextCorrection
	StageTextPreprocessing
	StageTextSplitting
	StageChunkValidation
	StageChunkCorrection
	StageChunkPreparation
	StageEmbedding
	StageMetadata
	StageStoring
	StageCompleted
	StageError
)

var stageNames = map[Stage]string{
	StageUnknown:           "Unknown",
	StageQueued:            "Queued",
	StagePreparing:         "Preparing",
	StageStarting:          "Starting",
	StageAnalyzing:         "Analyzing",
	StageOCR:               "OCR",
	StageFastExtract:       "FastExtract",
	StageTextCorrection:    "TextCorrection",
	StageTextPreprocessing: "TextPreprocessing",
	StageTextSplitting:     "TextSplitting",
	StageChunkValidation:   "ChunkValidation",
	StageChunkCorrection:   "ChunkCorrection",
	StageChunkPreparation:  "ChunkPreparation",
	StageEmbedding:         "Embedding",
	StageMetadata:          "Metadata",
	StageStoring:           "Storing",
	StageCompleted:         "Completed",
	StageError:             "Error",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Terminal reports whether the stage is a terminal state.
func (s Stage) Terminal() bool {
	return s == StageCompleted || s == StageError
}

// Active reports whether a job in this stage counts against the
// concurrency ceiling. Queued jobs do not: they are waiting for admission.
func (s Stage) Active() bool {
	return s != StageQueued && !s.Terminal() && s != StageUnknown
}

// Details carries stage-specific progress fields. Exactly one concrete
// variant is attached per record, discriminated by the record's Stage.
type Details interface {
	stageDetails()
}

// QueueDetails describes a job waiting for pool admission.
type QueueDetails struct {
	Position int // 1-based position among submitted jobs
}

// StartDetails describes a job that has just been picked up by a worker.
type StartDetails struct {
	WasQueued bool
}

// ExtractDetails describes progress through the extraction stage.
type ExtractDetails struct {
	Substage    string // text, images, tables, table_detection, table_ocr
	PagesDone   int
	ImagesFound int
	TablesFound int
}

// CorrectionDetails describes progress through LLM batch correction.
type CorrectionDetails struct {
	BatchCurrent int
	BatchTotal   int
	TextLength   int
}

// ChunkDetails describes progress through the chunking sub-stages.
type ChunkDetails struct {
	TextLength int
	Chunks     int
}

// EmbedDetails describes progress through embedding generation.
type EmbedDetails struct {
	Chunks int
}

// CompletedDetails summarizes a successfully ingested document.
type CompletedDetails struct {
	TotalPages int
	Chunks     int
	Images     int
	Tables     int
	TextLength int
}

// ErrorDetails carries the failure reason for a terminal error.
type ErrorDetails struct {
	Reason string
}

func (QueueDetails) stageDetails()      {}
func (StartDetails) stageDetails()      {}
func (ExtractDetails) stageDetails()    {}
func (CorrectionDetails) stageDetails() {}
func (ChunkDetails) stageDetails()      {}
func (EmbedDetails) stageDetails()      {}
func (CompletedDetails) stageDetails()  {}
func (ErrorDetails) stageDetails()      {}

// ProgressRecord is the status snapshot for one document job.
// Records are replaced wholesale on every update; readers always observe a
// complete, consistent snapshot.
type ProgressRecord struct {
	Stage       Stage
	Message     string
	Percent     int
	CurrentPage int
	TotalPages  int
	Details     Details
	Timestamp   time.Time
}

// ImageArtifact is a raster image extracted from a document page.
// Immutable once extracted.
type ImageArtifact struct {
	Filename  string
	Path      string
	Page      int // 1-based source page
	Index     int // 1-based index within the page
	SizeBytes int64
}

// TableArtifact is a detected tabular region extracted from a document page.
// Immutable once extracted.
type TableArtifact struct {
	Filename  string
	Path      string
	Page      int
	Index     int
	X         int
	Y         int
	Width     int
	Height    int
	RawText   string
	SizeBytes int64
}

// PageResult records the outcome of processing a single page.
type PageResult struct {
	Page       int
	Failed     bool
	Err        string
	TextLength int
	Images     int
	Tables     int
}

// ContentBundle aggregates everything extracted from one document.
// It is owned by the worker for the job's duration and never shared.
type ContentBundle struct {
	Text           string
	Images         []ImageArtifact
	Tables         []TableArtifact
	ContentDir     string
	TotalPages     int
	ProcessedPages int
	FailedPages    int
	PageResults    []PageResult
}

// Empty reports whether extraction produced no content at all.
func (b *ContentBundle) Empty() bool {
	return strings.TrimSpace(b.Text) == "" && len(b.Images) == 0 && len(b.Tables) == 0
}

// ChunkRecord is the persisted form of a text chunk paired with its vector.
type ChunkRecord struct {
	DocumentID  string
	Filename    string
	ChunkIndex  int
	ContentType string
	Text        string
	Vector      []float32
	InsertedAt  time.Time
}

// ImageRecord is the persisted form of an image artifact.
type ImageRecord struct {
	DocumentID  string
	Index       int
	Description string
	Artifact    ImageArtifact
	InsertedAt  time.Time
}

// TableRecord is the persisted form of a table artifact.
type TableRecord struct {
	DocumentID string
	Index      int
	Content    string
	Artifact   TableArtifact
	InsertedAt time.Time
}

// DocumentInfo summarizes a stored document for listing.
type DocumentInfo struct {
	DocumentID string
	Filename   string
	Chunks     int
	Images     int
	Tables     int
	InsertedAt time.Time
}
