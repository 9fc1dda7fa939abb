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

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	foundrydocs "github.com/grayiron/foundrydocs"
	"github.com/grayiron/foundrydocs/ai"
	"github.com/grayiron/foundrydocs/core"
	"github.com/grayiron/foundrydocs/ingestion"
	"github.com/grayiron/foundrydocs/reembed"
)

func main() {
	app := &cli.App{
		Name:  "foundrydocs",
		Usage: "Document ingestion service for foundry technical documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
				Value:   "data/db",
				EnvVars: []string{"FOUNDRYDOCS_DB"},
			},
			&cli.StringFlag{
				Name:    "uploads",
				Usage:   "Directory for uploaded files and extracted artifacts",
				Value:   "uploads",
				EnvVars: []string{"FOUNDRYDOCS_UPLOADS"},
			},
			&cli.StringFlag{
				Name:    "ai-host",
				Usage:   "OpenAI-compatible service host URL",
				Value:   "http://localhost:11434/v1",
				EnvVars: []string{"FOUNDRYDOCS_AI_HOST"},
			},
			&cli.StringFlag{
				Name:    "embedding-model",
				Usage:   "Embedding model name",
				Value:   "embeddinggemma",
				EnvVars: []string{"FOUNDRYDOCS_EMBEDDING_MODEL"},
			},
			&cli.StringFlag{
				Name:    "corrector-model",
				Usage:   "Text correction model name",
				Value:   "qwen2.5:3b",
				EnvVars: []string{"FOUNDRYDOCS_CORRECTOR_MODEL"},
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Ingest PDF documents and wait for completion",
				ArgsUsage: "FILE [FILE...]",
				Action:    ingestCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "ocr",
						Usage: "Force OCR on every page and apply pattern correction",
					},
					&cli.BoolFlag{
						Name:  "llm-correct",
						Usage: "Additionally correct extracted text with the LLM",
					},
					&cli.IntFlag{
						Name:  "concurrency",
						Usage: "Number of documents processed at once",
						Value: 2,
					},
					&cli.DurationFlag{
						Name:  "poll-interval",
						Usage: "How often to report progress",
						Value: 500 * time.Millisecond,
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List ingested documents",
				Action: listCommand,
			},
			{
				Name:      "info",
				Aliases:   []string{"status"},
				Usage:     "Show stored record counts for a document",
				ArgsUsage: "DOCUMENT_ID",
				Action:    infoCommand,
			},
			{
				Name:      "delete",
				Usage:     "Delete a document: its records, upload, and artifacts",
				ArgsUsage: "DOCUMENT_ID",
				Action:    deleteCommand,
			},
			{
				Name:   "delete-all",
				Usage:  "Delete every stored record",
				Action: deleteAllCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "yes",
						Usage: "Confirm deletion without prompting",
					},
				},
			},
			{
				Name:   "reembed",
				Usage:  "Regenerate stored chunk vectors",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of chunks to embed in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N chunks",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed embedding calls",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: time.Second,
					},
					&cli.BoolFlag{
						Name:  "only-zero-vectors",
						Usage: "Only repair chunks stored with placeholder zero vectors",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// openDatabase wires the store, files, and AI provider from global flags.
func openDatabase(c *cli.Context, extraOpts ...foundrydocs.DatabaseOption) (*foundrydocs.Database, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("ai-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithCorrectorModel(c.String("corrector-model")),
	)

	opts := append([]foundrydocs.DatabaseOption{
		foundrydocs.WithAIConfig(aiConfig),
		foundrydocs.WithUploadDir(c.String("uploads")),
	}, extraOpts...)

	db, err := foundrydocs.NewDatabase(c.String("db"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one PDF file is required")
	}

	var dbOpts []foundrydocs.DatabaseOption
	if c.Bool("ocr") {
		dbOpts = append(dbOpts, foundrydocs.WithOCR())
	}

	db, err := openDatabase(c, dbOpts...)
	if err != nil {
		return err
	}
	defer db.Close()

	svc, err := db.NewIngestionService(ingestion.NewConfig(
		ingestion.WithConcurrency(c.Int("concurrency")),
	))
	if err != nil {
		return fmt.Errorf("failed to create ingestion service: %w", err)
	}
	defer svc.Release()

	var docIDs []core.DocumentID
	for _, path := range c.Args().Slice() {
		docID, err := submitFile(svc, db, path, c.Bool("ocr"), c.Bool("llm-correct"))
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Submitted %s as %s\n", path, docID)
		docIDs = append(docIDs, docID)
	}

	return pollUntilDone(svc, docIDs, c.Duration("poll-interval"))
}

func submitFile(svc *ingestion.Service, db *foundrydocs.Database, path string, useOCR, useLLM bool) (core.DocumentID, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	filename := filepath.Base(path)
	docID := core.NewDocumentID(filename)

	savedPath, _, err := db.FileManager().SaveUpload(docID, filename, f)
	if err != nil {
		return "", fmt.Errorf("failed to save %s: %w", path, err)
	}

	_, err = svc.Submit(&core.Job{
		DocumentID: docID,
		Path:       savedPath,
		Filename:   filename,
		OCRCorrect: useOCR,
		LLMCorrect: useLLM,
	})
	if err != nil {
		return "", fmt.Errorf("failed to submit %s: %w", path, err)
	}
	return docID, nil
}

// pollUntilDone prints progress for each submitted document until every
// job reaches a terminal stage.
func pollUntilDone(svc *ingestion.Service, docIDs []core.DocumentID, interval time.Duration) error {
	pending := make(map[core.DocumentID]bool, len(docIDs))
	for _, id := range docIDs {
		pending[id] = true
	}

	failed := 0
	for len(pending) > 0 {
		time.Sleep(interval)

		for id := range pending {
			rec, ok := svc.Progress(id)
			if !ok {
				delete(pending, id)
				continue
			}

			fmt.Fprintf(os.Stderr, "%-40s %-16s %3d%%  %s\n", id, rec.Stage, rec.Percent, rec.Message)

			if rec.Stage.Terminal() {
				delete(pending, id)
				if rec.Stage == core.StageError {
					failed++
				}
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(docIDs))
	}
	fmt.Fprintf(os.Stderr, "All %d documents ingested\n", len(docIDs))
	return nil
}

func listCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	docs, err := db.ContentStore().ListDocuments(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		fmt.Println("No documents stored")
		return nil
	}

	fmt.Printf("%-40s %-30s %7s %7s %7s\n", "DOCUMENT ID", "FILENAME", "CHUNKS", "IMAGES", "TABLES")
	for _, doc := range docs {
		fmt.Printf("%-40s %-30s %7d %7d %7d\n",
			doc.DocumentID, doc.Filename, doc.Chunks, doc.Images, doc.Tables)
	}
	return nil
}

func infoCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one document ID is required")
	}
	docID := core.DocumentID(c.Args().First())

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	chunks, images, tables, err := db.ContentStore().CountDocument(context.Background(), docID)
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}

	fmt.Printf("Document:  %s\n", docID)
	fmt.Printf("Chunks:    %d\n", chunks)
	fmt.Printf("Images:    %d\n", images)
	fmt.Printf("Tables:    %d\n", tables)
	fmt.Printf("Artifacts: %v\n", db.FileManager().HasContent(docID))
	return nil
}

func deleteCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one document ID is required")
	}
	docID := core.DocumentID(c.Args().First())

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.FileManager().Cleanup(docID); err != nil {
		slog.Warn("file cleanup incomplete", "document_id", docID, "error", err)
	}

	removed, err := db.ContentStore().DeleteDocument(context.Background(), docID)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	fmt.Printf("Deleted %s (%d records)\n", docID, removed)
	return nil
}

func deleteAllCommand(c *cli.Context) error {
	if !c.Bool("yes") {
		return fmt.Errorf("refusing to delete all records without --yes")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.ContentStore().DeleteAll(context.Background()); err != nil {
		return fmt.Errorf("failed to delete records: %w", err)
	}

	fmt.Println("All records deleted")
	return nil
}

func reembedCommand(c *cli.Context) error {
	config := &reembed.Config{
		BatchSize:       c.Int("batch-size"),
		ReportInterval:  c.Int("report-interval"),
		MaxRetries:      c.Int("max-retries"),
		RetryDelay:      c.Duration("retry-delay"),
		OnlyZeroVectors: c.Bool("only-zero-vectors"),
	}
	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	reembedder, err := db.NewReembedder(config, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "AI host: %s\n", c.String("ai-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if _, err := reembedder.Run(context.Background()); err != nil {
		return fmt.Errorf("re-embedding failed: %w", err)
	}
	return nil
}

// setup loads the optional .env file and configures logging.
func setup(c *cli.Context) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", "error", err)
	}
	return setupLogger(c)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
