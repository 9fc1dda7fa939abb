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
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tmc/langchaingo/textsplitter"

	"github.com/grayiron/foundrydocs/core"
	"github.com/grayiron/foundrydocs/vocab"
)

// ChunkProgressFunc receives chunking sub-stage transitions. Each
// sub-stage fires once; percent mapping is the caller's concern.
type ChunkProgressFunc func(stage core.Stage, message string)

// Chunker splits corrected document text into bounded overlapping
// chunks ready for embedding.
type Chunker struct {
	splitter  textsplitter.RecursiveCharacter
	terms     *vocab.Corrector
	minLength int
	logger    *slog.Logger
}

// NewChunker creates a chunker from the service configuration.
func NewChunker(config *Config) *Chunker {
	return &Chunker{
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(config.ChunkSize),
			textsplitter.WithChunkOverlap(config.ChunkOverlap),
			textsplitter.WithSeparators([]string{"\n\n", "\n", " ", ""}),
		),
		terms:     vocab.NewCorrector(),
		minLength: config.MinChunkLength,
		logger:    slog.Default().With("component", "chunker"),
	}
}

var excessNewlinesRe = regexp.MustCompile(`\n{3,}`)

// Chunk splits text into chunks, reporting each sub-stage as it starts.
// Sub-stages are reported even for short texts so a polling UI never
// sees the stage sequence skip. With applyCorrection set, each chunk
// additionally gets a terminology correction pass.
func (c *Chunker) Chunk(text string, applyCorrection bool, progress ChunkProgressFunc) ([]string, error) {
	if progress == nil {
		progress = func(core.Stage, string) {}
	}

	progress(core.StageTextPreprocessing, "텍스트 전처리 중...")
	normalized := preprocess(text)

	progress(core.StageTextSplitting, "텍스트 분할 중...")
	pieces, err := c.splitter.SplitText(normalized)
	if err != nil {
		return nil, err
	}

	progress(core.StageChunkValidation, "청크 검증 중...")
	chunks := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if utf8.RuneCountInString(piece) >= c.minLength {
			chunks = append(chunks, piece)
		}
	}

	if applyCorrection {
		progress(core.StageChunkCorrection, "청크 용어 교정 중...")
		for i, chunk := range chunks {
			chunks[i] = c.terms.Correct(chunk)
		}
	}

	progress(core.StageChunkPreparation, "청크 준비 중...")
	c.logger.Debug("text chunked",
		"input_length", len(text),
		"pieces", len(pieces),
		"kept", len(chunks))

	return chunks, nil
}

// preprocess normalizes line endings and collapses runs of blank lines
// so the paragraph separator behaves consistently.
func preprocess(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = excessNewlinesRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
