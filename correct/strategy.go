package correct

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/grayiron/foundrydocs/ai"
	"github.com/grayiron/foundrydocs/vocab"
)

// ErrAllBatchesFailed indicates every LLM correction call failed, so
// the strategy produced nothing usable.
var ErrAllBatchesFailed = errors.New("all correction batches failed")

// ProgressFunc receives batch-level correction progress.
type ProgressFunc func(batchCurrent, batchTotal int, message string)

// Strategy is one step of the correction chain. Try returns improved
// text or an error; on error the chain keeps the strategy's input.
type Strategy interface {
	Name() string
	Try(ctx context.Context, text string, progress ProgressFunc) (string, error)
}

// patternStrategy applies the deterministic terminology corrector.
// It never fails.
type patternStrategy struct {
	terms *vocab.Corrector
}

func (s *patternStrategy) Name() string { return "pattern" }

func (s *patternStrategy) Try(_ context.Context, text string, _ ProgressFunc) (string, error) {
	return s.terms.Correct(text), nil
}

// llmStrategy sends sentence-bounded batches through a language model.
// A failed batch falls back to its input text; the strategy as a whole
// fails only when every batch fails.
type llmStrategy struct {
	corrector ai.TextCorrector
	batchSize int
	logger    *slog.Logger
}

func (s *llmStrategy) Name() string { return "llm" }

func (s *llmStrategy) Try(ctx context.Context, text string, progress ProgressFunc) (string, error) {
	if progress == nil {
		progress = func(int, int, string) {}
	}

	batches := splitBatches(text, s.batchSize)
	if len(batches) == 0 {
		return text, nil
	}

	total := len(batches)
	corrected := make([]string, 0, total)
	failed := 0

	for i, batch := range batches {
		progress(i+1, total, fmt.Sprintf("LLM 텍스트 교정 중... (%d/%d)", i+1, total))

		out, err := s.corrector.CorrectText(ctx, batch)
		if err != nil {
			s.logger.Warn("correction batch failed", "batch", i+1, "total", total, "error", err)
			failed++
			out = batch
		}
		corrected = append(corrected, out)
	}

	if failed == total {
		return "", fmt.Errorf("%w: %d batches", ErrAllBatchesFailed, total)
	}

	return strings.Join(corrected, "\n"), nil
}

// splitBatches cuts text into pieces of at most size bytes, preferring
// sentence boundaries, then whitespace, then a hard cut on a rune
// boundary. Batches are trimmed; empty pieces are dropped.
func splitBatches(text string, size int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if len(text) <= size {
		return []string{strings.TrimSpace(text)}
	}

	var batches []string
	for len(text) > size {
		cut := batchCut(text, size)
		if piece := strings.TrimSpace(text[:cut]); piece != "" {
			batches = append(batches, piece)
		}
		text = text[cut:]
	}
	if piece := strings.TrimSpace(text); piece != "" {
		batches = append(batches, piece)
	}
	return batches
}

// batchCut picks the cut position for the next batch. Boundary
// characters are ASCII, so byte search is safe; only the hard-cut path
// has to walk back to a rune start.
func batchCut(text string, size int) int {
	window := text[:size]

	if i := strings.LastIndexAny(window, ".!?\n"); i > size/2 {
		return i + 1
	}
	if i := strings.LastIndexAny(window, " \t"); i > size/2 {
		return i + 1
	}

	cut := size
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	if cut == 0 {
		cut = size
	}
	return cut
}
