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

package correct

import (
	"context"
	"log/slog"

	"github.com/grayiron/foundrydocs/ai"
	"github.com/grayiron/foundrydocs/vocab"
)

// defaultBatchSize bounds one LLM correction call. Small language
// models degrade on long inputs, and a failed batch this size loses
// little if it has to fall back.
const defaultBatchSize = 3000

// Corrector runs the correction chain over extracted document text.
type Corrector struct {
	pattern Strategy
	llm     Strategy
	logger  *slog.Logger
}

// Option configures a Corrector.
type Option func(*Corrector)

// WithBatchSize sets the LLM batch size in bytes.
func WithBatchSize(size int) Option {
	return func(c *Corrector) {
		if size > 0 {
			if s, ok := c.llm.(*llmStrategy); ok {
				s.batchSize = size
			}
		}
	}
}

// NewCorrector builds the correction chain. The pattern strategy is
// always present; the LLM strategy is added only when corrector is
// non-nil, and even then it runs only for jobs that ask for it.
func NewCorrector(corrector ai.TextCorrector, opts ...Option) *Corrector {
	logger := slog.Default().With("component", "corrector")

	c := &Corrector{
		pattern: &patternStrategy{terms: vocab.NewCorrector()},
		logger:  logger,
	}
	if corrector != nil {
		c.llm = &llmStrategy{
			corrector: corrector,
			batchSize: defaultBatchSize,
			logger:    logger,
		}
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Correct applies the chain to text. The result is never worse than
// the pattern pass: a failing LLM strategy keeps its input. Correction
// never returns an error; degradation is logged.
func (c *Corrector) Correct(ctx context.Context, text string, useLLM bool, progress ProgressFunc) string {
	if progress == nil {
		progress = func(int, int, string) {}
	}

	strategies := []Strategy{c.pattern}
	if useLLM && c.llm != nil {
		strategies = append(strategies, c.llm)
	}

	current := text
	for _, s := range strategies {
		out, err := s.Try(ctx, current, progress)
		if err != nil {
			c.logger.Warn("correction strategy failed, keeping prior text",
				"strategy", s.Name(), "error", err)
			continue
		}
		current = out
	}
	return current
}
