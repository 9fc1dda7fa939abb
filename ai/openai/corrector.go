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


package openai

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/grayiron/foundrydocs/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// TextCorrector implements ai.TextCorrector using OpenAI-compatible chat APIs.
type TextCorrector struct {
	client      llms.Model
	temperature float64
	maxTokens   int
	timeout     time.Duration
	logger      *slog.Logger
}

// newTextCorrector is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newTextCorrector(config *ai.Config) (*TextCorrector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for chat
	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.CorrectorHost),
		openai.WithToken("none"),
		openai.WithModel(config.CorrectorModel),
	)
	if err != nil {
		return nil, err
	}

	return &TextCorrector{
		client:      client,
		temperature: config.CorrectionTemperature,
		maxTokens:   config.CorrectionMaxTokens,
		timeout:     config.CorrectionTimeout,
		logger:      slog.Default().With("component", "openai-corrector"),
	}, nil
}

// NewTextCorrector creates a new text corrector using the provided configuration.
//
// Returns ai.TextCorrector interface to enforce abstraction.
func NewTextCorrector(config *ai.Config) (ai.TextCorrector, error) {
	return newTextCorrector(config)
}

// CorrectText sends the text to the model for OCR correction.
// An empty or whitespace-only response falls back to the original text.
func (c *TextCorrector) CorrectText(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(correctionSystemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildCorrectionPrompt(text)),
			},
		},
	}

	response, err := c.client.GenerateContent(ctx, content,
		llms.WithTemperature(c.temperature),
		llms.WithMaxTokens(c.maxTokens))
	if err != nil {
		c.logger.Error("correction call failed", "length", len(text), "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		c.logger.Warn("no choices returned from model, keeping original text")
		return text, nil
	}

	corrected := cleanResponse(response.Choices[0].Content)
	if corrected == "" {
		c.logger.Warn("empty correction response, keeping original text")
		return text, nil
	}

	c.logger.Debug("corrected text batch", "in", len(text), "out", len(corrected))
	return corrected, nil
}
