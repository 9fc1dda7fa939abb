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


package ai

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for AI service providers.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	EmbeddingHost string

	// CorrectorHost is the base URL for the text correction service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	CorrectorHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "embeddinggemma", "text-embedding-3-small"
	EmbeddingModel string

	// CorrectorModel is the model identifier for OCR text correction.
	// A small fast model is sufficient here.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	CorrectorModel string

	// EmbeddingDimensions is the vector length the embedding model produces.
	// Used to size zero-vector failure markers.
	// Default: 1536
	EmbeddingDimensions int

	// CorrectionTemperature is the sampling temperature for correction calls.
	// Low values keep the model close to the source text.
	// Default: 0.3
	CorrectionTemperature float64

	// CorrectionMaxTokens caps the correction response length.
	// Default: 1024
	CorrectionMaxTokens int

	// CorrectionTimeout bounds a single correction call.
	// Default: 60s
	CorrectionTimeout time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithCorrectorHost sets the correction service host URL.
func WithCorrectorHost(host string) ConfigOption {
	return func(c *Config) {
		c.CorrectorHost = host
	}
}

// WithHost sets both embedding and corrector hosts to the same URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
		c.CorrectorHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithCorrectorModel sets the corrector model identifier.
func WithCorrectorModel(model string) ConfigOption {
	return func(c *Config) {
		c.CorrectorModel = model
	}
}

// WithEmbeddingDimensions sets the expected embedding vector length.
func WithEmbeddingDimensions(dim int) ConfigOption {
	return func(c *Config) {
		c.EmbeddingDimensions = dim
	}
}

// WithCorrectionTemperature sets the sampling temperature for correction.
func WithCorrectionTemperature(temp float64) ConfigOption {
	return func(c *Config) {
		c.CorrectionTemperature = temp
	}
}

// WithCorrectionMaxTokens sets the correction response token cap.
func WithCorrectionMaxTokens(n int) ConfigOption {
	return func(c *Config) {
		c.CorrectionMaxTokens = n
	}
}

// WithCorrectionTimeout sets the per-call correction timeout.
func WithCorrectionTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.CorrectionTimeout = d
	}
}

// DefaultConfig returns a Config with sensible defaults for local OpenAI-compatible services.
// By default, both embedding and corrector use the same host.
func DefaultConfig() *Config {
	defaultHost := "http://localhost:11434/v1"
	return &Config{
		EmbeddingHost:         defaultHost,
		CorrectorHost:         defaultHost,
		EmbeddingModel:        "embeddinggemma",
		CorrectorModel:        "qwen2.5:3b",
		EmbeddingDimensions:   1536,
		CorrectionTemperature: 0.3,
		CorrectionMaxTokens:   1024,
		CorrectionTimeout:     60 * time.Second,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
// This is the recommended way to create a Config with custom settings.
//
// Example:
//   cfg := NewConfig(
//       WithHost("http://localhost:11434/v1"),
//       WithEmbeddingModel("text-embedding-3-small"),
//   )
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to hosts if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/")
		c.EmbeddingHost = c.EmbeddingHost + "/v1"
	}
	if c.CorrectorHost != "" && !strings.HasSuffix(c.CorrectorHost, "/v1") {
		c.CorrectorHost = strings.TrimSuffix(c.CorrectorHost, "/")
		c.CorrectorHost = c.CorrectorHost + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.CorrectorHost == "" {
		return errors.New("ai config: CorrectorHost is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.CorrectorModel == "" {
		return errors.New("ai config: CorrectorModel is required")
	}
	if c.EmbeddingDimensions <= 0 {
		return errors.New("ai config: EmbeddingDimensions must be positive")
	}
	if c.CorrectionTemperature < 0 || c.CorrectionTemperature > 2 {
		return errors.New("ai config: CorrectionTemperature must be between 0 and 2")
	}
	if c.CorrectionMaxTokens <= 0 {
		return errors.New("ai config: CorrectionMaxTokens must be positive")
	}
	if c.CorrectionTimeout <= 0 {
		return errors.New("ai config: CorrectionTimeout must be positive")
	}
	return nil
}
