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

package tesseract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/grayiron/foundrydocs/ocr"
	"github.com/otiai10/gosseract/v2"
)

const defaultTimeout = 30 * time.Second

// Engine implements ocr.Engine on top of a Tesseract client.
// The underlying client is single-threaded, so calls are serialized.
type Engine struct {
	mu        sync.Mutex
	client    *gosseract.Client
	languages []string
	timeout   time.Duration
	closed    bool
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLanguages sets the recognition language models. The default is
// Korean plus English, matching the mixed Hangul and Latin content of
// foundry documentation.
func WithLanguages(languages ...string) Option {
	return func(e *Engine) {
		if len(languages) > 0 {
			e.languages = languages
		}
	}
}

// WithTimeout sets the per-image recognition timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(e *Engine) {
		if timeout > 0 {
			e.timeout = timeout
		}
	}
}

// NewEngine creates a Tesseract-backed recognition engine.
func NewEngine(opts ...Option) (ocr.Engine, error) {
	e := &Engine{
		client:    gosseract.NewClient(),
		languages: []string{"kor", "eng"},
		timeout:   defaultTimeout,
		logger:    slog.Default().With("component", "tesseract-engine"),
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.client.SetLanguage(e.languages...); err != nil {
		e.client.Close()
		return nil, fmt.Errorf("failed to set languages %v: %w", e.languages, err)
	}

	return e, nil
}

// ImageText recognizes text in an encoded image.
func (e *Engine) ImageText(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", ocr.ErrEmptyImage
	}

	e.mu.Lock()

	if e.closed {
		e.mu.Unlock()
		return "", ocr.ErrEngineClosed
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	if err := e.client.SetImageFromBytes(image); err != nil {
		e.mu.Unlock()
		return "", fmt.Errorf("%w: %v", ocr.ErrRecognitionFailed, err)
	}

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		text, err := e.client.Text()
		done <- result{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		// Tesseract cannot cancel a running recognition. The result is
		// discarded, and the mutex is held until the abandoned call
		// finishes so the client is never used from two goroutines.
		go func() {
			<-done
			e.mu.Unlock()
		}()
		e.logger.Warn("recognition timed out", "timeout", e.timeout)
		return "", fmt.Errorf("%w: %v", ocr.ErrRecognitionFailed, ctx.Err())
	case res := <-done:
		e.mu.Unlock()
		if res.err != nil {
			return "", fmt.Errorf("%w: %v", ocr.ErrRecognitionFailed, res.err)
		}
		return strings.TrimSpace(res.text), nil
	}
}

// Close releases the Tesseract client.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true
	return e.client.Close()
}
