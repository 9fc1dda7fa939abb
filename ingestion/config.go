package ingestion

import (
	"errors"
	"time"
)

// Config holds tuning parameters for the ingestion service.
type Config struct {
	// Concurrency is the number of documents processed at once; jobs
	// beyond it queue on worker pool admission.
	// Default: 2
	Concurrency int

	// ChunkSize is the maximum chunk length in characters.
	// Default: 1000
	ChunkSize int

	// ChunkOverlap is the character overlap between adjacent chunks.
	// Default: 150
	ChunkOverlap int

	// MinChunkLength drops chunks shorter than this many characters
	// after splitting; fragments below it carry no retrievable meaning.
	// Default: 10
	MinChunkLength int

	// FailOnEmbeddingError makes a failed embedding batch fail the whole
	// job. When false (the default) failed batches store zero vectors,
	// keeping document availability at the cost of retrieval quality for
	// those chunks.
	FailOnEmbeddingError bool

	// CompletedTTL is how long a Completed progress record stays
	// visible before automatic eviction.
	// Default: 15s
	CompletedTTL time.Duration

	// StaleAfter is the age at which terminal progress records
	// (including Error, which has no eviction timer) are swept.
	// Default: 1h
	StaleAfter time.Duration

	// SweepInterval is how often the stale sweep runs.
	// Default: 10m
	SweepInterval time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithConcurrency sets the simultaneous document ceiling.
func WithConcurrency(n int) ConfigOption {
	return func(c *Config) {
		c.Concurrency = n
	}
}

// WithChunking sets the chunk size and overlap.
func WithChunking(size, overlap int) ConfigOption {
	return func(c *Config) {
		c.ChunkSize = size
		c.ChunkOverlap = overlap
	}
}

// WithMinChunkLength sets the minimum kept chunk length.
func WithMinChunkLength(n int) ConfigOption {
	return func(c *Config) {
		c.MinChunkLength = n
	}
}

// WithFailOnEmbeddingError makes embedding batch failures fatal for the
// job instead of degrading to zero vectors.
func WithFailOnEmbeddingError() ConfigOption {
	return func(c *Config) {
		c.FailOnEmbeddingError = true
	}
}

// WithCompletedTTL sets the Completed record eviction delay.
func WithCompletedTTL(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.CompletedTTL = d
	}
}

// WithStaleAfter sets the terminal record sweep age.
func WithStaleAfter(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.StaleAfter = d
	}
}

// WithSweepInterval sets how often stale records are swept.
func WithSweepInterval(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.SweepInterval = d
	}
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Concurrency:    2,
		ChunkSize:      1000,
		ChunkOverlap:   150,
		MinChunkLength: 10,
		CompletedTTL:   15 * time.Second,
		StaleAfter:     time.Hour,
		SweepInterval:  10 * time.Minute,
	}
}

// NewConfig creates a configuration with the given options applied on
// top of the defaults.
func NewConfig(opts ...ConfigOption) *Config {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	if c.Concurrency < 1 {
		return errors.New("concurrency must be at least 1")
	}
	if c.ChunkSize < 1 {
		return errors.New("chunk size must be positive")
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return errors.New("chunk overlap must be non-negative and smaller than chunk size")
	}
	if c.MinChunkLength < 0 {
		return errors.New("min chunk length must be non-negative")
	}
	if c.CompletedTTL <= 0 || c.StaleAfter <= 0 || c.SweepInterval <= 0 {
		return errors.New("tracker durations must be positive")
	}
	return nil
}
