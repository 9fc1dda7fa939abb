package extract

import "errors"

// Config holds tuning parameters for content extraction.
type Config struct {
	// MemoryBudgetMB bounds the raster data held by one page batch.
	// Default: 512
	MemoryBudgetMB int

	// MaxTablesPerPage caps the table-detection pass so a dense page
	// cannot blow up the OCR cost.
	// Default: 20
	MaxTablesPerPage int

	// MinTableArea is the minimum region size, in square pixels, for a
	// detected region to count as a table candidate.
	// Default: 5000
	MinTableArea int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithMemoryBudget sets the page batch memory budget in megabytes.
func WithMemoryBudget(mb int) ConfigOption {
	return func(c *Config) {
		c.MemoryBudgetMB = mb
	}
}

// WithAutoMemoryBudget sizes the memory budget from currently available
// system memory, using half of it, clamped to [64MB, 2048MB]. Falls back
// to the default budget when availability cannot be determined.
func WithAutoMemoryBudget() ConfigOption {
	return func(c *Config) {
		avail := AvailableMemoryMB()
		if avail <= 0 {
			return
		}
		budget := avail / 2
		if budget < 64 {
			budget = 64
		}
		if budget > 2048 {
			budget = 2048
		}
		c.MemoryBudgetMB = budget
	}
}

// WithMaxTablesPerPage sets the per-page table detection cap.
func WithMaxTablesPerPage(n int) ConfigOption {
	return func(c *Config) {
		c.MaxTablesPerPage = n
	}
}

// WithMinTableArea sets the minimum table candidate area in square pixels.
func WithMinTableArea(area int) ConfigOption {
	return func(c *Config) {
		c.MinTableArea = area
	}
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		MemoryBudgetMB:   defaultMemoryBudgetMB,
		MaxTablesPerPage: 20,
		MinTableArea:     5000,
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
	if c.MemoryBudgetMB <= 0 {
		return errors.New("memory budget must be positive")
	}
	if c.MaxTablesPerPage <= 0 {
		return errors.New("max tables per page must be positive")
	}
	if c.MinTableArea <= 0 {
		return errors.New("min table area must be positive")
	}
	return nil
}
