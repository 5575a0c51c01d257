package model

import (
	"github.com/m-mizutani/goerr/v2"
)

// OutputFormat is the encoding of compressed files
type OutputFormat string

const (
	FormatWebP OutputFormat = "webp"
)

// FailurePolicy decides what happens to a batch when one file fails
type FailurePolicy string

const (
	// FailureAbort discards the whole batch on the first failure
	FailureAbort FailurePolicy = "abort"
	// FailurePartial keeps every file that compressed successfully
	FailurePartial FailurePolicy = "partial"
)

// CompressionConfig holds settings applied to every file of a batch
type CompressionConfig struct {
	MaxSizeMB     float64       `toml:"max_size_mb"`
	MaxDimension  int           `toml:"max_dimension"`
	Offload       bool          `toml:"offload"`
	Format        OutputFormat  `toml:"format"`
	Quality       int           `toml:"quality"`
	MinQuality    int           `toml:"min_quality"`
	MaxIterations int           `toml:"max_iterations"`
	FailurePolicy FailurePolicy `toml:"failure_policy"`
}

// DefaultCompressionConfig returns the configuration used when nothing is specified
func DefaultCompressionConfig() CompressionConfig {
	return CompressionConfig{
		MaxSizeMB:     1,
		MaxDimension:  1920,
		Offload:       true,
		Format:        FormatWebP,
		Quality:       80,
		MinQuality:    10,
		MaxIterations: 10,
		FailurePolicy: FailureAbort,
	}
}

// MaxSizeBytes returns the output size target in bytes
func (c CompressionConfig) MaxSizeBytes() int64 {
	return int64(c.MaxSizeMB * 1024 * 1024)
}

// Validate checks that every field is usable
func (c CompressionConfig) Validate() error {
	if c.MaxSizeMB <= 0 {
		return goerr.New("max size must be positive",
			goerr.V("max_size_mb", c.MaxSizeMB),
			goerr.T(ErrTagInvalidInput))
	}
	if c.MaxDimension <= 0 {
		return goerr.New("max dimension must be positive",
			goerr.V("max_dimension", c.MaxDimension),
			goerr.T(ErrTagInvalidInput))
	}
	if c.Format != FormatWebP {
		return goerr.New("unsupported output format",
			goerr.V("format", c.Format),
			goerr.T(ErrTagInvalidInput))
	}
	if c.Quality < 1 || c.Quality > 100 {
		return goerr.New("quality must be between 1 and 100",
			goerr.V("quality", c.Quality),
			goerr.T(ErrTagInvalidInput))
	}
	if c.MinQuality < 1 || c.MinQuality > c.Quality {
		return goerr.New("min quality must be between 1 and quality",
			goerr.V("min_quality", c.MinQuality),
			goerr.V("quality", c.Quality),
			goerr.T(ErrTagInvalidInput))
	}
	if c.MaxIterations < 1 {
		return goerr.New("max iterations must be at least 1",
			goerr.V("max_iterations", c.MaxIterations),
			goerr.T(ErrTagInvalidInput))
	}
	switch c.FailurePolicy {
	case FailureAbort, FailurePartial:
	default:
		return goerr.New("unknown failure policy",
			goerr.V("failure_policy", c.FailurePolicy),
			goerr.T(ErrTagInvalidInput))
	}
	return nil
}
