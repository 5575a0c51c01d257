package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/imgpress/pkg/domain/model"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Compression holds compression settings given on the command line
type Compression struct {
	File          string
	MaxSizeMB     float64
	MaxDimension  int
	NoOffload     bool
	Quality       int
	MinQuality    int
	MaxIterations int
	FailurePolicy string
}

// Flags returns CLI flags for compression configuration
func (c *Compression) Flags() []cli.Flag {
	def := model.DefaultCompressionConfig()

	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "TOML file with compression settings",
			Destination: &c.File,
			Sources:     cli.EnvVars("IMGPRESS_CONFIG"),
		},
		&cli.FloatFlag{
			Name:        "max-size-mb",
			Usage:       "Target maximum output size per file in MB",
			Value:       def.MaxSizeMB,
			Destination: &c.MaxSizeMB,
			Sources:     cli.EnvVars("IMGPRESS_MAX_SIZE_MB"),
		},
		&cli.IntFlag{
			Name:        "max-dimension",
			Usage:       "Maximum width or height of an output image in pixels",
			Value:       def.MaxDimension,
			Destination: &c.MaxDimension,
			Sources:     cli.EnvVars("IMGPRESS_MAX_DIMENSION"),
		},
		&cli.BoolFlag{
			Name:        "no-offload",
			Usage:       "Encode on the calling goroutine",
			Destination: &c.NoOffload,
			Sources:     cli.EnvVars("IMGPRESS_NO_OFFLOAD"),
		},
		&cli.IntFlag{
			Name:        "quality",
			Usage:       "Initial WebP quality (1-100)",
			Value:       def.Quality,
			Destination: &c.Quality,
			Sources:     cli.EnvVars("IMGPRESS_QUALITY"),
		},
		&cli.IntFlag{
			Name:        "min-quality",
			Usage:       "Lowest WebP quality tried before shrinking dimensions",
			Value:       def.MinQuality,
			Destination: &c.MinQuality,
			Sources:     cli.EnvVars("IMGPRESS_MIN_QUALITY"),
		},
		&cli.IntFlag{
			Name:        "max-iterations",
			Usage:       "Maximum number of encode attempts per file",
			Value:       def.MaxIterations,
			Destination: &c.MaxIterations,
			Sources:     cli.EnvVars("IMGPRESS_MAX_ITERATIONS"),
		},
		&cli.StringFlag{
			Name:        "failure-policy",
			Usage:       "What to do when a file fails (abort, partial)",
			Value:       string(def.FailurePolicy),
			Destination: &c.FailurePolicy,
			Sources:     cli.EnvVars("IMGPRESS_FAILURE_POLICY"),
		},
	}
}

// Configure builds the compression configuration. Values are taken from the
// defaults, then the TOML file, then flags that were set explicitly.
func (c *Compression) Configure(cmd *cli.Command) (model.CompressionConfig, error) {
	cfg := model.DefaultCompressionConfig()

	if c.File != "" {
		loaded, err := LoadCompressionFile(c.File)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if cmd.IsSet("max-size-mb") {
		cfg.MaxSizeMB = c.MaxSizeMB
	}
	if cmd.IsSet("max-dimension") {
		cfg.MaxDimension = c.MaxDimension
	}
	if cmd.IsSet("no-offload") {
		cfg.Offload = !c.NoOffload
	}
	if cmd.IsSet("quality") {
		cfg.Quality = c.Quality
	}
	if cmd.IsSet("min-quality") {
		cfg.MinQuality = c.MinQuality
	}
	if cmd.IsSet("max-iterations") {
		cfg.MaxIterations = c.MaxIterations
	}
	if cmd.IsSet("failure-policy") {
		cfg.FailurePolicy = model.FailurePolicy(c.FailurePolicy)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadCompressionFile reads a TOML file on top of the default configuration.
// Keys missing from the file keep their default values.
func LoadCompressionFile(path string) (model.CompressionConfig, error) {
	cfg := model.DefaultCompressionConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, goerr.Wrap(err, "failed to parse config file",
			goerr.V("path", path),
			goerr.T(model.ErrTagInvalidInput))
	}
	return cfg, nil
}
