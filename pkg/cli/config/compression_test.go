package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/imgpress/pkg/cli/config"
	"github.com/m-mizutani/imgpress/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// runCompression parses args with the compression flags and returns the resulting configuration
func runCompression(t *testing.T, args ...string) (model.CompressionConfig, error) {
	t.Helper()
	var c config.Compression
	var cfg model.CompressionConfig
	var cfgErr error

	cmd := &cli.Command{
		Name:  "test",
		Flags: c.Flags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, cfgErr = c.Configure(cmd)
			return nil
		},
	}
	gt.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
	return cfg, cfgErr
}

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "imgpress.toml")
	gt.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestCompression_Configure(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := runCompression(t)
		gt.NoError(t, err)
		gt.V(t, cfg).Equal(model.DefaultCompressionConfig())
	})

	t.Run("flags override defaults", func(t *testing.T) {
		cfg, err := runCompression(t, "--max-size-mb", "0.5", "--quality", "60", "--no-offload", "--failure-policy", "partial")
		gt.NoError(t, err)
		gt.V(t, cfg.MaxSizeMB).Equal(0.5)
		gt.V(t, cfg.Quality).Equal(60)
		gt.False(t, cfg.Offload)
		gt.V(t, cfg.FailurePolicy).Equal(model.FailurePartial)
		gt.V(t, cfg.MaxDimension).Equal(1920)
	})

	t.Run("file overrides defaults and flags override file", func(t *testing.T) {
		path := writeConfigFile(t, `
max_size_mb = 2.0
max_dimension = 1024
quality = 70
`)
		cfg, err := runCompression(t, "--config", path, "--quality", "90")
		gt.NoError(t, err)
		gt.V(t, cfg.MaxSizeMB).Equal(2.0)
		gt.V(t, cfg.MaxDimension).Equal(1024)
		gt.V(t, cfg.Quality).Equal(90)
		gt.V(t, cfg.MinQuality).Equal(10)
		gt.True(t, cfg.Offload)
	})

	t.Run("invalid value is rejected", func(t *testing.T) {
		_, err := runCompression(t, "--failure-policy", "retry")
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagInvalidInput))
	})

	t.Run("broken file", func(t *testing.T) {
		path := writeConfigFile(t, "max_size_mb = [")
		_, err := runCompression(t, "--config", path)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagInvalidInput))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := runCompression(t, "--config", filepath.Join(t.TempDir(), "missing.toml"))
		gt.Error(t, err)
	})
}
