package config

import (
	"context"

	"github.com/m-mizutani/imgpress/pkg/domain/interfaces"
	"github.com/m-mizutani/imgpress/pkg/infra/storage"
	"github.com/urfave/cli/v3"
)

// Storage holds export destination configuration
type Storage struct {
	OutputDir      string
	GCSBucket      string
	GCSPrefix      string
	GCSCredentials string
}

// Flags returns CLI flags for storage configuration
func (c *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Directory to write compressed files into",
			Destination: &c.OutputDir,
			Sources:     cli.EnvVars("IMGPRESS_OUTPUT"),
		},
		&cli.StringFlag{
			Name:        "gcs-bucket",
			Usage:       "Cloud Storage bucket to upload compressed files to",
			Destination: &c.GCSBucket,
			Sources:     cli.EnvVars("IMGPRESS_GCS_BUCKET"),
		},
		&cli.StringFlag{
			Name:        "gcs-prefix",
			Usage:       "Object name prefix in the Cloud Storage bucket",
			Destination: &c.GCSPrefix,
			Sources:     cli.EnvVars("IMGPRESS_GCS_PREFIX"),
		},
		&cli.StringFlag{
			Name:        "gcs-credentials",
			Usage:       "Service account key file (Application Default Credentials if empty)",
			Destination: &c.GCSCredentials,
			Sources:     cli.EnvVars("IMGPRESS_GCS_CREDENTIALS"),
		},
	}
}

// Exporters builds one exporter per configured destination. The returned
// cleanup function releases clients and must be called when done.
func (c *Storage) Exporters(ctx context.Context) ([]interfaces.Exporter, func(), error) {
	var exporters []interfaces.Exporter
	var closers []func() error

	cleanup := func() {
		for _, closeFn := range closers {
			_ = closeFn()
		}
	}

	if c.OutputDir != "" {
		fs, err := storage.NewFileSystem(c.OutputDir)
		if err != nil {
			return nil, cleanup, err
		}
		exporters = append(exporters, fs)
	}

	if c.GCSBucket != "" {
		opts := []storage.GCSOption{storage.WithPrefix(c.GCSPrefix)}
		if c.GCSCredentials != "" {
			opts = append(opts, storage.WithCredentialsFile(c.GCSCredentials))
		}

		gcs, err := storage.NewGCS(ctx, c.GCSBucket, opts...)
		if err != nil {
			return nil, cleanup, err
		}
		exporters = append(exporters, gcs)
		closers = append(closers, gcs.Close)
	}

	return exporters, cleanup, nil
}
