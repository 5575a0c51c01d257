package storage

import (
	"context"
	"mime"
	"path"
	"path/filepath"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/imgpress/pkg/domain/model"
	"google.golang.org/api/option"
)

// GCS exports files as objects of a Cloud Storage bucket
type GCS struct {
	client *storage.Client
	bucket string
	prefix string
}

// GCSOption is a functional option for GCS
type GCSOption func(*gcsConfig)

type gcsConfig struct {
	prefix      string
	credentials string
	clientOpts  []option.ClientOption
}

// WithPrefix puts every object under prefix
func WithPrefix(prefix string) GCSOption {
	return func(c *gcsConfig) {
		c.prefix = prefix
	}
}

// WithCredentialsFile authenticates with a service account key file instead of ADC
func WithCredentialsFile(path string) GCSOption {
	return func(c *gcsConfig) {
		c.credentials = path
	}
}

// WithClientOptions passes extra options to the storage client (endpoint, HTTP client)
func WithClientOptions(opts ...option.ClientOption) GCSOption {
	return func(c *gcsConfig) {
		c.clientOpts = append(c.clientOpts, opts...)
	}
}

// NewGCS creates a Cloud Storage exporter for bucket
func NewGCS(ctx context.Context, bucket string, opts ...GCSOption) (*GCS, error) {
	if bucket == "" {
		return nil, goerr.New("bucket name is empty", goerr.T(model.ErrTagInvalidInput))
	}

	cfg := &gcsConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	clientOpts := cfg.clientOpts
	if cfg.credentials != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.credentials))
	}

	client, err := storage.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client",
			goerr.V("bucket", bucket),
			goerr.T(model.ErrTagExport))
	}

	return &GCS{
		client: client,
		bucket: bucket,
		prefix: cfg.prefix,
	}, nil
}

// ObjectName returns the object name used for a file name
func (g *GCS) ObjectName(name string) string {
	if g.prefix == "" {
		return name
	}
	return path.Join(g.prefix, name)
}

// Export uploads data as an object
func (g *GCS) Export(ctx context.Context, name string, data []byte) error {
	objName := g.ObjectName(name)
	w := g.client.Bucket(g.bucket).Object(objName).NewWriter(ctx)
	w.ContentType = contentType(name)

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return goerr.Wrap(err, "failed to upload object",
			goerr.V("bucket", g.bucket),
			goerr.V("object", objName),
			goerr.T(model.ErrTagExport))
	}

	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to finalize object upload",
			goerr.V("bucket", g.bucket),
			goerr.V("object", objName),
			goerr.T(model.ErrTagExport))
	}

	ctxlog.From(ctx).Info("Uploaded object",
		"bucket", g.bucket,
		"object", objName,
		"size", len(data),
	)
	return nil
}

// Close releases the storage client
func (g *GCS) Close() error {
	return g.client.Close()
}

func contentType(name string) string {
	ext := filepath.Ext(name)
	if ext == ".zip" {
		return "application/zip"
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}
