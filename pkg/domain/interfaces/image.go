package interfaces

//go:generate moq -out mocks/image_mock.go -pkg mocks . Compressor Archiver Exporter Notifier

import (
	"context"

	"github.com/m-mizutani/imgpress/pkg/domain/model"
)

// Compressor encodes a single image with the given configuration
type Compressor interface {
	// Compress returns the compressed form of file. Errors are tagged with model.ErrTagCompression.
	Compress(ctx context.Context, file *model.InputFile, cfg model.CompressionConfig) (*model.CompressedFile, error)
}

// Archiver bundles entries into a single archive
type Archiver interface {
	// Build returns the archive bytes containing every entry in order
	Build(ctx context.Context, entries []model.ArchiveEntry) ([]byte, error)
}

// Exporter hands a finished file to its destination (local directory, bucket)
type Exporter interface {
	// Export stores data under name
	Export(ctx context.Context, name string, data []byte) error
}

// Notifier reports a finished batch
type Notifier interface {
	// NotifyBatch sends the summary of a completed batch
	NotifyBatch(ctx context.Context, batchID string, summary model.BatchSummary) error
}
