package interfaces

import (
	"context"

	"github.com/m-mizutani/imgpress/pkg/domain/model"
)

// WorkflowUseCase defines the batch compression workflow
type WorkflowUseCase interface {
	// Compress runs a batch over files and replaces the current results
	Compress(ctx context.Context, files []*model.InputFile) (*model.WorkflowState, error)

	// Clear drops the current results
	Clear(ctx context.Context) error

	// State returns a snapshot of the workflow state
	State() *model.WorkflowState

	// Result looks up a single result of the given batch
	Result(batchID string, index int) (*model.CompressionResult, error)

	// Archive bundles the current results into a zip archive
	Archive(ctx context.Context) (*model.Archive, error)

	// Export writes each compressed file and, if requested, the archive to exporter
	Export(ctx context.Context, exporter Exporter, opts model.ExportOptions) error
}
