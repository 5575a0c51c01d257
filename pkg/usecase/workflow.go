package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/imgpress/pkg/domain/interfaces"
	"github.com/m-mizutani/imgpress/pkg/domain/model"
	"github.com/m-mizutani/imgpress/pkg/utils/async"
)

// Workflow runs compression batches and owns their results. Only one batch
// runs at a time; Compress and Clear are refused while a batch is in flight.
type Workflow struct {
	compressor interfaces.Compressor
	archiver   interfaces.Archiver
	notifier   interfaces.Notifier
	cfg        model.CompressionConfig
	newID      func() string

	notifications async.Group

	mu    sync.RWMutex
	state model.WorkflowState
}

var _ interfaces.WorkflowUseCase = (*Workflow)(nil)

// WorkflowOption is a functional option for Workflow
type WorkflowOption func(*Workflow)

// WithConfig replaces the default compression configuration
func WithConfig(cfg model.CompressionConfig) WorkflowOption {
	return func(w *Workflow) {
		w.cfg = cfg
	}
}

// WithNotifier reports every successful batch to n
func WithNotifier(n interfaces.Notifier) WorkflowOption {
	return func(w *Workflow) {
		w.notifier = n
	}
}

// WithIDGenerator replaces the batch ID generator
func WithIDGenerator(f func() string) WorkflowOption {
	return func(w *Workflow) {
		w.newID = f
	}
}

// NewWorkflow creates a new Workflow
func NewWorkflow(compressor interfaces.Compressor, archiver interfaces.Archiver, opts ...WorkflowOption) *Workflow {
	w := &Workflow{
		compressor: compressor,
		archiver:   archiver,
		cfg:        model.DefaultCompressionConfig(),
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Config returns the compression configuration applied to every file
func (uc *Workflow) Config() model.CompressionConfig {
	return uc.cfg
}

// Wait blocks until every pending batch notification has been sent
func (uc *Workflow) Wait() {
	uc.notifications.Wait()
}

// itemOutcome is the result of compressing a single input file
type itemOutcome struct {
	index  int
	result *model.CompressionResult
	err    error
}

// Compress runs a batch over files in order and replaces the current results.
//
// With the abort policy the first failure discards the whole batch: results
// stay empty, the user-facing error is set and the cause is returned. With the
// partial policy successful files are kept, the user-facing error names the
// number of failures and the returned error is nil. An empty files slice is a
// no-op.
func (uc *Workflow) Compress(ctx context.Context, files []*model.InputFile) (*model.WorkflowState, error) {
	logger := ctxlog.From(ctx)

	if len(files) == 0 {
		logger.Debug("No files given, skipping batch")
		return uc.State(), nil
	}

	if err := uc.begin(); err != nil {
		return nil, err
	}
	defer uc.end()

	batchID := uc.newID()
	logger.Info("Starting compression batch",
		"batch_id", batchID,
		"files", len(files),
		"max_size_mb", uc.cfg.MaxSizeMB,
		"max_dimension", uc.cfg.MaxDimension,
		"failure_policy", uc.cfg.FailurePolicy,
	)

	results := make([]*model.CompressionResult, 0, len(files))
	var failures []itemOutcome

	for i, file := range files {
		if err := ctx.Err(); err != nil {
			uc.fail(model.MsgCompressionFailed)
			return nil, goerr.Wrap(err, "compression batch cancelled",
				goerr.V("batch_id", batchID),
				goerr.V("index", i))
		}

		out := uc.compressOne(ctx, i, file)
		if out.err == nil {
			results = append(results, out.result)
			continue
		}

		logger.Warn("Failed to compress image",
			"batch_id", batchID,
			"file", file.Name,
			"index", i,
			"error", out.err,
		)

		if uc.cfg.FailurePolicy != model.FailurePartial || ctx.Err() != nil {
			uc.fail(model.MsgCompressionFailed)
			return nil, goerr.Wrap(out.err, "compression batch aborted",
				goerr.V("batch_id", batchID),
				goerr.V("file", file.Name),
				goerr.V("index", i),
				goerr.T(model.ErrTagCompression))
		}
		failures = append(failures, out)
	}

	msg := ""
	if len(failures) > 0 {
		msg = fmt.Sprintf("Failed to compress %d of %d images. Please try again.", len(failures), len(files))
	}

	state := uc.commit(batchID, results, msg)
	summary := state.Summary()

	logger.Info("Finished compression batch",
		"batch_id", batchID,
		"compressed", summary.Files,
		"failed", len(failures),
		"total_original_size", summary.TotalOriginalSize,
		"total_compressed_size", summary.TotalCompressedSize,
		"reduction", summary.Reduction,
	)

	if uc.notifier != nil && len(results) > 0 {
		uc.notifications.Dispatch(ctx, func(ctx context.Context) error {
			return uc.notifier.NotifyBatch(ctx, batchID, summary)
		})
	}

	return state, nil
}

func (uc *Workflow) compressOne(ctx context.Context, index int, file *model.InputFile) itemOutcome {
	compressed, err := uc.compressor.Compress(ctx, file, uc.cfg)
	if err != nil {
		return itemOutcome{index: index, err: err}
	}
	if compressed == nil {
		return itemOutcome{index: index, err: goerr.New("compressor returned no output",
			goerr.V("file", file.Name),
			goerr.T(model.ErrTagCompression))}
	}

	ctxlog.From(ctx).Debug("Compressed image",
		"file", file.Name,
		"index", index,
		"original_size", file.Size(),
		"compressed_size", compressed.Size(),
	)

	return itemOutcome{
		index: index,
		result: &model.CompressionResult{
			Index:        index,
			OriginalSize: file.Size(),
			File:         compressed,
		},
	}
}

// begin marks a batch as running and drops the previous results
func (uc *Workflow) begin() error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.state.Loading {
		return goerr.New("compression batch already running", goerr.T(model.ErrTagBusy))
	}

	uc.state = model.WorkflowState{Loading: true}
	return nil
}

// end releases the loading flag. It runs on every exit path of Compress,
// including those that already released it through commit.
func (uc *Workflow) end() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.state.Loading = false
}

func (uc *Workflow) fail(msg string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.state.BatchID = ""
	uc.state.Results = nil
	uc.state.Error = msg
}

func (uc *Workflow) commit(batchID string, results []*model.CompressionResult, msg string) *model.WorkflowState {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if len(results) > 0 {
		uc.state.BatchID = batchID
	}
	uc.state.Results = results
	uc.state.Error = msg
	uc.state.Loading = false
	return uc.state.Copy()
}

// Clear drops the current results and error
func (uc *Workflow) Clear(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.state.Loading {
		return goerr.New("cannot clear while a batch is running", goerr.T(model.ErrTagBusy))
	}

	ctxlog.From(ctx).Info("Clearing results",
		"batch_id", uc.state.BatchID,
		"results", len(uc.state.Results),
	)
	uc.state = model.WorkflowState{}
	return nil
}

// State returns a snapshot of the workflow state
func (uc *Workflow) State() *model.WorkflowState {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.state.Copy()
}

// Result returns the result with the given input index from batch batchID.
// Results of replaced or cleared batches are no longer reachable.
func (uc *Workflow) Result(batchID string, index int) (*model.CompressionResult, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	if batchID == "" || batchID != uc.state.BatchID {
		return nil, goerr.New("batch not found",
			goerr.V("batch_id", batchID),
			goerr.T(model.ErrTagNotFound))
	}

	for _, r := range uc.state.Results {
		if r.Index == index {
			return r, nil
		}
	}

	return nil, goerr.New("result not found",
		goerr.V("batch_id", batchID),
		goerr.V("index", index),
		goerr.T(model.ErrTagNotFound))
}

// Archive bundles the current results into a zip archive named compressed-images.zip
func (uc *Workflow) Archive(ctx context.Context) (*model.Archive, error) {
	state := uc.State()
	if len(state.Results) == 0 {
		return nil, goerr.New("no compressed images to archive", goerr.T(model.ErrTagNoResults))
	}

	entries := model.ArchiveEntries(state.Results)
	data, err := uc.archiver.Build(ctx, entries)
	if err != nil {
		uc.failArchive(state.BatchID)
		return nil, goerr.Wrap(err, "failed to build archive",
			goerr.V("batch_id", state.BatchID),
			goerr.V("entries", len(entries)),
			goerr.T(model.ErrTagArchive))
	}

	ctxlog.From(ctx).Info("Built archive",
		"batch_id", state.BatchID,
		"entries", len(entries),
		"size", len(data),
	)

	return &model.Archive{
		Name:    model.ArchiveName,
		Data:    data,
		Entries: len(entries),
	}, nil
}

// failArchive sets the user-facing archive error unless the batch was replaced meanwhile
func (uc *Workflow) failArchive(batchID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.state.BatchID == batchID {
		uc.state.Error = model.MsgArchiveFailed
	}
}

// Export writes the compressed files and/or the archive to exporter. Files
// sharing a name are exported under distinct names so none is overwritten.
func (uc *Workflow) Export(ctx context.Context, exporter interfaces.Exporter, opts model.ExportOptions) error {
	state := uc.State()
	if len(state.Results) == 0 {
		return goerr.New("no compressed images to export", goerr.T(model.ErrTagNoResults))
	}

	if opts.Files {
		names := model.UniqueDownloadNames(state.Results)
		for i, r := range state.Results {
			name := names[i]
			if name != r.File.DownloadName() {
				ctxlog.From(ctx).Warn("Renamed export to avoid overwriting a file with the same name",
					"file", r.File.Name,
					"index", r.Index,
					"name", name,
				)
			}
			if err := exporter.Export(ctx, name, r.File.Data); err != nil {
				return goerr.Wrap(err, "failed to export compressed image",
					goerr.V("name", name),
					goerr.T(model.ErrTagExport))
			}
		}
	}

	if opts.Archive {
		archive, err := uc.Archive(ctx)
		if err != nil {
			return err
		}
		if err := exporter.Export(ctx, archive.Name, archive.Data); err != nil {
			return goerr.Wrap(err, "failed to export archive",
				goerr.V("name", archive.Name),
				goerr.T(model.ErrTagExport))
		}
	}

	return nil
}
