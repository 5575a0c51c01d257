package http

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/imgpress/pkg/domain/interfaces"
	"github.com/m-mizutani/imgpress/pkg/domain/model"
)

// multipart parts above this size are spooled to disk by mime/multipart
const multipartMemory = 32 << 20

// WorkflowHandler exposes the compression workflow over HTTP
type WorkflowHandler struct {
	workflowUC    interfaces.WorkflowUseCase
	maxUploadSize int64
}

// NewWorkflowHandler creates a new WorkflowHandler
func NewWorkflowHandler(workflowUC interfaces.WorkflowUseCase, maxUploadSize int64) *WorkflowHandler {
	return &WorkflowHandler{
		workflowUC:    workflowUC,
		maxUploadSize: maxUploadSize,
	}
}

type resultResponse struct {
	model.ResultView
	DownloadURL string `json:"download_url"`
}

type resultsResponse struct {
	BatchID string             `json:"batch_id,omitempty"`
	Results []resultResponse   `json:"results"`
	Summary model.BatchSummary `json:"summary"`
}

type compressResponse struct {
	Status  model.StatusView `json:"status"`
	Results []resultResponse `json:"results"`
	Skipped []string         `json:"skipped,omitempty"`
}

func downloadURL(batchID string, index int) string {
	return fmt.Sprintf("/api/batches/%s/results/%d", batchID, index)
}

func toResultResponses(state *model.WorkflowState) []resultResponse {
	resp := make([]resultResponse, 0, len(state.Results))
	for _, r := range state.Results {
		resp = append(resp, resultResponse{
			ResultView:  model.NewResultView(r),
			DownloadURL: downloadURL(state.BatchID, r.Index),
		})
	}
	return resp
}

// Status returns the loading flag, error message and batch summary
func (h *WorkflowHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, model.NewStatusView(h.workflowUC.State()))
}

// Compress accepts a multipart upload (field "files") and runs it as one batch.
// Parts that are not images are skipped and listed in the response.
func (h *WorkflowHandler) Compress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		writeError(ctx, w, goerr.Wrap(err, "failed to parse multipart form",
			goerr.V("max_upload_size", h.maxUploadSize),
			goerr.T(model.ErrTagInvalidInput)))
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			ctxlog.From(ctx).Warn("Failed to remove multipart temp files", "error", err)
		}
	}()

	files, skipped, err := readUploads(ctx, r.MultipartForm.File["files"])
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := h.workflowUC.Compress(ctx, files)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, &compressResponse{
		Status:  model.NewStatusView(state),
		Results: toResultResponses(state),
		Skipped: skipped,
	})
}

func readUploads(ctx context.Context, headers []*multipart.FileHeader) ([]*model.InputFile, []string, error) {
	var files []*model.InputFile
	var skipped []string

	for _, fh := range headers {
		data, err := readUpload(fh)
		if err != nil {
			return nil, nil, err
		}

		file, err := model.NewInputFile(fh.Filename, data)
		if err != nil {
			if goerr.HasTag(err, model.ErrTagInvalidInput) {
				ctxlog.From(ctx).Debug("Skipping uploaded file", "file", fh.Filename, "error", err)
				skipped = append(skipped, fh.Filename)
				continue
			}
			return nil, nil, err
		}
		files = append(files, file)
	}

	return files, skipped, nil
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open uploaded file",
			goerr.V("file", fh.Filename),
			goerr.T(model.ErrTagInvalidInput))
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read uploaded file",
			goerr.V("file", fh.Filename),
			goerr.T(model.ErrTagInvalidInput))
	}
	return data, nil
}

// Results lists the results of the current batch
func (h *WorkflowHandler) Results(w http.ResponseWriter, r *http.Request) {
	state := h.workflowUC.State()
	writeJSON(r.Context(), w, http.StatusOK, &resultsResponse{
		BatchID: state.BatchID,
		Results: toResultResponses(state),
		Summary: state.Summary(),
	})
}

// Clear drops the current results
func (h *WorkflowHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.workflowUC.Clear(ctx); err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, model.NewStatusView(h.workflowUC.State()))
}

// Download streams one compressed file of the given batch
func (h *WorkflowHandler) Download(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	batchID := chi.URLParam(r, "batchID")

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(ctx, w, goerr.Wrap(err, "invalid result index",
			goerr.V("index", chi.URLParam(r, "index")),
			goerr.T(model.ErrTagInvalidInput)))
		return
	}

	result, err := h.workflowUC.Result(batchID, index)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeAttachment(ctx, w, result.File.DownloadName(), "image/webp", result.File.Data)
}

// Archive streams a zip of every compressed file in the current batch
func (h *WorkflowHandler) Archive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	archive, err := h.workflowUC.Archive(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeAttachment(ctx, w, archive.Name, "application/zip", archive.Data)
}

func writeAttachment(ctx context.Context, w http.ResponseWriter, name, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(data); err != nil {
		ctxlog.From(ctx).Warn("Failed to write attachment", "name", name, "error", err)
	}
}
