package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/imgpress/pkg/domain/model"
	"github.com/m-mizutani/imgpress/pkg/utils/errutil"
)

// LoggingMiddleware returns a middleware that logs HTTP requests and puts a
// request scoped logger into the request context
func LoggingMiddleware(ctx context.Context) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			logger := ctxlog.From(ctx).With("request_id", middleware.GetReqID(r.Context()))

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("HTTP request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration_ms", time.Since(start).Milliseconds(),
				)
			}()

			next.ServeHTTP(ww, r.WithContext(ctxlog.With(r.Context(), logger)))
		})
	}
}

// errorResponse is the JSON body of every failed API call
type errorResponse struct {
	Error string `json:"error"`
}

// statusOf maps error tags to HTTP status codes
func statusOf(err error) int {
	switch {
	case goerr.HasTag(err, model.ErrTagBusy):
		return http.StatusConflict
	case goerr.HasTag(err, model.ErrTagNoResults), goerr.HasTag(err, model.ErrTagNotFound):
		return http.StatusNotFound
	case goerr.HasTag(err, model.ErrTagInvalidInput):
		return http.StatusBadRequest
	case goerr.HasTag(err, model.ErrTagCompression):
		// uploaded content that could not be decoded or encoded
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// userMessage returns the text shown to API clients. Internal details stay in logs.
func userMessage(err error, status int) string {
	switch {
	case goerr.HasTag(err, model.ErrTagCompression):
		return model.MsgCompressionFailed
	case goerr.HasTag(err, model.ErrTagArchive):
		return model.MsgArchiveFailed
	case status == http.StatusInternalServerError:
		return http.StatusText(status)
	default:
		return err.Error()
	}
}

// writeError writes an error response. Server side failures are logged and reported.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		errutil.Handle(ctx, "API request failed", err)
	} else {
		ctxlog.From(ctx).Warn("API request rejected", "error", err, "status", status)
	}

	writeJSON(ctx, w, status, &errorResponse{Error: userMessage(err, status)})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.From(ctx).Error("Failed to encode response", "error", err)
	}
}
