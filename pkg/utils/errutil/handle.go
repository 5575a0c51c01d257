package errutil

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
)

// Handle logs err and, when a Sentry client is configured, reports it
func Handle(ctx context.Context, msg string, err error) {
	if err == nil {
		return
	}

	logger := ctxlog.From(ctx)
	attrs := []any{slog.Any("error", err)}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() != nil {
		if evID := hub.CaptureException(err); evID != nil {
			attrs = append(attrs, slog.String("sentry_event_id", string(*evID)))
		}
	}

	logger.Error(msg, attrs...)
}
