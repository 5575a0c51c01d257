package slack_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/imgpress/pkg/domain/model"
	"github.com/m-mizutani/imgpress/pkg/infra/slack"
)

func TestFormatSummary(t *testing.T) {
	text := slack.FormatSummary("batch-1", model.BatchSummary{
		Files:               2,
		TotalOriginalSize:   4096,
		TotalCompressedSize: 1024,
		Reduction:           75,
	})

	gt.V(t, text).Equal("Compressed 2 image(s) in batch `batch-1`: 4.00 KB -> 1.00 KB (75.00% size reduction)")
}

func TestNotifier_NotifyBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("posts summary to webhook", func(t *testing.T) {
		var received map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gt.V(t, r.Method).Equal(http.MethodPost)
			gt.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		n := slack.NewNotifier(server.URL)
		err := n.NotifyBatch(ctx, "batch-1", model.BatchSummary{Files: 1, TotalOriginalSize: 1000, TotalCompressedSize: 250, Reduction: 75})
		gt.NoError(t, err)

		text, ok := received["text"].(string)
		gt.True(t, ok)
		gt.String(t, text).Contains("batch-1")
		gt.String(t, text).Contains("75.00%")
	})

	t.Run("returns error on failure status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		n := slack.NewNotifier(server.URL)
		err := n.NotifyBatch(ctx, "batch-1", model.BatchSummary{})
		gt.Error(t, err)
	})
}
