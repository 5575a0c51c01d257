package slack

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/imgpress/pkg/domain/interfaces"
	"github.com/m-mizutani/imgpress/pkg/domain/model"
	"github.com/slack-go/slack"
)

type notifier struct {
	webhookURL string
}

// NewNotifier creates a Notifier posting to a Slack incoming webhook
func NewNotifier(webhookURL string) interfaces.Notifier {
	return &notifier{webhookURL: webhookURL}
}

// NotifyBatch posts a one-line summary of a finished batch
func (n *notifier) NotifyBatch(ctx context.Context, batchID string, summary model.BatchSummary) error {
	msg := &slack.WebhookMessage{
		Text: FormatSummary(batchID, summary),
	}

	if err := slack.PostWebhookContext(ctx, n.webhookURL, msg); err != nil {
		return goerr.Wrap(err, "failed to post slack webhook", goerr.V("batch_id", batchID))
	}
	return nil
}

// FormatSummary renders a batch summary as message text
func FormatSummary(batchID string, summary model.BatchSummary) string {
	return fmt.Sprintf("Compressed %d image(s) in batch `%s`: %s KB -> %s KB (%s%% size reduction)",
		summary.Files,
		batchID,
		model.FormatKB(summary.TotalOriginalSize),
		model.FormatKB(summary.TotalCompressedSize),
		model.FormatPercent(summary.Reduction),
	)
}
