package config

import (
	"github.com/m-mizutani/imgpress/pkg/domain/interfaces"
	"github.com/m-mizutani/imgpress/pkg/infra/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds notification configuration
type Slack struct {
	WebhookURL string
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL to report finished batches to",
			Destination: &c.WebhookURL,
			Sources:     cli.EnvVars("IMGPRESS_SLACK_WEBHOOK_URL"),
		},
	}
}

// Notifier returns a Slack notifier, or nil when no webhook is configured
func (c *Slack) Notifier() interfaces.Notifier {
	if c.WebhookURL == "" {
		return nil
	}
	return slack.NewNotifier(c.WebhookURL)
}
