package config

import (
	"log/slog"
	"net/url"

	"github.com/contextual-ai/tenantctl/pkg/domain/interfaces"
	"github.com/contextual-ai/tenantctl/pkg/domain/model"
	slackSvc "github.com/contextual-ai/tenantctl/pkg/service/slack"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Slack holds Slack notification configuration
type Slack struct {
	WebhookURL string
	Channel    string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL to post the run summary to",
			Category:    "Slack",
			Sources:     cli.EnvVars("CONTEXTUAL_SLACK_WEBHOOK_URL"),
			Destination: &s.WebhookURL,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Channel override for the Slack webhook",
			Category:    "Slack",
			Sources:     cli.EnvVars("CONTEXTUAL_SLACK_CHANNEL"),
			Destination: &s.Channel,
		},
	}
}

// IsConfigured checks if a webhook is set
func (s *Slack) IsConfigured() bool {
	return s.WebhookURL != ""
}

// Validate validates the Slack configuration
func (s *Slack) Validate() error {
	if !s.IsConfigured() {
		return nil
	}
	u, err := url.Parse(s.WebhookURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return goerr.Wrap(model.ErrInvalidConfig, "invalid Slack webhook URL")
	}
	return nil
}

// ConfigureOptional creates a notifier if configured, returns nil if not
func (s *Slack) ConfigureOptional(logger *slog.Logger) interfaces.Notifier {
	if !s.IsConfigured() {
		logger.Debug("Slack webhook not configured, summary will not be posted")
		return nil
	}

	var opts []slackSvc.Option
	if s.Channel != "" {
		opts = append(opts, slackSvc.WithChannel(s.Channel))
	}
	return slackSvc.New(s.WebhookURL, opts...)
}

// LogValue returns structured log value
func (s Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_webhook_url", s.WebhookURL != ""),
		slog.String("channel", s.Channel),
	)
}
