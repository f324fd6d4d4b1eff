package slack

import (
	"context"
	"net/http"

	"github.com/contextual-ai/tenantctl/pkg/domain/interfaces"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// Service posts run summaries to a Slack incoming webhook
type Service struct {
	webhookURL string
	channel    string
	username   string
	httpClient *http.Client
}

var _ interfaces.Notifier = (*Service)(nil)

// Option configures Service
type Option func(*Service)

// WithChannel overrides the webhook's default channel
func WithChannel(channel string) Option {
	return func(s *Service) {
		s.channel = channel
	}
}

// WithUsername overrides the name the message is posted as
func WithUsername(username string) Option {
	return func(s *Service) {
		s.username = username
	}
}

// WithHTTPClient sets the HTTP client used for the webhook call
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		s.httpClient = client
	}
}

// New creates a new Slack webhook service
func New(webhookURL string, opts ...Option) *Service {
	s := &Service{
		webhookURL: webhookURL,
		username:   "tenantctl",
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Notify posts summary as a single message
func (s *Service) Notify(ctx context.Context, summary string) error {
	msg := &slack.WebhookMessage{
		Channel:  s.channel,
		Username: s.username,
		Text:     summary,
		Blocks:   &slack.Blocks{BlockSet: BuildSummaryBlocks(summary)},
	}

	if err := slack.PostWebhookCustomHTTPContext(ctx, s.webhookURL, s.httpClient, msg); err != nil {
		return goerr.Wrap(err, "failed to post summary to Slack")
	}

	ctxlog.From(ctx).Debug("Posted summary to Slack", "channel", s.channel)
	return nil
}
