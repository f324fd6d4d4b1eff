package config

import (
	"log/slog"
	"time"

	"github.com/contextual-ai/tenantctl/pkg/domain/model"
	"github.com/contextual-ai/tenantctl/pkg/service/directory"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// API holds the remote user-management API configuration
type API struct {
	URL     string
	Key     string
	Timeout time.Duration
}

// Flags returns CLI flags for API configuration
func (a *API) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "api-url",
			Usage:       "Base URL of the user-management API",
			Category:    "API",
			Value:       directory.DefaultBaseURL,
			Sources:     cli.EnvVars("CONTEXTUAL_API_URL"),
			Destination: &a.URL,
		},
		&cli.StringFlag{
			Name:        "api-key",
			Usage:       "API key of the tenant to manage",
			Category:    "API",
			Sources:     cli.EnvVars("CONTEXTUAL_API_KEY"),
			Destination: &a.Key,
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "Timeout of each API request (0 disables it)",
			Category:    "API",
			Value:       directory.DefaultTimeout,
			Sources:     cli.EnvVars("CONTEXTUAL_TIMEOUT"),
			Destination: &a.Timeout,
		},
	}
}

// Validate validates the API configuration
func (a *API) Validate() error {
	if a.Key == "" {
		return goerr.Wrap(model.ErrMissingCredential, "set CONTEXTUAL_API_KEY or --api-key")
	}
	if a.Timeout < 0 {
		return goerr.Wrap(model.ErrInvalidConfig, "timeout must not be negative", goerr.V("timeout", a.Timeout))
	}
	return nil
}

// Configure creates the directory client. No network call is made.
func (a *API) Configure(userAgent string) (*directory.Client, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	return directory.New(directory.Config{
		BaseURL:   a.URL,
		APIKey:    a.Key,
		Timeout:   a.Timeout,
		UserAgent: userAgent,
	})
}

// LogValue returns structured log value
func (a API) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("url", a.URL),
		slog.Bool("has_api_key", a.Key != ""),
		slog.Duration("timeout", a.Timeout),
	)
}
