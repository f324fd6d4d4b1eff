package cli

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/contextual-ai/tenantctl/pkg/cli/config"
	"github.com/contextual-ai/tenantctl/pkg/domain/interfaces"
	"github.com/contextual-ai/tenantctl/pkg/service/prompt"
	"github.com/contextual-ai/tenantctl/pkg/utils/apperr"
	"github.com/joho/godotenv"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const version = "0.1.0"

// runtime carries the process surroundings so tests can replace them
type runtime struct {
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	dotEnv    string
	confirmer interfaces.Confirmer
	notifier  interfaces.Notifier
}

// Option configures Run
type Option func(*runtime)

// WithStdout sets where reports are written
func WithStdout(w io.Writer) Option {
	return func(rt *runtime) { rt.stdout = w }
}

// WithStderr sets where logs and prompts are written
func WithStderr(w io.Writer) Option {
	return func(rt *runtime) { rt.stderr = w }
}

// WithStdin sets where confirmation answers are read from
func WithStdin(r io.Reader) Option {
	return func(rt *runtime) { rt.stdin = r }
}

// WithConfirmer replaces the terminal confirmation prompt
func WithConfirmer(c interfaces.Confirmer) Option {
	return func(rt *runtime) { rt.confirmer = c }
}

// WithNotifier replaces the Slack webhook notifier
func WithNotifier(n interfaces.Notifier) Option {
	return func(rt *runtime) { rt.notifier = n }
}

// WithDotEnv sets the .env file loaded before flags are parsed. Empty disables loading.
func WithDotEnv(path string) Option {
	return func(rt *runtime) { rt.dotEnv = path }
}

// Run runs the CLI application
func Run(ctx context.Context, args []string, opts ...Option) error {
	rt := &runtime{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		dotEnv: ".env",
	}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.confirmer == nil {
		rt.confirmer = prompt.NewTerminal(rt.stdin, rt.stderr)
	}

	// Flag env sources are resolved while parsing, so .env must be loaded first
	if err := loadDotEnv(rt.dotEnv); err != nil {
		return err
	}

	var (
		loggerCfg config.Logger
		apiCfg    config.API
		outputCfg config.Output
		slackCfg  config.Slack
		logger    = slog.Default()
	)

	app := &cli.Command{
		Name:      "tenantctl",
		Usage:     "Bulk-invite and bulk-remove users of a Contextual AI tenant",
		Version:   version,
		Writer:    rt.stdout,
		ErrWriter: rt.stderr,
		Flags: joinFlags(
			loggerCfg.Flags(),
			apiCfg.Flags(),
			outputCfg.Flags(),
			slackCfg.Flags(),
		),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Configure logger
			configured, err := loggerCfg.Configure(rt.stderr)
			if err != nil {
				return nil, err
			}
			logger = configured

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)

			if err := outputCfg.Validate(); err != nil {
				return nil, err
			}
			if err := slackCfg.Validate(); err != nil {
				return nil, err
			}

			logger.Debug("Configuration",
				slog.Any("logger", loggerCfg),
				slog.Any("api", apiCfg),
				slog.Any("output", outputCfg),
				slog.Any("slack", slackCfg),
			)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdInvite(rt, &apiCfg, &outputCfg, &slackCfg),
			cmdRemove(rt, &apiCfg, &outputCfg, &slackCfg),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		apperr.Handle(ctxlog.With(ctx, logger), err)
		return goerr.Wrap(err, "CLI execution failed")
	}

	return nil
}

func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return goerr.Wrap(err, "failed to load env file", goerr.V("path", path))
	}
	return nil
}
