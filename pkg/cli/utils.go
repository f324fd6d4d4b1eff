package cli

import (
	"context"

	"github.com/contextual-ai/tenantctl/pkg/cli/config"
	"github.com/contextual-ai/tenantctl/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// joinFlags combines multiple flag slices into one
func joinFlags(flags ...[]cli.Flag) []cli.Flag {
	var result []cli.Flag
	for _, f := range flags {
		result = append(result, f...)
	}
	return result
}

// notify posts summary when a notifier is set or a Slack webhook is
// configured. Failures only warn.
func notify(ctx context.Context, rt *runtime, slackCfg *config.Slack, summary string) {
	logger := ctxlog.From(ctx)

	notifier := rt.notifier
	if notifier == nil {
		notifier = slackCfg.ConfigureOptional(logger)
	}
	if notifier == nil {
		return
	}
	if err := notifier.Notify(ctx, summary); err != nil {
		logger.Warn("Failed to post run summary", "error", err)
	}
}

// exitError decides the outcome of a finished run. runErr wins; otherwise
// per-email errors fail the run only with --fail-on-error.
func exitError(runErr error, hasErrors bool, outputCfg *config.Output, count int) error {
	if runErr != nil {
		return runErr
	}
	if hasErrors && outputCfg.FailOnError {
		return goerr.Wrap(model.ErrPartialFailure, "run finished with errors", goerr.V("errors", count))
	}
	return nil
}
