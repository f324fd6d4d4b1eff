package cli

import (
	"context"

	"github.com/contextual-ai/tenantctl/pkg/cli/config"
	"github.com/contextual-ai/tenantctl/pkg/domain/model"
	"github.com/contextual-ai/tenantctl/pkg/domain/types"
	"github.com/contextual-ai/tenantctl/pkg/service/report"
	"github.com/contextual-ai/tenantctl/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdInvite(rt *runtime, apiCfg *config.API, outputCfg *config.Output, slackCfg *config.Slack) *cli.Command {
	var (
		inputCfg  config.Input
		tenant    string
		isAdmin   bool
		dryRun    bool
		batchSize int
	)

	flags := joinFlags(
		inputCfg.Flags(),
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "tenant",
				Aliases:     []string{"t"},
				Usage:       "Short name of the tenant to invite users to",
				Sources:     cli.EnvVars("CONTEXTUAL_TENANT"),
				Required:    true,
				Destination: &tenant,
			},
			&cli.BoolFlag{
				Name:        "admin",
				Aliases:     []string{"a"},
				Usage:       "Grant tenant admin privileges to invited users",
				Destination: &isAdmin,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Aliases:     []string{"n"},
				Usage:       "Show the users that would be invited without calling the API",
				Destination: &dryRun,
			},
			&cli.IntFlag{
				Name:        "batch-size",
				Usage:       "Number of users per invitation request",
				Value:       50,
				Destination: &batchSize,
			},
		},
	)

	return &cli.Command{
		Name:  "invite",
		Usage: "Invite users listed in a CSV file",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if !inputCfg.IsSet() {
				return goerr.Wrap(model.ErrInvalidConfig, "--csv is required")
			}
			if batchSize <= 0 {
				return goerr.Wrap(model.ErrInvalidConfig, "batch size must be positive", goerr.V("batchSize", batchSize))
			}
			if err := inputCfg.Validate(); err != nil {
				return err
			}

			reporter, err := outputCfg.Configure(rt.stdout)
			if err != nil {
				return err
			}

			emails, err := inputCfg.ReadEmails(ctx)
			if err != nil {
				return err
			}
			logger.Info("Found emails to invite", "count", len(emails))

			if dryRun {
				return reporter.DryRun(&report.DryRun{
					Action: "invite",
					Tenant: types.TenantShortName(tenant),
					Admin:  isAdmin,
					Emails: emails,
				})
			}

			client, err := apiCfg.Configure("tenantctl/" + version)
			if err != nil {
				return err
			}

			logger.Info("Inviting users to tenant", "tenant", tenant, "api", apiCfg)
			if isAdmin {
				logger.Info("Users will be granted admin privileges")
			}

			uc := usecase.NewInvite(client, types.TenantShortName(tenant),
				usecase.WithAdmin(isAdmin),
				usecase.WithBatchSize(batchSize),
			)
			result, runErr := uc.InviteUsers(ctx, emails)
			if result == nil {
				return runErr
			}

			if err := reporter.Invite(result); err != nil {
				return err
			}
			notify(ctx, rt, slackCfg, report.InviteSummary(result))

			return exitError(runErr, result.HasErrors(), outputCfg, result.Errors.Len())
		},
	}
}
