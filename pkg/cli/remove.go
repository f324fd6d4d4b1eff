package cli

import (
	"context"
	"fmt"

	"github.com/contextual-ai/tenantctl/pkg/cli/config"
	"github.com/contextual-ai/tenantctl/pkg/domain/model"
	"github.com/contextual-ai/tenantctl/pkg/domain/types"
	"github.com/contextual-ai/tenantctl/pkg/service/report"
	"github.com/contextual-ai/tenantctl/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdRemove(rt *runtime, apiCfg *config.API, outputCfg *config.Output, slackCfg *config.Slack) *cli.Command {
	var (
		inputCfg      config.Input
		tenant        string
		allUsers      bool
		includeAdmins bool
		dryRun        bool
		yes           bool
	)

	flags := joinFlags(
		inputCfg.Flags(),
		[]cli.Flag{
			&cli.BoolFlag{
				Name:        "all-users",
				Aliases:     []string{"a"},
				Usage:       "Remove every non-admin user of the tenant",
				Destination: &allUsers,
			},
			&cli.BoolFlag{
				Name:        "include-admins",
				Usage:       "Also remove admins named in the CSV file",
				Destination: &includeAdmins,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Aliases:     []string{"n"},
				Usage:       "Show the users that would be removed without calling the API",
				Destination: &dryRun,
			},
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "Skip the confirmation prompt",
				Destination: &yes,
			},
			&cli.StringFlag{
				Name:        "tenant",
				Aliases:     []string{"t"},
				Usage:       "Tenant name shown in logs (the tenant is bound to the API key)",
				Sources:     cli.EnvVars("CONTEXTUAL_TENANT"),
				Destination: &tenant,
			},
		},
	)

	return &cli.Command{
		Name:  "remove",
		Usage: "Remove users listed in a CSV file, or all non-admin users",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			switch {
			case !inputCfg.IsSet() && !allUsers:
				return goerr.Wrap(model.ErrInvalidConfig, "either --csv or --all-users is required")
			case inputCfg.IsSet() && allUsers:
				return goerr.Wrap(model.ErrInvalidConfig, "--csv and --all-users cannot be used together")
			}
			if err := inputCfg.Validate(); err != nil {
				return err
			}

			reporter, err := outputCfg.Configure(rt.stdout)
			if err != nil {
				return err
			}

			run := &removal{
				rt:       rt,
				apiCfg:   apiCfg,
				reporter: reporter,
				tenant:   tenant,
				dryRun:   dryRun,
				yes:      yes,
			}

			var (
				result *model.RemovalResult
				runErr error
			)
			if allUsers {
				result, runErr = run.allNonAdmins(ctx)
			} else {
				result, runErr = run.targeted(ctx, &inputCfg, !includeAdmins)
			}
			if result == nil {
				return runErr
			}

			logger.Debug("Rendering removal result", "mode", result.Mode)
			if err := reporter.Removal(result); err != nil {
				return err
			}
			notify(ctx, rt, slackCfg, report.RemovalSummary(result))

			return exitError(runErr, result.HasErrors(), outputCfg, result.Errors.Len())
		},
	}
}

// removal is one removal run. A nil result with nil error means nothing ran.
type removal struct {
	rt       *runtime
	apiCfg   *config.API
	reporter *report.Reporter
	tenant   string
	dryRun   bool
	yes      bool
}

func (r *removal) allNonAdmins(ctx context.Context) (*model.RemovalResult, error) {
	if r.dryRun {
		return nil, r.reporter.DryRun(&report.DryRun{
			Action:   "remove",
			Tenant:   types.TenantShortName(r.tenant),
			AllUsers: true,
		})
	}

	client, err := r.apiCfg.Configure("tenantctl/" + version)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf("\nWARNING: This will remove ALL non-admin users from the tenant%s\nType 'yes' to confirm: ", r.tenantLabel())
	if err := r.confirm(ctx, prompt, "yes"); err != nil {
		return nil, err
	}

	return usecase.NewRemove(client).RemoveAllNonAdmins(ctx)
}

func (r *removal) targeted(ctx context.Context, inputCfg *config.Input, excludeAdmins bool) (*model.RemovalResult, error) {
	logger := ctxlog.From(ctx)

	emails, err := inputCfg.ReadEmails(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info("Found emails to remove", "count", len(emails))

	if r.dryRun {
		return nil, r.reporter.DryRun(&report.DryRun{
			Action: "remove",
			Tenant: types.TenantShortName(r.tenant),
			Emails: emails,
		})
	}

	client, err := r.apiCfg.Configure("tenantctl/" + version)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf("\nThis will remove %d users from the tenant%s\nContinue? [y/N]: ", len(emails), r.tenantLabel())
	if err := r.confirm(ctx, prompt, "y", "yes"); err != nil {
		return nil, err
	}

	uc := usecase.NewRemove(client, usecase.WithExcludeAdmins(excludeAdmins))
	return uc.RemoveUsers(ctx, emails)
}

func (r *removal) confirm(ctx context.Context, prompt string, accepted ...string) error {
	if r.yes {
		return nil
	}

	ok, err := r.rt.confirmer.Confirm(ctx, prompt, accepted...)
	if err != nil {
		return err
	}
	if !ok {
		return goerr.Wrap(model.ErrAborted, "removal not confirmed")
	}
	return nil
}

func (r *removal) tenantLabel() string {
	if r.tenant == "" {
		return ""
	}
	return fmt.Sprintf(" '%s'", r.tenant)
}
