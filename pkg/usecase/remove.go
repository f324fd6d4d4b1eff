package usecase

import (
	"context"
	"errors"

	"github.com/contextual-ai/tenantctl/pkg/domain/interfaces"
	"github.com/contextual-ai/tenantctl/pkg/domain/model"
	"github.com/contextual-ai/tenantctl/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

type Remove struct {
	directory     interfaces.Directory
	excludeAdmins bool
}

// RemoveOption configures Remove
type RemoveOption func(*Remove)

// WithExcludeAdmins controls whether admins named in the input are skipped. Default true.
func WithExcludeAdmins(exclude bool) RemoveOption {
	return func(u *Remove) {
		u.excludeAdmins = exclude
	}
}

func NewRemove(directory interfaces.Directory, opts ...RemoveOption) interfaces.Remove {
	u := &Remove{
		directory:     directory,
		excludeAdmins: true,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// RemoveUsers removes every directory user whose email matches one of emails,
// ignoring case. The admin check uses the directory's current record, never
// the input. Emails with no directory record end up in NotFound.
func (u *Remove) RemoveUsers(ctx context.Context, emails []types.Email) (*model.RemovalResult, error) {
	logger := ctxlog.From(ctx)

	targets := model.NewEmailSet()
	for _, email := range emails {
		targets.Add(email.Normalize())
	}

	users, err := u.fetchUsers(ctx)
	if err != nil {
		return nil, err
	}

	result := model.NewRemovalResult(model.RemovalModeTargeted)
	matched := model.NewEmailSet()

	for _, user := range users {
		email := user.Email.Normalize()
		if !targets.Has(email) || !matched.Add(email) {
			continue
		}

		if err := ctx.Err(); err != nil {
			return result, goerr.Wrap(err, "removal interrupted", goerr.V("processed", result.Processed()))
		}

		if u.excludeAdmins && user.IsTenantAdmin {
			logger.Info("Skipping admin", "email", email)
			result.Skipped.Add(email)
			continue
		}

		u.removeOne(ctx, result, email)
	}

	if err := ctx.Err(); err != nil {
		return result, goerr.Wrap(err, "removal interrupted", goerr.V("processed", result.Processed()))
	}

	for _, email := range targets.Items() {
		if !matched.Has(email) {
			result.NotFound.Add(email)
		}
	}
	if result.NotFound.Len() > 0 {
		logger.Warn("Some emails are not in the tenant", "count", result.NotFound.Len())
	}

	logRemoval(ctx, result)
	return result, nil
}

// RemoveAllNonAdmins removes every user that is not a tenant admin.
// Admins are filtered out, not reported as skipped.
func (u *Remove) RemoveAllNonAdmins(ctx context.Context) (*model.RemovalResult, error) {
	logger := ctxlog.From(ctx)

	users, err := u.fetchUsers(ctx)
	if err != nil {
		return nil, err
	}

	var targets []*model.User
	for _, user := range users {
		if !user.IsTenantAdmin {
			targets = append(targets, user)
		}
	}
	logger.Info("Found non-admin users to remove", "count", len(targets))

	result := model.NewRemovalResult(model.RemovalModeAllUsers)
	for _, user := range targets {
		if err := ctx.Err(); err != nil {
			return result, goerr.Wrap(err, "removal interrupted", goerr.V("processed", result.Processed()))
		}
		u.removeOne(ctx, result, user.Email)
	}
	if err := ctx.Err(); err != nil {
		return result, goerr.Wrap(err, "removal interrupted", goerr.V("processed", result.Processed()))
	}

	logRemoval(ctx, result)
	return result, nil
}

func (u *Remove) fetchUsers(ctx context.Context) ([]*model.User, error) {
	logger := ctxlog.From(ctx)
	logger.Info("Fetching current tenant users")

	users, err := u.directory.ListUsers(ctx)
	if err != nil {
		return nil, goerr.Wrap(errors.Join(model.ErrListUsers, err), "cannot remove users")
	}

	logger.Info("Found users in tenant", "count", len(users))
	return users, nil
}

func (u *Remove) removeOne(ctx context.Context, result *model.RemovalResult, email types.Email) {
	ctxlog.From(ctx).Info("Removing user", "email", email)

	if err := u.directory.RemoveUser(ctx, email); err != nil {
		result.Errors.Set(email, err.Error())
		return
	}
	result.Removed.Add(email)
}

func logRemoval(ctx context.Context, result *model.RemovalResult) {
	ctxlog.From(ctx).Info("Removal completed",
		"mode", result.Mode,
		"removed", result.Removed.Len(),
		"skipped", result.Skipped.Len(),
		"notFound", result.NotFound.Len(),
		"errors", result.Errors.Len(),
	)
}
