package usecase

import (
	"context"
	"slices"

	"github.com/contextual-ai/tenantctl/pkg/domain/interfaces"
	"github.com/contextual-ai/tenantctl/pkg/domain/model"
	"github.com/contextual-ai/tenantctl/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// msgNotConfirmed is recorded for emails the server neither invited nor rejected
const msgNotConfirmed = "not confirmed by server"

type Invite struct {
	directory interfaces.Directory
	tenant    types.TenantShortName
	isAdmin   bool
	batchSize int
}

// InviteOption configures Invite
type InviteOption func(*Invite)

// WithAdmin grants tenant admin to every invited user
func WithAdmin(isAdmin bool) InviteOption {
	return func(u *Invite) {
		u.isAdmin = isAdmin
	}
}

// WithBatchSize sets the number of users per request. Non-positive values keep the default.
func WithBatchSize(size int) InviteOption {
	return func(u *Invite) {
		if size > 0 {
			u.batchSize = size
		}
	}
}

func NewInvite(directory interfaces.Directory, tenant types.TenantShortName, opts ...InviteOption) interfaces.Invite {
	u := &Invite{
		directory: directory,
		tenant:    tenant,
		batchSize: model.DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// InviteUsers sends emails to the directory in order, one batch per request.
// A failed request marks every email of its batch as errored; later batches
// are still sent. The returned error is non-nil only when ctx is done, in
// which case the result covers the batches sent so far.
func (u *Invite) InviteUsers(ctx context.Context, emails []types.Email) (*model.InviteResult, error) {
	logger := ctxlog.From(ctx)

	logger.Info("Starting invitation process",
		"tenant", u.tenant,
		"userCount", len(emails),
		"batchSize", u.batchSize,
		"admin", u.isAdmin,
	)

	result := model.NewInviteResult(u.tenant)
	var sent []types.Email

	for i, batch := range Partition(emails, u.batchSize) {
		if err := ctx.Err(); err != nil {
			reconcileInvite(result, sent)
			return result, goerr.Wrap(err, "invitation interrupted",
				goerr.V("batch", i+1),
				goerr.V("sent", len(sent)),
				goerr.V("remaining", len(emails)-len(sent)),
			)
		}

		logger.Info("Processing batch", "batch", i+1, "users", len(batch))

		req := model.NewInviteRequest(u.tenant, batch, u.isAdmin)
		resp, err := u.directory.InviteUsers(ctx, req)
		result.Batches++
		sent = append(sent, batch...)

		if err != nil {
			// The API gives no per-item status for a failed request
			logger.Warn("Batch invitation failed", "batch", i+1, "users", len(batch), "error", err)
			result.FailBatch(batch, err.Error())
			continue
		}
		result.Merge(resp)
	}

	reconcileInvite(result, sent)

	// A cancel during the last request must still fail the run
	if err := ctx.Err(); err != nil {
		return result, goerr.Wrap(err, "invitation interrupted",
			goerr.V("batch", result.Batches),
			goerr.V("sent", len(sent)),
		)
	}

	logger.Info("Invitation completed",
		"batches", result.Batches,
		"invited", result.Invited.Len(),
		"errors", result.Errors.Len(),
	)

	return result, nil
}

// Partition splits emails into contiguous chunks of size, keeping order.
// Only the last chunk may be shorter.
func Partition(emails []types.Email, size int) [][]types.Email {
	if size <= 0 {
		size = model.DefaultBatchSize
	}
	return slices.Collect(slices.Chunk(emails, size))
}

// reconcileInvite makes Invited and Errors disjoint and makes sure every
// sent email is in one of them. Emails are matched case-insensitively
// since the server may normalize them.
func reconcileInvite(result *model.InviteResult, sent []types.Email) {
	errored := make(map[types.Email]struct{}, result.Errors.Len())
	for _, item := range result.Errors.Items() {
		errored[item.Email.Normalize()] = struct{}{}
	}

	invited := make(map[types.Email]struct{}, result.Invited.Len())
	for _, email := range result.Invited.Items() {
		if _, ok := errored[email.Normalize()]; ok {
			result.Invited.Remove(email)
			continue
		}
		invited[email.Normalize()] = struct{}{}
	}

	for _, email := range sent {
		key := email.Normalize()
		if _, ok := invited[key]; ok {
			continue
		}
		if _, ok := errored[key]; ok {
			continue
		}
		result.Errors.Set(email, msgNotConfirmed)
		errored[key] = struct{}{}
	}
}
