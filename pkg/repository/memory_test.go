package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/contextual-ai/tenantctl/pkg/domain/model"
	"github.com/contextual-ai/tenantctl/pkg/domain/types"
	"github.com/contextual-ai/tenantctl/pkg/repository"
	"github.com/m-mizutani/gt"
)

func TestMemoryInviteAndList(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory(&model.User{Email: "Existing@x.com"})

	resp, err := repo.InviteUsers(ctx, model.NewInviteRequest("acme",
		[]types.Email{"new@x.com", "existing@x.com", "broken"}, true))
	gt.NoError(t, err).Required()
	gt.Equal(t, []types.Email{"new@x.com"}, resp.InvitedUserEmails)
	gt.Equal(t, model.ErrUserExists.Error(), resp.Errors["existing@x.com"])
	gt.Equal(t, "invalid email address", resp.Errors["broken"])

	users, err := repo.ListUsers(ctx)
	gt.NoError(t, err).Required()
	gt.A(t, users).Length(2)
	gt.Equal(t, types.UserID("user-001"), users[0].ID)
	gt.Equal(t, types.Email("new@x.com"), users[1].Email)
	gt.True(t, users[1].IsTenantAdmin)

	// Returned users are copies
	users[0].Email = "changed@x.com"
	again, err := repo.ListUsers(ctx)
	gt.NoError(t, err).Required()
	gt.Equal(t, types.Email("Existing@x.com"), again[0].Email)
}

func TestMemoryInviteRequiresTenant(t *testing.T) {
	repo := repository.NewMemory()
	_, err := repo.InviteUsers(context.Background(), model.NewInviteRequest("", []types.Email{"a@x.com"}, false))
	gt.Error(t, err)
}

func TestMemoryRemoveUser(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory(
		&model.User{ID: "u1", Email: "A@x.com"},
		&model.User{ID: "u2", Email: "b@x.com"},
	)

	gt.NoError(t, repo.RemoveUser(ctx, "a@X.com"))

	err := repo.RemoveUser(ctx, "a@x.com")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrUserNotFound))

	users, err := repo.ListUsers(ctx)
	gt.NoError(t, err).Required()
	gt.A(t, users).Length(1)
	gt.Equal(t, types.UserID("u2"), users[0].ID)
}

func TestMemoryInjectedFailures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	repo := repository.NewMemory(&model.User{Email: "a@x.com"})

	repo.FailListUsers(boom)
	_, err := repo.ListUsers(ctx)
	gt.True(t, errors.Is(err, boom))
	repo.FailListUsers(nil)
	_, err = repo.ListUsers(ctx)
	gt.NoError(t, err)

	repo.FailInviteUsers(boom)
	_, err = repo.InviteUsers(ctx, model.NewInviteRequest("acme", []types.Email{"b@x.com"}, false))
	gt.True(t, errors.Is(err, boom))

	repo.FailRemoveUser("A@X.com", boom)
	gt.True(t, errors.Is(repo.RemoveUser(ctx, "a@x.com"), boom))
	repo.FailRemoveUser("a@x.com", nil)
	gt.NoError(t, repo.RemoveUser(ctx, "a@x.com"))
}
