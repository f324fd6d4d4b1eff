package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/contextual-ai/tenantctl/pkg/domain/interfaces/mocks"
	"github.com/contextual-ai/tenantctl/pkg/domain/model"
	"github.com/contextual-ai/tenantctl/pkg/domain/types"
	"github.com/contextual-ai/tenantctl/pkg/repository"
	"github.com/contextual-ai/tenantctl/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func directoryOf(users ...*model.User) func(ctx context.Context) ([]*model.User, error) {
	return func(ctx context.Context) ([]*model.User, error) {
		return users, nil
	}
}

func TestRemoveUseCaseRemoveUsers(t *testing.T) {
	ctx := context.Background()

	users := []*model.User{
		{ID: "u1", Email: "Alice@X.com"},
		{ID: "u2", Email: "admin@x.com", IsTenantAdmin: true},
		{ID: "u3", Email: "bob@x.com"},
		{ID: "u4", Email: "carol@x.com"},
		{ID: "u5", Email: "untouched@x.com"},
	}

	t.Run("Buckets targets by remote admin flag and removal result", func(t *testing.T) {
		mockDir := &mocks.DirectoryMock{
			ListUsersFunc: directoryOf(users...),
			RemoveUserFunc: func(ctx context.Context, email types.Email) error {
				if email == "bob@x.com" {
					return errors.New("HTTP 500 Internal Server Error")
				}
				return nil
			},
		}
		uc := usecase.NewRemove(mockDir)

		result, err := uc.RemoveUsers(ctx, []types.Email{
			"alice@x.com", "ADMIN@x.com", "bob@x.com", "carol@X.COM", "ghost@x.com",
		})
		gt.NoError(t, err).Required()

		gt.Equal(t, model.RemovalModeTargeted, result.Mode)
		gt.Equal(t, []types.Email{"alice@x.com", "carol@x.com"}, result.Removed.Items())
		gt.Equal(t, []types.Email{"admin@x.com"}, result.Skipped.Items())
		gt.Equal(t, []types.Email{"ghost@x.com"}, result.NotFound.Items())
		gt.Equal(t, 1, result.Errors.Len())
		msg, _ := result.Errors.Get("bob@x.com")
		gt.Equal(t, "HTTP 500 Internal Server Error", msg)

		// Every input email is in exactly one bucket
		gt.Equal(t, 5, result.Processed())

		// Directory users outside the input are never touched; admin is never removed
		gt.Equal(t, 3, len(mockDir.RemoveUserCalls()))
		for _, call := range mockDir.RemoveUserCalls() {
			gt.True(t, call.Email != "untouched@x.com")
			gt.True(t, call.Email != "admin@x.com")
		}
		gt.Equal(t, 1, len(mockDir.ListUsersCalls()))
	})

	t.Run("Admins are removed when exclusion is disabled", func(t *testing.T) {
		mockDir := &mocks.DirectoryMock{
			ListUsersFunc:  directoryOf(users...),
			RemoveUserFunc: func(ctx context.Context, email types.Email) error { return nil },
		}
		uc := usecase.NewRemove(mockDir, usecase.WithExcludeAdmins(false))

		result, err := uc.RemoveUsers(ctx, []types.Email{"admin@x.com"})
		gt.NoError(t, err).Required()
		gt.Equal(t, []types.Email{"admin@x.com"}, result.Removed.Items())
		gt.Equal(t, 0, result.Skipped.Len())
	})

	t.Run("Admin status comes from the directory, not the input", func(t *testing.T) {
		// Same input, different remote flag, different bucket
		for _, isAdmin := range []bool{true, false} {
			mockDir := &mocks.DirectoryMock{
				ListUsersFunc:  directoryOf(&model.User{ID: "u1", Email: "x@x.com", IsTenantAdmin: isAdmin}),
				RemoveUserFunc: func(ctx context.Context, email types.Email) error { return nil },
			}
			result, err := usecase.NewRemove(mockDir).RemoveUsers(ctx, []types.Email{"x@x.com"})
			gt.NoError(t, err).Required()
			gt.Equal(t, isAdmin, result.Skipped.Has("x@x.com"))
			gt.Equal(t, !isAdmin, result.Removed.Has("x@x.com"))
		}
	})

	t.Run("Duplicate inputs and directory records are processed once", func(t *testing.T) {
		mockDir := &mocks.DirectoryMock{
			ListUsersFunc: directoryOf(
				&model.User{ID: "u1", Email: "dup@x.com"},
				&model.User{ID: "u2", Email: "DUP@x.com"},
			),
			RemoveUserFunc: func(ctx context.Context, email types.Email) error { return nil },
		}

		result, err := usecase.NewRemove(mockDir).RemoveUsers(ctx, []types.Email{"dup@x.com", "Dup@X.com"})
		gt.NoError(t, err).Required()
		gt.Equal(t, 1, len(mockDir.RemoveUserCalls()))
		gt.Equal(t, 1, result.Processed())
	})

	t.Run("Listing failure aborts before any removal", func(t *testing.T) {
		mockDir := &mocks.DirectoryMock{
			ListUsersFunc: func(ctx context.Context) ([]*model.User, error) {
				return nil, errors.New("HTTP 401 Unauthorized")
			},
		}

		result, err := usecase.NewRemove(mockDir).RemoveUsers(ctx, []types.Email{"a@x.com"})
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrListUsers))
		gt.True(t, result == nil)
		gt.Equal(t, 0, len(mockDir.RemoveUserCalls()))
	})

	t.Run("Empty directory reports every target as not found", func(t *testing.T) {
		mockDir := &mocks.DirectoryMock{ListUsersFunc: directoryOf()}

		result, err := usecase.NewRemove(mockDir).RemoveUsers(ctx, []types.Email{"a@x.com", "b@x.com"})
		gt.NoError(t, err).Required()
		gt.Equal(t, 2, result.NotFound.Len())
	})

	t.Run("Cancellation stops before the next removal", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		defer cancel()

		mockDir := &mocks.DirectoryMock{
			ListUsersFunc: directoryOf(users...),
			RemoveUserFunc: func(ctx context.Context, email types.Email) error {
				cancel()
				return nil
			},
		}

		result, err := usecase.NewRemove(mockDir).RemoveUsers(cctx, []types.Email{"alice@x.com", "bob@x.com"})
		gt.True(t, errors.Is(err, context.Canceled))
		gt.Equal(t, 1, len(mockDir.RemoveUserCalls()))
		gt.Equal(t, 1, result.Removed.Len())
	})

	t.Run("Cancellation during the last removal fails the run", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		defer cancel()

		mockDir := &mocks.DirectoryMock{
			ListUsersFunc: directoryOf(users...),
			RemoveUserFunc: func(ctx context.Context, email types.Email) error {
				cancel()
				return ctx.Err()
			},
		}

		result, err := usecase.NewRemove(mockDir).RemoveUsers(cctx, []types.Email{"carol@x.com"})
		gt.True(t, errors.Is(err, context.Canceled))
		gt.Equal(t, 1, len(mockDir.RemoveUserCalls()))
		gt.True(t, result.Errors.Has("carol@x.com"))
	})

	t.Run("Interrupted listing keeps the cause", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		defer cancel()
		mockDir := &mocks.DirectoryMock{
			ListUsersFunc: func(ctx context.Context) ([]*model.User, error) {
				cancel()
				return nil, ctx.Err()
			},
		}

		_, err := usecase.NewRemove(mockDir).RemoveUsers(cctx, []types.Email{"a@x.com"})
		gt.True(t, errors.Is(err, model.ErrListUsers))
		gt.True(t, errors.Is(err, context.Canceled))
	})
}

func TestRemoveUseCaseRemoveAllNonAdmins(t *testing.T) {
	ctx := context.Background()

	t.Run("Five users with two admins issues three removals", func(t *testing.T) {
		mockDir := &mocks.DirectoryMock{
			ListUsersFunc: directoryOf(
				&model.User{ID: "u1", Email: "a@x.com"},
				&model.User{ID: "u2", Email: "admin1@x.com", IsTenantAdmin: true},
				&model.User{ID: "u3", Email: "B@x.com"},
				&model.User{ID: "u4", Email: "admin2@x.com", IsTenantAdmin: true},
				&model.User{ID: "u5", Email: "c@x.com"},
			),
			RemoveUserFunc: func(ctx context.Context, email types.Email) error {
				if email == "c@x.com" {
					return errors.New("HTTP 409 Conflict")
				}
				return nil
			},
		}

		result, err := usecase.NewRemove(mockDir).RemoveAllNonAdmins(ctx)
		gt.NoError(t, err).Required()

		gt.Equal(t, 3, len(mockDir.RemoveUserCalls()))
		gt.Equal(t, model.RemovalModeAllUsers, result.Mode)
		gt.Equal(t, 0, result.Skipped.Len())
		gt.Equal(t, 0, result.NotFound.Len())
		// Directory emails are passed through as-is
		gt.Equal(t, []types.Email{"a@x.com", "B@x.com"}, result.Removed.Items())
		gt.True(t, result.Errors.Has("c@x.com"))
	})

	t.Run("Skipped stays empty even with admin exclusion disabled", func(t *testing.T) {
		mockDir := &mocks.DirectoryMock{
			ListUsersFunc:  directoryOf(&model.User{ID: "u1", Email: "admin@x.com", IsTenantAdmin: true}),
			RemoveUserFunc: func(ctx context.Context, email types.Email) error { return nil },
		}

		result, err := usecase.NewRemove(mockDir, usecase.WithExcludeAdmins(false)).RemoveAllNonAdmins(ctx)
		gt.NoError(t, err).Required()
		gt.Equal(t, 0, len(mockDir.RemoveUserCalls()))
		gt.Equal(t, 0, result.Processed())
	})

	t.Run("Listing failure aborts", func(t *testing.T) {
		mockDir := &mocks.DirectoryMock{
			ListUsersFunc: func(ctx context.Context) ([]*model.User, error) {
				return nil, errors.New("connection refused")
			},
		}

		_, err := usecase.NewRemove(mockDir).RemoveAllNonAdmins(ctx)
		gt.True(t, errors.Is(err, model.ErrListUsers))
		gt.Equal(t, 0, len(mockDir.RemoveUserCalls()))
	})

	t.Run("Cancellation during the only removal fails the run", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		defer cancel()

		mockDir := &mocks.DirectoryMock{
			ListUsersFunc: directoryOf(&model.User{ID: "u1", Email: "a@x.com"}),
			RemoveUserFunc: func(ctx context.Context, email types.Email) error {
				cancel()
				return ctx.Err()
			},
		}

		result, err := usecase.NewRemove(mockDir).RemoveAllNonAdmins(cctx)
		gt.True(t, errors.Is(err, context.Canceled))
		gt.V(t, result).NotNil()
		gt.Equal(t, 1, result.Errors.Len())
	})
}

func TestRemoveUseCaseWithMemoryDirectory(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory(
		&model.User{Email: "keep-admin@x.com", IsTenantAdmin: true},
		&model.User{Email: "a@x.com"},
		&model.User{Email: "b@x.com"},
	)
	repo.FailRemoveUser("b@x.com", errors.New("locked"))

	result, err := usecase.NewRemove(repo).RemoveAllNonAdmins(ctx)
	gt.NoError(t, err).Required()
	gt.Equal(t, 1, result.Removed.Len())
	gt.Equal(t, 1, result.Errors.Len())

	users, err := repo.ListUsers(ctx)
	gt.NoError(t, err).Required()
	gt.A(t, users).Length(2)
	gt.Equal(t, types.Email("keep-admin@x.com"), users[0].Email)
}
