package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/contextual-ai/tenantctl/pkg/domain/interfaces/mocks"
	"github.com/contextual-ai/tenantctl/pkg/domain/model"
	"github.com/contextual-ai/tenantctl/pkg/domain/types"
	"github.com/contextual-ai/tenantctl/pkg/repository"
	"github.com/contextual-ai/tenantctl/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func makeEmails(n int) []types.Email {
	emails := make([]types.Email, n)
	for i := range emails {
		emails[i] = types.Email(fmt.Sprintf("user%03d@example.com", i))
	}
	return emails
}

// inviteAll answers every batch as fully invited
func inviteAll(ctx context.Context, req *model.InviteRequest) (*model.InviteResponse, error) {
	return &model.InviteResponse{InvitedUserEmails: req.Emails()}, nil
}

func TestPartition(t *testing.T) {
	tests := []struct {
		length int
		size   int
	}{
		{0, 50}, {1, 50}, {49, 50}, {50, 50}, {51, 50}, {120, 50}, {7, 3}, {7, 1}, {5, 10},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("L=%d B=%d", tt.length, tt.size), func(t *testing.T) {
			emails := makeEmails(tt.length)
			batches := usecase.Partition(emails, tt.size)

			gt.Equal(t, (tt.length+tt.size-1)/tt.size, len(batches))

			var joined []types.Email
			for i, batch := range batches {
				if i < len(batches)-1 {
					gt.Equal(t, tt.size, len(batch))
				} else {
					gt.True(t, len(batch) >= 1 && len(batch) <= tt.size)
				}
				joined = append(joined, batch...)
			}
			gt.Equal(t, len(emails), len(joined))
			for i := range emails {
				gt.Equal(t, emails[i], joined[i])
			}
		})
	}

	t.Run("Non-positive size uses default", func(t *testing.T) {
		batches := usecase.Partition(makeEmails(120), 0)
		gt.Equal(t, 3, len(batches))
		gt.Equal(t, model.DefaultBatchSize, len(batches[0]))
	})
}

func TestInviteUseCaseInviteUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("Sends ceil(L/B) batches in order", func(t *testing.T) {
		mockDir := &mocks.DirectoryMock{InviteUsersFunc: inviteAll}
		uc := usecase.NewInvite(mockDir, "acme", usecase.WithBatchSize(50), usecase.WithAdmin(true))

		emails := makeEmails(120)
		result, err := uc.InviteUsers(ctx, emails)
		gt.NoError(t, err).Required()

		calls := mockDir.InviteUsersCalls()
		gt.Equal(t, 3, len(calls))
		gt.Equal(t, 50, len(calls[0].Req.NewUsers))
		gt.Equal(t, 50, len(calls[1].Req.NewUsers))
		gt.Equal(t, 20, len(calls[2].Req.NewUsers))
		gt.Equal(t, emails[50], calls[1].Req.NewUsers[0].Email)

		for _, call := range calls {
			gt.Equal(t, types.TenantShortName("acme"), call.Req.TenantShortName)
			for _, nu := range call.Req.NewUsers {
				gt.True(t, nu.IsTenantAdmin)
			}
		}

		gt.Equal(t, 3, result.Batches)
		gt.Equal(t, 120, result.Invited.Len())
		gt.Equal(t, 0, result.Errors.Len())
		gt.Equal(t, emails, result.Invited.Items())
	})

	t.Run("Default batch size is 50", func(t *testing.T) {
		mockDir := &mocks.DirectoryMock{InviteUsersFunc: inviteAll}
		uc := usecase.NewInvite(mockDir, "acme")

		_, err := uc.InviteUsers(ctx, makeEmails(51))
		gt.NoError(t, err).Required()
		gt.Equal(t, 2, len(mockDir.InviteUsersCalls()))
		gt.Equal(t, 1, len(mockDir.InviteUsersCalls()[1].Req.NewUsers))
	})

	t.Run("Failed batch marks every email of that batch only", func(t *testing.T) {
		mockDir := &mocks.DirectoryMock{
			InviteUsersFunc: func(ctx context.Context, req *model.InviteRequest) (*model.InviteResponse, error) {
				if req.NewUsers[0].Email == "user002@example.com" {
					return nil, errors.New("HTTP 400 Bad Request: invalid email in batch")
				}
				return inviteAll(ctx, req)
			},
		}
		uc := usecase.NewInvite(mockDir, "acme", usecase.WithBatchSize(2))

		result, err := uc.InviteUsers(ctx, makeEmails(5))
		gt.NoError(t, err).Required()

		// Batches after the failed one are still sent
		gt.Equal(t, 3, len(mockDir.InviteUsersCalls()))
		gt.Equal(t, 3, result.Invited.Len())
		gt.Equal(t, 2, result.Errors.Len())

		for _, email := range []types.Email{"user002@example.com", "user003@example.com"} {
			msg, ok := result.Errors.Get(email)
			gt.True(t, ok)
			gt.Equal(t, "HTTP 400 Bad Request: invalid email in batch", msg)
			gt.False(t, result.Invited.Has(email))
		}
	})

	t.Run("Per-item errors from the server are merged", func(t *testing.T) {
		mockDir := &mocks.DirectoryMock{
			InviteUsersFunc: func(ctx context.Context, req *model.InviteRequest) (*model.InviteResponse, error) {
				resp := &model.InviteResponse{Errors: map[types.Email]string{}}
				for _, email := range req.Emails() {
					if email == "user001@example.com" {
						resp.Errors[email] = "already a member"
						continue
					}
					resp.InvitedUserEmails = append(resp.InvitedUserEmails, email)
				}
				return resp, nil
			},
		}
		uc := usecase.NewInvite(mockDir, "acme")

		result, err := uc.InviteUsers(ctx, makeEmails(3))
		gt.NoError(t, err).Required()
		gt.Equal(t, 2, result.Invited.Len())
		msg, _ := result.Errors.Get("user001@example.com")
		gt.Equal(t, "already a member", msg)
	})

	t.Run("Invited and errors cover the input and are disjoint", func(t *testing.T) {
		mockDir := &mocks.DirectoryMock{
			InviteUsersFunc: func(ctx context.Context, req *model.InviteRequest) (*model.InviteResponse, error) {
				emails := req.Emails()
				// Confirms all but the last, and reports the first as both
				return &model.InviteResponse{
					InvitedUserEmails: emails[:len(emails)-1],
					Errors:            map[types.Email]string{emails[0]: "rejected"},
				}, nil
			},
		}
		uc := usecase.NewInvite(mockDir, "acme", usecase.WithBatchSize(4))

		emails := makeEmails(10)
		result, err := uc.InviteUsers(ctx, emails)
		gt.NoError(t, err).Required()

		for _, email := range emails {
			inInvited := result.Invited.Has(email)
			inErrors := result.Errors.Has(email)
			gt.True(t, inInvited != inErrors)
		}
		msg, _ := result.Errors.Get("user003@example.com")
		gt.Equal(t, "not confirmed by server", msg)
		msg, _ = result.Errors.Get("user000@example.com")
		gt.Equal(t, "rejected", msg)
	})

	t.Run("Server case normalization still counts as invited", func(t *testing.T) {
		mockDir := &mocks.DirectoryMock{
			InviteUsersFunc: func(ctx context.Context, req *model.InviteRequest) (*model.InviteResponse, error) {
				return &model.InviteResponse{InvitedUserEmails: []types.Email{"al@x.com"}}, nil
			},
		}
		uc := usecase.NewInvite(mockDir, "acme")

		result, err := uc.InviteUsers(ctx, []types.Email{"Al@X.com"})
		gt.NoError(t, err).Required()
		gt.Equal(t, 1, result.Invited.Len())
		gt.Equal(t, 0, result.Errors.Len())

		// Sent as read
		gt.Equal(t, types.Email("Al@X.com"), mockDir.InviteUsersCalls()[0].Req.NewUsers[0].Email)
	})

	t.Run("Duplicates are sent as-is and collapse in the result", func(t *testing.T) {
		mockDir := &mocks.DirectoryMock{InviteUsersFunc: inviteAll}
		uc := usecase.NewInvite(mockDir, "acme", usecase.WithBatchSize(2))

		result, err := uc.InviteUsers(ctx, []types.Email{"a@x.com", "b@x.com", "a@x.com"})
		gt.NoError(t, err).Required()
		gt.Equal(t, 2, len(mockDir.InviteUsersCalls()))
		gt.Equal(t, 2, result.Invited.Len())
	})

	t.Run("Empty input sends nothing", func(t *testing.T) {
		mockDir := &mocks.DirectoryMock{}
		uc := usecase.NewInvite(mockDir, "acme")

		result, err := uc.InviteUsers(ctx, nil)
		gt.NoError(t, err).Required()
		gt.Equal(t, 0, result.Batches)
		gt.Equal(t, 0, len(mockDir.InviteUsersCalls()))
	})

	t.Run("Cancellation stops before the next batch", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		defer cancel()

		mockDir := &mocks.DirectoryMock{
			InviteUsersFunc: func(ctx context.Context, req *model.InviteRequest) (*model.InviteResponse, error) {
				cancel()
				return inviteAll(ctx, req)
			},
		}
		uc := usecase.NewInvite(mockDir, "acme", usecase.WithBatchSize(2))

		result, err := uc.InviteUsers(cctx, makeEmails(6))
		gt.Error(t, err)
		gt.True(t, errors.Is(err, context.Canceled))
		gt.Equal(t, 1, len(mockDir.InviteUsersCalls()))
		gt.V(t, result).NotNil()
		gt.Equal(t, 2, result.Invited.Len())
		gt.Equal(t, 0, result.Errors.Len())
	})

	t.Run("Cancellation during the last batch fails the run", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		defer cancel()

		mockDir := &mocks.DirectoryMock{
			InviteUsersFunc: func(ctx context.Context, req *model.InviteRequest) (*model.InviteResponse, error) {
				cancel()
				return nil, ctx.Err()
			},
		}
		uc := usecase.NewInvite(mockDir, "acme")

		result, err := uc.InviteUsers(cctx, makeEmails(3))
		gt.True(t, errors.Is(err, context.Canceled))
		gt.Equal(t, 1, len(mockDir.InviteUsersCalls()))
		gt.V(t, result).NotNil()
		gt.Equal(t, 1, result.Batches)
		gt.Equal(t, 3, result.Errors.Len())
		gt.Equal(t, 0, result.Invited.Len())
	})
}

func TestInviteUseCaseWithMemoryDirectory(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory(&model.User{Email: "existing@x.com"})
	uc := usecase.NewInvite(repo, "acme", usecase.WithBatchSize(2))

	result, err := uc.InviteUsers(ctx, []types.Email{"new1@x.com", "existing@x.com", "new2@x.com"})
	gt.NoError(t, err).Required()
	gt.Equal(t, []types.Email{"new1@x.com", "new2@x.com"}, result.Invited.Items())
	gt.True(t, result.Errors.Has("existing@x.com"))

	users, err := repo.ListUsers(ctx)
	gt.NoError(t, err).Required()
	gt.A(t, users).Length(3)
}
