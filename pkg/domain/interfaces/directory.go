package interfaces

//go:generate moq -out mocks/directory_mock.go -pkg mocks . Directory

import (
	"context"

	"github.com/contextual-ai/tenantctl/pkg/domain/model"
	"github.com/contextual-ai/tenantctl/pkg/domain/types"
)

// Directory is the remote user directory of the tenant bound to the API key.
// Every method makes at most one remote call and never retries.
type Directory interface {
	// ListUsers returns every user of the tenant. An error means the listing
	// failed; an empty slice means the tenant has no users.
	ListUsers(ctx context.Context) ([]*model.User, error)

	// InviteUsers sends one invitation batch
	InviteUsers(ctx context.Context, req *model.InviteRequest) (*model.InviteResponse, error)

	// RemoveUser removes a single user by email
	RemoveUser(ctx context.Context, email types.Email) error
}
