package interfaces

import (
	"context"

	"github.com/contextual-ai/tenantctl/pkg/domain/model"
	"github.com/contextual-ai/tenantctl/pkg/domain/types"
)

// Invite invites users to a tenant in fixed-size batches
type Invite interface {
	InviteUsers(ctx context.Context, emails []types.Email) (*model.InviteResult, error)
}

// Remove removes users from the tenant bound to the API key
type Remove interface {
	// RemoveUsers removes the directory users matching emails
	RemoveUsers(ctx context.Context, emails []types.Email) (*model.RemovalResult, error)

	// RemoveAllNonAdmins removes every user that is not a tenant admin
	RemoveAllNonAdmins(ctx context.Context) (*model.RemovalResult, error)
}
