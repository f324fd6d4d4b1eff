package model

import "github.com/contextual-ai/tenantctl/pkg/domain/types"

// User is a snapshot of a tenant user as returned by the directory
type User struct {
	ID            types.UserID `json:"id"`
	Email         types.Email  `json:"email"`
	IsTenantAdmin bool         `json:"is_tenant_admin"`
}

// ListUsersResponse is the body of GET /users
type ListUsersResponse struct {
	Users []*User `json:"users"`
}

// RemoveUserRequest is the body of DELETE /users
type RemoveUserRequest struct {
	Email types.Email `json:"email"`
}
