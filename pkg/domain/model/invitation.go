package model

import (
	"maps"
	"slices"

	"github.com/contextual-ai/tenantctl/pkg/domain/types"
)

// DefaultBatchSize is the number of users sent per invitation request
const DefaultBatchSize = 50

// NewUser is a single entry of an invitation request
type NewUser struct {
	Email         types.Email `json:"email"`
	IsTenantAdmin bool        `json:"is_tenant_admin"`
}

// InviteRequest is the body of POST /users. One request carries one batch.
type InviteRequest struct {
	TenantShortName types.TenantShortName `json:"tenant_short_name"`
	NewUsers        []NewUser             `json:"new_users"`
}

// NewInviteRequest builds a request granting the same admin flag to every email
func NewInviteRequest(tenant types.TenantShortName, emails []types.Email, isAdmin bool) *InviteRequest {
	users := make([]NewUser, 0, len(emails))
	for _, email := range emails {
		users = append(users, NewUser{Email: email, IsTenantAdmin: isAdmin})
	}
	return &InviteRequest{
		TenantShortName: tenant,
		NewUsers:        users,
	}
}

// Emails returns the emails of the request in order
func (r *InviteRequest) Emails() []types.Email {
	emails := make([]types.Email, len(r.NewUsers))
	for i, u := range r.NewUsers {
		emails[i] = u.Email
	}
	return emails
}

// InviteResponse is the body returned by POST /users
type InviteResponse struct {
	InvitedUserEmails []types.Email          `json:"invited_user_emails"`
	Errors            map[types.Email]string `json:"errors"`
}

// InviteResult aggregates the outcome of every batch of an invitation run
type InviteResult struct {
	Tenant  types.TenantShortName `json:"tenant" yaml:"tenant"`
	Invited *EmailSet             `json:"invited" yaml:"invited"`
	Errors  *ItemErrors           `json:"errors" yaml:"errors"`
	Batches int                   `json:"batches" yaml:"batches"`
}

// NewInviteResult creates an empty InviteResult
func NewInviteResult(tenant types.TenantShortName) *InviteResult {
	return &InviteResult{
		Tenant:  tenant,
		Invited: NewEmailSet(),
		Errors:  NewItemErrors(),
	}
}

// Merge folds one batch response into the aggregate
func (r *InviteResult) Merge(resp *InviteResponse) {
	if resp == nil {
		return
	}
	for _, email := range resp.InvitedUserEmails {
		r.Invited.Add(email)
	}
	for _, email := range slices.Sorted(maps.Keys(resp.Errors)) {
		r.Errors.Set(email, resp.Errors[email])
	}
}

// FailBatch records every email of a failed batch as errored with the same message
func (r *InviteResult) FailBatch(emails []types.Email, msg string) {
	for _, email := range emails {
		r.Errors.Set(email, msg)
	}
}

// HasErrors reports whether any email errored
func (r *InviteResult) HasErrors() bool {
	return r.Errors.Len() > 0
}
