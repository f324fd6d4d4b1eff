package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/contextual-ai/tenantctl/pkg/domain/interfaces"
	"github.com/contextual-ai/tenantctl/pkg/domain/model"
	"github.com/contextual-ai/tenantctl/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Memory implements interfaces.Directory with in-memory storage.
// Emails are matched case-insensitively, like the remote service.
type Memory struct {
	mu         sync.RWMutex
	users      []*model.User
	userSeq    int
	listErr    error
	inviteErr  error
	removeErrs map[types.Email]error
}

var _ interfaces.Directory = (*Memory)(nil)

// NewMemory creates a new memory directory seeded with users
func NewMemory(users ...*model.User) *Memory {
	m := &Memory{
		removeErrs: make(map[types.Email]error),
	}
	for _, user := range users {
		userCopy := *user
		if userCopy.ID == "" {
			userCopy.ID = m.nextUserID()
		}
		m.users = append(m.users, &userCopy)
	}
	return m
}

// FailListUsers makes ListUsers return err. Nil clears it.
func (m *Memory) FailListUsers(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listErr = err
}

// FailInviteUsers makes every InviteUsers call return err. Nil clears it.
func (m *Memory) FailInviteUsers(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inviteErr = err
}

// FailRemoveUser makes RemoveUser for email return err. Nil clears it.
func (m *Memory) FailRemoveUser(email types.Email, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.removeErrs, email.Normalize())
		return
	}
	m.removeErrs[email.Normalize()] = err
}

// ListUsers returns copies of every user in insertion order
func (m *Memory) ListUsers(ctx context.Context) ([]*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.listErr != nil {
		return nil, goerr.Wrap(m.listErr, "failed to list users")
	}

	users := make([]*model.User, 0, len(m.users))
	for _, user := range m.users {
		// Return a copy to prevent external modifications
		userCopy := *user
		users = append(users, &userCopy)
	}
	return users, nil
}

// InviteUsers adds every new, valid email as a user
func (m *Memory) InviteUsers(ctx context.Context, req *model.InviteRequest) (*model.InviteResponse, error) {
	if req == nil {
		return nil, goerr.New("invite request is nil")
	}
	if req.TenantShortName == "" {
		return nil, goerr.New("tenant short name is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.inviteErr != nil {
		return nil, goerr.Wrap(m.inviteErr, "failed to invite users")
	}

	resp := &model.InviteResponse{
		Errors: make(map[types.Email]string),
	}
	for _, nu := range req.NewUsers {
		if !nu.Email.IsValid() {
			resp.Errors[nu.Email] = "invalid email address"
			continue
		}
		if m.indexOf(nu.Email) >= 0 {
			resp.Errors[nu.Email] = model.ErrUserExists.Error()
			continue
		}

		m.users = append(m.users, &model.User{
			ID:            m.nextUserID(),
			Email:         nu.Email,
			IsTenantAdmin: nu.IsTenantAdmin,
		})
		resp.InvitedUserEmails = append(resp.InvitedUserEmails, nu.Email)
	}

	return resp, nil
}

// RemoveUser removes the user with email
func (m *Memory) RemoveUser(ctx context.Context, email types.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.removeErrs[email.Normalize()]; ok {
		return goerr.Wrap(err, "failed to remove user", goerr.V("email", email))
	}

	idx := m.indexOf(email)
	if idx < 0 {
		return goerr.Wrap(model.ErrUserNotFound, "failed to remove user", goerr.V("email", email))
	}

	m.users = append(m.users[:idx], m.users[idx+1:]...)
	return nil
}

// indexOf must be called with the lock held
func (m *Memory) indexOf(email types.Email) int {
	target := email.Normalize()
	for i, user := range m.users {
		if user.Email.Normalize() == target {
			return i
		}
	}
	return -1
}

func (m *Memory) nextUserID() types.UserID {
	m.userSeq++
	return types.UserID(fmt.Sprintf("user-%03d", m.userSeq))
}
