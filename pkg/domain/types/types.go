package types

import (
	"strings"

	"github.com/google/uuid"
)

// Email is an address as read from input or returned by the directory.
// Only the presence of "@" is checked; the remote API does real validation.
type Email string

// String returns the string representation
func (e Email) String() string {
	return string(e)
}

// Normalize returns the lowercased address used for directory matching
func (e Email) Normalize() Email {
	return Email(strings.ToLower(string(e)))
}

// IsValid reports whether the address is non-empty and contains "@"
func (e Email) IsValid() bool {
	return e != "" && strings.Contains(string(e), "@")
}

// ParseEmail trims surrounding whitespace and returns the address and
// whether it is usable.
func ParseEmail(raw string) (Email, bool) {
	e := Email(strings.TrimSpace(raw))
	return e, e.IsValid()
}

// UserID represents a directory user identifier
type UserID string

// String returns the string representation
func (id UserID) String() string {
	return string(id)
}

// TenantShortName is the short name of a tenant
type TenantShortName string

// String returns the string representation
func (n TenantShortName) String() string {
	return string(n)
}

// RequestID identifies a single API request for support correlation
type RequestID string

// String returns the string representation
func (id RequestID) String() string {
	return string(id)
}

// NewRequestID creates a new RequestID using UUID v7, falling back to v4
func NewRequestID() RequestID {
	id, err := uuid.NewV7()
	if err != nil {
		return RequestID(uuid.New().String())
	}
	return RequestID(id.String())
}
