package model

import (
	"encoding/json"

	"github.com/contextual-ai/tenantctl/pkg/domain/types"
)

// EmailSet is an insertion-ordered set of emails
type EmailSet struct {
	items []types.Email
	index map[types.Email]struct{}
}

// NewEmailSet creates an EmailSet holding emails in the given order
func NewEmailSet(emails ...types.Email) *EmailSet {
	s := &EmailSet{index: make(map[types.Email]struct{})}
	for _, e := range emails {
		s.Add(e)
	}
	return s
}

// Add appends email unless already present. Returns true if added.
func (s *EmailSet) Add(email types.Email) bool {
	if _, ok := s.index[email]; ok {
		return false
	}
	s.index[email] = struct{}{}
	s.items = append(s.items, email)
	return true
}

// Has reports whether email is in the set
func (s *EmailSet) Has(email types.Email) bool {
	_, ok := s.index[email]
	return ok
}

// Remove deletes email from the set, keeping the order of the rest
func (s *EmailSet) Remove(email types.Email) {
	if _, ok := s.index[email]; !ok {
		return
	}
	delete(s.index, email)
	for i, e := range s.items {
		if e == email {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
}

// Len returns the number of emails
func (s *EmailSet) Len() int {
	return len(s.items)
}

// Items returns a copy of the emails in insertion order
func (s *EmailSet) Items() []types.Email {
	out := make([]types.Email, len(s.items))
	copy(out, s.items)
	return out
}

// MarshalJSON renders the set as a JSON array
func (s *EmailSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Items())
}

// MarshalYAML renders the set as a YAML sequence
func (s *EmailSet) MarshalYAML() (any, error) {
	return s.Items(), nil
}

// ItemError is the failure message recorded for one email
type ItemError struct {
	Email   types.Email `json:"email" yaml:"email"`
	Message string      `json:"message" yaml:"message"`
}

// ItemErrors maps email to error message, keeping first-insertion order.
// Setting an existing email overwrites its message in place.
type ItemErrors struct {
	items []ItemError
	index map[types.Email]int
}

// NewItemErrors creates an empty ItemErrors
func NewItemErrors() *ItemErrors {
	return &ItemErrors{index: make(map[types.Email]int)}
}

// Set records msg for email
func (e *ItemErrors) Set(email types.Email, msg string) {
	if i, ok := e.index[email]; ok {
		e.items[i].Message = msg
		return
	}
	e.index[email] = len(e.items)
	e.items = append(e.items, ItemError{Email: email, Message: msg})
}

// Get returns the message recorded for email
func (e *ItemErrors) Get(email types.Email) (string, bool) {
	i, ok := e.index[email]
	if !ok {
		return "", false
	}
	return e.items[i].Message, true
}

// Has reports whether email has an error
func (e *ItemErrors) Has(email types.Email) bool {
	_, ok := e.index[email]
	return ok
}

// Len returns the number of errored emails
func (e *ItemErrors) Len() int {
	return len(e.items)
}

// Items returns a copy of the errors in insertion order
func (e *ItemErrors) Items() []ItemError {
	out := make([]ItemError, len(e.items))
	copy(out, e.items)
	return out
}

// MarshalJSON renders the errors as a JSON array of {email, message}
func (e *ItemErrors) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Items())
}

// MarshalYAML renders the errors as a YAML sequence
func (e *ItemErrors) MarshalYAML() (any, error) {
	return e.Items(), nil
}
