package interfaces

//go:generate moq -out mocks/confirmer_mock.go -pkg mocks . Confirmer

import "context"

// Confirmer asks the operator to approve a destructive operation.
// It returns true only if the answer matches one of accepted (case-insensitive).
type Confirmer interface {
	Confirm(ctx context.Context, prompt string, accepted ...string) (bool, error)
}
