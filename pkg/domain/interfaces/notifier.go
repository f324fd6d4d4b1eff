package interfaces

//go:generate moq -out mocks/notifier_mock.go -pkg mocks . Notifier

import "context"

// Notifier publishes a short run summary to an external channel
type Notifier interface {
	Notify(ctx context.Context, summary string) error
}
