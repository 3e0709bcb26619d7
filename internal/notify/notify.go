package notify

import "context"

// Notifier delivers a message to an address. Failures surface to callers
// as-is; retry policy belongs to the implementation, not the caller.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}
