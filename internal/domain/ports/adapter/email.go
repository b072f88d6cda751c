package adapter

import "context"

// EmailQueue is the hex port for the mail-queue service. Enqueue is
// fire-and-forget from the caller's perspective: a false/error result is
// logged and retried by the outbox worker, never surfaced to the flow
// that produced the message.
type EmailQueue interface {
	Enqueue(ctx context.Context, to, templateID string, variables map[string]string) (bool, error)
}
