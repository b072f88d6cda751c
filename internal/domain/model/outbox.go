package model

import "time"

type OutboxStatus string

const (
	OutboxStatusPending OutboxStatus = "pending"
	OutboxStatusSent    OutboxStatus = "sent"
	OutboxStatusFailed  OutboxStatus = "failed"
)

// EmailOutboxEntry is a confirmation email queued in the same transaction
// as the registration it announces. A background worker drains entries
// through the mail queue; delivery failure never affects the registration.
type EmailOutboxEntry struct {
	ID         string            // ULID, drains in insertion order
	Recipient  string
	TemplateID string
	Variables  map[string]string
	Status     OutboxStatus
	Attempts   int
	LastError  string
	CreatedAt  time.Time
	SentAt     *time.Time
}
