package models

import (
	"time"
)

// Connection is a directed relay edge from a source channel into a target
// channel, routed through one webhook and authorized by one user. The
// (source, target, webhook, user) tuple is unique; it is the idempotency key
// for creation. A connection lives no longer than the shortest-lived of its
// source channel, target channel, and webhook.
type Connection struct {
	ID              int64     `db:"id"`
	SourceChannelID int64     `db:"source_channel_id"`
	TargetChannelID int64     `db:"target_channel_id"`
	WebhookID       int64     `db:"webhook_id"`
	UserID          int64     `db:"user_id"`
	CreatedAt       time.Time `db:"created_at"`
}
