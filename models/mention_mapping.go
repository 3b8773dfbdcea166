package models

import (
	"time"
)

// MentionMapping rewrites an author's mention for use in a target channel
// where the plain mention would not resolve. SourceChannelID is nil for
// mappings that apply regardless of where the message originated; a mapping
// scoped to a specific source takes precedence over a source-agnostic one.
// Mappings are never updated in place; the most recently recorded one wins.
type MentionMapping struct {
	ID              int64     `db:"id"`
	SourceChannelID *int64    `db:"source_channel_id"`
	TargetChannelID int64     `db:"target_channel_id"`
	UserID          int64     `db:"user_id"`
	MentionText     string    `db:"mention_text"`
	CreatedAt       time.Time `db:"created_at"`
}
