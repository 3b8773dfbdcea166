package models

import (
	"time"
)

// Webhook is a delivery endpoint bound to one target channel. A channel has at
// most one live webhook; deleting the channel deletes it.
type Webhook struct {
	ID              int64     `db:"id"`
	TargetChannelID int64     `db:"target_channel_id"`
	OwnerUserID     int64     `db:"owner_user_id"`
	CreatedAt       time.Time `db:"created_at"`
}
