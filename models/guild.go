package models

import (
	"time"
)

// Guild represents a community that owns channels. Banning a guild suppresses
// relay delivery into any of its channels without touching stored state.
type Guild struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	IsBanned  bool      `db:"is_banned"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
