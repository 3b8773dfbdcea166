package models

import (
	"time"
)

// Channel belongs to exactly one guild. Deleting the guild deletes its
// channels along with everything that references them.
type Channel struct {
	ID        int64     `db:"id"`
	GuildID   int64     `db:"guild_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}
