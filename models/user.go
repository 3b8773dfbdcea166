package models

import (
	"time"
)

// User represents a relay participant. IDs are assigned by the chat platform
// and are stable once recorded.
type User struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	IsAdmin   bool      `db:"is_admin"`
	IsBanned  bool      `db:"is_banned"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
