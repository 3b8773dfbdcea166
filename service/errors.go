package service

import "errors"

// Error taxonomy of the relay core. Repositories translate store-level
// failures into these sentinels; callers match with errors.Is and never see
// driver errors.
var (
	// ErrNotFound indicates a referenced entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a uniqueness violation (id taken, or a channel
	// that already has a live webhook)
	ErrConflict = errors.New("conflict")

	// ErrDuplicateConnection indicates a connection with the identical
	// (source, target, webhook, user) route already exists
	ErrDuplicateConnection = errors.New("duplicate connection")

	// ErrBannedUser indicates the acting or authorizing user is banned
	ErrBannedUser = errors.New("user is banned")

	// ErrWebhookMismatch indicates the webhook does not target the requested
	// target channel
	ErrWebhookMismatch = errors.New("webhook targets a different channel")

	// ErrForeignKeyViolation indicates a write referenced a row that is gone
	ErrForeignKeyViolation = errors.New("foreign key violation")

	// ErrStoreUnavailable indicates the database could not be reached or the
	// operation timed out
	ErrStoreUnavailable = errors.New("store unavailable")
)
