package service

import (
	"context"

	"relaybridge/events"
	"relaybridge/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, id int64, name string) (*models.User, error)

	// GetByID retrieves a user by id, returning nil when absent
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// SetBanned toggles the ban flag, reporting whether a row was updated
	SetBanned(ctx context.Context, id int64, banned bool) (bool, error)

	// SetAdmin toggles the admin flag, reporting whether a row was updated
	SetAdmin(ctx context.Context, id int64, admin bool) (bool, error)
}

// GuildRepository defines the interface for guild data access
type GuildRepository interface {
	// Create creates a new guild
	Create(ctx context.Context, id int64, name string) (*models.Guild, error)

	// GetByID retrieves a guild by id, returning nil when absent
	GetByID(ctx context.Context, id int64) (*models.Guild, error)

	// SetBanned toggles the ban flag, reporting whether a row was updated
	SetBanned(ctx context.Context, id int64, banned bool) (bool, error)

	// Delete removes a guild row; deleting an absent guild is a no-op
	Delete(ctx context.Context, id int64) error
}

// ChannelRepository defines the interface for channel data access
type ChannelRepository interface {
	// Create creates a new channel under a guild
	Create(ctx context.Context, id, guildID int64, name string) (*models.Channel, error)

	// GetByID retrieves a channel by id, returning nil when absent
	GetByID(ctx context.Context, id int64) (*models.Channel, error)

	// ListByGuild returns all channels of a guild
	ListByGuild(ctx context.Context, guildID int64) ([]*models.Channel, error)

	// Delete removes a channel row; deleting an absent channel is a no-op
	Delete(ctx context.Context, id int64) error
}

// WebhookRepository defines the interface for webhook data access
type WebhookRepository interface {
	// Create creates a new webhook bound to a target channel
	Create(ctx context.Context, id, targetChannelID, ownerUserID int64) (*models.Webhook, error)

	// GetByID retrieves a webhook by id, returning nil when absent
	GetByID(ctx context.Context, id int64) (*models.Webhook, error)

	// GetByTargetChannel returns the live webhook on a channel, nil when none
	GetByTargetChannel(ctx context.Context, channelID int64) (*models.Webhook, error)

	// Delete removes a webhook row; deleting an absent webhook is a no-op
	Delete(ctx context.Context, id int64) error

	// DeleteByTargetChannel removes all webhooks targeting a channel and
	// returns how many were removed
	DeleteByTargetChannel(ctx context.Context, channelID int64) (int64, error)
}

// ConnectionRepository defines the interface for connection data access
type ConnectionRepository interface {
	// Create inserts a connection edge. A four-tuple uniqueness violation is
	// surfaced as ErrDuplicateConnection.
	Create(ctx context.Context, sourceChannelID, targetChannelID, webhookID, userID int64) (*models.Connection, error)

	// GetByID retrieves a connection by id, returning nil when absent
	GetByID(ctx context.Context, id int64) (*models.Connection, error)

	// GetByRoute retrieves the connection with the exact four-tuple, nil when absent
	GetByRoute(ctx context.Context, sourceChannelID, targetChannelID, webhookID, userID int64) (*models.Connection, error)

	// ListBySource returns all connections originating from a channel
	ListBySource(ctx context.Context, sourceChannelID int64) ([]*models.Connection, error)

	// ListByUser returns all connections authorized by a user
	ListByUser(ctx context.Context, userID int64) ([]*models.Connection, error)

	// Delete removes a connection row; deleting an absent connection is a no-op
	Delete(ctx context.Context, id int64) error

	// DeleteByChannel removes every connection whose source or target is the
	// channel and returns how many were removed
	DeleteByChannel(ctx context.Context, channelID int64) (int64, error)

	// DeleteByWebhook removes every connection using the webhook and returns
	// how many were removed
	DeleteByWebhook(ctx context.Context, webhookID int64) (int64, error)
}

// MentionMappingRepository defines the interface for mention mapping data access
type MentionMappingRepository interface {
	// Create inserts a mention mapping, filling in its id and timestamp
	Create(ctx context.Context, mapping *models.MentionMapping) error

	// Resolve returns the authoritative mapping for the relay direction:
	// source-scoped beats source-agnostic, newest wins within a scope.
	// Returns nil when no mapping applies.
	Resolve(ctx context.Context, sourceChannelID, targetChannelID, userID int64) (*models.MentionMapping, error)

	// DeleteByChannel removes mappings whose source or target is the channel
	// and returns how many were removed
	DeleteByChannel(ctx context.Context, channelID int64) (int64, error)

	// DeleteByTarget removes mappings for a target channel, optionally
	// narrowed to a user and/or a source channel, returning how many matched
	DeleteByTarget(ctx context.Context, targetChannelID int64, userID, sourceChannelID *int64) (int64, error)
}

// UnitOfWork represents one atomic transaction over the relay graph.
// Repositories obtained from it share the transaction; Commit flushes events
// published during the transaction, Rollback discards them.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() UserRepository
	GuildRepository() GuildRepository
	ChannelRepository() ChannelRepository
	WebhookRepository() WebhookRepository
	ConnectionRepository() ConnectionRepository
	MentionMappingRepository() MentionMappingRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// EventPublisher publishes events to be emitted after the surrounding
// transaction commits
type EventPublisher interface {
	Publish(event events.Event)
}

// IdentityService manages users and guilds and is the sole check point for bans
type IdentityService interface {
	// CreateUser registers a user; fails with ErrConflict if the id is taken
	CreateUser(ctx context.Context, id int64, name string) (*models.User, error)

	// CreateGuild registers a guild; fails with ErrConflict if the id is taken
	CreateGuild(ctx context.Context, id int64, name string) (*models.Guild, error)

	// SetUserBanned toggles a user's ban flag; fails with ErrNotFound
	SetUserBanned(ctx context.Context, userID int64, banned bool) error

	// SetUserAdmin toggles a user's admin flag; fails with ErrNotFound
	SetUserAdmin(ctx context.Context, userID int64, admin bool) error

	// SetGuildBanned toggles a guild's ban flag; fails with ErrNotFound
	SetGuildBanned(ctx context.Context, guildID int64, banned bool) error

	// IsUserBanned reports whether the user is banned; fails with ErrNotFound
	IsUserBanned(ctx context.Context, userID int64) (bool, error)
}

// ChannelService manages channels and owns the cascade ordering for guild and
// channel removal
type ChannelService interface {
	// CreateChannel creates a channel under a live guild
	CreateChannel(ctx context.Context, id, guildID int64, name string) (*models.Channel, error)

	// DeleteChannel removes a channel and everything referencing it, in
	// cascade order. Idempotent.
	DeleteChannel(ctx context.Context, id int64) error

	// DeleteGuild removes a guild, its channels, and everything referencing
	// them, in cascade order. Idempotent and resumable.
	DeleteGuild(ctx context.Context, id int64) error
}

// WebhookService manages delivery endpoints
type WebhookService interface {
	// CreateWebhook registers a delivery endpoint on a target channel
	CreateWebhook(ctx context.Context, id, targetChannelID, ownerUserID int64) (*models.Webhook, error)

	// DeleteWebhook removes a webhook and its connections. Idempotent.
	DeleteWebhook(ctx context.Context, id int64) error
}

// ConnectionService manages relay edges
type ConnectionService interface {
	// CreateConnection creates a relay edge after validating its endpoints,
	// webhook, and authorizing user. Re-issuing an identical request returns
	// the existing edge together with ErrDuplicateConnection.
	CreateConnection(ctx context.Context, sourceChannelID, targetChannelID, webhookID, userID int64) (*models.Connection, error)

	// DeleteConnection removes a relay edge. Idempotent.
	DeleteConnection(ctx context.Context, id int64) error

	// ListConnections returns the edges originating from a source channel
	ListConnections(ctx context.Context, sourceChannelID int64) ([]*models.Connection, error)

	// ListConnectionsByUser returns the edges a user has authorized
	ListConnectionsByUser(ctx context.Context, userID int64) ([]*models.Connection, error)
}

// MentionService manages author mention rewrites
type MentionService interface {
	// RecordMention stores a rewrite of a user's mention for a target channel,
	// optionally scoped to messages from one source channel
	RecordMention(ctx context.Context, sourceChannelID *int64, targetChannelID, userID int64, mentionText string) (*models.MentionMapping, error)

	// ResolveMention returns the mention text to use when relaying the user's
	// message from source into target; fails with ErrNotFound when no mapping
	// applies
	ResolveMention(ctx context.Context, sourceChannelID, targetChannelID, userID int64) (string, error)

	// ClearMentions removes mappings for a target channel, optionally narrowed
	// to a user and/or source channel, returning how many were removed
	ClearMentions(ctx context.Context, targetChannelID int64, userID, sourceChannelID *int64) (int64, error)
}

// RelayTarget is one resolved delivery leg for an inbound message: the edge,
// the webhook to post through, and the rewritten author mention (empty when no
// mapping exists for the direction).
type RelayTarget struct {
	Connection  *models.Connection
	Webhook     *models.Webhook
	MentionText string
}

// RelayService composes the lookups the external dispatcher performs per
// inbound message. Delivery itself happens outside this core.
type RelayService interface {
	// ResolveRelays returns the delivery legs for a message posted by author
	// in the source channel. Fails with ErrBannedUser for banned authors;
	// legs into banned guilds or authorized by since-banned users are skipped.
	ResolveRelays(ctx context.Context, sourceChannelID, authorUserID int64) ([]RelayTarget, error)
}
