package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeUserBanned        EventType = "user_banned"
	EventTypeGuildBanned       EventType = "guild_banned"
	EventTypeGuildDeleted      EventType = "guild_deleted"
	EventTypeChannelDeleted    EventType = "channel_deleted"
	EventTypeWebhookCreated    EventType = "webhook_created"
	EventTypeWebhookDeleted    EventType = "webhook_deleted"
	EventTypeConnectionCreated EventType = "connection_created"
	EventTypeConnectionDeleted EventType = "connection_deleted"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// UserBannedEvent signals a user's ban flag changed. The dispatcher must stop
// attributing deliveries to banned users immediately.
type UserBannedEvent struct {
	UserID int64
	Banned bool
}

func (e UserBannedEvent) Type() EventType {
	return EventTypeUserBanned
}

// GuildBannedEvent signals a guild's ban flag changed
type GuildBannedEvent struct {
	GuildID int64
	Banned  bool
}

func (e GuildBannedEvent) Type() EventType {
	return EventTypeGuildBanned
}

// GuildDeletedEvent signals a guild and its dependents were cascaded away
type GuildDeletedEvent struct {
	GuildID            int64
	ChannelsRemoved    int64
	WebhooksRemoved    int64
	ConnectionsRemoved int64
	MentionsRemoved    int64
}

func (e GuildDeletedEvent) Type() EventType {
	return EventTypeGuildDeleted
}

// ChannelDeletedEvent signals a single channel and its dependents were removed
type ChannelDeletedEvent struct {
	ChannelID          int64
	WebhooksRemoved    int64
	ConnectionsRemoved int64
	MentionsRemoved    int64
}

func (e ChannelDeletedEvent) Type() EventType {
	return EventTypeChannelDeleted
}

// WebhookCreatedEvent signals a new delivery endpoint
type WebhookCreatedEvent struct {
	WebhookID       int64
	TargetChannelID int64
	OwnerUserID     int64
}

func (e WebhookCreatedEvent) Type() EventType {
	return EventTypeWebhookCreated
}

// WebhookDeletedEvent signals a webhook and its dependent connections were removed
type WebhookDeletedEvent struct {
	WebhookID          int64
	ConnectionsRemoved int64
}

func (e WebhookDeletedEvent) Type() EventType {
	return EventTypeWebhookDeleted
}

// ConnectionCreatedEvent signals a new relay edge
type ConnectionCreatedEvent struct {
	ConnectionID    int64
	SourceChannelID int64
	TargetChannelID int64
	WebhookID       int64
	UserID          int64
}

func (e ConnectionCreatedEvent) Type() EventType {
	return EventTypeConnectionCreated
}

// ConnectionDeletedEvent signals a relay edge was removed
type ConnectionDeletedEvent struct {
	ConnectionID int64
}

func (e ConnectionDeletedEvent) Type() EventType {
	return EventTypeConnectionDeleted
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching. The external relay
// dispatcher subscribes here to invalidate its routing caches.
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus stashes events published during a unit of work and flushes
// them to the underlying bus only after the transaction commits. Events from
// rolled-back transactions are discarded, so subscribers never observe state
// that was never durable.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits all pending events; called after a successful commit
func (b *TransactionalBus) Flush(ctx context.Context) error {
	// Emission is decoupled from the transaction context, which may already
	// be expired by the time handlers run.
	eventCtx := context.Background()

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard drops pending events; called after rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
