package repository

import (
	"context"
	"fmt"

	"relaybridge/database"
	"relaybridge/events"
	"relaybridge/service"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the service.UnitOfWork interface. Every API call of
// the relay core runs inside exactly one of these, so cascade sequences are
// atomic and a reader never observes a channel gone while its webhook remains.
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus
	userRepo         service.UserRepository
	guildRepo        service.GuildRepository
	channelRepo      service.ChannelRepository
	webhookRepo      service.WebhookRepository
	connectionRepo   service.ConnectionRepository
	mentionRepo      service.MentionMappingRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", translateError(err))
	}

	u.tx = tx
	u.ctx = ctx

	// Create repositories with the transaction
	u.userRepo = newUserRepositoryWithTx(tx)
	u.guildRepo = newGuildRepositoryWithTx(tx)
	u.channelRepo = newChannelRepositoryWithTx(tx)
	u.webhookRepo = newWebhookRepositoryWithTx(tx)
	u.connectionRepo = newConnectionRepositoryWithTx(tx)
	u.mentionRepo = newMentionMappingRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", translateError(err))
	}

	u.tx = nil

	// Flush pending events after successful commit
	if u.transactionalBus != nil {
		u.transactionalBus.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", translateError(err))
	}

	u.tx = nil

	// Discard pending events on rollback
	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	return nil
}

// UserRepository returns the user repository for this unit of work
func (u *unitOfWork) UserRepository() service.UserRepository {
	if u.userRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.userRepo
}

// GuildRepository returns the guild repository for this unit of work
func (u *unitOfWork) GuildRepository() service.GuildRepository {
	if u.guildRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.guildRepo
}

// ChannelRepository returns the channel repository for this unit of work
func (u *unitOfWork) ChannelRepository() service.ChannelRepository {
	if u.channelRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.channelRepo
}

// WebhookRepository returns the webhook repository for this unit of work
func (u *unitOfWork) WebhookRepository() service.WebhookRepository {
	if u.webhookRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.webhookRepo
}

// ConnectionRepository returns the connection repository for this unit of work
func (u *unitOfWork) ConnectionRepository() service.ConnectionRepository {
	if u.connectionRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.connectionRepo
}

// MentionMappingRepository returns the mention mapping repository for this unit of work
func (u *unitOfWork) MentionMappingRepository() service.MentionMappingRepository {
	if u.mentionRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.mentionRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	if u.transactionalBus == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalBus
}
