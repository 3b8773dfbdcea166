package service

import (
	"context"
	"errors"
	"fmt"

	"relaybridge/events"
	"relaybridge/models"
)

// connectionService implements the ConnectionService interface
type connectionService struct {
	uowFactory UnitOfWorkFactory
}

// NewConnectionService creates a new connection service
func NewConnectionService(uowFactory UnitOfWorkFactory) ConnectionService {
	return &connectionService{uowFactory: uowFactory}
}

// CreateConnection creates a relay edge. Preconditions are checked in order,
// first failure wins:
//  1. source and target channels exist (ErrNotFound)
//  2. webhook exists (ErrNotFound) and targets the target channel
//     (ErrWebhookMismatch); a mismatch is never silently corrected
//  3. user exists (ErrNotFound) and is not banned (ErrBannedUser)
//  4. no identical (source, target, webhook, user) edge exists
//     (ErrDuplicateConnection, returned together with the existing row)
//
// Source may equal target; self-loops are legal.
func (s *connectionService) CreateConnection(ctx context.Context, sourceChannelID, targetChannelID, webhookID, userID int64) (*models.Connection, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	source, err := uow.ChannelRepository().GetByID(ctx, sourceChannelID)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, fmt.Errorf("source channel %d: %w", sourceChannelID, ErrNotFound)
	}

	target, err := uow.ChannelRepository().GetByID(ctx, targetChannelID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, fmt.Errorf("target channel %d: %w", targetChannelID, ErrNotFound)
	}

	webhook, err := uow.WebhookRepository().GetByID(ctx, webhookID)
	if err != nil {
		return nil, err
	}
	if webhook == nil {
		return nil, fmt.Errorf("webhook %d: %w", webhookID, ErrNotFound)
	}
	if webhook.TargetChannelID != targetChannelID {
		return nil, fmt.Errorf("webhook %d targets channel %d, not %d: %w",
			webhookID, webhook.TargetChannelID, targetChannelID, ErrWebhookMismatch)
	}

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	if user.IsBanned {
		return nil, fmt.Errorf("user %d: %w", userID, ErrBannedUser)
	}

	conn, err := uow.ConnectionRepository().Create(ctx, sourceChannelID, targetChannelID, webhookID, userID)
	if errors.Is(err, ErrDuplicateConnection) {
		// Lost the race or re-issued request: hand back the stored edge so
		// callers can treat the call as success-with-existing-id.
		existing, lookupErr := uow.ConnectionRepository().GetByRoute(ctx, sourceChannelID, targetChannelID, webhookID, userID)
		if lookupErr != nil {
			return nil, lookupErr
		}
		return existing, fmt.Errorf("connection %d->%d: %w", sourceChannelID, targetChannelID, ErrDuplicateConnection)
	}
	if err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.ConnectionCreatedEvent{
		ConnectionID:    conn.ID,
		SourceChannelID: conn.SourceChannelID,
		TargetChannelID: conn.TargetChannelID,
		WebhookID:       conn.WebhookID,
		UserID:          conn.UserID,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return conn, nil
}

// DeleteConnection removes a relay edge. Deleting an absent connection succeeds.
func (s *connectionService) DeleteConnection(ctx context.Context, id int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	conn, err := uow.ConnectionRepository().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if conn == nil {
		return nil
	}

	if err := uow.ConnectionRepository().Delete(ctx, id); err != nil {
		return err
	}

	uow.EventBus().Publish(events.ConnectionDeletedEvent{ConnectionID: id})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListConnections returns the edges originating from a source channel
func (s *connectionService) ListConnections(ctx context.Context, sourceChannelID int64) ([]*models.Connection, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.ConnectionRepository().ListBySource(ctx, sourceChannelID)
}

// ListConnectionsByUser returns the edges a user has authorized
func (s *connectionService) ListConnectionsByUser(ctx context.Context, userID int64) ([]*models.Connection, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.ConnectionRepository().ListByUser(ctx, userID)
}
