package service

import (
	"context"
	"fmt"

	"relaybridge/events"
	"relaybridge/models"
)

// webhookService implements the WebhookService interface
type webhookService struct {
	uowFactory UnitOfWorkFactory
}

// NewWebhookService creates a new webhook service
func NewWebhookService(uowFactory UnitOfWorkFactory) WebhookService {
	return &webhookService{uowFactory: uowFactory}
}

// CreateWebhook registers a delivery endpoint on a target channel. The owner
// must exist and not be banned, the channel must exist and have no live
// webhook yet.
func (s *webhookService) CreateWebhook(ctx context.Context, id, targetChannelID, ownerUserID int64) (*models.Webhook, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	owner, err := uow.UserRepository().GetByID(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, fmt.Errorf("owner %d: %w", ownerUserID, ErrNotFound)
	}
	if owner.IsBanned {
		return nil, fmt.Errorf("owner %d: %w", ownerUserID, ErrBannedUser)
	}

	channel, err := uow.ChannelRepository().GetByID(ctx, targetChannelID)
	if err != nil {
		return nil, err
	}
	if channel == nil {
		return nil, fmt.Errorf("target channel %d: %w", targetChannelID, ErrNotFound)
	}

	existing, err := uow.WebhookRepository().GetByTargetChannel(ctx, targetChannelID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("channel %d already has webhook %d: %w", targetChannelID, existing.ID, ErrConflict)
	}

	// The unique index on target_channel_id settles concurrent creates; the
	// race loser gets ErrConflict from the repository.
	webhook, err := uow.WebhookRepository().Create(ctx, id, targetChannelID, ownerUserID)
	if err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.WebhookCreatedEvent{
		WebhookID:       webhook.ID,
		TargetChannelID: webhook.TargetChannelID,
		OwnerUserID:     webhook.OwnerUserID,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return webhook, nil
}

// DeleteWebhook removes a webhook and, first, every connection routed through
// it. Deleting an absent webhook succeeds.
func (s *webhookService) DeleteWebhook(ctx context.Context, id int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	webhook, err := uow.WebhookRepository().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if webhook == nil {
		return nil
	}

	removed, err := uow.ConnectionRepository().DeleteByWebhook(ctx, id)
	if err != nil {
		return err
	}

	if err := uow.WebhookRepository().Delete(ctx, id); err != nil {
		return err
	}

	uow.EventBus().Publish(events.WebhookDeletedEvent{
		WebhookID:          id,
		ConnectionsRemoved: removed,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
