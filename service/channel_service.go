package service

import (
	"context"
	"fmt"

	"relaybridge/events"
	"relaybridge/models"

	log "github.com/sirupsen/logrus"
)

// channelService implements the ChannelService interface. It owns the cascade
// ordering: connections first, then mention mappings, then webhooks, then the
// channel row, so no intermediate state violates a foreign key.
type channelService struct {
	uowFactory UnitOfWorkFactory
}

// NewChannelService creates a new channel service
func NewChannelService(uowFactory UnitOfWorkFactory) ChannelService {
	return &channelService{uowFactory: uowFactory}
}

// CreateChannel creates a channel under a live guild
func (s *channelService) CreateChannel(ctx context.Context, id, guildID int64, name string) (*models.Channel, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	guild, err := uow.GuildRepository().GetByID(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if guild == nil {
		return nil, fmt.Errorf("guild %d: %w", guildID, ErrNotFound)
	}

	channel, err := uow.ChannelRepository().Create(ctx, id, guildID, name)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return channel, nil
}

// channelCascade tracks what one channel removal took with it
type channelCascade struct {
	connections int64
	mentions    int64
	webhooks    int64
}

// cascadeChannel removes everything referencing a channel and then the channel
// itself, inside the caller's transaction
func cascadeChannel(ctx context.Context, uow UnitOfWork, channelID int64) (channelCascade, error) {
	var c channelCascade
	var err error

	if c.connections, err = uow.ConnectionRepository().DeleteByChannel(ctx, channelID); err != nil {
		return c, err
	}
	if c.mentions, err = uow.MentionMappingRepository().DeleteByChannel(ctx, channelID); err != nil {
		return c, err
	}
	if c.webhooks, err = uow.WebhookRepository().DeleteByTargetChannel(ctx, channelID); err != nil {
		return c, err
	}
	if err = uow.ChannelRepository().Delete(ctx, channelID); err != nil {
		return c, err
	}

	return c, nil
}

// DeleteChannel removes a channel and its dependents in cascade order.
// Deleting an absent channel succeeds so retries complete cleanly.
func (s *channelService) DeleteChannel(ctx context.Context, id int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	channel, err := uow.ChannelRepository().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if channel == nil {
		return nil
	}

	cascade, err := cascadeChannel(ctx, uow, id)
	if err != nil {
		return fmt.Errorf("failed to cascade channel %d: %w", id, err)
	}

	uow.EventBus().Publish(events.ChannelDeletedEvent{
		ChannelID:          id,
		WebhooksRemoved:    cascade.webhooks,
		ConnectionsRemoved: cascade.connections,
		MentionsRemoved:    cascade.mentions,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"channelID":   id,
		"connections": cascade.connections,
		"webhooks":    cascade.webhooks,
		"mentions":    cascade.mentions,
	}).Info("Channel deleted")

	return nil
}

// DeleteGuild removes a guild, all of its channels, and everything referencing
// them, in one transaction. Re-invoking on a partially cascaded guild only
// finds the remaining rows, so the operation is resumable.
func (s *channelService) DeleteGuild(ctx context.Context, id int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	guild, err := uow.GuildRepository().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if guild == nil {
		return nil
	}

	channels, err := uow.ChannelRepository().ListByGuild(ctx, id)
	if err != nil {
		return err
	}

	var total channelCascade
	for _, channel := range channels {
		cascade, err := cascadeChannel(ctx, uow, channel.ID)
		if err != nil {
			return fmt.Errorf("failed to cascade channel %d of guild %d: %w", channel.ID, id, err)
		}
		total.connections += cascade.connections
		total.mentions += cascade.mentions
		total.webhooks += cascade.webhooks
	}

	if err := uow.GuildRepository().Delete(ctx, id); err != nil {
		return err
	}

	uow.EventBus().Publish(events.GuildDeletedEvent{
		GuildID:            id,
		ChannelsRemoved:    int64(len(channels)),
		WebhooksRemoved:    total.webhooks,
		ConnectionsRemoved: total.connections,
		MentionsRemoved:    total.mentions,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"guildID":     id,
		"channels":    len(channels),
		"connections": total.connections,
		"webhooks":    total.webhooks,
		"mentions":    total.mentions,
	}).Info("Guild deleted")

	return nil
}
