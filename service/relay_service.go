package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// relayService implements the RelayService interface. It performs the
// per-message lookups on behalf of the external dispatcher: connection
// fan-out, ban checks, and mention rewriting. Posting through the webhook is
// the dispatcher's job.
type relayService struct {
	uowFactory UnitOfWorkFactory
}

// NewRelayService creates a new relay service
func NewRelayService(uowFactory UnitOfWorkFactory) RelayService {
	return &relayService{uowFactory: uowFactory}
}

// ResolveRelays returns the delivery legs for a message the author posted in
// the source channel. Legs into banned guilds are skipped, as are legs whose
// authorizing user has been banned since the connection was created.
func (s *relayService) ResolveRelays(ctx context.Context, sourceChannelID, authorUserID int64) ([]RelayTarget, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	author, err := uow.UserRepository().GetByID(ctx, authorUserID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, fmt.Errorf("author %d: %w", authorUserID, ErrNotFound)
	}
	if author.IsBanned {
		return nil, fmt.Errorf("author %d: %w", authorUserID, ErrBannedUser)
	}

	conns, err := uow.ConnectionRepository().ListBySource(ctx, sourceChannelID)
	if err != nil {
		return nil, err
	}

	// Authorizer ban status is shared across legs more often than not, so
	// cache the lookups within this resolution.
	bannedAuthorizers := map[int64]bool{authorUserID: false}

	var targets []RelayTarget
	for _, conn := range conns {
		target, err := uow.ChannelRepository().GetByID(ctx, conn.TargetChannelID)
		if err != nil {
			return nil, err
		}
		if target == nil {
			// The connection should have been cascaded with its channel;
			// skip rather than fail the whole resolution.
			log.WithFields(log.Fields{
				"connectionID": conn.ID,
				"channelID":    conn.TargetChannelID,
			}).Warn("Connection references a missing target channel")
			continue
		}

		guild, err := uow.GuildRepository().GetByID(ctx, target.GuildID)
		if err != nil {
			return nil, err
		}
		if guild == nil || guild.IsBanned {
			continue
		}

		banned, ok := bannedAuthorizers[conn.UserID]
		if !ok {
			authorizer, err := uow.UserRepository().GetByID(ctx, conn.UserID)
			if err != nil {
				return nil, err
			}
			banned = authorizer == nil || authorizer.IsBanned
			bannedAuthorizers[conn.UserID] = banned
		}
		if banned {
			continue
		}

		webhook, err := uow.WebhookRepository().GetByID(ctx, conn.WebhookID)
		if err != nil {
			return nil, err
		}
		if webhook == nil {
			log.WithFields(log.Fields{
				"connectionID": conn.ID,
				"webhookID":    conn.WebhookID,
			}).Warn("Connection references a missing webhook")
			continue
		}

		mapping, err := uow.MentionMappingRepository().Resolve(ctx, sourceChannelID, conn.TargetChannelID, authorUserID)
		if err != nil {
			return nil, err
		}

		leg := RelayTarget{
			Connection: conn,
			Webhook:    webhook,
		}
		if mapping != nil {
			leg.MentionText = mapping.MentionText
		}
		targets = append(targets, leg)
	}

	return targets, nil
}
