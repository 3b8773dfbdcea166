package service

import (
	"context"
	"fmt"

	"relaybridge/models"
)

// mentionService implements the MentionService interface
type mentionService struct {
	uowFactory UnitOfWorkFactory
}

// NewMentionService creates a new mention service
func NewMentionService(uowFactory UnitOfWorkFactory) MentionService {
	return &mentionService{uowFactory: uowFactory}
}

// RecordMention stores a mention rewrite for a user in a target channel.
// Mappings accumulate rather than overwrite; resolution picks the newest
// applicable one, so recording is naturally last-write-wins.
func (s *mentionService) RecordMention(ctx context.Context, sourceChannelID *int64, targetChannelID, userID int64, mentionText string) (*models.MentionMapping, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	target, err := uow.ChannelRepository().GetByID(ctx, targetChannelID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, fmt.Errorf("target channel %d: %w", targetChannelID, ErrNotFound)
	}

	if sourceChannelID != nil {
		source, err := uow.ChannelRepository().GetByID(ctx, *sourceChannelID)
		if err != nil {
			return nil, err
		}
		if source == nil {
			return nil, fmt.Errorf("source channel %d: %w", *sourceChannelID, ErrNotFound)
		}
	}

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}

	mapping := &models.MentionMapping{
		SourceChannelID: sourceChannelID,
		TargetChannelID: targetChannelID,
		UserID:          userID,
		MentionText:     mentionText,
	}

	if err := uow.MentionMappingRepository().Create(ctx, mapping); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return mapping, nil
}

// ResolveMention returns the mention text for relaying the user's message from
// source into target. Source-scoped mappings take precedence over
// source-agnostic ones.
func (s *mentionService) ResolveMention(ctx context.Context, sourceChannelID, targetChannelID, userID int64) (string, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	mapping, err := uow.MentionMappingRepository().Resolve(ctx, sourceChannelID, targetChannelID, userID)
	if err != nil {
		return "", err
	}
	if mapping == nil {
		return "", fmt.Errorf("mention for user %d in channel %d: %w", userID, targetChannelID, ErrNotFound)
	}

	return mapping.MentionText, nil
}

// ClearMentions removes mappings for a target channel. A nil userID or
// sourceChannelID leaves that dimension unfiltered, so passing both nil clears
// every mapping of the channel.
func (s *mentionService) ClearMentions(ctx context.Context, targetChannelID int64, userID, sourceChannelID *int64) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	removed, err := uow.MentionMappingRepository().DeleteByTarget(ctx, targetChannelID, userID, sourceChannelID)
	if err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return removed, nil
}
