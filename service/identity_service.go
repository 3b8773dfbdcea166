package service

import (
	"context"
	"fmt"

	"relaybridge/events"
	"relaybridge/models"
)

// identityService implements the IdentityService interface
type identityService struct {
	uowFactory UnitOfWorkFactory
}

// NewIdentityService creates a new identity service
func NewIdentityService(uowFactory UnitOfWorkFactory) IdentityService {
	return &identityService{uowFactory: uowFactory}
}

// CreateUser registers a user. The primary key constraint rejects a taken id
// as ErrConflict.
func (s *identityService) CreateUser(ctx context.Context, id int64, name string) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().Create(ctx, id, name)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return user, nil
}

// CreateGuild registers a guild
func (s *identityService) CreateGuild(ctx context.Context, id int64, name string) (*models.Guild, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	guild, err := uow.GuildRepository().Create(ctx, id, name)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return guild, nil
}

// SetUserBanned toggles a user's ban flag. Existing connections and webhooks
// the user created stay in place; the dispatcher consults IsUserBanned before
// every delivery.
func (s *identityService) SetUserBanned(ctx context.Context, userID int64, banned bool) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	updated, err := uow.UserRepository().SetBanned(ctx, userID, banned)
	if err != nil {
		return err
	}
	if !updated {
		return fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}

	uow.EventBus().Publish(events.UserBannedEvent{
		UserID: userID,
		Banned: banned,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// SetUserAdmin toggles a user's admin flag
func (s *identityService) SetUserAdmin(ctx context.Context, userID int64, admin bool) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	updated, err := uow.UserRepository().SetAdmin(ctx, userID, admin)
	if err != nil {
		return err
	}
	if !updated {
		return fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// SetGuildBanned toggles a guild's ban flag. Relay resolution skips targets
// inside banned guilds; nothing is deleted.
func (s *identityService) SetGuildBanned(ctx context.Context, guildID int64, banned bool) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	updated, err := uow.GuildRepository().SetBanned(ctx, guildID, banned)
	if err != nil {
		return err
	}
	if !updated {
		return fmt.Errorf("guild %d: %w", guildID, ErrNotFound)
	}

	uow.EventBus().Publish(events.GuildBannedEvent{
		GuildID: guildID,
		Banned:  banned,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// IsUserBanned reports whether the user is banned. This is the single check
// point the dispatcher queries before every relay-authorizing operation.
func (s *identityService) IsUserBanned(ctx context.Context, userID int64) (bool, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}

	return user.IsBanned, nil
}
