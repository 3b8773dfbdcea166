package repository

import (
	"context"
	"fmt"

	"relaybridge/database"
	"relaybridge/models"

	"github.com/jackc/pgx/v5"
)

// ChannelRepository implements the service.ChannelRepository interface
type ChannelRepository struct {
	q queryable
}

// NewChannelRepository creates a new channel repository
func NewChannelRepository(db *database.DB) *ChannelRepository {
	return &ChannelRepository{q: db.Pool}
}

// newChannelRepositoryWithTx creates a new channel repository with a transaction
func newChannelRepositoryWithTx(tx queryable) *ChannelRepository {
	return &ChannelRepository{q: tx}
}

// Create creates a new channel under a guild
func (r *ChannelRepository) Create(ctx context.Context, id, guildID int64, name string) (*models.Channel, error) {
	query := `
		INSERT INTO channels (id, guild_id, name)
		VALUES ($1, $2, $3)
		RETURNING id, guild_id, name, created_at
	`

	var channel models.Channel
	err := r.q.QueryRow(ctx, query, id, guildID, name).Scan(
		&channel.ID,
		&channel.GuildID,
		&channel.Name,
		&channel.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create channel %d: %w", id, translateError(err))
	}

	return &channel, nil
}

// GetByID retrieves a channel by id, returning nil when absent
func (r *ChannelRepository) GetByID(ctx context.Context, id int64) (*models.Channel, error) {
	query := `
		SELECT id, guild_id, name, created_at
		FROM channels
		WHERE id = $1
	`

	var channel models.Channel
	err := r.q.QueryRow(ctx, query, id).Scan(
		&channel.ID,
		&channel.GuildID,
		&channel.Name,
		&channel.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get channel %d: %w", id, translateError(err))
	}

	return &channel, nil
}

// ListByGuild returns all channels of a guild
func (r *ChannelRepository) ListByGuild(ctx context.Context, guildID int64) ([]*models.Channel, error) {
	query := `
		SELECT id, guild_id, name, created_at
		FROM channels
		WHERE guild_id = $1
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels for guild %d: %w", guildID, translateError(err))
	}
	defer rows.Close()

	var channels []*models.Channel
	for rows.Next() {
		var channel models.Channel
		err := rows.Scan(
			&channel.ID,
			&channel.GuildID,
			&channel.Name,
			&channel.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan channel: %w", err)
		}
		channels = append(channels, &channel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate channels: %w", translateError(err))
	}

	return channels, nil
}

// Delete removes a channel row. Deleting an absent channel is a no-op.
func (r *ChannelRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM channels WHERE id = $1`

	if _, err := r.q.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete channel %d: %w", id, translateError(err))
	}

	return nil
}
