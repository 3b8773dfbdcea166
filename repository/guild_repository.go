package repository

import (
	"context"
	"fmt"

	"relaybridge/database"
	"relaybridge/models"

	"github.com/jackc/pgx/v5"
)

// GuildRepository implements the service.GuildRepository interface
type GuildRepository struct {
	q queryable
}

// NewGuildRepository creates a new guild repository
func NewGuildRepository(db *database.DB) *GuildRepository {
	return &GuildRepository{q: db.Pool}
}

// newGuildRepositoryWithTx creates a new guild repository with a transaction
func newGuildRepositoryWithTx(tx queryable) *GuildRepository {
	return &GuildRepository{q: tx}
}

// Create creates a new guild
func (r *GuildRepository) Create(ctx context.Context, id int64, name string) (*models.Guild, error) {
	query := `
		INSERT INTO guilds (id, name)
		VALUES ($1, $2)
		RETURNING id, name, is_banned, created_at, updated_at
	`

	var guild models.Guild
	err := r.q.QueryRow(ctx, query, id, name).Scan(
		&guild.ID,
		&guild.Name,
		&guild.IsBanned,
		&guild.CreatedAt,
		&guild.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create guild %d: %w", id, translateError(err))
	}

	return &guild, nil
}

// GetByID retrieves a guild by id, returning nil when absent
func (r *GuildRepository) GetByID(ctx context.Context, id int64) (*models.Guild, error) {
	query := `
		SELECT id, name, is_banned, created_at, updated_at
		FROM guilds
		WHERE id = $1
	`

	var guild models.Guild
	err := r.q.QueryRow(ctx, query, id).Scan(
		&guild.ID,
		&guild.Name,
		&guild.IsBanned,
		&guild.CreatedAt,
		&guild.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guild %d: %w", id, translateError(err))
	}

	return &guild, nil
}

// SetBanned toggles the ban flag, reporting whether a row was updated
func (r *GuildRepository) SetBanned(ctx context.Context, id int64, banned bool) (bool, error) {
	query := `
		UPDATE guilds
		SET is_banned = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.q.Exec(ctx, query, banned, id)
	if err != nil {
		return false, fmt.Errorf("failed to set banned for guild %d: %w", id, translateError(err))
	}

	return result.RowsAffected() > 0, nil
}

// Delete removes a guild row. Deleting an absent guild is a no-op so cascade
// retries complete cleanly.
func (r *GuildRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM guilds WHERE id = $1`

	if _, err := r.q.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete guild %d: %w", id, translateError(err))
	}

	return nil
}
