package repository

import (
	"context"
	"fmt"

	"relaybridge/database"
	"relaybridge/models"

	"github.com/jackc/pgx/v5"
)

// MentionMappingRepository implements the service.MentionMappingRepository interface
type MentionMappingRepository struct {
	q queryable
}

// NewMentionMappingRepository creates a new mention mapping repository
func NewMentionMappingRepository(db *database.DB) *MentionMappingRepository {
	return &MentionMappingRepository{q: db.Pool}
}

// newMentionMappingRepositoryWithTx creates a new mention mapping repository with a transaction
func newMentionMappingRepositoryWithTx(tx queryable) *MentionMappingRepository {
	return &MentionMappingRepository{q: tx}
}

// Create inserts a mention mapping, filling in its id and timestamp
func (r *MentionMappingRepository) Create(ctx context.Context, mapping *models.MentionMapping) error {
	query := `
		INSERT INTO mention_mappings (source_channel_id, target_channel_id, user_id, mention_text)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		mapping.SourceChannelID,
		mapping.TargetChannelID,
		mapping.UserID,
		mapping.MentionText,
	).Scan(&mapping.ID, &mapping.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create mention mapping for user %d: %w", mapping.UserID, translateError(err))
	}

	return nil
}

// Resolve returns the authoritative mapping for a relay direction. A mapping
// scoped to the source channel beats a source-agnostic one; within a scope
// the most recently recorded row wins.
func (r *MentionMappingRepository) Resolve(ctx context.Context, sourceChannelID, targetChannelID, userID int64) (*models.MentionMapping, error) {
	query := `
		SELECT id, source_channel_id, target_channel_id, user_id, mention_text, created_at
		FROM mention_mappings
		WHERE target_channel_id = $1
		  AND user_id = $2
		  AND (source_channel_id IS NULL OR source_channel_id = $3)
		ORDER BY (source_channel_id IS NOT NULL) DESC, id DESC
		LIMIT 1
	`

	var mapping models.MentionMapping
	err := r.q.QueryRow(ctx, query, targetChannelID, userID, sourceChannelID).Scan(
		&mapping.ID,
		&mapping.SourceChannelID,
		&mapping.TargetChannelID,
		&mapping.UserID,
		&mapping.MentionText,
		&mapping.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve mention for user %d in channel %d: %w", userID, targetChannelID, translateError(err))
	}

	return &mapping, nil
}

// DeleteByChannel removes mappings whose source or target is the channel
func (r *MentionMappingRepository) DeleteByChannel(ctx context.Context, channelID int64) (int64, error) {
	query := `DELETE FROM mention_mappings WHERE source_channel_id = $1 OR target_channel_id = $1`

	result, err := r.q.Exec(ctx, query, channelID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete mention mappings for channel %d: %w", channelID, translateError(err))
	}

	return result.RowsAffected(), nil
}

// DeleteByTarget removes mappings for a target channel, optionally narrowed to
// a user and/or a source channel. Nil filters match everything.
func (r *MentionMappingRepository) DeleteByTarget(ctx context.Context, targetChannelID int64, userID, sourceChannelID *int64) (int64, error) {
	query := `
		DELETE FROM mention_mappings
		WHERE target_channel_id = $1
		  AND ($2::BIGINT IS NULL OR user_id = $2)
		  AND ($3::BIGINT IS NULL OR source_channel_id = $3)
	`

	result, err := r.q.Exec(ctx, query, targetChannelID, userID, sourceChannelID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete mention mappings for channel %d: %w", targetChannelID, translateError(err))
	}

	return result.RowsAffected(), nil
}
