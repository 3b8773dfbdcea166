package repository

import (
	"context"
	"fmt"

	"relaybridge/database"
	"relaybridge/models"

	"github.com/jackc/pgx/v5"
)

// WebhookRepository implements the service.WebhookRepository interface
type WebhookRepository struct {
	q queryable
}

// NewWebhookRepository creates a new webhook repository
func NewWebhookRepository(db *database.DB) *WebhookRepository {
	return &WebhookRepository{q: db.Pool}
}

// newWebhookRepositoryWithTx creates a new webhook repository with a transaction
func newWebhookRepositoryWithTx(tx queryable) *WebhookRepository {
	return &WebhookRepository{q: tx}
}

// Create creates a new webhook bound to a target channel
func (r *WebhookRepository) Create(ctx context.Context, id, targetChannelID, ownerUserID int64) (*models.Webhook, error) {
	query := `
		INSERT INTO webhooks (id, target_channel_id, owner_user_id)
		VALUES ($1, $2, $3)
		RETURNING id, target_channel_id, owner_user_id, created_at
	`

	var webhook models.Webhook
	err := r.q.QueryRow(ctx, query, id, targetChannelID, ownerUserID).Scan(
		&webhook.ID,
		&webhook.TargetChannelID,
		&webhook.OwnerUserID,
		&webhook.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create webhook %d: %w", id, translateError(err))
	}

	return &webhook, nil
}

// GetByID retrieves a webhook by id, returning nil when absent
func (r *WebhookRepository) GetByID(ctx context.Context, id int64) (*models.Webhook, error) {
	query := `
		SELECT id, target_channel_id, owner_user_id, created_at
		FROM webhooks
		WHERE id = $1
	`

	var webhook models.Webhook
	err := r.q.QueryRow(ctx, query, id).Scan(
		&webhook.ID,
		&webhook.TargetChannelID,
		&webhook.OwnerUserID,
		&webhook.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get webhook %d: %w", id, translateError(err))
	}

	return &webhook, nil
}

// GetByTargetChannel returns the live webhook on a channel, nil when none
func (r *WebhookRepository) GetByTargetChannel(ctx context.Context, channelID int64) (*models.Webhook, error) {
	query := `
		SELECT id, target_channel_id, owner_user_id, created_at
		FROM webhooks
		WHERE target_channel_id = $1
	`

	var webhook models.Webhook
	err := r.q.QueryRow(ctx, query, channelID).Scan(
		&webhook.ID,
		&webhook.TargetChannelID,
		&webhook.OwnerUserID,
		&webhook.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get webhook for channel %d: %w", channelID, translateError(err))
	}

	return &webhook, nil
}

// Delete removes a webhook row. Deleting an absent webhook is a no-op.
func (r *WebhookRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM webhooks WHERE id = $1`

	if _, err := r.q.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete webhook %d: %w", id, translateError(err))
	}

	return nil
}

// DeleteByTargetChannel removes all webhooks targeting a channel
func (r *WebhookRepository) DeleteByTargetChannel(ctx context.Context, channelID int64) (int64, error) {
	query := `DELETE FROM webhooks WHERE target_channel_id = $1`

	result, err := r.q.Exec(ctx, query, channelID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete webhooks for channel %d: %w", channelID, translateError(err))
	}

	return result.RowsAffected(), nil
}
