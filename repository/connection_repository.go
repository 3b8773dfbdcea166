package repository

import (
	"context"
	"fmt"

	"relaybridge/database"
	"relaybridge/models"

	"github.com/jackc/pgx/v5"
)

// ConnectionRepository implements the service.ConnectionRepository interface
type ConnectionRepository struct {
	q queryable
}

// NewConnectionRepository creates a new connection repository
func NewConnectionRepository(db *database.DB) *ConnectionRepository {
	return &ConnectionRepository{q: db.Pool}
}

// newConnectionRepositoryWithTx creates a new connection repository with a transaction
func newConnectionRepositoryWithTx(tx queryable) *ConnectionRepository {
	return &ConnectionRepository{q: tx}
}

// Create inserts a connection edge. The connections_route_key constraint
// serializes concurrent identical creates; the loser gets
// service.ErrDuplicateConnection from translateError.
func (r *ConnectionRepository) Create(ctx context.Context, sourceChannelID, targetChannelID, webhookID, userID int64) (*models.Connection, error) {
	query := `
		INSERT INTO connections (source_channel_id, target_channel_id, webhook_id, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, source_channel_id, target_channel_id, webhook_id, user_id, created_at
	`

	var conn models.Connection
	err := r.q.QueryRow(ctx, query, sourceChannelID, targetChannelID, webhookID, userID).Scan(
		&conn.ID,
		&conn.SourceChannelID,
		&conn.TargetChannelID,
		&conn.WebhookID,
		&conn.UserID,
		&conn.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create connection %d->%d: %w", sourceChannelID, targetChannelID, translateError(err))
	}

	return &conn, nil
}

// GetByID retrieves a connection by id, returning nil when absent
func (r *ConnectionRepository) GetByID(ctx context.Context, id int64) (*models.Connection, error) {
	query := `
		SELECT id, source_channel_id, target_channel_id, webhook_id, user_id, created_at
		FROM connections
		WHERE id = $1
	`

	var conn models.Connection
	err := r.q.QueryRow(ctx, query, id).Scan(
		&conn.ID,
		&conn.SourceChannelID,
		&conn.TargetChannelID,
		&conn.WebhookID,
		&conn.UserID,
		&conn.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get connection %d: %w", id, translateError(err))
	}

	return &conn, nil
}

// GetByRoute retrieves the connection with the exact four-tuple, nil when absent
func (r *ConnectionRepository) GetByRoute(ctx context.Context, sourceChannelID, targetChannelID, webhookID, userID int64) (*models.Connection, error) {
	query := `
		SELECT id, source_channel_id, target_channel_id, webhook_id, user_id, created_at
		FROM connections
		WHERE source_channel_id = $1 AND target_channel_id = $2 AND webhook_id = $3 AND user_id = $4
	`

	var conn models.Connection
	err := r.q.QueryRow(ctx, query, sourceChannelID, targetChannelID, webhookID, userID).Scan(
		&conn.ID,
		&conn.SourceChannelID,
		&conn.TargetChannelID,
		&conn.WebhookID,
		&conn.UserID,
		&conn.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get connection by route %d->%d: %w", sourceChannelID, targetChannelID, translateError(err))
	}

	return &conn, nil
}

// ListBySource returns all connections originating from a channel
func (r *ConnectionRepository) ListBySource(ctx context.Context, sourceChannelID int64) ([]*models.Connection, error) {
	query := `
		SELECT id, source_channel_id, target_channel_id, webhook_id, user_id, created_at
		FROM connections
		WHERE source_channel_id = $1
		ORDER BY id
	`

	return r.list(ctx, query, sourceChannelID)
}

// ListByUser returns all connections authorized by a user
func (r *ConnectionRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Connection, error) {
	query := `
		SELECT id, source_channel_id, target_channel_id, webhook_id, user_id, created_at
		FROM connections
		WHERE user_id = $1
		ORDER BY id
	`

	return r.list(ctx, query, userID)
}

func (r *ConnectionRepository) list(ctx context.Context, query string, arg any) ([]*models.Connection, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", translateError(err))
	}
	defer rows.Close()

	var conns []*models.Connection
	for rows.Next() {
		var conn models.Connection
		err := rows.Scan(
			&conn.ID,
			&conn.SourceChannelID,
			&conn.TargetChannelID,
			&conn.WebhookID,
			&conn.UserID,
			&conn.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan connection: %w", err)
		}
		conns = append(conns, &conn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate connections: %w", translateError(err))
	}

	return conns, nil
}

// Delete removes a connection row. Deleting an absent connection is a no-op.
func (r *ConnectionRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM connections WHERE id = $1`

	if _, err := r.q.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete connection %d: %w", id, translateError(err))
	}

	return nil
}

// DeleteByChannel removes every connection whose source or target is the channel
func (r *ConnectionRepository) DeleteByChannel(ctx context.Context, channelID int64) (int64, error) {
	query := `DELETE FROM connections WHERE source_channel_id = $1 OR target_channel_id = $1`

	result, err := r.q.Exec(ctx, query, channelID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete connections for channel %d: %w", channelID, translateError(err))
	}

	return result.RowsAffected(), nil
}

// DeleteByWebhook removes every connection using the webhook
func (r *ConnectionRepository) DeleteByWebhook(ctx context.Context, webhookID int64) (int64, error) {
	query := `DELETE FROM connections WHERE webhook_id = $1`

	result, err := r.q.Exec(ctx, query, webhookID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete connections for webhook %d: %w", webhookID, translateError(err))
	}

	return result.RowsAffected(), nil
}
