package repository

import (
	"context"
	"fmt"

	"relaybridge/database"
	"relaybridge/models"

	"github.com/jackc/pgx/v5"
)

// UserRepository implements the service.UserRepository interface
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a new user repository with a transaction
func newUserRepositoryWithTx(tx queryable) *UserRepository {
	return &UserRepository{q: tx}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, id int64, name string) (*models.User, error) {
	query := `
		INSERT INTO users (id, name)
		VALUES ($1, $2)
		RETURNING id, name, is_admin, is_banned, created_at, updated_at
	`

	var user models.User
	err := r.q.QueryRow(ctx, query, id, name).Scan(
		&user.ID,
		&user.Name,
		&user.IsAdmin,
		&user.IsBanned,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create user %d: %w", id, translateError(err))
	}

	return &user, nil
}

// GetByID retrieves a user by id, returning nil when absent
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, name, is_admin, is_banned, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := r.q.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.IsAdmin,
		&user.IsBanned,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, translateError(err))
	}

	return &user, nil
}

// SetBanned toggles the ban flag, reporting whether a row was updated
func (r *UserRepository) SetBanned(ctx context.Context, id int64, banned bool) (bool, error) {
	query := `
		UPDATE users
		SET is_banned = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.q.Exec(ctx, query, banned, id)
	if err != nil {
		return false, fmt.Errorf("failed to set banned for user %d: %w", id, translateError(err))
	}

	return result.RowsAffected() > 0, nil
}

// SetAdmin toggles the admin flag, reporting whether a row was updated
func (r *UserRepository) SetAdmin(ctx context.Context, id int64, admin bool) (bool, error) {
	query := `
		UPDATE users
		SET is_admin = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.q.Exec(ctx, query, admin, id)
	if err != nil {
		return false, fmt.Errorf("failed to set admin for user %d: %w", id, translateError(err))
	}

	return result.RowsAffected() > 0, nil
}
