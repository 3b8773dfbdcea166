package repository

import (
	"context"
	"errors"
	"testing"

	"relaybridge/repository/testutil"
	"relaybridge/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("successful creation", func(t *testing.T) {
		user, err := repo.Create(ctx, 123456, "testuser")
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, int64(123456), user.ID)
		assert.Equal(t, "testuser", user.Name)
		assert.False(t, user.IsBanned)
		assert.False(t, user.IsAdmin)
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := repo.Create(ctx, 789012, "first")
		require.NoError(t, err)

		_, err = repo.Create(ctx, 789012, "second")
		assert.True(t, errors.Is(err, service.ErrConflict))
	})
}

func TestUserRepository_GetByID(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("user not found", func(t *testing.T) {
		user, err := repo.GetByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("user found", func(t *testing.T) {
		created, err := repo.Create(ctx, 123456, "testuser")
		require.NoError(t, err)

		user, err := repo.GetByID(ctx, 123456)
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, created.ID, user.ID)
		assert.Equal(t, created.Name, user.Name)
		assert.Equal(t, created.CreatedAt, user.CreatedAt)
	})
}

func TestUserRepository_SetBanned(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("ban and unban", func(t *testing.T) {
		_, err := repo.Create(ctx, 123456, "testuser")
		require.NoError(t, err)

		updated, err := repo.SetBanned(ctx, 123456, true)
		require.NoError(t, err)
		assert.True(t, updated)

		user, err := repo.GetByID(ctx, 123456)
		require.NoError(t, err)
		assert.True(t, user.IsBanned)

		updated, err = repo.SetBanned(ctx, 123456, false)
		require.NoError(t, err)
		assert.True(t, updated)

		user, err = repo.GetByID(ctx, 123456)
		require.NoError(t, err)
		assert.False(t, user.IsBanned)
	})

	t.Run("unknown user matches no row", func(t *testing.T) {
		updated, err := repo.SetBanned(ctx, 999999, true)
		require.NoError(t, err)
		assert.False(t, updated)
	})
}

func TestUserRepository_SetAdmin(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	_, err := repo.Create(ctx, 123456, "testuser")
	require.NoError(t, err)

	updated, err := repo.SetAdmin(ctx, 123456, true)
	require.NoError(t, err)
	assert.True(t, updated)

	user, err := repo.GetByID(ctx, 123456)
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)
}
