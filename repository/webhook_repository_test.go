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

func TestWebhookRepository_Create(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	fixture := seedRelayFixture(t, testDB)

	repo := NewWebhookRepository(testDB.DB)
	ctx := context.Background()

	t.Run("second webhook on same channel rejected", func(t *testing.T) {
		// The fixture already put webhook 500 on the target channel
		_, err := repo.Create(ctx, 501, fixture.Target.ID, fixture.User.ID)
		assert.True(t, errors.Is(err, service.ErrConflict))
	})

	t.Run("webhook on another channel accepted", func(t *testing.T) {
		webhook, err := repo.Create(ctx, 502, fixture.Source.ID, fixture.User.ID)
		require.NoError(t, err)
		assert.Equal(t, fixture.Source.ID, webhook.TargetChannelID)
	})

	t.Run("unknown channel rejected", func(t *testing.T) {
		_, err := repo.Create(ctx, 503, 999999, fixture.User.ID)
		assert.True(t, errors.Is(err, service.ErrForeignKeyViolation))
	})
}

func TestWebhookRepository_GetByTargetChannel(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	fixture := seedRelayFixture(t, testDB)

	repo := NewWebhookRepository(testDB.DB)
	ctx := context.Background()

	t.Run("channel with webhook", func(t *testing.T) {
		webhook, err := repo.GetByTargetChannel(ctx, fixture.Target.ID)
		require.NoError(t, err)
		require.NotNil(t, webhook)
		assert.Equal(t, fixture.Webhook.ID, webhook.ID)
	})

	t.Run("channel without webhook", func(t *testing.T) {
		webhook, err := repo.GetByTargetChannel(ctx, fixture.Source.ID)
		require.NoError(t, err)
		assert.Nil(t, webhook)
	})
}

func TestWebhookRepository_DeleteByTargetChannel(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	fixture := seedRelayFixture(t, testDB)

	repo := NewWebhookRepository(testDB.DB)
	ctx := context.Background()

	removed, err := repo.DeleteByTargetChannel(ctx, fixture.Target.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	webhook, err := repo.GetByID(ctx, fixture.Webhook.ID)
	require.NoError(t, err)
	assert.Nil(t, webhook)

	// A second pass finds nothing
	removed, err = repo.DeleteByTargetChannel(ctx, fixture.Target.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)
}
