package repository

import (
	"context"
	"testing"

	"relaybridge/models"
	"relaybridge/repository/testutil"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

// relayFixture holds the rows most repository tests need: one user, one
// guild, two channels inside it, and a webhook on the second channel.
type relayFixture struct {
	User    *models.User
	Guild   *models.Guild
	Source  *models.Channel
	Target  *models.Channel
	Webhook *models.Webhook
}

// seedRelayFixture inserts the fixture rows in one transaction so foreign
// keys line up and a failed seed leaves nothing behind
func seedRelayFixture(t *testing.T, testDB *testutil.TestDatabase) *relayFixture {
	t.Helper()
	ctx := context.Background()

	var fixture relayFixture
	err := testDB.DB.WithTransaction(ctx, func(tx pgx.Tx) error {
		userRepo := newUserRepositoryWithTx(tx)
		guildRepo := newGuildRepositoryWithTx(tx)
		channelRepo := newChannelRepositoryWithTx(tx)
		webhookRepo := newWebhookRepositoryWithTx(tx)

		user, err := userRepo.Create(ctx, 42, "alice")
		if err != nil {
			return err
		}

		guild, err := guildRepo.Create(ctx, 10, "guild")
		if err != nil {
			return err
		}

		source, err := channelRepo.Create(ctx, 100, guild.ID, "source")
		if err != nil {
			return err
		}

		target, err := channelRepo.Create(ctx, 200, guild.ID, "target")
		if err != nil {
			return err
		}

		webhook, err := webhookRepo.Create(ctx, 500, target.ID, user.ID)
		if err != nil {
			return err
		}

		fixture = relayFixture{
			User:    user,
			Guild:   guild,
			Source:  source,
			Target:  target,
			Webhook: webhook,
		}
		return nil
	})
	require.NoError(t, err)

	return &fixture
}
