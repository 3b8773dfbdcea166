package testutil

import (
	"time"

	"relaybridge/models"
)

// CreateTestUser creates a test user with default values
func CreateTestUser(id int64, name string) *models.User {
	now := time.Now()
	return &models.User{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CreateTestBannedUser creates a test user with the ban flag set
func CreateTestBannedUser(id int64, name string) *models.User {
	user := CreateTestUser(id, name)
	user.IsBanned = true
	return user
}

// CreateTestGuild creates a test guild with default values
func CreateTestGuild(id int64, name string) *models.Guild {
	now := time.Now()
	return &models.Guild{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CreateTestChannel creates a test channel under a guild
func CreateTestChannel(id, guildID int64, name string) *models.Channel {
	return &models.Channel{
		ID:        id,
		GuildID:   guildID,
		Name:      name,
		CreatedAt: time.Now(),
	}
}

// CreateTestWebhook creates a test webhook bound to a target channel
func CreateTestWebhook(id, targetChannelID, ownerUserID int64) *models.Webhook {
	return &models.Webhook{
		ID:              id,
		TargetChannelID: targetChannelID,
		OwnerUserID:     ownerUserID,
		CreatedAt:       time.Now(),
	}
}

// CreateTestConnection creates a test connection edge
func CreateTestConnection(id, sourceChannelID, targetChannelID, webhookID, userID int64) *models.Connection {
	return &models.Connection{
		ID:              id,
		SourceChannelID: sourceChannelID,
		TargetChannelID: targetChannelID,
		WebhookID:       webhookID,
		UserID:          userID,
		CreatedAt:       time.Now(),
	}
}

// CreateTestMentionMapping creates a source-agnostic mention mapping
func CreateTestMentionMapping(targetChannelID, userID int64, mentionText string) *models.MentionMapping {
	return &models.MentionMapping{
		TargetChannelID: targetChannelID,
		UserID:          userID,
		MentionText:     mentionText,
		CreatedAt:       time.Now(),
	}
}

// CreateTestScopedMentionMapping creates a mention mapping scoped to a source channel
func CreateTestScopedMentionMapping(sourceChannelID, targetChannelID, userID int64, mentionText string) *models.MentionMapping {
	mapping := CreateTestMentionMapping(targetChannelID, userID, mentionText)
	mapping.SourceChannelID = &sourceChannelID
	return mapping
}
