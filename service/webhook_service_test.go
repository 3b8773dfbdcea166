package service

import (
	"context"
	"errors"
	"testing"

	"relaybridge/events"
	"relaybridge/models"

	"github.com/stretchr/testify/assert"
)

func TestWebhookService_CreateWebhook_Success(t *testing.T) {
	ctx := context.Background()

	// Setup mocks
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockChannelRepo := new(MockChannelRepository)
	mockWebhookRepo := new(MockWebhookRepository)
	mockEventBus := new(MockEventPublisher)

	mockUoW.SetRepositories(mockUserRepo, nil, mockChannelRepo, mockWebhookRepo, nil, nil, mockEventBus)

	service := NewWebhookService(mockFactory)

	owner := &models.User{ID: 42, Name: "owner"}
	channel := &models.Channel{ID: 100, GuildID: 10, Name: "general"}
	webhook := &models.Webhook{ID: 500, TargetChannelID: 100, OwnerUserID: 42}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, int64(42)).Return(owner, nil)
	mockChannelRepo.On("GetByID", ctx, int64(100)).Return(channel, nil)
	mockWebhookRepo.On("GetByTargetChannel", ctx, int64(100)).Return(nil, nil)
	mockWebhookRepo.On("Create", ctx, int64(500), int64(100), int64(42)).Return(webhook, nil)

	mockEventBus.On("Publish", events.WebhookCreatedEvent{
		WebhookID:       500,
		TargetChannelID: 100,
		OwnerUserID:     42,
	}).Return()

	created, err := service.CreateWebhook(ctx, 500, 100, 42)

	assert.NoError(t, err)
	assert.Equal(t, webhook, created)

	mockUserRepo.AssertExpectations(t)
	mockChannelRepo.AssertExpectations(t)
	mockWebhookRepo.AssertExpectations(t)
	mockEventBus.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
}

func TestWebhookService_CreateWebhook_UnknownOwner(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockChannelRepo := new(MockChannelRepository)
	mockWebhookRepo := new(MockWebhookRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, mockChannelRepo, mockWebhookRepo, nil, nil, nil)

	service := NewWebhookService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, int64(42)).Return(nil, nil)

	created, err := service.CreateWebhook(ctx, 500, 100, 42)

	assert.Nil(t, created)
	assert.True(t, errors.Is(err, ErrNotFound))

	// Owner check comes before any channel lookup
	mockChannelRepo.AssertNotCalled(t, "GetByID")
	mockWebhookRepo.AssertNotCalled(t, "Create")
}

func TestWebhookService_CreateWebhook_BannedOwner(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockChannelRepo := new(MockChannelRepository)
	mockWebhookRepo := new(MockWebhookRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, mockChannelRepo, mockWebhookRepo, nil, nil, nil)

	service := NewWebhookService(mockFactory)

	bannedOwner := &models.User{ID: 42, Name: "owner", IsBanned: true}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, int64(42)).Return(bannedOwner, nil)

	created, err := service.CreateWebhook(ctx, 500, 100, 42)

	assert.Nil(t, created)
	assert.True(t, errors.Is(err, ErrBannedUser))

	mockUoW.AssertNotCalled(t, "Commit")
	mockWebhookRepo.AssertNotCalled(t, "Create")
}

func TestWebhookService_CreateWebhook_UnknownChannel(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockChannelRepo := new(MockChannelRepository)
	mockWebhookRepo := new(MockWebhookRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, mockChannelRepo, mockWebhookRepo, nil, nil, nil)

	service := NewWebhookService(mockFactory)

	owner := &models.User{ID: 42, Name: "owner"}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, int64(42)).Return(owner, nil)
	mockChannelRepo.On("GetByID", ctx, int64(100)).Return(nil, nil)

	created, err := service.CreateWebhook(ctx, 500, 100, 42)

	assert.Nil(t, created)
	assert.True(t, errors.Is(err, ErrNotFound))
	mockWebhookRepo.AssertNotCalled(t, "Create")
}

func TestWebhookService_CreateWebhook_ChannelAlreadyHasWebhook(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockChannelRepo := new(MockChannelRepository)
	mockWebhookRepo := new(MockWebhookRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, mockChannelRepo, mockWebhookRepo, nil, nil, nil)

	service := NewWebhookService(mockFactory)

	owner := &models.User{ID: 42, Name: "owner"}
	channel := &models.Channel{ID: 100, GuildID: 10, Name: "general"}
	existing := &models.Webhook{ID: 499, TargetChannelID: 100, OwnerUserID: 7}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, int64(42)).Return(owner, nil)
	mockChannelRepo.On("GetByID", ctx, int64(100)).Return(channel, nil)
	mockWebhookRepo.On("GetByTargetChannel", ctx, int64(100)).Return(existing, nil)

	created, err := service.CreateWebhook(ctx, 500, 100, 42)

	assert.Nil(t, created)
	assert.True(t, errors.Is(err, ErrConflict))
	mockWebhookRepo.AssertNotCalled(t, "Create")
}

func TestWebhookService_DeleteWebhook_RemovesConnectionsFirst(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockWebhookRepo := new(MockWebhookRepository)
	mockConnectionRepo := new(MockConnectionRepository)
	mockEventBus := new(MockEventPublisher)

	mockUoW.SetRepositories(nil, nil, nil, mockWebhookRepo, mockConnectionRepo, nil, mockEventBus)

	service := NewWebhookService(mockFactory)

	webhook := &models.Webhook{ID: 500, TargetChannelID: 100, OwnerUserID: 42}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockWebhookRepo.On("GetByID", ctx, int64(500)).Return(webhook, nil)
	mockConnectionRepo.On("DeleteByWebhook", ctx, int64(500)).Return(int64(4), nil)
	mockWebhookRepo.On("Delete", ctx, int64(500)).Return(nil)

	mockEventBus.On("Publish", events.WebhookDeletedEvent{
		WebhookID:          500,
		ConnectionsRemoved: 4,
	}).Return()

	err := service.DeleteWebhook(ctx, 500)

	assert.NoError(t, err)

	mockWebhookRepo.AssertExpectations(t)
	mockConnectionRepo.AssertExpectations(t)
	mockEventBus.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
}

func TestWebhookService_DeleteWebhook_AbsentIsNoop(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockWebhookRepo := new(MockWebhookRepository)
	mockConnectionRepo := new(MockConnectionRepository)
	mockEventBus := new(MockEventPublisher)

	mockUoW.SetRepositories(nil, nil, nil, mockWebhookRepo, mockConnectionRepo, nil, mockEventBus)

	service := NewWebhookService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockWebhookRepo.On("GetByID", ctx, int64(500)).Return(nil, nil)

	err := service.DeleteWebhook(ctx, 500)

	assert.NoError(t, err)

	mockUoW.AssertNotCalled(t, "Commit")
	mockConnectionRepo.AssertNotCalled(t, "DeleteByWebhook")
	mockEventBus.AssertNotCalled(t, "Publish")
}
