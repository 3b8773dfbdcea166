package service

import (
	"context"
	"errors"
	"testing"

	"relaybridge/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMentionService_RecordMention_SourceAgnostic(t *testing.T) {
	ctx := context.Background()

	// Setup mocks
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockChannelRepo := new(MockChannelRepository)
	mockMentionRepo := new(MockMentionMappingRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, mockChannelRepo, nil, nil, mockMentionRepo, nil)

	service := NewMentionService(mockFactory)

	target := &models.Channel{ID: 200, GuildID: 20, Name: "target"}
	user := &models.User{ID: 42, Name: "alice"}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockChannelRepo.On("GetByID", ctx, int64(200)).Return(target, nil)
	mockUserRepo.On("GetByID", ctx, int64(42)).Return(user, nil)
	mockMentionRepo.On("Create", ctx, mock.MatchedBy(func(m *models.MentionMapping) bool {
		return m.SourceChannelID == nil &&
			m.TargetChannelID == 200 &&
			m.UserID == 42 &&
			m.MentionText == "@alice-bridged"
	})).Return(nil)

	mapping, err := service.RecordMention(ctx, nil, 200, 42, "@alice-bridged")

	assert.NoError(t, err)
	assert.NotNil(t, mapping)
	assert.Equal(t, "@alice-bridged", mapping.MentionText)

	mockChannelRepo.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
	mockMentionRepo.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
}

func TestMentionService_RecordMention_SourceScoped(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockChannelRepo := new(MockChannelRepository)
	mockMentionRepo := new(MockMentionMappingRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, mockChannelRepo, nil, nil, mockMentionRepo, nil)

	service := NewMentionService(mockFactory)

	source := &models.Channel{ID: 100, GuildID: 10, Name: "source"}
	target := &models.Channel{ID: 200, GuildID: 20, Name: "target"}
	user := &models.User{ID: 42, Name: "alice"}
	sourceID := int64(100)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockChannelRepo.On("GetByID", ctx, int64(200)).Return(target, nil)
	mockChannelRepo.On("GetByID", ctx, int64(100)).Return(source, nil)
	mockUserRepo.On("GetByID", ctx, int64(42)).Return(user, nil)
	mockMentionRepo.On("Create", ctx, mock.MatchedBy(func(m *models.MentionMapping) bool {
		return m.SourceChannelID != nil && *m.SourceChannelID == 100 &&
			m.TargetChannelID == 200 &&
			m.UserID == 42
	})).Return(nil)

	mapping, err := service.RecordMention(ctx, &sourceID, 200, 42, "@alice")

	assert.NoError(t, err)
	assert.NotNil(t, mapping.SourceChannelID)
	assert.Equal(t, int64(100), *mapping.SourceChannelID)
}

func TestMentionService_RecordMention_UnknownTarget(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockChannelRepo := new(MockChannelRepository)
	mockMentionRepo := new(MockMentionMappingRepository)

	mockUoW.SetRepositories(nil, nil, mockChannelRepo, nil, nil, mockMentionRepo, nil)

	service := NewMentionService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockChannelRepo.On("GetByID", ctx, int64(200)).Return(nil, nil)

	mapping, err := service.RecordMention(ctx, nil, 200, 42, "@alice")

	assert.Nil(t, mapping)
	assert.True(t, errors.Is(err, ErrNotFound))
	mockMentionRepo.AssertNotCalled(t, "Create")
}

func TestMentionService_RecordMention_UnknownUser(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockChannelRepo := new(MockChannelRepository)
	mockMentionRepo := new(MockMentionMappingRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, mockChannelRepo, nil, nil, mockMentionRepo, nil)

	service := NewMentionService(mockFactory)

	target := &models.Channel{ID: 200, GuildID: 20, Name: "target"}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockChannelRepo.On("GetByID", ctx, int64(200)).Return(target, nil)
	mockUserRepo.On("GetByID", ctx, int64(42)).Return(nil, nil)

	mapping, err := service.RecordMention(ctx, nil, 200, 42, "@alice")

	assert.Nil(t, mapping)
	assert.True(t, errors.Is(err, ErrNotFound))
	mockMentionRepo.AssertNotCalled(t, "Create")
}

func TestMentionService_ResolveMention_Found(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockMentionRepo := new(MockMentionMappingRepository)

	mockUoW.SetRepositories(nil, nil, nil, nil, nil, mockMentionRepo, nil)

	service := NewMentionService(mockFactory)

	mapping := &models.MentionMapping{
		ID:              5,
		TargetChannelID: 200,
		UserID:          42,
		MentionText:     "@alice-bridged",
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockMentionRepo.On("Resolve", ctx, int64(100), int64(200), int64(42)).Return(mapping, nil)

	text, err := service.ResolveMention(ctx, 100, 200, 42)

	assert.NoError(t, err)
	assert.Equal(t, "@alice-bridged", text)
}

func TestMentionService_ResolveMention_NoMapping(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockMentionRepo := new(MockMentionMappingRepository)

	mockUoW.SetRepositories(nil, nil, nil, nil, nil, mockMentionRepo, nil)

	service := NewMentionService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockMentionRepo.On("Resolve", ctx, int64(100), int64(200), int64(42)).Return(nil, nil)

	text, err := service.ResolveMention(ctx, 100, 200, 42)

	assert.Empty(t, text)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMentionService_ClearMentions(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockMentionRepo := new(MockMentionMappingRepository)

	mockUoW.SetRepositories(nil, nil, nil, nil, nil, mockMentionRepo, nil)

	service := NewMentionService(mockFactory)

	userID := int64(42)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockMentionRepo.On("DeleteByTarget", ctx, int64(200), &userID, (*int64)(nil)).Return(int64(3), nil)

	removed, err := service.ClearMentions(ctx, 200, &userID, nil)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), removed)
	mockMentionRepo.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
}
