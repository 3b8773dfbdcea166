package service

import (
	"context"

	"relaybridge/events"
	"relaybridge/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, id int64, name string) (*models.User, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) SetBanned(ctx context.Context, id int64, banned bool) (bool, error) {
	args := m.Called(ctx, id, banned)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) SetAdmin(ctx context.Context, id int64, admin bool) (bool, error) {
	args := m.Called(ctx, id, admin)
	return args.Bool(0), args.Error(1)
}

// MockGuildRepository is a mock implementation of GuildRepository
type MockGuildRepository struct {
	mock.Mock
}

func (m *MockGuildRepository) Create(ctx context.Context, id int64, name string) (*models.Guild, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Guild), args.Error(1)
}

func (m *MockGuildRepository) GetByID(ctx context.Context, id int64) (*models.Guild, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Guild), args.Error(1)
}

func (m *MockGuildRepository) SetBanned(ctx context.Context, id int64, banned bool) (bool, error) {
	args := m.Called(ctx, id, banned)
	return args.Bool(0), args.Error(1)
}

func (m *MockGuildRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockChannelRepository is a mock implementation of ChannelRepository
type MockChannelRepository struct {
	mock.Mock
}

func (m *MockChannelRepository) Create(ctx context.Context, id, guildID int64, name string) (*models.Channel, error) {
	args := m.Called(ctx, id, guildID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Channel), args.Error(1)
}

func (m *MockChannelRepository) GetByID(ctx context.Context, id int64) (*models.Channel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Channel), args.Error(1)
}

func (m *MockChannelRepository) ListByGuild(ctx context.Context, guildID int64) ([]*models.Channel, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Channel), args.Error(1)
}

func (m *MockChannelRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockWebhookRepository is a mock implementation of WebhookRepository
type MockWebhookRepository struct {
	mock.Mock
}

func (m *MockWebhookRepository) Create(ctx context.Context, id, targetChannelID, ownerUserID int64) (*models.Webhook, error) {
	args := m.Called(ctx, id, targetChannelID, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Webhook), args.Error(1)
}

func (m *MockWebhookRepository) GetByID(ctx context.Context, id int64) (*models.Webhook, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Webhook), args.Error(1)
}

func (m *MockWebhookRepository) GetByTargetChannel(ctx context.Context, channelID int64) (*models.Webhook, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Webhook), args.Error(1)
}

func (m *MockWebhookRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWebhookRepository) DeleteByTargetChannel(ctx context.Context, channelID int64) (int64, error) {
	args := m.Called(ctx, channelID)
	return args.Get(0).(int64), args.Error(1)
}

// MockConnectionRepository is a mock implementation of ConnectionRepository
type MockConnectionRepository struct {
	mock.Mock
}

func (m *MockConnectionRepository) Create(ctx context.Context, sourceChannelID, targetChannelID, webhookID, userID int64) (*models.Connection, error) {
	args := m.Called(ctx, sourceChannelID, targetChannelID, webhookID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Connection), args.Error(1)
}

func (m *MockConnectionRepository) GetByID(ctx context.Context, id int64) (*models.Connection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Connection), args.Error(1)
}

func (m *MockConnectionRepository) GetByRoute(ctx context.Context, sourceChannelID, targetChannelID, webhookID, userID int64) (*models.Connection, error) {
	args := m.Called(ctx, sourceChannelID, targetChannelID, webhookID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Connection), args.Error(1)
}

func (m *MockConnectionRepository) ListBySource(ctx context.Context, sourceChannelID int64) ([]*models.Connection, error) {
	args := m.Called(ctx, sourceChannelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Connection), args.Error(1)
}

func (m *MockConnectionRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Connection, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Connection), args.Error(1)
}

func (m *MockConnectionRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockConnectionRepository) DeleteByChannel(ctx context.Context, channelID int64) (int64, error) {
	args := m.Called(ctx, channelID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockConnectionRepository) DeleteByWebhook(ctx context.Context, webhookID int64) (int64, error) {
	args := m.Called(ctx, webhookID)
	return args.Get(0).(int64), args.Error(1)
}

// MockMentionMappingRepository is a mock implementation of MentionMappingRepository
type MockMentionMappingRepository struct {
	mock.Mock
}

func (m *MockMentionMappingRepository) Create(ctx context.Context, mapping *models.MentionMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

func (m *MockMentionMappingRepository) Resolve(ctx context.Context, sourceChannelID, targetChannelID, userID int64) (*models.MentionMapping, error) {
	args := m.Called(ctx, sourceChannelID, targetChannelID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MentionMapping), args.Error(1)
}

func (m *MockMentionMappingRepository) DeleteByChannel(ctx context.Context, channelID int64) (int64, error) {
	args := m.Called(ctx, channelID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMentionMappingRepository) DeleteByTarget(ctx context.Context, targetChannelID int64, userID, sourceChannelID *int64) (int64, error) {
	args := m.Called(ctx, targetChannelID, userID, sourceChannelID)
	return args.Get(0).(int64), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Use SetRepositories
// to install the repository mocks a test cares about; unset ones panic on use.
type MockUnitOfWork struct {
	mock.Mock
	userRepo       UserRepository
	guildRepo      GuildRepository
	channelRepo    ChannelRepository
	webhookRepo    WebhookRepository
	connectionRepo ConnectionRepository
	mentionRepo    MentionMappingRepository
	eventBus       EventPublisher
}

// SetRepositories installs repository mocks for the unit of work to hand out
func (m *MockUnitOfWork) SetRepositories(
	userRepo UserRepository,
	guildRepo GuildRepository,
	channelRepo ChannelRepository,
	webhookRepo WebhookRepository,
	connectionRepo ConnectionRepository,
	mentionRepo MentionMappingRepository,
	eventBus EventPublisher,
) {
	m.userRepo = userRepo
	m.guildRepo = guildRepo
	m.channelRepo = channelRepo
	m.webhookRepo = webhookRepo
	m.connectionRepo = connectionRepo
	m.mentionRepo = mentionRepo
	m.eventBus = eventBus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) UserRepository() UserRepository {
	if m.userRepo == nil {
		panic("no user repository installed on mock unit of work")
	}
	return m.userRepo
}

func (m *MockUnitOfWork) GuildRepository() GuildRepository {
	if m.guildRepo == nil {
		panic("no guild repository installed on mock unit of work")
	}
	return m.guildRepo
}

func (m *MockUnitOfWork) ChannelRepository() ChannelRepository {
	if m.channelRepo == nil {
		panic("no channel repository installed on mock unit of work")
	}
	return m.channelRepo
}

func (m *MockUnitOfWork) WebhookRepository() WebhookRepository {
	if m.webhookRepo == nil {
		panic("no webhook repository installed on mock unit of work")
	}
	return m.webhookRepo
}

func (m *MockUnitOfWork) ConnectionRepository() ConnectionRepository {
	if m.connectionRepo == nil {
		panic("no connection repository installed on mock unit of work")
	}
	return m.connectionRepo
}

func (m *MockUnitOfWork) MentionMappingRepository() MentionMappingRepository {
	if m.mentionRepo == nil {
		panic("no mention mapping repository installed on mock unit of work")
	}
	return m.mentionRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	if m.eventBus == nil {
		panic("no event publisher installed on mock unit of work")
	}
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
