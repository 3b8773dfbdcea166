package cmd

import (
	"context"
	"fmt"
	"time"

	"relaybridge/config"
	"relaybridge/database"
	"relaybridge/events"
	"relaybridge/repository"
	"relaybridge/service"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the relay core
func Run(ctx context.Context) error {
	// Load configuration
	cfg := config.Get()

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	log.Info("Starting relay core...")

	// Initialize database connection
	databaseURL := database.ConstructDatabaseURL(cfg.DatabaseURL, cfg.DatabaseName)
	db, err := database.NewConnection(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established")

	// Initialize event bus
	eventBus := events.NewBus()
	subscribeEventLogging(eventBus)

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize services
	identityService := service.NewIdentityService(uowFactory)
	channelService := service.NewChannelService(uowFactory)
	webhookService := service.NewWebhookService(uowFactory)
	connectionService := service.NewConnectionService(uowFactory)
	mentionService := service.NewMentionService(uowFactory)
	relayService := service.NewRelayService(uowFactory)
	log.Info("Services initialized")

	// The relay dispatcher and admin surface attach here; until they do the
	// process just holds the store and the bus.
	_ = identityService
	_ = channelService
	_ = webhookService
	_ = connectionService
	_ = mentionService
	_ = relayService

	log.Infof("Relay core is running in %s mode", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Close database connection
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Info("Shutdown completed")
	}

	return nil
}

// subscribeEventLogging logs the relay graph mutations the bus announces so a
// deployment has an audit trail even before a dispatcher subscribes
func subscribeEventLogging(bus *events.Bus) {
	logEvent := func(ctx context.Context, event events.Event) {
		log.WithField("eventType", event.Type()).Infof("Event: %+v", event)
	}

	bus.Subscribe(events.EventTypeUserBanned, logEvent)
	bus.Subscribe(events.EventTypeGuildBanned, logEvent)
	bus.Subscribe(events.EventTypeGuildDeleted, logEvent)
	bus.Subscribe(events.EventTypeChannelDeleted, logEvent)
	bus.Subscribe(events.EventTypeWebhookCreated, logEvent)
	bus.Subscribe(events.EventTypeWebhookDeleted, logEvent)
	bus.Subscribe(events.EventTypeConnectionCreated, logEvent)
	bus.Subscribe(events.EventTypeConnectionDeleted, logEvent)
}
