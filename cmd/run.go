package cmd

import (
	"context"
	"fmt"
	"time"

	"gambler/arcade/application"
	"gambler/arcade/bot"
	"gambler/arcade/bot/features/arcade"
	"gambler/arcade/config"
	"gambler/arcade/database"
	"gambler/arcade/domain/interfaces"
	"gambler/arcade/games"
	"gambler/arcade/infrastructure"
	"gambler/arcade/infrastructure/observability"
	"gambler/arcade/interactions"

	log "github.com/sirupsen/logrus"
)

// ConfigureLogging applies the configured log level
func ConfigureLogging(cfg *config.Config) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("Invalid LOG_LEVEL %q, using info", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()
	ConfigureLogging(cfg)
	log.Info("Starting arcade bot...")

	log.Info("Initializing metrics...")
	if err := observability.InitializeGlobalMetrics(ctx, cfg); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	metrics := observability.GetMetrics()

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established successfully")

	eventPublisher, closeEvents, err := connectEventPublisher(ctx, cfg, metrics)
	if err != nil {
		db.Close()
		return err
	}

	uowFactory := infrastructure.NewUnitOfWorkFactory(db, eventPublisher)

	log.Info("Initializing game engine...")
	router := interactions.New(interactions.WithObserver(func(outcome interactions.Outcome) {
		metrics.RecordInteraction(outcome.String())
	}))
	ledger := application.NewLedger(uowFactory, cfg.StartingBalance, metrics)
	engine := games.NewEngine(games.Config{
		MinBet:       cfg.GameMinBet,
		MaxBet:       cfg.GameMaxBet,
		Timeout:      cfg.GameSessionTimeout,
		TickInterval: cfg.CrashTickInterval,
	}, games.Dependencies{
		Router:   router,
		Ledger:   ledger,
		Recorder: ledger,
		Observer: metrics,
	})
	log.WithFields(log.Fields{
		"minBet":  cfg.GameMinBet,
		"maxBet":  cfg.GameMaxBet,
		"timeout": cfg.GameSessionTimeout,
	}).Info("Game engine initialized")

	log.Info("Initializing Discord bot...")
	discordBot, err := bot.New(bot.Config{
		Token:           cfg.DiscordToken,
		GuildID:         cfg.GuildID,
		StartingBalance: cfg.StartingBalance,
		SweepInterval:   cfg.SweepInterval,
		Catalog: arcade.CatalogConfig{
			CrashTick: cfg.CrashTickInterval,
			RaceTick:  cfg.RaceTickInterval,
		},
	}, uowFactory, engine, router)
	if err != nil {
		closeEvents()
		db.Close()
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Info("Discord bot initialized successfully")

	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	log.Info("Shutting down bot...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Refunds go out before the event bus and database close
	if err := discordBot.Close(shutdownCtx); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}

	closeEvents()

	log.Info("Closing database connection...")
	db.Close()

	if err := observability.ShutdownGlobalMetrics(shutdownCtx); err != nil {
		log.Errorf("Error shutting down metrics: %v", err)
	}

	log.Info("Shutdown completed")
	return nil
}

// connectEventPublisher returns the NATS publisher, or a no-op one when no
// servers are configured
func connectEventPublisher(ctx context.Context, cfg *config.Config, metrics *observability.MetricsProvider) (interfaces.EventPublisher, func(), error) {
	if cfg.NATSServers == "" {
		log.Warn("NATS_SERVERS not set, domain events will not be published")
		return infrastructure.NewNoopEventPublisher(), func() {}, nil
	}

	log.Infof("Connecting to NATS at %s...", cfg.NATSServers)
	client := infrastructure.NewNATSClient(cfg.NATSServers)
	if err := client.Connect(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	publisher := infrastructure.NewNATSEventPublisher(client, infrastructure.NewEventSubjectMapper(), metrics)
	if err := publisher.EnsureDomainEventStream(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to ensure event stream: %w", err)
	}
	log.Info("NATS event publisher ready")

	return publisher, func() {
		if err := client.Close(); err != nil {
			log.Errorf("Error closing NATS connection: %v", err)
		}
	}, nil
}
