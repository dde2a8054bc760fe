package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gambler/arcade/application"
	"gambler/arcade/bot/common"
	"gambler/arcade/bot/features/arcade"
	"gambler/arcade/bot/features/balance"
	"gambler/arcade/bot/features/shop"
	"gambler/arcade/bot/features/transfer"
	"gambler/arcade/games"
	"gambler/arcade/interactions"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string // Commands are registered to this guild when set, globally otherwise

	StartingBalance int64
	SweepInterval   time.Duration
	Catalog         arcade.CatalogConfig
}

// commandFeature is a feature that owns slash commands
type commandFeature interface {
	Commands() []*discordgo.ApplicationCommand
	HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) bool
}

// Bot manages the Discord bot and all feature modules
type Bot struct {
	config     Config
	session    *discordgo.Session
	uowFactory application.UnitOfWorkFactory
	engine     *games.Engine
	router     *interactions.Router

	// Feature modules
	arcade   *arcade.Feature
	balance  *balance.Feature
	transfer *transfer.Feature
	shop     *shop.Feature
	features []commandFeature

	stopSweepWorker func()
}

// New creates a new bot instance with all features
func New(config Config, uowFactory application.UnitOfWorkFactory, engine *games.Engine, router *interactions.Router) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	bot := &Bot{
		config:     config,
		session:    dg,
		uowFactory: uowFactory,
		engine:     engine,
		router:     router,
	}

	bot.arcade = arcade.NewFeature(engine, router, uowFactory, arcade.Catalog(config.Catalog))
	bot.balance = balance.New(uowFactory, config.StartingBalance)
	bot.transfer = transfer.New(uowFactory, config.StartingBalance)
	bot.shop = shop.New(uowFactory, config.StartingBalance)
	bot.features = []commandFeature{bot.arcade, bot.balance, bot.transfer, bot.shop}

	dg.AddHandler(bot.handleReady)
	dg.AddHandler(bot.handleCommands)
	dg.AddHandler(bot.handleInteractions)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	bot.stopSweepWorker = bot.StartSessionSweepWorker(context.Background(), config.SweepInterval)
	log.Info("Background workers started")

	return bot, nil
}

// Close refunds every live game and shuts the bot down
func (b *Bot) Close(ctx context.Context) error {
	if b.stopSweepWorker != nil {
		b.stopSweepWorker()
	}
	log.Info("Background workers stopped")

	live := b.engine.Live()
	if err := b.engine.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Some game sessions could not be refunded")
	} else if live > 0 {
		log.WithField("sessions", live).Info("Refunded live game sessions")
	}
	b.router.Close()

	return b.session.Close()
}

// GetSession returns the Discord session
func (b *Bot) GetSession() *discordgo.Session {
	return b.session
}

func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	log.WithFields(log.Fields{
		"user":   r.User.Username,
		"guilds": len(r.Guilds),
	}).Info("Discord session ready")
}

// handleCommands routes slash commands to appropriate handlers
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	for _, feature := range b.features {
		if feature.HandleCommand(s, i) {
			return
		}
	}
	log.WithField("command", i.ApplicationCommandData().Name).Warn("Unhandled slash command")
}

// handleInteractions routes component interactions to appropriate features
func (b *Bot) handleInteractions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := i.MessageComponentData().CustomID
	switch {
	case strings.HasPrefix(customID, common.ComponentPrefix):
		b.arcade.HandleComponent(s, i)
	default:
		log.WithField("customID", customID).Debug("Ignoring component without a known prefix")
	}
}
