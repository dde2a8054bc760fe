package arcade

import (
	"context"
	"errors"
	"strings"

	"gambler/arcade/application"
	"gambler/arcade/bot/common"
	"gambler/arcade/games"
	"gambler/arcade/interactions"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature exposes every game as a slash command and routes game controls
// back to their sessions
type Feature struct {
	engine     *games.Engine
	router     *interactions.Router
	uowFactory application.UnitOfWorkFactory
	games      map[string]Game
	order      []string
}

// NewFeature creates the arcade feature
func NewFeature(engine *games.Engine, router *interactions.Router, uowFactory application.UnitOfWorkFactory, catalog []Game) *Feature {
	f := &Feature{
		engine:     engine,
		router:     router,
		uowFactory: uowFactory,
		games:      make(map[string]Game, len(catalog)),
	}
	for _, g := range catalog {
		f.games[g.Name] = g
		f.order = append(f.order, g.Name)
	}
	return f
}

// Commands returns the slash commands this feature answers
func (f *Feature) Commands() []*discordgo.ApplicationCommand {
	minBet := float64(f.engine.Config().MinBet)
	if minBet < 1 {
		minBet = 1
	}

	commands := make([]*discordgo.ApplicationCommand, 0, len(f.order)+1)
	for _, name := range f.order {
		amount := &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "amount",
			Description: "Amount to bet in bits",
			Required:    true,
			MinValue:    &minBet,
		}
		if maxBet := f.engine.Config().MaxBet; maxBet > 0 {
			amount.MaxValue = float64(maxBet)
		}
		commands = append(commands, &discordgo.ApplicationCommand{
			Name:        name,
			Description: f.games[name].Description,
			Options:     []*discordgo.ApplicationCommandOption{amount},
		})
	}

	commands = append(commands, &discordgo.ApplicationCommand{
		Name:        "history",
		Description: "Show your recent games",
	})
	return commands
}

// HandleCommand answers a slash command and reports whether it was one of ours
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	name := i.ApplicationCommandData().Name
	if name == "history" {
		f.handleHistory(s, i)
		return true
	}

	game, ok := f.games[name]
	if !ok {
		return false
	}
	f.handleStart(s, i, game)
	return true
}

func (f *Feature) handleStart(s *discordgo.Session, i *discordgo.InteractionCreate, game Game) {
	ctx := context.Background()

	guildID, userID, err := common.ParseIDs(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	var bet int64
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "amount" {
			bet = opt.IntValue()
		}
	}

	req := games.Request{
		Owner: games.Account{
			GuildID:  guildID,
			UserID:   userID,
			Username: common.InteractionUser(i).Username,
		},
		Bet:       bet,
		Presenter: newPresenter(s, i.Interaction),
	}

	session, err := game.Start(ctx, f.engine, req)
	if err != nil {
		// A failed presentation may already have answered the interaction
		common.HandleError(s, i, err, errors.Is(err, games.ErrPresentation))
		return
	}

	log.WithFields(log.Fields{
		"sessionID": session.ID(),
		"game":      game.Name,
		"guildID":   guildID,
		"userID":    userID,
		"bet":       bet,
	}).Debug("Game started from slash command")
}

// HandleComponent routes a game control press to its session
func (f *Feature) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.MessageComponentData()
	token := strings.TrimPrefix(data.CustomID, common.ComponentPrefix)

	userID, err := common.ParseUserID(common.InteractionUserID(i))
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to parse component user"), false)
		return
	}

	// The session edits the game message itself
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}); err != nil {
		log.Errorf("Error acknowledging game control: %v", err)
		return
	}

	outcome, err := f.router.Dispatch(context.Background(), token, userID, interactions.Event{
		UserID:  userID,
		Values:  data.Values,
		Payload: i,
	})
	switch outcome {
	case interactions.OutcomeForbidden:
		common.FollowUpWithError(s, i, "This isn't your game. Start your own!")
	case interactions.OutcomeExpired, interactions.OutcomeUnknown:
		common.FollowUpWithError(s, i, "This game has already ended.")
	case interactions.OutcomeOK:
		if err != nil {
			common.HandleError(s, i, err, true)
		}
	}
}
