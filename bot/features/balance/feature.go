package balance

import (
	"gambler/arcade/application"

	"github.com/bwmarrin/discordgo"
)

const leaderboardSize = 10

// Feature answers /balance and /leaderboard
type Feature struct {
	uowFactory      application.UnitOfWorkFactory
	startingBalance int64
}

// New creates the balance feature
func New(uowFactory application.UnitOfWorkFactory, startingBalance int64) *Feature {
	return &Feature{
		uowFactory:      uowFactory,
		startingBalance: startingBalance,
	}
}

// Commands returns the slash commands this feature answers
func (f *Feature) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "balance",
			Description: "Check your current balance",
		},
		{
			Name:        "leaderboard",
			Description: "Show the richest players in this server",
		},
	}
}

// HandleCommand answers a slash command and reports whether it was one of ours
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	switch i.ApplicationCommandData().Name {
	case "balance":
		f.handleBalance(s, i)
	case "leaderboard":
		f.handleLeaderboard(s, i)
	default:
		return false
	}
	return true
}
