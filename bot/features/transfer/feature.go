package transfer

import (
	"gambler/arcade/application"

	"github.com/bwmarrin/discordgo"
)

// Feature answers /donate
type Feature struct {
	uowFactory      application.UnitOfWorkFactory
	startingBalance int64
}

// New creates the transfer feature
func New(uowFactory application.UnitOfWorkFactory, startingBalance int64) *Feature {
	return &Feature{
		uowFactory:      uowFactory,
		startingBalance: startingBalance,
	}
}

// Commands returns the slash commands this feature answers
func (f *Feature) Commands() []*discordgo.ApplicationCommand {
	minAmount := 1.0
	return []*discordgo.ApplicationCommand{
		{
			Name:        "donate",
			Description: "Transfer bits to another player",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Amount to donate in bits",
					Required:    true,
					MinValue:    &minAmount,
				},
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to donate to",
					Required:    true,
				},
			},
		},
	}
}

// HandleCommand answers a slash command and reports whether it was one of ours
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if i.ApplicationCommandData().Name != "donate" {
		return false
	}
	f.handleDonate(s, i)
	return true
}
