package shop

import (
	"gambler/arcade/application"
	"gambler/arcade/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// MaxQuantity bounds a single purchase
const MaxQuantity = 10

// Feature sells game modifiers and shows what a player holds
type Feature struct {
	uowFactory      application.UnitOfWorkFactory
	startingBalance int64
}

// New creates the shop feature
func New(uowFactory application.UnitOfWorkFactory, startingBalance int64) *Feature {
	return &Feature{
		uowFactory:      uowFactory,
		startingBalance: startingBalance,
	}
}

// Commands returns the slash commands this feature answers
func (f *Feature) Commands() []*discordgo.ApplicationCommand {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(entities.ItemCatalog))
	for _, item := range entities.ItemCatalog {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  item.Name,
			Value: item.ID,
		})
	}
	minQuantity := 1.0

	return []*discordgo.ApplicationCommand{
		{
			Name:        "shop",
			Description: "Buy items that change how your games end",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "Show the items for sale",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "buy",
					Description: "Buy an item",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "item",
							Description: "Item to buy",
							Required:    true,
							Choices:     choices,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "quantity",
							Description: "How many to buy (default 1)",
							Required:    false,
							MinValue:    &minQuantity,
							MaxValue:    MaxQuantity,
						},
					},
				},
			},
		},
		{
			Name:        "inventory",
			Description: "Show the items you hold",
		},
	}
}

// HandleCommand answers a slash command and reports whether it was one of ours
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	data := i.ApplicationCommandData()
	switch data.Name {
	case "shop":
		if len(data.Options) == 0 {
			return false
		}
		switch data.Options[0].Name {
		case "list":
			f.handleList(s, i)
		case "buy":
			f.handleBuy(s, i, data.Options[0].Options)
		}
	case "inventory":
		f.handleInventory(s, i)
	default:
		return false
	}
	return true
}
