package shop

import (
	"context"
	"fmt"
	"strings"

	"gambler/arcade/application"
	"gambler/arcade/bot/common"
	"gambler/arcade/domain/entities"
	"gambler/arcade/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{buildCatalogEmbed()},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error responding to shop list: %v", err)
	}
}

func (f *Feature) handleBuy(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	var itemID string
	quantity := int64(1)
	for _, opt := range options {
		switch opt.Name {
		case "item":
			itemID = opt.StringValue()
		case "quantity":
			quantity = opt.IntValue()
		}
	}
	if quantity < 1 || quantity > MaxQuantity {
		common.RespondWithError(s, i, fmt.Sprintf("You can buy between 1 and %d at a time.", MaxQuantity))
		return
	}

	guildID, discordID, err := common.ParseIDs(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	var result *entities.PurchaseResult
	err = application.WithLedger(ctx, f.uowFactory, guildID, f.startingBalance, func(ledger interfaces.LedgerService) error {
		if _, err := ledger.EnsureBalance(ctx, discordID, common.InteractionUser(i).Username); err != nil {
			return err
		}
		var err error
		result, err = ledger.PurchaseItem(ctx, discordID, itemID, quantity)
		return err
	})
	if err != nil {
		common.HandleError(s, i, common.TranslateError(err, "purchase failed"), false)
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: formatPurchase(result),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error responding to shop purchase: %v", err)
	}
}

func (f *Feature) handleInventory(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	guildID, discordID, err := common.ParseIDs(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	var items []*entities.InventoryItem
	err = application.WithLedger(ctx, f.uowFactory, guildID, f.startingBalance, func(ledger interfaces.LedgerService) error {
		var err error
		items, err = ledger.GetInventory(ctx, discordID)
		return err
	})
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to load inventory"), false)
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{buildInventoryEmbed(items)},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error responding to inventory command: %v", err)
	}
}

func buildCatalogEmbed() *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(entities.ItemCatalog))
	for _, item := range entities.ItemCatalog {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s · %s bits", item.Display(), common.FormatBalance(item.Price)),
			Value: item.Description,
		})
	}
	return &discordgo.MessageEmbed{
		Title:       "🛒 Shop",
		Description: "Items are used up automatically when they change a result: reroll first, then shield, then charm.",
		Color:       common.ColorInfo,
		Fields:      fields,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Buy with /shop buy"},
	}
}

func buildInventoryEmbed(items []*entities.InventoryItem) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🎒 Inventory",
		Color: common.ColorInfo,
	}
	if len(items) == 0 {
		embed.Description = "You don't hold any items. Browse them with `/shop list`."
		return embed
	}

	var lines strings.Builder
	for _, item := range items {
		name := item.ItemID
		if def, err := entities.LookupItem(item.ItemID); err == nil {
			name = def.Display()
		}
		fmt.Fprintf(&lines, "%s ×%d\n", name, item.Quantity)
	}
	embed.Description = lines.String()
	return embed
}

func formatPurchase(result *entities.PurchaseResult) string {
	return fmt.Sprintf("✅ Bought %d× %s for **%s bits**. You now hold %d. Balance: **%s bits**",
		result.Quantity,
		result.Item.Display(),
		common.FormatBalance(result.Cost),
		result.Owned,
		common.FormatBalance(result.Balance),
	)
}
