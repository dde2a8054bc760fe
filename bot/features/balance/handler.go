package balance

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

func (f *Feature) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	guildID, discordID, err := common.ParseIDs(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	var user *entities.User
	var items []*entities.InventoryItem
	err = application.WithLedger(ctx, f.uowFactory, guildID, f.startingBalance, func(ledger interfaces.LedgerService) error {
		var err error
		if user, err = ledger.EnsureBalance(ctx, discordID, common.InteractionUser(i).Username); err != nil {
			return err
		}
		items, err = ledger.GetInventory(ctx, discordID)
		return err
	})
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to load balance"), false)
		return
	}

	displayName := common.GetDisplayName(s, i.GuildID, common.InteractionUserID(i))
	message := fmt.Sprintf("%s, your current balance: **%s bits**", displayName, common.FormatBalance(user.Balance))
	if len(items) > 0 {
		message += "\nItems: " + formatHoldings(items)
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error responding to balance command: %v", err)
	}
}

func (f *Feature) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	guildID, _, err := common.ParseIDs(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	uow := f.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to begin transaction"), false)
		return
	}
	defer uow.Rollback()

	users, err := uow.UserRepository().GetTopBalances(ctx, leaderboardSize)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to load leaderboard"), false)
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{buildLeaderboardEmbed(users)},
		},
	})
	if err != nil {
		log.Errorf("Error responding to leaderboard command: %v", err)
	}
}

func buildLeaderboardEmbed(users []*entities.User) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🏆 Leaderboard",
		Color: common.ColorPrimary,
	}
	if len(users) == 0 {
		embed.Description = "Nobody has played yet."
		return embed
	}

	medals := []string{"🥇", "🥈", "🥉"}
	var lines strings.Builder
	for rank, user := range users {
		prefix := fmt.Sprintf("`#%d`", rank+1)
		if rank < len(medals) {
			prefix = medals[rank]
		}
		fmt.Fprintf(&lines, "%s %s **%s bits**\n", prefix, common.GetUserMention(user.DiscordID), common.FormatBalance(user.Balance))
	}
	embed.Description = lines.String()
	return embed
}

func formatHoldings(items []*entities.InventoryItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		name := item.ItemID
		if def, err := entities.LookupItem(item.ItemID); err == nil {
			name = def.Display()
		}
		parts = append(parts, fmt.Sprintf("%s ×%d", name, item.Quantity))
	}
	return strings.Join(parts, ", ")
}
