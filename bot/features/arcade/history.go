package arcade

import (
	"context"
	"fmt"
	"strings"

	"gambler/arcade/application"
	"gambler/arcade/bot/common"
	"gambler/arcade/domain/entities"
	"gambler/arcade/domain/interfaces"

	"github.com/bwmarrin/discordgo"
)

const historyLimit = 10

func (f *Feature) handleHistory(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	guildID, userID, err := common.ParseIDs(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	var rounds []*entities.GameRound
	var summary *entities.GameSummary
	err = application.WithRounds(ctx, f.uowFactory, guildID, func(svc interfaces.GameRoundService) error {
		var err error
		if rounds, err = svc.GetRecentRounds(ctx, userID, historyLimit); err != nil {
			return err
		}
		summary, err = svc.GetSummary(ctx, userID)
		return err
	})
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to load game history"), false)
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{buildHistoryEmbed(common.InteractionUser(i).Username, rounds, summary)},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to respond to history command"), false)
	}
}

func buildHistoryEmbed(username string, rounds []*entities.GameRound, summary *entities.GameSummary) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🎲 %s's recent games", username),
		Color: common.ColorInfo,
	}

	if len(rounds) == 0 {
		embed.Description = "No games played yet. Try `/flip`!"
		return embed
	}

	var lines strings.Builder
	for _, r := range rounds {
		fmt.Fprintf(&lines, "%s **%s** %s, stake %s, net **%s**\n",
			common.FormatDiscordTimestamp(r.EndedAt, "R"),
			r.Game,
			r.Outcome,
			common.FormatBalance(r.Stake),
			common.FormatSignedBalance(r.Net()),
		)
	}
	embed.Description = lines.String()

	if summary != nil && summary.Rounds > 0 {
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: "Games", Value: common.FormatBalance(summary.Rounds), Inline: true},
			{Name: "Wins", Value: common.FormatBalance(summary.Wins), Inline: true},
			{Name: "Wagered", Value: common.FormatBalance(summary.Wagered), Inline: true},
			{Name: "Net", Value: common.FormatSignedBalance(summary.Net()), Inline: true},
		}
	}
	return embed
}
