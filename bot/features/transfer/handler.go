package transfer

import (
	"context"

	"gambler/arcade/application"
	"gambler/arcade/bot/common"
	"gambler/arcade/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleDonate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	var amount int64
	var recipientUser *discordgo.User
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "amount":
			amount = opt.IntValue()
		case "user":
			recipientUser = opt.UserValue(s)
		}
	}

	if recipientUser == nil {
		common.RespondWithError(s, i, "Invalid recipient user.")
		return
	}
	if recipientUser.Bot {
		common.RespondWithError(s, i, "Bots have no use for bits.")
		return
	}

	guildID, fromDiscordID, err := common.ParseIDs(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	toDiscordID, err := common.ParseUserID(recipientUser.ID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to parse recipient ID"), false)
		return
	}

	err = application.WithLedger(ctx, f.uowFactory, guildID, f.startingBalance, func(ledger interfaces.LedgerService) error {
		if _, err := ledger.EnsureBalance(ctx, fromDiscordID, common.InteractionUser(i).Username); err != nil {
			return err
		}
		if _, err := ledger.EnsureBalance(ctx, toDiscordID, recipientUser.Username); err != nil {
			return err
		}
		_, err := ledger.TransferBalance(ctx, fromDiscordID, toDiscordID, amount, 0)
		return err
	})
	if err != nil {
		common.HandleError(s, i, common.TranslateError(err, "donation failed"), false)
		return
	}

	log.WithFields(log.Fields{
		"guildID": guildID,
		"from":    fromDiscordID,
		"to":      toDiscordID,
		"amount":  amount,
	}).Info("Donation completed")

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: common.FormatTransferResult(amount, recipientUser.ID),
		},
	})
	if err != nil {
		log.Errorf("Error responding to donate command: %v", err)
	}
}
