package arcade

import (
	"fmt"
	"strings"

	"gambler/arcade/bot/common"
	"gambler/arcade/domain/entities"
	"gambler/arcade/games"

	"github.com/bwmarrin/discordgo"
)

// buildFrameEmbed renders a session frame
func buildFrameEmbed(frame games.Frame) *discordgo.MessageEmbed {
	title := frame.View.Title
	if title == "" {
		title = frame.Game
	}

	fields := make([]*discordgo.MessageEmbedField, 0, len(frame.View.Fields)+3)
	for _, f := range frame.View.Fields {
		fields = append(fields, &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline})
	}

	stake := fmt.Sprintf("**%s bits**", common.FormatBalance(frame.Stake))
	if frame.Stake != frame.Bet {
		stake += fmt.Sprintf(" (bet %s)", common.FormatBalance(frame.Bet))
	}
	fields = append(fields, &discordgo.MessageEmbedField{Name: "Stake", Value: stake, Inline: true})

	if frame.Phase.Terminal() {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Result",
			Value:  resultLine(frame),
			Inline: true,
		})
	} else {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Expires",
			Value:  common.FormatDiscordTimestamp(frame.Deadline, "R"),
			Inline: true,
		})
	}

	if len(frame.Modifiers) > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Items used",
			Value: itemList(frame.Modifiers),
		})
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: frame.View.Description,
		Color:       frameColor(frame),
		Fields:      fields,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%s • %s", frame.Owner.Username, frame.Phase),
		},
	}
}

func resultLine(frame games.Frame) string {
	net := frame.Payout - frame.Stake
	switch frame.Outcome {
	case games.OutcomeWin:
		return fmt.Sprintf("🎉 Won **%s bits** (%s)", common.FormatBalance(frame.Payout), common.FormatSignedBalance(net))
	case games.OutcomeLoss:
		return fmt.Sprintf("😔 Lost **%s bits**", common.FormatBalance(frame.Stake))
	case games.OutcomePush:
		return fmt.Sprintf("🤝 Push, **%s bits** returned", common.FormatBalance(frame.Payout))
	case games.OutcomeCancel:
		return fmt.Sprintf("↩️ Cancelled, **%s bits** refunded", common.FormatBalance(frame.Payout))
	case games.OutcomeExpire:
		return fmt.Sprintf("⌛ Timed out, **%s bits** refunded", common.FormatBalance(frame.Payout))
	default:
		return "No result"
	}
}

func frameColor(frame games.Frame) int {
	if !frame.Phase.Terminal() {
		return common.ColorPrimary
	}
	switch frame.Outcome {
	case games.OutcomeWin:
		return common.ColorSuccess
	case games.OutcomeLoss:
		return common.ColorDanger
	case games.OutcomeExpire:
		return common.ColorWarning
	default:
		return common.ColorNeutral
	}
}

func itemList(ids []string) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if item, err := entities.LookupItem(id); err == nil {
			names = append(names, item.Display())
		} else {
			names = append(names, id)
		}
	}
	return strings.Join(names, ", ")
}

// buildComponents renders the controls of a frame. Finished sessions show
// none; the returned slice is never nil so an edit clears old controls.
func buildComponents(frame games.Frame) []discordgo.MessageComponent {
	rows := []discordgo.MessageComponent{}
	if frame.Phase.Terminal() {
		return rows
	}

	var buttons []discordgo.MessageComponent
	flush := func() {
		if len(buttons) > 0 {
			rows = append(rows, discordgo.ActionsRow{Components: buttons})
			buttons = nil
		}
	}

	for _, control := range frame.Controls {
		if len(control.Action.Options) > 0 {
			flush()
			rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{selectMenu(control)}})
			continue
		}
		if len(buttons) == common.MaxButtonsPerRow {
			flush()
		}
		buttons = append(buttons, button(control))
	}
	flush()

	if len(rows) > common.MaxActionRows {
		rows = rows[:common.MaxActionRows]
	}
	return rows
}

func button(control games.Control) discordgo.Button {
	b := discordgo.Button{
		Label:    control.Action.Label,
		Style:    buttonStyle(control.Action.Style),
		CustomID: common.ComponentPrefix + control.Token,
		Disabled: control.Disabled,
	}
	if control.Action.Emoji != "" {
		b.Emoji = &discordgo.ComponentEmoji{Name: control.Action.Emoji}
	}
	return b
}

func selectMenu(control games.Control) discordgo.SelectMenu {
	options := make([]discordgo.SelectMenuOption, 0, len(control.Action.Options))
	for _, opt := range control.Action.Options {
		if len(options) == common.MaxSelectOptions {
			break
		}
		options = append(options, discordgo.SelectMenuOption{Label: opt.Label, Value: opt.Value})
	}
	return discordgo.SelectMenu{
		MenuType:    discordgo.StringSelectMenu,
		CustomID:    common.ComponentPrefix + control.Token,
		Placeholder: control.Action.Label,
		Options:     options,
		Disabled:    control.Disabled,
	}
}

func buttonStyle(style games.ActionStyle) discordgo.ButtonStyle {
	switch style {
	case games.StyleSecondary:
		return discordgo.SecondaryButton
	case games.StyleSuccess:
		return discordgo.SuccessButton
	case games.StyleDanger:
		return discordgo.DangerButton
	default:
		return discordgo.PrimaryButton
	}
}
