package arcade

import (
	"context"
	"fmt"

	"gambler/arcade/games"

	"github.com/bwmarrin/discordgo"
)

// presenter draws one session as the response to the command that started it
type presenter struct {
	session     *discordgo.Session
	interaction *discordgo.Interaction
}

func newPresenter(s *discordgo.Session, i *discordgo.Interaction) *presenter {
	return &presenter{session: s, interaction: i}
}

func (p *presenter) Present(ctx context.Context, frame games.Frame) (games.Handle, error) {
	err := p.session.InteractionRespond(p.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{buildFrameEmbed(frame)},
			Components: buildComponents(frame),
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return games.Handle{}, fmt.Errorf("failed to respond with game: %w", err)
	}

	msg, err := p.session.InteractionResponse(p.interaction, discordgo.WithContext(ctx))
	if err != nil {
		return games.Handle{}, fmt.Errorf("failed to fetch game message: %w", err)
	}
	return games.Handle{ChannelID: msg.ChannelID, MessageID: msg.ID}, nil
}

func (p *presenter) Update(ctx context.Context, h games.Handle, frame games.Frame) error {
	return p.edit(ctx, h, frame)
}

func (p *presenter) Finalize(ctx context.Context, h games.Handle, frame games.Frame) error {
	return p.edit(ctx, h, frame)
}

func (p *presenter) edit(ctx context.Context, h games.Handle, frame games.Frame) error {
	components := buildComponents(frame)
	_, err := p.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    h.ChannelID,
		ID:         h.MessageID,
		Embeds:     &[]*discordgo.MessageEmbed{buildFrameEmbed(frame)},
		Components: &components,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to edit game message %s: %w", h.MessageID, err)
	}
	return nil
}
