package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// commands collects the slash commands of every feature
func (b *Bot) commands() []*discordgo.ApplicationCommand {
	var commands []*discordgo.ApplicationCommand
	for _, feature := range b.features {
		commands = append(commands, feature.Commands()...)
	}
	return commands
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	for _, cmd := range b.commands() {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}
