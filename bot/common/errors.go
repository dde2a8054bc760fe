package common

import (
	"errors"
	"fmt"

	"gambler/arcade/domain/entities"
	"gambler/arcade/games"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// BotError represents a structured error with user-facing and internal messages
type BotError struct {
	UserMessage string // Message shown to Discord user
	LogMessage  string // Internal message for logging
	Ephemeral   bool   // Whether the error message should be ephemeral
	Err         error  // Underlying error
	Context     any    // Additional context for logging
}

// Error implements the error interface
func (e *BotError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.LogMessage, e.Err)
	}
	return e.LogMessage
}

// Unwrap returns the underlying error
func (e *BotError) Unwrap() error {
	return e.Err
}

// NewUserError creates an error for user-caused issues (validation, insufficient funds, etc)
func NewUserError(userMessage string, logMessage string) *BotError {
	return &BotError{
		UserMessage: userMessage,
		LogMessage:  logMessage,
		Ephemeral:   true,
	}
}

const systemErrorMessage = "Something went wrong. Please try again later."

// NewSystemError creates an error for system issues (database, unexpected state, etc)
func NewSystemError(err error, logMessage string) *BotError {
	return &BotError{
		UserMessage: systemErrorMessage,
		LogMessage:  logMessage,
		Ephemeral:   true,
		Err:         err,
	}
}

// TranslateError turns engine and ledger errors into a BotError with a
// message fit for the player
func TranslateError(err error, logMessage string) *BotError {
	var botErr *BotError
	if errors.As(err, &botErr) {
		return botErr
	}

	var rejected *games.RejectedError
	switch {
	case errors.As(err, &rejected):
		return &BotError{UserMessage: rejected.Reason, LogMessage: logMessage, Ephemeral: true, Err: err}
	case errors.Is(err, games.ErrInvalidBet):
		return &BotError{UserMessage: capitalize(err.Error()) + ".", LogMessage: logMessage, Ephemeral: true, Err: err}
	case errors.Is(err, entities.ErrInsufficientBalance):
		return &BotError{UserMessage: "You don't have enough bits for that.", LogMessage: logMessage, Ephemeral: true, Err: err}
	case errors.Is(err, entities.ErrInsufficientItems):
		return &BotError{UserMessage: "You don't have that item.", LogMessage: logMessage, Ephemeral: true, Err: err}
	case errors.Is(err, entities.ErrUnknownItem):
		return &BotError{UserMessage: "That item isn't sold here.", LogMessage: logMessage, Ephemeral: true, Err: err}
	case errors.Is(err, entities.ErrSelfTransfer):
		return &BotError{UserMessage: "You cannot donate to yourself.", LogMessage: logMessage, Ephemeral: true, Err: err}
	case errors.Is(err, entities.ErrInvalidAmount):
		return &BotError{UserMessage: "Amount must be positive.", LogMessage: logMessage, Ephemeral: true, Err: err}
	case errors.Is(err, games.ErrSessionFinished):
		return &BotError{UserMessage: "This game is already over.", LogMessage: logMessage, Ephemeral: true, Err: err}
	default:
		return NewSystemError(err, logMessage)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}

// RespondWithError sends an error message as an interaction response
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("❌ %s", message),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error sending error response: %v", err)
	}
}

// FollowUpWithError sends an error message as a follow-up to a deferred interaction
func FollowUpWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	_, err := s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Content: fmt.Sprintf("❌ %s", message),
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Errorf("Error sending follow-up error message: %v", err)
	}
}

// HandleError processes an error and responds appropriately
func HandleError(s *discordgo.Session, i *discordgo.InteractionCreate, err error, deferred bool) {
	botErr := TranslateError(err, "Unexpected error in bot interaction")

	fields := log.Fields{
		"user_id":      InteractionUserID(i),
		"interaction":  interactionName(i),
		"error":        botErr.Error(),
		"user_message": botErr.UserMessage,
	}
	if botErr.Context != nil {
		fields["context"] = botErr.Context
	}
	if botErr.UserMessage == systemErrorMessage {
		log.WithFields(fields).Error(botErr.LogMessage)
	} else {
		log.WithFields(fields).Info(botErr.LogMessage)
	}

	if deferred {
		FollowUpWithError(s, i, botErr.UserMessage)
	} else {
		RespondWithError(s, i, botErr.UserMessage)
	}
}

func interactionName(i *discordgo.InteractionCreate) string {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		return i.ApplicationCommandData().Name
	case discordgo.InteractionMessageComponent:
		return i.MessageComponentData().CustomID
	default:
		return fmt.Sprint(i.Type)
	}
}
