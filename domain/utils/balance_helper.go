package utils

import (
	"context"
	"fmt"

	"gambler/arcade/domain/entities"
	"gambler/arcade/domain/events"
	"gambler/arcade/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// RecordBalanceChange writes the history row for a committed balance change
// and queues its events. Every ledger adjustment goes through here.
func RecordBalanceChange(ctx context.Context, historyRepo interfaces.BalanceHistoryRepository, publisher interfaces.EventPublisher, history *entities.BalanceHistory) error {
	if err := history.ValidateTransaction(); err != nil {
		return fmt.Errorf("invalid balance change: %w", err)
	}

	if err := historyRepo.Record(ctx, history); err != nil {
		return fmt.Errorf("failed to record balance history: %w", err)
	}

	// Publish failures are logged only; the history row is authoritative
	for _, event := range BalanceEvents(history) {
		if err := publisher.Publish(event); err != nil {
			log.WithFields(log.Fields{
				"eventType": event.Type(),
				"userID":    history.DiscordID,
				"guildID":   history.GuildID,
			}).WithError(err).Error("Failed to publish balance event")
		}
	}

	return nil
}

// BalanceEvents derives the domain events for a history entry. An opening
// balance that carries a username also announces the new account.
func BalanceEvents(history *entities.BalanceHistory) []events.Event {
	out := []events.Event{events.BalanceChangeEvent{
		UserID:          history.DiscordID,
		GuildID:         history.GuildID,
		OldBalance:      history.BalanceBefore,
		NewBalance:      history.BalanceAfter,
		TransactionType: history.TransactionType,
		ChangeAmount:    history.ChangeAmount,
	}}

	if history.TransactionType != entities.TransactionTypeInitial {
		return out
	}
	username, ok := history.TransactionMetadata["username"].(string)
	if !ok {
		return out
	}
	return append(out, events.UserCreatedEvent{
		DiscordID:      history.DiscordID,
		GuildID:        history.GuildID,
		Username:       username,
		InitialBalance: history.BalanceAfter,
	})
}
