package events

import (
	"time"

	"gambler/arcade/domain/entities"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange   EventType = "balance_change"
	EventTypeUserCreated     EventType = "user_created"
	EventTypeInventoryChange EventType = "inventory_change"
	EventTypeGameSettled     EventType = "game_settled"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	UserID          int64                    `json:"user_id"`
	GuildID         int64                    `json:"guild_id"`
	OldBalance      int64                    `json:"old_balance"`
	NewBalance      int64                    `json:"new_balance"`
	TransactionType entities.TransactionType `json:"transaction_type"`
	ChangeAmount    int64                    `json:"change_amount"`
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// UserCreatedEvent represents a new account in a guild
type UserCreatedEvent struct {
	DiscordID      int64  `json:"discord_id"`
	GuildID        int64  `json:"guild_id"`
	Username       string `json:"username"`
	InitialBalance int64  `json:"initial_balance"`
}

func (e UserCreatedEvent) Type() EventType {
	return EventTypeUserCreated
}

// InventoryChangeEvent represents items gained or consumed
type InventoryChangeEvent struct {
	UserID      int64  `json:"user_id"`
	GuildID     int64  `json:"guild_id"`
	ItemID      string `json:"item_id"`
	OldQuantity int64  `json:"old_quantity"`
	NewQuantity int64  `json:"new_quantity"`
}

func (e InventoryChangeEvent) Type() EventType {
	return EventTypeInventoryChange
}

// GameSettledEvent is published once per settled game session
type GameSettledEvent struct {
	SessionID string    `json:"session_id"`
	GuildID   int64     `json:"guild_id"`
	UserID    int64     `json:"user_id"`
	Game      string    `json:"game"`
	Outcome   string    `json:"outcome"`
	Stake     int64     `json:"stake"`
	Payout    int64     `json:"payout"`
	Modifiers []string  `json:"modifiers,omitempty"`
	EndedAt   time.Time `json:"ended_at"`
}

func (e GameSettledEvent) Type() EventType {
	return EventTypeGameSettled
}
