package interfaces

import (
	"context"

	"gambler/arcade/domain/entities"
)

// LedgerService owns every balance and inventory mutation
type LedgerService interface {
	// EnsureBalance returns the user, creating the account with the starting balance if needed
	EnsureBalance(ctx context.Context, discordID int64, username string) (*entities.User, error)

	// AdjustBalance applies delta and records it. It fails with
	// ErrInsufficientBalance if the result would drop below floor.
	AdjustBalance(ctx context.Context, discordID int64, delta, floor int64, txType entities.TransactionType, metadata map[string]any) (int64, error)

	// AdjustInventoryItem changes an item quantity and returns the new quantity
	AdjustInventoryItem(ctx context.Context, discordID int64, itemID string, delta int64) (int64, error)

	// TransferBalance moves amount between two accounts
	TransferBalance(ctx context.Context, fromDiscordID, toDiscordID int64, amount, floor int64) (*entities.TransferResult, error)

	// ConsumeIfPresent removes one unit of an item if the user holds any
	ConsumeIfPresent(ctx context.Context, discordID int64, itemID string) (bool, error)

	// PurchaseItem debits the item price and adds it to the inventory
	PurchaseItem(ctx context.Context, discordID int64, itemID string, quantity int64) (*entities.PurchaseResult, error)

	// GetInventory lists the user's held items
	GetInventory(ctx context.Context, discordID int64) ([]*entities.InventoryItem, error)
}

// GameRoundService records and reports settled game sessions
type GameRoundService interface {
	// RecordRound stores the round and publishes a GameSettledEvent
	RecordRound(ctx context.Context, round *entities.GameRound) error

	// GetRecentRounds returns the user's latest rounds
	GetRecentRounds(ctx context.Context, discordID int64, limit int) ([]*entities.GameRound, error)

	// GetSummary aggregates the user's rounds
	GetSummary(ctx context.Context, discordID int64) (*entities.GameSummary, error)
}
