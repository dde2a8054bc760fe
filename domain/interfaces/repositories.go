package interfaces

import (
	"context"

	"gambler/arcade/domain/entities"
	"gambler/arcade/domain/events"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByDiscordID retrieves a user by their Discord ID, nil if absent
	GetByDiscordID(ctx context.Context, discordID int64) (*entities.User, error)

	// Create creates a new user with the initial balance
	Create(ctx context.Context, discordID int64, username string, initialBalance int64) (*entities.User, error)

	// AddBalance atomically applies delta and returns the new balance. It
	// returns ErrInsufficientBalance if the result would be below floor and
	// ErrUserNotFound if the account does not exist.
	AddBalance(ctx context.Context, discordID int64, delta, floor int64) (int64, error)

	// GetTopBalances returns the richest users first
	GetTopBalances(ctx context.Context, limit int) ([]*entities.User, error)
}

// BalanceHistoryRepository defines the interface for balance history data access
type BalanceHistoryRepository interface {
	// Record creates a new balance history entry
	Record(ctx context.Context, history *entities.BalanceHistory) error

	// GetByUser returns balance history for a user, newest first
	GetByUser(ctx context.Context, discordID int64, limit int) ([]*entities.BalanceHistory, error)
}

// InventoryRepository defines the interface for item holdings
type InventoryRepository interface {
	// GetByUser returns every item the user holds with a positive quantity
	GetByUser(ctx context.Context, discordID int64) ([]*entities.InventoryItem, error)

	// GetQuantity returns how many of an item the user holds
	GetQuantity(ctx context.Context, discordID int64, itemID string) (int64, error)

	// Adjust atomically changes the quantity. It returns ErrInsufficientItems
	// if the quantity would go negative.
	Adjust(ctx context.Context, discordID int64, itemID string, delta int64) (*entities.InventoryItem, error)
}

// GameRoundRepository defines the interface for settled game rounds
type GameRoundRepository interface {
	// Create stores a round and sets its ID
	Create(ctx context.Context, round *entities.GameRound) error

	// GetRecentByUser returns the user's latest rounds, newest first
	GetRecentByUser(ctx context.Context, discordID int64, limit int) ([]*entities.GameRound, error)

	// GetSummaryByUser aggregates all of the user's rounds
	GetSummaryByUser(ctx context.Context, discordID int64) (*entities.GameSummary, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(event events.Event) error
}

// TransactionalEventPublisher holds events until the surrounding transaction
// commits (Flush) or rolls back (Discard)
type TransactionalEventPublisher interface {
	EventPublisher
	Flush(ctx context.Context) error
	Discard()
}
