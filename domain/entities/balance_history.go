package entities

import (
	"errors"
	"fmt"
	"time"
)

// RelatedType represents what type of entity the related_id refers to
type RelatedType string

const (
	RelatedTypeGameRound RelatedType = "game_round"
	RelatedTypeItem      RelatedType = "item"
)

// BalanceHistory represents a historical balance change
type BalanceHistory struct {
	ID                  int64           `db:"id"`
	DiscordID           int64           `db:"discord_id"`
	GuildID             int64           `db:"guild_id"`
	BalanceBefore       int64           `db:"balance_before"`
	BalanceAfter        int64           `db:"balance_after"`
	ChangeAmount        int64           `db:"change_amount"`
	TransactionType     TransactionType `db:"transaction_type"`
	TransactionMetadata map[string]any  `db:"transaction_metadata"`
	RelatedID           *int64          `db:"related_id"`
	RelatedType         *RelatedType    `db:"related_type"`
	CreatedAt           time.Time       `db:"created_at"`
}

// IsPositiveChange returns true if the change amount is positive
func (bh *BalanceHistory) IsPositiveChange() bool {
	return bh.ChangeAmount > 0
}

// IsGameTransaction returns true if a game session made the change
func (bh *BalanceHistory) IsGameTransaction() bool {
	return bh.TransactionType.IsGameType()
}

// GetTransactionDescription returns a short human readable description
func (bh *BalanceHistory) GetTransactionDescription() string {
	game, _ := bh.TransactionMetadata["game"].(string)
	switch bh.TransactionType {
	case TransactionTypeGameBet:
		return fmt.Sprintf("Bet on %s", game)
	case TransactionTypeGameRaise:
		return fmt.Sprintf("Raised bet on %s", game)
	case TransactionTypeGamePayout:
		return fmt.Sprintf("Won at %s", game)
	case TransactionTypeGameRefund:
		return fmt.Sprintf("Refund from %s", game)
	case TransactionTypeTransferIn:
		return "Donation received"
	case TransactionTypeTransferOut:
		return "Donation sent"
	case TransactionTypeItemPurchase:
		item, _ := bh.TransactionMetadata["item"].(string)
		return fmt.Sprintf("Bought %s", item)
	case TransactionTypeInitial:
		return "Starting balance"
	case TransactionTypeAdjustment:
		return "Balance adjustment"
	default:
		return string(bh.TransactionType)
	}
}

// ValidateTransaction checks that the recorded amounts add up
func (bh *BalanceHistory) ValidateTransaction() error {
	if bh.BalanceBefore+bh.ChangeAmount != bh.BalanceAfter {
		return errors.New("balance calculation mismatch")
	}
	if bh.TransactionType == "" {
		return errors.New("transaction type is required")
	}
	return nil
}
