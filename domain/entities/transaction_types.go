package entities

// TransactionType represents the type of balance change
type TransactionType string

// All transaction types supported by the system
const (
	// Game session transactions
	TransactionTypeGameBet    TransactionType = "game_bet"
	TransactionTypeGameRaise  TransactionType = "game_raise"
	TransactionTypeGamePayout TransactionType = "game_payout"
	TransactionTypeGameRefund TransactionType = "game_refund"

	// Transfer transactions
	TransactionTypeTransferIn  TransactionType = "transfer_in"
	TransactionTypeTransferOut TransactionType = "transfer_out"

	// Shop transactions
	TransactionTypeItemPurchase TransactionType = "item_purchase"

	// System transactions
	TransactionTypeInitial    TransactionType = "initial"
	TransactionTypeAdjustment TransactionType = "admin_adjustment"
)

// IsGameType returns true if the transaction was made by a game session
func (tt TransactionType) IsGameType() bool {
	return tt == TransactionTypeGameBet ||
		tt == TransactionTypeGameRaise ||
		tt == TransactionTypeGamePayout ||
		tt == TransactionTypeGameRefund
}

// IsTransferType returns true if the transaction type represents a transfer
func (tt TransactionType) IsTransferType() bool {
	return tt == TransactionTypeTransferIn ||
		tt == TransactionTypeTransferOut
}

// IsSystemGenerated returns true if the transaction type is system-generated
func (tt TransactionType) IsSystemGenerated() bool {
	return tt == TransactionTypeInitial ||
		tt == TransactionTypeAdjustment
}

// String returns the string representation of the transaction type
func (tt TransactionType) String() string {
	return string(tt)
}
