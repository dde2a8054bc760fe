package entities

// TransferResult holds both balances after a transfer
type TransferResult struct {
	FromBalance int64
	ToBalance   int64
}

// PurchaseResult describes a completed shop purchase
type PurchaseResult struct {
	Item     ItemDefinition
	Quantity int64
	Cost     int64
	Balance  int64
	Owned    int64
}

// GameSummary aggregates a player's settled rounds
type GameSummary struct {
	Rounds  int64
	Wins    int64
	Wagered int64
	Paid    int64
}

// Net is total payouts minus total stakes
func (s *GameSummary) Net() int64 {
	return s.Paid - s.Wagered
}
