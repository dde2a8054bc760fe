package testutil

import (
	"time"

	"gambler/arcade/domain/entities"
)

// TestGuildID is the guild every repository test is scoped to
const TestGuildID int64 = 424242

// CreateTestUser creates a test user with default values
func CreateTestUser(discordID int64, username string) *entities.User {
	now := time.Now()
	return &entities.User{
		DiscordID: discordID,
		Username:  username,
		Balance:   100000,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CreateTestBalanceHistory creates a test balance history entry
func CreateTestBalanceHistory(discordID int64, transactionType entities.TransactionType) *entities.BalanceHistory {
	return &entities.BalanceHistory{
		DiscordID:       discordID,
		BalanceBefore:   100000,
		BalanceAfter:    90000,
		ChangeAmount:    -10000,
		TransactionType: transactionType,
		TransactionMetadata: map[string]any{
			"game": "flip",
		},
		CreatedAt: time.Now(),
	}
}

// CreateTestGameRound creates a settled round for a user
func CreateTestGameRound(discordID int64, sessionID, game string, stake, payout int64) *entities.GameRound {
	ended := time.Now().UTC().Truncate(time.Millisecond)
	outcome := "loss"
	switch {
	case payout > stake:
		outcome = "win"
	case payout == stake:
		outcome = "push"
	}
	return &entities.GameRound{
		SessionID: sessionID,
		DiscordID: discordID,
		Game:      game,
		Bet:       stake,
		Stake:     stake,
		Payout:    payout,
		Outcome:   outcome,
		StartedAt: ended.Add(-30 * time.Second),
		EndedAt:   ended,
	}
}
