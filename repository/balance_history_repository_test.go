package repository

import (
	"context"
	"testing"

	"gambler/arcade/domain/entities"
	"gambler/arcade/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceHistoryRepository_RecordAndGet(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewBalanceHistoryRepository(testDB.DB, testutil.TestGuildID)
	userRepo := NewUserRepository(testDB.DB, testutil.TestGuildID)
	ctx := context.Background()

	testUser := testutil.CreateTestUser(123456, "testuser")
	_, err := userRepo.Create(ctx, testUser.DiscordID, testUser.Username, testUser.Balance)
	require.NoError(t, err)

	t.Run("record sets id and guild", func(t *testing.T) {
		history := testutil.CreateTestBalanceHistory(testUser.DiscordID, entities.TransactionTypeGameBet)

		require.NoError(t, repo.Record(ctx, history))
		assert.NotZero(t, history.ID)
		assert.Equal(t, testutil.TestGuildID, history.GuildID)
		assert.False(t, history.CreatedAt.IsZero())
	})

	t.Run("record with nil metadata", func(t *testing.T) {
		history := testutil.CreateTestBalanceHistory(testUser.DiscordID, entities.TransactionTypeGameRefund)
		history.TransactionMetadata = nil

		require.NoError(t, repo.Record(ctx, history))
	})

	t.Run("get by user returns metadata newest first", func(t *testing.T) {
		payout := testutil.CreateTestBalanceHistory(testUser.DiscordID, entities.TransactionTypeGamePayout)
		payout.BalanceBefore, payout.BalanceAfter, payout.ChangeAmount = 90000, 95000, 5000
		payout.TransactionMetadata = map[string]any{"game": "crash", "session_id": "abc"}
		require.NoError(t, repo.Record(ctx, payout))

		histories, err := repo.GetByUser(ctx, testUser.DiscordID, 10)
		require.NoError(t, err)
		require.Len(t, histories, 3)

		assert.Equal(t, entities.TransactionTypeGamePayout, histories[0].TransactionType)
		assert.Equal(t, "crash", histories[0].TransactionMetadata["game"])
		assert.Equal(t, "abc", histories[0].TransactionMetadata["session_id"])
	})

	t.Run("limit", func(t *testing.T) {
		histories, err := repo.GetByUser(ctx, testUser.DiscordID, 1)
		require.NoError(t, err)
		assert.Len(t, histories, 1)
	})
}
