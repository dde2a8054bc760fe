package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gambler/arcade/domain/entities"
	"gambler/arcade/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGameRoundService_RecordRound(t *testing.T) {
	ctx := context.Background()
	mocks := NewTestMocks()
	ended := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	round := &entities.GameRound{
		SessionID: "session-1",
		DiscordID: TestUser1ID,
		GuildID:   TestGuildID,
		Game:      "crash",
		Bet:       100,
		Stake:     100,
		Payout:    250,
		Outcome:   "win",
		Modifiers: []string{entities.ItemLuckyCharm},
		EndedAt:   ended,
	}

	mocks.GameRoundRepo.On("Create", ctx, round).Return(nil)
	mocks.EventPublisher.On("Publish", events.GameSettledEvent{
		SessionID: "session-1",
		GuildID:   TestGuildID,
		UserID:    TestUser1ID,
		Game:      "crash",
		Outcome:   "win",
		Stake:     100,
		Payout:    250,
		Modifiers: []string{entities.ItemLuckyCharm},
		EndedAt:   ended,
	}).Return(nil)

	service := NewGameRoundService(mocks.GameRoundRepo, mocks.EventPublisher)
	require.NoError(t, service.RecordRound(ctx, round))

	mocks.AssertAllExpectations(t)
}

func TestGameRoundService_RecordRound_RepositoryError(t *testing.T) {
	ctx := context.Background()
	mocks := NewTestMocks()
	round := &entities.GameRound{SessionID: "session-2"}

	mocks.GameRoundRepo.On("Create", ctx, round).Return(errors.New("disk full"))

	service := NewGameRoundService(mocks.GameRoundRepo, mocks.EventPublisher)
	err := service.RecordRound(ctx, round)

	assert.ErrorContains(t, err, "session-2")
	mocks.EventPublisher.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestGameRoundService_RecordRound_AlreadyRecorded(t *testing.T) {
	ctx := context.Background()
	mocks := NewTestMocks()
	round := &entities.GameRound{SessionID: "session-3"}

	mocks.GameRoundRepo.On("Create", ctx, round).Return(entities.ErrRoundRecorded)

	service := NewGameRoundService(mocks.GameRoundRepo, mocks.EventPublisher)
	require.NoError(t, service.RecordRound(ctx, round))

	mocks.EventPublisher.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestGameRoundService_GetSummary(t *testing.T) {
	ctx := context.Background()
	mocks := NewTestMocks()
	summary := &entities.GameSummary{Rounds: 4, Wins: 1, Wagered: 400, Paid: 500}

	mocks.GameRoundRepo.On("GetSummaryByUser", ctx, TestUser1ID).Return(summary, nil)

	service := NewGameRoundService(mocks.GameRoundRepo, mocks.EventPublisher)
	got, err := service.GetSummary(ctx, TestUser1ID)

	require.NoError(t, err)
	assert.Equal(t, int64(100), got.Net())
}
