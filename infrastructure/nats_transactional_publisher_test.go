package infrastructure

import (
	"context"
	"errors"
	"testing"

	"gambler/arcade/domain/entities"
	"gambler/arcade/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockEventPublisher records published events
type MockEventPublisher struct {
	PublishedEvents []events.Event
	PublishError    error
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	if m.PublishError != nil {
		return m.PublishError
	}
	m.PublishedEvents = append(m.PublishedEvents, event)
	return nil
}

func balanceEvent(amount int64) events.BalanceChangeEvent {
	return events.BalanceChangeEvent{
		UserID:          100,
		GuildID:         456,
		OldBalance:      1000,
		NewBalance:      1000 + amount,
		TransactionType: entities.TransactionTypeGamePayout,
		ChangeAmount:    amount,
	}
}

func TestNATSTransactionalPublisher_QueuesUntilFlush(t *testing.T) {
	mockPublisher := &MockEventPublisher{}
	transPublisher := NewNATSTransactionalPublisher(mockPublisher)

	first := balanceEvent(50)
	second := events.GameSettledEvent{SessionID: "abc", GuildID: 456, UserID: 100, Game: "slots", Outcome: "win", Stake: 100, Payout: 150}

	require.NoError(t, transPublisher.Publish(first))
	require.NoError(t, transPublisher.Publish(second))
	assert.Empty(t, mockPublisher.PublishedEvents)

	require.NoError(t, transPublisher.Flush(context.Background()))
	require.Len(t, mockPublisher.PublishedEvents, 2)
	assert.Equal(t, first, mockPublisher.PublishedEvents[0])
	assert.Equal(t, second, mockPublisher.PublishedEvents[1])

	// A second flush has nothing left to send
	require.NoError(t, transPublisher.Flush(context.Background()))
	assert.Len(t, mockPublisher.PublishedEvents, 2)
}

func TestNATSTransactionalPublisher_Discard(t *testing.T) {
	mockPublisher := &MockEventPublisher{}
	transPublisher := NewNATSTransactionalPublisher(mockPublisher)

	require.NoError(t, transPublisher.Publish(balanceEvent(-25)))
	transPublisher.Discard()

	require.NoError(t, transPublisher.Flush(context.Background()))
	assert.Empty(t, mockPublisher.PublishedEvents)
}

func TestNATSTransactionalPublisher_FlushContinuesPastPublishErrors(t *testing.T) {
	mockPublisher := &MockEventPublisher{PublishError: errors.New("nats down")}
	transPublisher := NewNATSTransactionalPublisher(mockPublisher)

	require.NoError(t, transPublisher.Publish(balanceEvent(10)))
	require.NoError(t, transPublisher.Publish(balanceEvent(20)))

	assert.NoError(t, transPublisher.Flush(context.Background()))
	assert.Empty(t, transPublisher.pending)
}

func TestNATSTransactionalPublisher_FlushCanceledContext(t *testing.T) {
	mockPublisher := &MockEventPublisher{}
	transPublisher := NewNATSTransactionalPublisher(mockPublisher)
	require.NoError(t, transPublisher.Publish(balanceEvent(10)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, transPublisher.Flush(ctx), context.Canceled)
	assert.Empty(t, mockPublisher.PublishedEvents)
}
