package bot

import (
	"context"
	"testing"
	"time"

	"gambler/arcade/clock"
	"gambler/arcade/games"
	"gambler/arcade/games/flip"
	"gambler/arcade/games/gamestest"
	"gambler/arcade/interactions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSweepWorker_ExpiresOverdueSessions(t *testing.T) {
	// Timers never fire, so only the sweep can expire the session
	mock := clock.NewMock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	frozen := &frozenTimers{Mock: mock}
	router := interactions.New(interactions.WithClock(frozen))
	ledger := gamestest.NewLedger(1000)
	engine := games.NewEngine(games.Config{MinBet: 1, Timeout: time.Minute}, games.Dependencies{
		Router: router,
		Ledger: ledger,
		Clock:  frozen,
		Seed:   func() (uint64, error) { return 1, nil },
	})

	c, err := games.Start[flip.State](context.Background(), engine, flip.New(), games.Request{
		Owner:     gamestest.Owner,
		Bet:       300,
		Presenter: &gamestest.Presenter{},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(700), ledger.Balance())

	b := &Bot{engine: engine, router: router}
	mock.Advance(2 * time.Minute)

	stop := b.StartSessionSweepWorker(context.Background(), 10*time.Millisecond)
	defer stop()

	select {
	case <-c.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("sweep worker did not expire the session")
	}
	assert.Equal(t, games.PhaseExpired, c.Phase())
	assert.Equal(t, int64(1000), ledger.Balance())
	assert.Zero(t, engine.Live())
}

// frozenTimers hands out timers that never fire
type frozenTimers struct {
	*clock.Mock
}

type frozenTimer struct{}

func (frozenTimer) Stop() bool { return true }

func (f *frozenTimers) AfterFunc(time.Duration, func()) clock.Timer {
	return frozenTimer{}
}
