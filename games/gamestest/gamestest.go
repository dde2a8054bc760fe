// Package gamestest provides an in-memory ledger, a recording presenter and
// an engine wired to a mock clock for testing game variants.
package gamestest

import (
	"context"
	"sync"
	"testing"
	"time"

	"gambler/arcade/clock"
	"gambler/arcade/games"
	"gambler/arcade/interactions"
)

// Owner is the account every harness session is started for
var Owner = games.Account{GuildID: 1, UserID: 100, Username: "tester"}

// Ledger is an in-memory games.Ledger
type Ledger struct {
	mu       sync.Mutex
	balances map[int64]int64
	items    map[string]int
	credits  []int64
	debits   []int64
}

// NewLedger creates a ledger holding balance for Owner
func NewLedger(balance int64) *Ledger {
	return &Ledger{
		balances: map[int64]int64{Owner.UserID: balance},
		items:    make(map[string]int),
	}
}

func (l *Ledger) EnsureBalance(_ context.Context, acct games.Account) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[acct.UserID], nil
}

func (l *Ledger) AdjustBalance(_ context.Context, acct games.Account, delta, floor int64, _ games.Memo) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := l.balances[acct.UserID] + delta
	if next < floor {
		return 0, games.ErrInsufficientBalance
	}
	l.balances[acct.UserID] = next
	if delta > 0 {
		l.credits = append(l.credits, delta)
	} else {
		l.debits = append(l.debits, -delta)
	}
	return next, nil
}

func (l *Ledger) ConsumeIfPresent(_ context.Context, _ games.Account, item string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.items[item] <= 0 {
		return false, nil
	}
	l.items[item]--
	return true, nil
}

// Balance returns Owner's balance
func (l *Ledger) Balance() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[Owner.UserID]
}

// Credits returns every positive adjustment in order
func (l *Ledger) Credits() []int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]int64(nil), l.credits...)
}

// Debits returns every negative adjustment as a positive amount
func (l *Ledger) Debits() []int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]int64(nil), l.debits...)
}

// Give adds items to Owner's inventory
func (l *Ledger) Give(item string, quantity int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items[item] += quantity
}

// Items returns how many of an item Owner holds
func (l *Ledger) Items(item string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.items[item]
}

// Presenter records every frame it is handed
type Presenter struct {
	mu       sync.Mutex
	Presents []games.Frame
	Updates  []games.Frame
	Finals   []games.Frame
}

func (p *Presenter) Present(_ context.Context, frame games.Frame) (games.Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Presents = append(p.Presents, frame)
	return games.Handle{ChannelID: "channel", MessageID: "message"}, nil
}

func (p *Presenter) Update(_ context.Context, _ games.Handle, frame games.Frame) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Updates = append(p.Updates, frame)
	return nil
}

func (p *Presenter) Finalize(_ context.Context, _ games.Handle, frame games.Frame) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Finals = append(p.Finals, frame)
	return nil
}

// Harness is an engine with in-memory collaborators
type Harness struct {
	Engine    *games.Engine
	Router    *interactions.Router
	Clock     *clock.Mock
	Ledger    *Ledger
	Presenter *Presenter
}

// New creates a harness whose owner holds balance. Sessions time out after
// two minutes and tick every second unless the game says otherwise.
func New(t testing.TB, balance int64) *Harness {
	t.Helper()

	mock := clock.NewMock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	router := interactions.New(interactions.WithClock(mock))
	ledger := NewLedger(balance)
	t.Cleanup(router.Close)

	return &Harness{
		Engine: games.NewEngine(games.Config{MaxBet: 100000, Timeout: 2 * time.Minute, TickInterval: time.Second}, games.Dependencies{
			Router: router,
			Ledger: ledger,
			Clock:  mock,
			Seed:   func() (uint64, error) { return 1, nil },
		}),
		Router:    router,
		Clock:     mock,
		Ledger:    ledger,
		Presenter: &Presenter{},
	}
}

// Start begins a session for Owner and fails the test on error
func Start[S any](t testing.TB, h *Harness, rules games.Rules[S], bet int64) *games.Controller[S] {
	t.Helper()

	c, err := games.Start(context.Background(), h.Engine, rules, games.Request{Owner: Owner, Bet: bet, Presenter: h.Presenter})
	if err != nil {
		t.Fatalf("failed to start %s: %v", rules.Name(), err)
	}
	return c
}

// Press dispatches an action of a session as Owner
func Press[S any](h *Harness, c *games.Controller[S], action string, values ...string) (interactions.Outcome, error) {
	return h.Router.Dispatch(context.Background(), c.Tokens()[action], Owner.UserID, interactions.Event{Values: values})
}
