package games

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"gambler/arcade/clock"
	"gambler/arcade/interactions"
)

// fakeLedger is an in-memory ledger that records every call
type fakeLedger struct {
	mu          sync.Mutex
	balances    map[int64]int64
	items       map[string]int
	credits     []int64
	debits      []int64
	memos       []Memo
	failCredits int
	consumeErr  error
	adjustCalls int
}

func newFakeLedger(balance int64) *fakeLedger {
	return &fakeLedger{
		balances: map[int64]int64{testOwner.UserID: balance},
		items:    make(map[string]int),
	}
}

func (l *fakeLedger) EnsureBalance(_ context.Context, acct Account) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[acct.UserID], nil
}

func (l *fakeLedger) AdjustBalance(_ context.Context, acct Account, delta, floor int64, memo Memo) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.adjustCalls++
	if delta > 0 && l.failCredits > 0 {
		l.failCredits--
		return 0, errors.New("connection reset")
	}
	next := l.balances[acct.UserID] + delta
	if next < floor {
		return 0, ErrInsufficientBalance
	}
	l.balances[acct.UserID] = next
	l.memos = append(l.memos, memo)
	if delta > 0 {
		l.credits = append(l.credits, delta)
	} else {
		l.debits = append(l.debits, -delta)
	}
	return next, nil
}

func (l *fakeLedger) ConsumeIfPresent(_ context.Context, _ Account, item string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.consumeErr != nil {
		return false, l.consumeErr
	}
	if l.items[item] <= 0 {
		return false, nil
	}
	l.items[item]--
	return true, nil
}

func (l *fakeLedger) balance() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[testOwner.UserID]
}

func (l *fakeLedger) creditCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.credits)
}

// fakePresenter records frames
type fakePresenter struct {
	mu         sync.Mutex
	presentErr error
	presents   []Frame
	updates    []Frame
	finals     []Frame
}

func (p *fakePresenter) Present(_ context.Context, frame Frame) (Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.presentErr != nil {
		return Handle{}, p.presentErr
	}
	p.presents = append(p.presents, frame)
	return Handle{ChannelID: "c1", MessageID: "m1"}, nil
}

func (p *fakePresenter) Update(_ context.Context, _ Handle, frame Frame) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updates = append(p.updates, frame)
	return nil
}

func (p *fakePresenter) Finalize(_ context.Context, _ Handle, frame Frame) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.finals = append(p.finals, frame)
	return nil
}

func (p *fakePresenter) finalCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.finals)
}

// fakeRecorder collects rounds
type fakeRecorder struct {
	mu     sync.Mutex
	rounds []Round
}

func (r *fakeRecorder) RecordRound(_ context.Context, round Round) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rounds = append(r.rounds, round)
	return nil
}

// fakeObserver counts lifecycle notifications
type fakeObserver struct {
	mu      sync.Mutex
	started int
	settled []string
}

func (o *fakeObserver) SessionStarted(string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.started++
}

func (o *fakeObserver) SessionSettled(_ string, outcome string, _, _ int64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.settled = append(o.settled, outcome)
}

// stalledClock never fires timers, like a process whose timers were lost
type stalledClock struct {
	*clock.Mock
}

func newStalledHarnessClock() *clock.Mock {
	return clock.NewMock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
}

type noopTimer struct{}

func (noopTimer) Stop() bool { return false }

func (stalledClock) AfterFunc(time.Duration, func()) clock.Timer {
	return noopTimer{}
}

// scriptState is the state of scriptRules
type scriptState struct {
	Ticks      int
	Multiplier float64
	CrashAt    int
	Rerolls    int
}

// scriptRules is a game whose transitions are named after their effects
type scriptRules struct {
	open     Effects
	rerollTo Result
}

func (scriptRules) Name() string { return "script" }

func (scriptRules) Actions() []Action {
	return []Action{
		{ID: "win"},
		{ID: "lose"},
		{ID: "push"},
		{ID: "cancel"},
		{ID: "raise"},
		{ID: "start"},
		{ID: "cashout"},
		{ID: "poke", Repeatable: true},
		{ID: "nope", Repeatable: true},
	}
}

func (r scriptRules) Open(*rand.Rand) (scriptState, Effects) {
	return scriptState{Multiplier: 1, CrashAt: 5}, r.open
}

func (scriptRules) Transition(s scriptState, ev Event) (scriptState, Effects) {
	if ev.Kind == EventTick {
		s.Ticks++
		s.Multiplier *= 1.5
		if s.Ticks >= s.CrashAt {
			return s, Lose()
		}
		return s, Ticking()
	}

	switch ev.Action {
	case "win":
		return s, Win(2)
	case "lose":
		return s, Lose()
	case "push":
		return s, Push()
	case "cancel":
		return s, Cancel()
	case "raise":
		return s, Effects{Phase: PhaseActive, Raise: true}
	case "start":
		return s, Ticking()
	case "cashout":
		return s, Win(s.Multiplier)
	case "poke":
		return s, Stay(PhaseActive)
	default:
		return s, Reject("not now")
	}
}

func (scriptRules) View(scriptState, Phase) View {
	return View{Title: "Script", Enabled: []string{"win", "lose", "push", "cancel", "raise", "start", "cashout", "poke", "nope"}}
}

// moddedRules adds every modifier and rerolls to a fixed result
type moddedRules struct {
	scriptRules
}

func (moddedRules) Modifiers() []Modifier {
	return StandardModifiers()
}

func (r moddedRules) Reroll(s scriptState) (scriptState, Result) {
	s.Rerolls++
	return s, r.rerollTo
}

var testOwner = Account{GuildID: 10, UserID: 42, Username: "player"}

type harness struct {
	engine    *Engine
	router    *interactions.Router
	clock     *clock.Mock
	ledger    *fakeLedger
	presenter *fakePresenter
	recorder  *fakeRecorder
	observer  *fakeObserver
}

func newHarness(t *testing.T, balance int64) *harness {
	t.Helper()
	mock := clock.NewMock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	return newHarnessWithClock(t, balance, mock, mock)
}

func newHarnessWithClock(t *testing.T, balance int64, clk clock.Clock, mock *clock.Mock) *harness {
	t.Helper()

	router := interactions.New(interactions.WithClock(clk))
	ledger := newFakeLedger(balance)
	h := &harness{
		router:    router,
		clock:     mock,
		ledger:    ledger,
		presenter: &fakePresenter{},
		recorder:  &fakeRecorder{},
		observer:  &fakeObserver{},
	}
	h.engine = NewEngine(Config{MinBet: 0, MaxBet: 10000, Timeout: time.Minute, TickInterval: time.Second}, Dependencies{
		Router:   router,
		Ledger:   ledger,
		Clock:    clk,
		Observer: h.observer,
		Recorder: h.recorder,
		Seed:     func() (uint64, error) { return 7, nil },
	})
	t.Cleanup(router.Close)
	return h
}

func (h *harness) start(t *testing.T, rules Rules[scriptState], bet int64) *Controller[scriptState] {
	t.Helper()
	c, err := Start(context.Background(), h.engine, rules, Request{Owner: testOwner, Bet: bet, Presenter: h.presenter})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	return c
}

func (h *harness) press(c *Controller[scriptState], action string, userID int64) (interactions.Outcome, error) {
	return h.router.Dispatch(context.Background(), c.Tokens()[action], userID, interactions.Event{})
}
