package games

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"gambler/arcade/clock"

	log "github.com/sirupsen/logrus"
)

// Config bounds bets and session lifetime
type Config struct {
	MinBet  int64
	MaxBet  int64
	Timeout time.Duration
	// TickInterval is the default animation interval for ticking games
	TickInterval time.Duration
}

// Dependencies are the collaborators shared by every session
type Dependencies struct {
	Router   Registrar
	Ledger   Ledger
	Clock    clock.Clock
	Observer Observer
	Recorder RoundRecorder
	// Seed returns the seed for a session's generator; crypto/rand by default
	Seed func() (uint64, error)
}

// Session is the type-erased view of a running controller
type Session interface {
	ID() string
	Game() string
	Owner() Account
	Phase() Phase
	Deadline() time.Time
	Fire(ctx context.Context, ev Event) error
	Done() <-chan struct{}
}

// Engine starts sessions and tracks the live ones
type Engine struct {
	config Config
	deps   Dependencies

	mu   sync.Mutex
	live map[string]Session
}

// NewEngine creates an engine. Router and Ledger are required.
func NewEngine(config Config, deps Dependencies) *Engine {
	if deps.Clock == nil {
		deps.Clock = clock.New()
	}
	if deps.Observer == nil {
		deps.Observer = noopObserver{}
	}
	if deps.Seed == nil {
		deps.Seed = newSeed
	}
	if config.Timeout <= 0 {
		config.Timeout = 2 * time.Minute
	}
	if config.TickInterval <= 0 {
		config.TickInterval = time.Second
	}
	return &Engine{
		config: config,
		deps:   deps,
		live:   make(map[string]Session),
	}
}

// Config returns the engine configuration
func (e *Engine) Config() Config {
	return e.config
}

// Live returns the number of unsettled sessions
func (e *Engine) Live() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.live)
}

// Session returns a live session by ID
func (e *Engine) Session(id string) (Session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.live[id]
	return s, ok
}

// Sweep expires every live session whose deadline has passed. Sessions
// with a settlement still owed are retried the same way.
func (e *Engine) Sweep(ctx context.Context) int {
	now := e.deps.Clock.Now()

	var overdue []Session
	for _, s := range e.snapshot() {
		if !now.Before(s.Deadline()) {
			overdue = append(overdue, s)
		}
	}

	settled := 0
	for _, s := range overdue {
		if err := s.Fire(ctx, Event{Kind: EventExpire}); err != nil {
			log.WithFields(log.Fields{
				"sessionID": s.ID(),
				"game":      s.Game(),
				"error":     err,
			}).Warn("Failed to expire overdue session")
			continue
		}
		settled++
	}
	return settled
}

// Shutdown cancels and refunds every live session
func (e *Engine) Shutdown(ctx context.Context) error {
	var firstErr error
	for _, s := range e.snapshot() {
		if err := s.Fire(ctx, Event{Kind: EventCancel}); err != nil && !errors.Is(err, ErrSessionFinished) {
			log.WithFields(log.Fields{
				"sessionID": s.ID(),
				"game":      s.Game(),
				"error":     err,
			}).Error("Failed to cancel session during shutdown")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (e *Engine) snapshot() []Session {
	e.mu.Lock()
	defer e.mu.Unlock()

	sessions := make([]Session, 0, len(e.live))
	for _, s := range e.live {
		sessions = append(sessions, s)
	}
	return sessions
}

func (e *Engine) track(s Session) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.live[s.ID()] = s
}

func (e *Engine) forget(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.live, id)
}

// validate checks a bet before anything is created or debited
func (e *Engine) validate(ctx context.Context, acct Account, bet int64) error {
	if bet < 0 || bet < e.config.MinBet {
		return fmt.Errorf("%w: minimum bet is %d", ErrInvalidBet, e.config.MinBet)
	}
	if e.config.MaxBet > 0 && bet > e.config.MaxBet {
		return fmt.Errorf("%w: maximum bet is %d", ErrInvalidBet, e.config.MaxBet)
	}

	balance, err := e.deps.Ledger.EnsureBalance(ctx, acct)
	if err != nil {
		return fmt.Errorf("failed to check balance: %w", err)
	}
	if bet > balance {
		return fmt.Errorf("%w: balance is %d", ErrInsufficientBalance, balance)
	}
	return nil
}

func newSeed() (uint64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}
