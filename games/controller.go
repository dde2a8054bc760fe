package games

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gambler/arcade/clock"
	"gambler/arcade/interactions"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Request starts a session
type Request struct {
	Owner     Account
	Bet       int64
	Presenter Presenter
}

// Controller runs one playthrough of a game. Every trigger takes mu and
// checks resolved before doing anything else; mu is held across ledger and
// presentation calls so a competing trigger waits and then sees the flag.
type Controller[S any] struct {
	id        string
	engine    *Engine
	rules     Rules[S]
	owner     Account
	bet       int64
	presenter Presenter
	log       *log.Entry
	startedAt time.Time
	deadline  time.Time
	done      chan struct{}

	mu          sync.Mutex
	state       S
	phase       Phase
	stake       int64
	resolved    bool
	pending     *settlement
	tokens      map[string]string
	handle      Handle
	presented   bool
	expiryTimer clock.Timer
	tickTimer   clock.Timer
	used        map[string]bool
	applied     []string
	outcome     Outcome
	payout      int64
}

// settlement is a terminal result that has not been paid out yet
type settlement struct {
	result   Result
	prepared bool
	bonus    float64
	payout   int64
}

// Start validates and escrows the bet, opens the game, registers its
// controls and presents it. Validation failures leave no trace.
func Start[S any](ctx context.Context, e *Engine, rules Rules[S], req Request) (*Controller[S], error) {
	if err := e.validate(ctx, req.Owner, req.Bet); err != nil {
		return nil, err
	}

	seed, err := e.deps.Seed()
	if err != nil {
		return nil, fmt.Errorf("failed to seed game: %w", err)
	}

	now := e.deps.Clock.Now()
	c := &Controller[S]{
		id:        uuid.NewString(),
		engine:    e,
		rules:     rules,
		owner:     req.Owner,
		bet:       req.Bet,
		stake:     req.Bet,
		presenter: req.Presenter,
		startedAt: now,
		deadline:  now.Add(e.config.Timeout),
		done:      make(chan struct{}),
		tokens:    make(map[string]string),
		used:      make(map[string]bool),
	}
	c.log = log.WithFields(log.Fields{
		"sessionID": c.id,
		"game":      rules.Name(),
		"guildID":   req.Owner.GuildID,
		"userID":    req.Owner.UserID,
	})

	if req.Bet > 0 {
		memo := Memo{Reason: ReasonBet, Game: rules.Name(), SessionID: c.id}
		if _, err := e.deps.Ledger.AdjustBalance(ctx, req.Owner, -req.Bet, 0, memo); err != nil {
			if errors.Is(err, ErrInsufficientBalance) {
				return nil, err
			}
			return nil, &LedgerError{Op: "debit", Err: err}
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e.track(c)
	e.deps.Observer.SessionStarted(rules.Name())
	c.log.WithField("bet", req.Bet).Info("Game session started")

	c.expiryTimer = e.deps.Clock.AfterFunc(e.config.Timeout, c.onExpire)

	state, eff := rules.Open(NewRand(seed))
	c.state = state

	// A natural result settles before any control exists
	if eff.Result != nil {
		if err := c.finish(ctx, *eff.Result); err != nil {
			return c, err
		}
		return c, nil
	}

	for _, action := range rules.Actions() {
		actionID := action.ID
		c.tokens[actionID] = e.deps.Router.Register(interactions.Registration{
			OwnerID:   req.Owner.UserID,
			ExpiresIn: e.config.Timeout,
			Reusable:  action.Repeatable,
			Handler: func(ctx context.Context, ev interactions.Event) error {
				return c.Fire(ctx, Event{Kind: EventAction, Action: actionID, Values: ev.Values})
			},
			OnExpire: c.onExpire,
		})
	}

	c.phase = eff.Phase
	handle, err := c.presenter.Present(ctx, c.frame())
	if err != nil {
		c.log.WithError(err).Warn("Failed to present game, refunding bet")
		if settleErr := c.finish(ctx, Result{Outcome: OutcomeCancel}); settleErr != nil {
			return c, fmt.Errorf("%w: %v (refund pending: %v)", ErrPresentation, err, settleErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrPresentation, err)
	}
	c.handle = handle
	c.presented = true

	if eff.Tick {
		c.armTick()
	}
	return c, nil
}

// ID returns the session identifier
func (c *Controller[S]) ID() string {
	return c.id
}

// Game returns the game name
func (c *Controller[S]) Game() string {
	return c.rules.Name()
}

// Owner returns the initiating player
func (c *Controller[S]) Owner() Account {
	return c.owner
}

// Deadline returns when the session expires
func (c *Controller[S]) Deadline() time.Time {
	return c.deadline
}

// Done is closed once the session has settled
func (c *Controller[S]) Done() <-chan struct{} {
	return c.done
}

// Phase returns the current phase
func (c *Controller[S]) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Stake returns the effective stake
func (c *Controller[S]) Stake() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stake
}

// Resolved reports whether the session has settled
func (c *Controller[S]) Resolved() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolved
}

// Outcome returns the settled outcome and payout
func (c *Controller[S]) Outcome() (Outcome, int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcome, c.payout
}

// State returns a copy of the game state
func (c *Controller[S]) State() S {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Tokens returns the callback token for each action
func (c *Controller[S]) Tokens() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	tokens := make(map[string]string, len(c.tokens))
	for action, token := range c.tokens {
		tokens[action] = token
	}
	return tokens
}

// Fire feeds an event into the session. After settlement every event
// returns ErrSessionFinished. A settlement whose ledger call failed is
// retried by the next event, whatever it is.
func (c *Controller[S]) Fire(ctx context.Context, ev Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.resolved {
		return ErrSessionFinished
	}
	if c.pending != nil {
		return c.settle(ctx)
	}

	switch ev.Kind {
	case EventExpire:
		return c.finish(ctx, Result{Outcome: OutcomeExpire})
	case EventCancel:
		return c.finish(ctx, Result{Outcome: OutcomeCancel})
	}

	next, eff := c.rules.Transition(c.state, ev)
	if eff.Reject != "" {
		return &RejectedError{Reason: eff.Reject}
	}

	if eff.Raise && c.bet > 0 {
		memo := Memo{Reason: ReasonRaise, Game: c.rules.Name(), SessionID: c.id}
		if _, err := c.engine.deps.Ledger.AdjustBalance(ctx, c.owner, -c.bet, 0, memo); err != nil {
			if errors.Is(err, ErrInsufficientBalance) {
				return &RejectedError{Reason: "You can't cover that raise."}
			}
			return &LedgerError{Op: "raise", Err: err}
		}
		c.stake += c.bet
	}

	c.state = next
	if eff.Result != nil {
		return c.finish(ctx, *eff.Result)
	}

	c.phase = eff.Phase
	if eff.Tick {
		c.armTick()
	}
	if c.presented {
		if err := c.presenter.Update(ctx, c.handle, c.frame()); err != nil {
			c.log.WithError(err).Warn("Failed to update game view")
		}
	}
	return nil
}

func (c *Controller[S]) onExpire() {
	if err := c.Fire(context.Background(), Event{Kind: EventExpire}); err != nil && !errors.Is(err, ErrSessionFinished) {
		c.log.WithError(err).Error("Failed to expire game session")
	}
}

func (c *Controller[S]) onTick() {
	if err := c.Fire(context.Background(), Event{Kind: EventTick}); err != nil && !errors.Is(err, ErrSessionFinished) {
		c.log.WithError(err).Error("Failed to advance game session")
	}
}

func (c *Controller[S]) armTick() {
	interval := c.engine.config.TickInterval
	if t, ok := c.rules.(interface{ TickInterval() time.Duration }); ok && t.TickInterval() > 0 {
		interval = t.TickInterval()
	}
	if c.tickTimer != nil {
		c.tickTimer.Stop()
	}
	c.tickTimer = c.engine.deps.Clock.AfterFunc(interval, c.onTick)
}

func (c *Controller[S]) finish(ctx context.Context, result Result) error {
	c.pending = &settlement{result: result}
	return c.settle(ctx)
}

// settle pays out the pending result. The resolved flag flips only after
// the ledger credit succeeds.
func (c *Controller[S]) settle(ctx context.Context) error {
	s := c.pending
	if !s.prepared {
		if err := c.applyModifiers(ctx, s); err != nil {
			return err
		}
		s.payout = s.result.Payout(c.stake)
		if s.bonus > 0 && s.result.Outcome == OutcomeWin {
			s.payout += PayoutFor(s.payout, s.bonus)
		}
		s.prepared = true
	}

	if s.payout > 0 {
		reason := ReasonPayout
		if s.result.Outcome == OutcomeCancel || s.result.Outcome == OutcomeExpire {
			reason = ReasonRefund
		}
		memo := Memo{Reason: reason, Game: c.rules.Name(), SessionID: c.id}
		if _, err := c.engine.deps.Ledger.AdjustBalance(ctx, c.owner, s.payout, 0, memo); err != nil {
			c.log.WithError(err).Error("Failed to credit game settlement, will retry")
			return &LedgerError{Op: "credit", Err: err}
		}
	}

	c.resolved = true
	c.pending = nil
	c.phase = s.result.Outcome.Phase()
	c.outcome = s.result.Outcome
	c.payout = s.payout

	if c.expiryTimer != nil {
		c.expiryTimer.Stop()
	}
	if c.tickTimer != nil {
		c.tickTimer.Stop()
	}
	c.engine.deps.Router.DisposeAll(c.tokenList())
	c.engine.forget(c.id)
	close(c.done)

	c.log.WithFields(log.Fields{
		"outcome": c.outcome.String(),
		"stake":   c.stake,
		"payout":  c.payout,
	}).Info("Game session settled")
	c.engine.deps.Observer.SessionSettled(c.rules.Name(), c.outcome.String(), c.stake, c.payout)
	c.record(ctx)
	c.render(ctx)
	return nil
}

// applyModifiers consumes items in order. Each item applies at most once
// per session and nothing is spent on a zero stake.
func (c *Controller[S]) applyModifiers(ctx context.Context, s *settlement) error {
	modified, ok := c.rules.(Modified)
	if !ok || c.stake == 0 {
		return nil
	}

	for _, m := range modified.Modifiers() {
		if c.used[m.Item] {
			continue
		}

		var reroll Rerollable[S]
		switch m.Kind {
		case ModifierReroll:
			r, ok := c.rules.(Rerollable[S])
			if !ok || s.result.Outcome != OutcomeLoss {
				continue
			}
			reroll = r
		case ModifierShield:
			if s.result.Outcome != OutcomeLoss {
				continue
			}
		case ModifierCharm:
			if s.result.Outcome != OutcomeWin {
				continue
			}
		}

		consumed, err := c.engine.deps.Ledger.ConsumeIfPresent(ctx, c.owner, m.Item)
		if err != nil {
			return &LedgerError{Op: "consume", Err: err}
		}
		if !consumed {
			continue
		}
		c.used[m.Item] = true
		c.applied = append(c.applied, m.Item)

		switch m.Kind {
		case ModifierReroll:
			c.state, s.result = reroll.Reroll(c.state)
		case ModifierShield:
			s.result = Result{Outcome: OutcomePush}
		case ModifierCharm:
			s.bonus = m.Bonus
		}
		c.log.WithFields(log.Fields{
			"item":    m.Item,
			"outcome": s.result.Outcome.String(),
		}).Info("Applied game modifier")
	}
	return nil
}

func (c *Controller[S]) record(ctx context.Context) {
	recorder := c.engine.deps.Recorder
	if recorder == nil {
		return
	}

	round := Round{
		SessionID: c.id,
		Game:      c.rules.Name(),
		Account:   c.owner,
		Bet:       c.bet,
		Stake:     c.stake,
		Payout:    c.payout,
		Outcome:   c.outcome,
		Modifiers: append([]string(nil), c.applied...),
		StartedAt: c.startedAt,
		EndedAt:   c.engine.deps.Clock.Now(),
	}
	if err := recorder.RecordRound(ctx, round); err != nil {
		c.log.WithError(err).Error("Failed to record game round")
	}
}

// render shows the terminal frame. A natural result that settled before
// presentation is presented once instead.
func (c *Controller[S]) render(ctx context.Context) {
	if c.presenter == nil {
		return
	}

	frame := c.frame()
	if c.presented {
		if err := c.presenter.Finalize(ctx, c.handle, frame); err != nil {
			c.log.WithError(err).Warn("Failed to finalize game view")
		}
		return
	}
	if len(c.tokens) > 0 {
		// Presentation itself failed; there is nothing to finalize
		return
	}
	if _, err := c.presenter.Present(ctx, frame); err != nil {
		c.log.WithError(err).Warn("Failed to present game result")
	}
}

func (c *Controller[S]) tokenList() []string {
	tokens := make([]string, 0, len(c.tokens))
	for _, token := range c.tokens {
		tokens = append(tokens, token)
	}
	return tokens
}

func (c *Controller[S]) frame() Frame {
	view := c.rules.View(c.state, c.phase)

	enabled := make(map[string]bool, len(view.Enabled))
	for _, id := range view.Enabled {
		enabled[id] = true
	}

	var controls []Control
	for _, action := range c.rules.Actions() {
		token, ok := c.tokens[action.ID]
		if !ok {
			continue
		}
		controls = append(controls, Control{
			Token:    token,
			Action:   action,
			Disabled: c.resolved || !enabled[action.ID],
		})
	}

	return Frame{
		SessionID: c.id,
		Game:      c.rules.Name(),
		Owner:     c.owner,
		Phase:     c.phase,
		Bet:       c.bet,
		Stake:     c.stake,
		Outcome:   c.outcome,
		Payout:    c.payout,
		Modifiers: append([]string(nil), c.applied...),
		Deadline:  c.deadline,
		View:      view,
		Controls:  controls,
	}
}
