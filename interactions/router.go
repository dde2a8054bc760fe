// Package interactions routes UI component callbacks (buttons, select menus)
// to short-lived, owner-scoped handlers.
package interactions

import (
	"context"
	"sync"
	"time"

	"gambler/arcade/clock"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Outcome is the result of dispatching an incoming component event
type Outcome int

const (
	// OutcomeUnknown means no live registration matched the token
	OutcomeUnknown Outcome = iota
	// OutcomeForbidden means the event came from someone other than the owner
	OutcomeForbidden
	// OutcomeExpired means the registration was past its deadline
	OutcomeExpired
	// OutcomeOK means the handler was invoked
	OutcomeOK
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUnknown:
		return "unknown"
	case OutcomeForbidden:
		return "forbidden"
	case OutcomeExpired:
		return "expired"
	case OutcomeOK:
		return "ok"
	default:
		return "invalid"
	}
}

// Event carries the triggering component interaction
type Event struct {
	UserID int64
	// Values holds the selected options of a select menu
	Values []string
	// Payload is the raw platform interaction, if any
	Payload any
}

// Handler is invoked when a registration is dispatched
type Handler func(ctx context.Context, ev Event) error

// Registration describes a pending callback
type Registration struct {
	OwnerID   int64
	ExpiresIn time.Duration
	Handler   Handler
	// Reusable keeps the registration alive after a successful dispatch.
	// Registrations are single-use by default.
	Reusable bool
	// Token is used instead of a generated one when set
	Token string
	// OnExpire runs once if the registration is purged because its deadline passed
	OnExpire func()
}

type record struct {
	token     string
	ownerID   int64
	expiresAt time.Time
	handler   Handler
	reusable  bool
	onExpire  func()
	timer     clock.Timer
}

// Router owns the registry of pending callbacks
type Router struct {
	clock    clock.Clock
	newToken func() string
	observe  func(Outcome)

	mu      sync.Mutex
	records map[string]*record
}

// Option configures a Router
type Option func(*Router)

// WithClock sets the clock used for deadlines and expiry timers
func WithClock(c clock.Clock) Option {
	return func(r *Router) {
		r.clock = c
	}
}

// WithTokenGenerator overrides token generation
func WithTokenGenerator(gen func() string) Option {
	return func(r *Router) {
		r.newToken = gen
	}
}

// WithObserver registers a callback invoked with every dispatch outcome
func WithObserver(observe func(Outcome)) Option {
	return func(r *Router) {
		r.observe = observe
	}
}

// New creates an empty router
func New(opts ...Option) *Router {
	r := &Router{
		clock:    clock.New(),
		newToken: uuid.NewString,
		records:  make(map[string]*record),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register stores a pending callback and schedules its expiry purge.
// It returns the token to embed in the UI component.
func (r *Router) Register(reg Registration) string {
	token := reg.Token
	if token == "" {
		token = r.newToken()
	}

	rec := &record{
		token:     token,
		ownerID:   reg.OwnerID,
		expiresAt: r.clock.Now().Add(reg.ExpiresIn),
		handler:   reg.Handler,
		reusable:  reg.Reusable,
		onExpire:  reg.OnExpire,
	}

	r.mu.Lock()
	if previous, ok := r.records[token]; ok && previous.timer != nil {
		previous.timer.Stop()
	}
	r.records[token] = rec
	rec.timer = r.clock.AfterFunc(reg.ExpiresIn, func() {
		r.expire(rec)
	})
	r.mu.Unlock()

	return token
}

// Dispatch routes an event to the handler registered under token.
// Unknown, forbidden and expired tokens are reported as outcomes; the only
// error returned is the handler's own.
func (r *Router) Dispatch(ctx context.Context, token string, userID int64, ev Event) (Outcome, error) {
	r.mu.Lock()
	rec, ok := r.records[token]
	if !ok {
		r.mu.Unlock()
		r.record(OutcomeUnknown)
		return OutcomeUnknown, nil
	}

	if rec.ownerID != userID {
		r.mu.Unlock()
		r.record(OutcomeForbidden)
		return OutcomeForbidden, nil
	}

	if !r.clock.Now().Before(rec.expiresAt) {
		r.removeLocked(rec)
		r.mu.Unlock()
		r.record(OutcomeExpired)
		if rec.onExpire != nil {
			rec.onExpire()
		}
		return OutcomeExpired, nil
	}

	if !rec.reusable {
		r.removeLocked(rec)
	}
	r.mu.Unlock()

	r.record(OutcomeOK)
	if ev.UserID == 0 {
		ev.UserID = userID
	}
	return OutcomeOK, rec.handler(ctx, ev)
}

// Dispose removes a registration. Unknown tokens are ignored.
func (r *Router) Dispose(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec, ok := r.records[token]; ok {
		r.removeLocked(rec)
	}
}

// DisposeAll removes every listed registration
func (r *Router) DisposeAll(tokens []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, token := range tokens {
		if rec, ok := r.records[token]; ok {
			r.removeLocked(rec)
		}
	}
}

// Sweep purges every registration past its deadline and returns how many
// were removed
func (r *Router) Sweep() int {
	now := r.clock.Now()

	r.mu.Lock()
	var expired []*record
	for _, rec := range r.records {
		if !now.Before(rec.expiresAt) {
			r.removeLocked(rec)
			expired = append(expired, rec)
		}
	}
	r.mu.Unlock()

	for _, rec := range expired {
		if rec.onExpire != nil {
			rec.onExpire()
		}
	}

	if len(expired) > 0 {
		log.WithField("count", len(expired)).Debug("Swept expired interaction registrations")
	}
	return len(expired)
}

// Len returns the number of live registrations
func (r *Router) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// Close stops every expiry timer and clears the registry without firing
// expiry hooks
func (r *Router) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.records {
		r.removeLocked(rec)
	}
}

// expire is the timer callback for a registration. It only acts if the
// registration is still the live record for its token.
func (r *Router) expire(rec *record) {
	r.mu.Lock()
	current, ok := r.records[rec.token]
	if !ok || current != rec {
		r.mu.Unlock()
		return
	}
	delete(r.records, rec.token)
	r.mu.Unlock()

	if rec.onExpire != nil {
		rec.onExpire()
	}
}

func (r *Router) removeLocked(rec *record) {
	if current, ok := r.records[rec.token]; ok && current == rec {
		delete(r.records, rec.token)
	}
	if rec.timer != nil {
		rec.timer.Stop()
	}
}

func (r *Router) record(outcome Outcome) {
	if r.observe != nil {
		r.observe(outcome)
	}
}
