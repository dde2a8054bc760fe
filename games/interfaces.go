package games

import (
	"context"
	"time"

	"gambler/arcade/interactions"
)

// Account identifies a player's balance within a guild
type Account struct {
	GuildID  int64
	UserID   int64
	Username string
}

// Reason classifies a ledger adjustment made by a session
type Reason string

const (
	ReasonBet    Reason = "bet"
	ReasonRaise  Reason = "raise"
	ReasonPayout Reason = "payout"
	ReasonRefund Reason = "refund"
)

// Memo describes why a session adjusted a balance
type Memo struct {
	Reason    Reason
	Game      string
	SessionID string
}

// Ledger is the balance and inventory store sessions settle against.
// Adjustments for the same account must be atomic and serialized.
type Ledger interface {
	// EnsureBalance returns the account balance, creating the account if needed
	EnsureBalance(ctx context.Context, acct Account) (int64, error)

	// AdjustBalance applies delta and returns the new balance. It fails with
	// ErrInsufficientBalance if the result would drop below floor.
	AdjustBalance(ctx context.Context, acct Account, delta, floor int64, memo Memo) (int64, error)

	// ConsumeIfPresent removes one unit of an item if the player holds any
	ConsumeIfPresent(ctx context.Context, acct Account, item string) (bool, error)
}

// Handle identifies a presented game message
type Handle struct {
	ChannelID string
	MessageID string
}

// Presenter delivers frames to the player
type Presenter interface {
	// Present shows the initial frame. An error means the player never saw
	// the game.
	Present(ctx context.Context, frame Frame) (Handle, error)

	// Update replaces the shown frame
	Update(ctx context.Context, h Handle, frame Frame) error

	// Finalize shows the terminal frame
	Finalize(ctx context.Context, h Handle, frame Frame) error
}

// Registrar is the part of the interaction router sessions use
type Registrar interface {
	Register(reg interactions.Registration) string
	DisposeAll(tokens []string)
}

// Observer receives session lifecycle notifications for metrics
type Observer interface {
	SessionStarted(game string)
	SessionSettled(game string, outcome string, stake, payout int64)
}

// Round is the record of one settled session
type Round struct {
	SessionID string
	Game      string
	Account   Account
	Bet       int64
	Stake     int64
	Payout    int64
	Outcome   Outcome
	Modifiers []string
	StartedAt time.Time
	EndedAt   time.Time
}

// RoundRecorder persists settled rounds
type RoundRecorder interface {
	RecordRound(ctx context.Context, round Round) error
}

// Control is a rendered action bound to its callback token
type Control struct {
	Token    string
	Action   Action
	Disabled bool
}

// Frame is everything a presenter needs to draw a session
type Frame struct {
	SessionID string
	Game      string
	Owner     Account
	Phase     Phase
	Bet       int64
	Stake     int64
	Outcome   Outcome
	Payout    int64
	Modifiers []string
	Deadline  time.Time
	View      View
	Controls  []Control
}

type noopObserver struct{}

func (noopObserver) SessionStarted(string)                      {}
func (noopObserver) SessionSettled(string, string, int64, int64) {}
