package games

import (
	"errors"
	"fmt"

	"gambler/arcade/domain/entities"
)

var (
	// ErrInvalidBet is returned when a bet is outside the configured bounds
	ErrInvalidBet = errors.New("invalid bet amount")

	// ErrInsufficientBalance is returned when the player cannot cover a bet
	ErrInsufficientBalance = entities.ErrInsufficientBalance

	// ErrSessionFinished is returned for any trigger after settlement
	ErrSessionFinished = errors.New("game already finished")

	// ErrPresentation is returned when the initial view could not be delivered.
	// The bet has been refunded.
	ErrPresentation = errors.New("failed to present game")
)

// RejectedError is returned when an action is not available in the current state
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	return e.Reason
}

// LedgerError wraps a failed ledger call made while settling. The session
// stays unresolved so the settlement can be retried.
type LedgerError struct {
	Op  string
	Err error
}

func (e *LedgerError) Error() string {
	return fmt.Sprintf("ledger %s failed: %v", e.Op, e.Err)
}

func (e *LedgerError) Unwrap() error {
	return e.Err
}
