package application

import (
	"context"
	"fmt"

	"gambler/arcade/domain/entities"
	"gambler/arcade/domain/interfaces"
	"gambler/arcade/domain/services"
	"gambler/arcade/games"

	log "github.com/sirupsen/logrus"
)

// WithLedger runs fn against a ledger service bound to a fresh guild-scoped
// unit of work. The work commits only if fn succeeds.
func WithLedger(ctx context.Context, factory UnitOfWorkFactory, guildID, startingBalance int64, fn func(interfaces.LedgerService) error) error {
	uow := factory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	ledger := services.NewLedgerService(
		uow.UserRepository(),
		uow.BalanceHistoryRepository(),
		uow.InventoryRepository(),
		uow.EventBus(),
		startingBalance,
	)
	if err := fn(ledger); err != nil {
		return err
	}

	return uow.Commit()
}

// WithRounds runs fn against a game round service in a guild-scoped unit of work
func WithRounds(ctx context.Context, factory UnitOfWorkFactory, guildID int64, fn func(interfaces.GameRoundService) error) error {
	uow := factory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := fn(services.NewGameRoundService(uow.GameRoundRepository(), uow.EventBus())); err != nil {
		return err
	}

	return uow.Commit()
}

// BalanceObserver is told about every committed balance change
type BalanceObserver interface {
	BalanceTransaction(txType entities.TransactionType, amount int64)
}

// Ledger adapts the ledger service to the game engine. Every call is its
// own transaction so a session never holds a database transaction open
// while waiting for the player.
type Ledger struct {
	uowFactory      UnitOfWorkFactory
	startingBalance int64
	observer        BalanceObserver
}

// NewLedger creates the engine ledger
func NewLedger(uowFactory UnitOfWorkFactory, startingBalance int64, observer BalanceObserver) *Ledger {
	return &Ledger{
		uowFactory:      uowFactory,
		startingBalance: startingBalance,
		observer:        observer,
	}
}

var memoTransactionTypes = map[games.Reason]entities.TransactionType{
	games.ReasonBet:    entities.TransactionTypeGameBet,
	games.ReasonRaise:  entities.TransactionTypeGameRaise,
	games.ReasonPayout: entities.TransactionTypeGamePayout,
	games.ReasonRefund: entities.TransactionTypeGameRefund,
}

// EnsureBalance returns the player's balance, opening an account on first play
func (l *Ledger) EnsureBalance(ctx context.Context, acct games.Account) (int64, error) {
	var balance int64
	err := WithLedger(ctx, l.uowFactory, acct.GuildID, l.startingBalance, func(ledger interfaces.LedgerService) error {
		user, err := ledger.EnsureBalance(ctx, acct.UserID, acct.Username)
		if err != nil {
			return err
		}
		balance = user.Balance
		return nil
	})
	return balance, err
}

// AdjustBalance applies a session's debit or credit
func (l *Ledger) AdjustBalance(ctx context.Context, acct games.Account, delta, floor int64, memo games.Memo) (int64, error) {
	txType, ok := memoTransactionTypes[memo.Reason]
	if !ok {
		return 0, fmt.Errorf("unknown ledger reason %q", memo.Reason)
	}

	var balance int64
	err := WithLedger(ctx, l.uowFactory, acct.GuildID, l.startingBalance, func(ledger interfaces.LedgerService) error {
		if _, err := ledger.EnsureBalance(ctx, acct.UserID, acct.Username); err != nil {
			return err
		}

		var err error
		balance, err = ledger.AdjustBalance(ctx, acct.UserID, delta, floor, txType, map[string]any{
			"game":       memo.Game,
			"session_id": memo.SessionID,
		})
		return err
	})
	if err != nil {
		return 0, err
	}

	if l.observer != nil && delta != 0 {
		l.observer.BalanceTransaction(txType, delta)
	}
	return balance, nil
}

// ConsumeIfPresent spends one modifier item if the player holds it
func (l *Ledger) ConsumeIfPresent(ctx context.Context, acct games.Account, item string) (bool, error) {
	var consumed bool
	err := WithLedger(ctx, l.uowFactory, acct.GuildID, l.startingBalance, func(ledger interfaces.LedgerService) error {
		var err error
		consumed, err = ledger.ConsumeIfPresent(ctx, acct.UserID, item)
		return err
	})
	if consumed {
		log.WithFields(log.Fields{
			"guildID": acct.GuildID,
			"userID":  acct.UserID,
			"item":    item,
		}).Debug("Consumed modifier item")
	}
	return consumed, err
}

// RecordRound persists a settled session and publishes GameSettledEvent
func (l *Ledger) RecordRound(ctx context.Context, round games.Round) error {
	return WithRounds(ctx, l.uowFactory, round.Account.GuildID, func(rounds interfaces.GameRoundService) error {
		return rounds.RecordRound(ctx, &entities.GameRound{
			SessionID: round.SessionID,
			DiscordID: round.Account.UserID,
			GuildID:   round.Account.GuildID,
			Game:      round.Game,
			Bet:       round.Bet,
			Stake:     round.Stake,
			Payout:    round.Payout,
			Outcome:   round.Outcome.String(),
			Modifiers: round.Modifiers,
			StartedAt: round.StartedAt,
			EndedAt:   round.EndedAt,
		})
	})
}
