package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gambler/arcade/domain/entities"
	"gambler/arcade/domain/events"
	"gambler/arcade/domain/interfaces"
	"gambler/arcade/domain/utils"

	log "github.com/sirupsen/logrus"
)

type ledgerService struct {
	userRepo           interfaces.UserRepository
	balanceHistoryRepo interfaces.BalanceHistoryRepository
	inventoryRepo      interfaces.InventoryRepository
	eventPublisher     interfaces.EventPublisher
	startingBalance    int64
}

// NewLedgerService creates a ledger service over guild-scoped repositories
func NewLedgerService(
	userRepo interfaces.UserRepository,
	balanceHistoryRepo interfaces.BalanceHistoryRepository,
	inventoryRepo interfaces.InventoryRepository,
	eventPublisher interfaces.EventPublisher,
	startingBalance int64,
) interfaces.LedgerService {
	return &ledgerService{
		userRepo:           userRepo,
		balanceHistoryRepo: balanceHistoryRepo,
		inventoryRepo:      inventoryRepo,
		eventPublisher:     eventPublisher,
		startingBalance:    startingBalance,
	}
}

// EnsureBalance returns the user, creating the account with the starting balance if needed
func (s *ledgerService) EnsureBalance(ctx context.Context, discordID int64, username string) (*entities.User, error) {
	user, err := s.userRepo.GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	user, err = s.userRepo.Create(ctx, discordID, username, s.startingBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	history := &entities.BalanceHistory{
		DiscordID:       discordID,
		BalanceBefore:   0,
		BalanceAfter:    s.startingBalance,
		ChangeAmount:    s.startingBalance,
		TransactionType: entities.TransactionTypeInitial,
		TransactionMetadata: map[string]any{
			"username": username,
		},
		CreatedAt: time.Now(),
	}
	if s.startingBalance != 0 {
		if err := utils.RecordBalanceChange(ctx, s.balanceHistoryRepo, s.eventPublisher, history); err != nil {
			return nil, fmt.Errorf("failed to record initial balance: %w", err)
		}
	}

	log.WithFields(log.Fields{
		"discordID": discordID,
		"username":  username,
		"balance":   s.startingBalance,
	}).Info("Created user account")

	return user, nil
}

// AdjustBalance applies delta and records it
func (s *ledgerService) AdjustBalance(ctx context.Context, discordID int64, delta, floor int64, txType entities.TransactionType, metadata map[string]any) (int64, error) {
	if delta == 0 {
		user, err := s.userRepo.GetByDiscordID(ctx, discordID)
		if err != nil {
			return 0, fmt.Errorf("failed to get user: %w", err)
		}
		if user == nil {
			return 0, entities.ErrUserNotFound
		}
		return user.Balance, nil
	}

	newBalance, err := s.userRepo.AddBalance(ctx, discordID, delta, floor)
	if err != nil {
		return 0, fmt.Errorf("failed to adjust balance for user %d: %w", discordID, err)
	}

	history := &entities.BalanceHistory{
		DiscordID:           discordID,
		BalanceBefore:       newBalance - delta,
		BalanceAfter:        newBalance,
		ChangeAmount:        delta,
		TransactionType:     txType,
		TransactionMetadata: metadata,
		CreatedAt:           time.Now(),
	}
	if err := utils.RecordBalanceChange(ctx, s.balanceHistoryRepo, s.eventPublisher, history); err != nil {
		return 0, err
	}

	return newBalance, nil
}

// AdjustInventoryItem changes an item quantity and returns the new quantity
func (s *ledgerService) AdjustInventoryItem(ctx context.Context, discordID int64, itemID string, delta int64) (int64, error) {
	if _, err := entities.LookupItem(itemID); err != nil {
		return 0, err
	}

	item, err := s.inventoryRepo.Adjust(ctx, discordID, itemID, delta)
	if err != nil {
		return 0, fmt.Errorf("failed to adjust %s for user %d: %w", itemID, discordID, err)
	}

	s.publishInventoryChange(item, delta)
	return item.Quantity, nil
}

// TransferBalance moves amount between two accounts. The lower Discord ID is
// always updated first so concurrent transfers lock rows in the same order.
func (s *ledgerService) TransferBalance(ctx context.Context, fromDiscordID, toDiscordID int64, amount, floor int64) (*entities.TransferResult, error) {
	if fromDiscordID == toDiscordID {
		return nil, entities.ErrSelfTransfer
	}
	if amount <= 0 {
		return nil, entities.ErrInvalidAmount
	}

	type leg struct {
		discordID int64
		delta     int64
		floor     int64
		txType    entities.TransactionType
		metadata  map[string]any
	}
	debit := leg{fromDiscordID, -amount, floor, entities.TransactionTypeTransferOut, map[string]any{
		"transfer_to":     toDiscordID,
		"transfer_amount": amount,
	}}
	credit := leg{toDiscordID, amount, 0, entities.TransactionTypeTransferIn, map[string]any{
		"transfer_from":   fromDiscordID,
		"transfer_amount": amount,
	}}

	legs := []leg{debit, credit}
	if toDiscordID < fromDiscordID {
		legs = []leg{credit, debit}
	}

	balances := make(map[int64]int64, 2)
	for _, l := range legs {
		balance, err := s.AdjustBalance(ctx, l.discordID, l.delta, l.floor, l.txType, l.metadata)
		if err != nil {
			return nil, err
		}
		balances[l.discordID] = balance
	}

	return &entities.TransferResult{
		FromBalance: balances[fromDiscordID],
		ToBalance:   balances[toDiscordID],
	}, nil
}

// ConsumeIfPresent removes one unit of an item if the user holds any
func (s *ledgerService) ConsumeIfPresent(ctx context.Context, discordID int64, itemID string) (bool, error) {
	item, err := s.inventoryRepo.Adjust(ctx, discordID, itemID, -1)
	if errors.Is(err, entities.ErrInsufficientItems) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to consume %s for user %d: %w", itemID, discordID, err)
	}

	s.publishInventoryChange(item, -1)
	return true, nil
}

// PurchaseItem debits the item price and adds it to the inventory
func (s *ledgerService) PurchaseItem(ctx context.Context, discordID int64, itemID string, quantity int64) (*entities.PurchaseResult, error) {
	def, err := entities.LookupItem(itemID)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, entities.ErrInvalidAmount
	}

	cost := def.Price * quantity
	balance, err := s.AdjustBalance(ctx, discordID, -cost, 0, entities.TransactionTypeItemPurchase, map[string]any{
		"item":       def.ID,
		"quantity":   quantity,
		"unit_price": def.Price,
	})
	if err != nil {
		return nil, err
	}

	owned, err := s.AdjustInventoryItem(ctx, discordID, def.ID, quantity)
	if err != nil {
		return nil, err
	}

	return &entities.PurchaseResult{
		Item:     def,
		Quantity: quantity,
		Cost:     cost,
		Balance:  balance,
		Owned:    owned,
	}, nil
}

// GetInventory lists the user's held items
func (s *ledgerService) GetInventory(ctx context.Context, discordID int64) ([]*entities.InventoryItem, error) {
	items, err := s.inventoryRepo.GetByUser(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}
	return items, nil
}

func (s *ledgerService) publishInventoryChange(item *entities.InventoryItem, delta int64) {
	event := events.InventoryChangeEvent{
		UserID:      item.DiscordID,
		GuildID:     item.GuildID,
		ItemID:      item.ItemID,
		OldQuantity: item.Quantity - delta,
		NewQuantity: item.Quantity,
	}
	if err := s.eventPublisher.Publish(event); err != nil {
		log.WithError(err).Error("Failed to publish inventory change event")
	}
}
