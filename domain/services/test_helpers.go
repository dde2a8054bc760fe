package services

import (
	"testing"

	"gambler/arcade/domain/testhelpers"
)

// Test constants for consistent test data
const (
	TestGuildID         = int64(555555555)
	TestUser1ID         = int64(100)
	TestUser2ID         = int64(200)
	TestStartingBalance = int64(100000)
)

// TestMocks aggregates all repository mocks for testing
type TestMocks struct {
	UserRepo           *testhelpers.MockUserRepository
	BalanceHistoryRepo *testhelpers.MockBalanceHistoryRepository
	InventoryRepo      *testhelpers.MockInventoryRepository
	GameRoundRepo      *testhelpers.MockGameRoundRepository
	EventPublisher     *testhelpers.MockEventPublisher
}

// NewTestMocks creates a new set of mocks
func NewTestMocks() *TestMocks {
	return &TestMocks{
		UserRepo:           &testhelpers.MockUserRepository{},
		BalanceHistoryRepo: &testhelpers.MockBalanceHistoryRepository{},
		InventoryRepo:      &testhelpers.MockInventoryRepository{},
		GameRoundRepo:      &testhelpers.MockGameRoundRepository{},
		EventPublisher:     &testhelpers.MockEventPublisher{},
	}
}

// AssertAllExpectations verifies all mock expectations were met
func (m *TestMocks) AssertAllExpectations(t *testing.T) {
	m.UserRepo.AssertExpectations(t)
	m.BalanceHistoryRepo.AssertExpectations(t)
	m.InventoryRepo.AssertExpectations(t)
	m.GameRoundRepo.AssertExpectations(t)
	m.EventPublisher.AssertExpectations(t)
}

func (m *TestMocks) ledger() *ledgerService {
	return NewLedgerService(m.UserRepo, m.BalanceHistoryRepo, m.InventoryRepo, m.EventPublisher, TestStartingBalance).(*ledgerService)
}
