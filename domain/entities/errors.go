package entities

import "errors"

var (
	// ErrInsufficientBalance is returned when a debit would take a balance below its floor
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInsufficientItems is returned when an inventory decrement would go negative
	ErrInsufficientItems = errors.New("insufficient items")

	// ErrUnknownItem is returned for an item id missing from the catalog
	ErrUnknownItem = errors.New("unknown item")

	// ErrSelfTransfer is returned when a transfer names the same account twice
	ErrSelfTransfer = errors.New("cannot transfer to yourself")

	// ErrInvalidAmount is returned for non-positive transfer or purchase amounts
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrRoundRecorded is returned when a session's round already exists
	ErrRoundRecorded = errors.New("round already recorded")

	// ErrUserNotFound is returned when an account has not been created yet
	ErrUserNotFound = errors.New("user not found")
)
