package entities

import (
	"time"
)

// User represents a Discord user with their balance in one guild
type User struct {
	DiscordID int64     `db:"discord_id"`
	Username  string    `db:"username"`
	Balance   int64     `db:"-"` // Populated from user_guild_accounts
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// CanAfford reports whether the balance covers amount without dropping below floor
func (u *User) CanAfford(amount, floor int64) bool {
	return u.Balance-amount >= floor
}

// HasPositiveBalance checks if the user has a positive balance
func (u *User) HasPositiveBalance() bool {
	return u.Balance > 0
}

// CalculateNewBalance calculates what the balance would be after a change
func (u *User) CalculateNewBalance(changeAmount int64) int64 {
	return u.Balance + changeAmount
}
