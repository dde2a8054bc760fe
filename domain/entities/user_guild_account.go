package entities

import "time"

// UserGuildAccount is the per-guild balance row behind a User
type UserGuildAccount struct {
	ID        int64     `db:"id"`
	DiscordID int64     `db:"discord_id"`
	GuildID   int64     `db:"guild_id"`
	Balance   int64     `db:"balance"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ToUser combines the account with the global username
func (a *UserGuildAccount) ToUser(username string) *User {
	return &User{
		DiscordID: a.DiscordID,
		Username:  username,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
