package entities

import "time"

// GameRound is the persisted record of one settled game session
type GameRound struct {
	ID        int64     `db:"id"`
	SessionID string    `db:"session_id"`
	DiscordID int64     `db:"discord_id"`
	GuildID   int64     `db:"guild_id"`
	Game      string    `db:"game"`
	Bet       int64     `db:"bet"`
	Stake     int64     `db:"stake"`
	Payout    int64     `db:"payout"`
	Outcome   string    `db:"outcome"`
	Modifiers []string  `db:"modifiers"`
	StartedAt time.Time `db:"started_at"`
	EndedAt   time.Time `db:"ended_at"`
}

// Net is the player's profit on the round
func (r *GameRound) Net() int64 {
	return r.Payout - r.Stake
}

// Duration is how long the session ran
func (r *GameRound) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}
