package repository

import (
	"context"
	"errors"
	"fmt"

	"gambler/arcade/database"
	"gambler/arcade/domain/entities"

	"github.com/jackc/pgx/v5"
)

// GameRoundRepository implements the GameRoundRepository interface
type GameRoundRepository struct {
	q       Queryable
	guildID int64
}

// NewGameRoundRepository creates a game round repository on the pool for one guild
func NewGameRoundRepository(db *database.DB, guildID int64) *GameRoundRepository {
	return &GameRoundRepository{q: db.Pool, guildID: guildID}
}

// NewGameRoundRepositoryScoped creates a game round repository with a transaction and guild scope
func NewGameRoundRepositoryScoped(tx Queryable, guildID int64) *GameRoundRepository {
	return &GameRoundRepository{
		q:       tx,
		guildID: guildID,
	}
}

// Create stores a settled round. A session is recorded at most once.
func (r *GameRoundRepository) Create(ctx context.Context, round *entities.GameRound) error {
	query := `
		INSERT INTO game_rounds
		(session_id, discord_id, guild_id, game, bet, stake, payout, outcome, modifiers, started_at, ended_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (session_id) DO NOTHING
		RETURNING id
	`

	modifiers := round.Modifiers
	if modifiers == nil {
		modifiers = []string{}
	}

	err := r.q.QueryRow(ctx, query,
		round.SessionID,
		round.DiscordID,
		r.guildID,
		round.Game,
		round.Bet,
		round.Stake,
		round.Payout,
		round.Outcome,
		modifiers,
		round.StartedAt,
		round.EndedAt,
	).Scan(&round.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.ErrRoundRecorded
	}
	if err != nil {
		return fmt.Errorf("failed to create game round %s: %w", round.SessionID, err)
	}

	round.GuildID = r.guildID
	return nil
}

// GetRecentByUser returns the user's latest rounds, newest first
func (r *GameRoundRepository) GetRecentByUser(ctx context.Context, discordID int64, limit int) ([]*entities.GameRound, error) {
	query := `
		SELECT id, session_id, discord_id, guild_id, game, bet, stake, payout, outcome, modifiers, started_at, ended_at
		FROM game_rounds
		WHERE discord_id = $1 AND guild_id = $2
		ORDER BY ended_at DESC, id DESC
		LIMIT $3
	`

	rows, err := r.q.Query(ctx, query, discordID, r.guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get rounds for user %d: %w", discordID, err)
	}
	defer rows.Close()

	var rounds []*entities.GameRound
	for rows.Next() {
		var round entities.GameRound
		err := rows.Scan(
			&round.ID,
			&round.SessionID,
			&round.DiscordID,
			&round.GuildID,
			&round.Game,
			&round.Bet,
			&round.Stake,
			&round.Payout,
			&round.Outcome,
			&round.Modifiers,
			&round.StartedAt,
			&round.EndedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game round: %w", err)
		}
		rounds = append(rounds, &round)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate game rounds: %w", err)
	}

	return rounds, nil
}

// GetSummaryByUser aggregates all of the user's rounds in the guild
func (r *GameRoundRepository) GetSummaryByUser(ctx context.Context, discordID int64) (*entities.GameSummary, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE outcome = 'win'),
			COALESCE(SUM(stake), 0),
			COALESCE(SUM(payout), 0)
		FROM game_rounds
		WHERE discord_id = $1 AND guild_id = $2
	`

	var summary entities.GameSummary
	err := r.q.QueryRow(ctx, query, discordID, r.guildID).Scan(
		&summary.Rounds,
		&summary.Wins,
		&summary.Wagered,
		&summary.Paid,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize rounds for user %d: %w", discordID, err)
	}

	return &summary, nil
}
