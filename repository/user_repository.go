package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gambler/arcade/database"
	"gambler/arcade/domain/entities"

	"github.com/jackc/pgx/v5"
)

// UserRepository implements the UserRepository interface
type UserRepository struct {
	q       Queryable
	guildID int64
}

// NewUserRepository creates a user repository on the pool for one guild
func NewUserRepository(db *database.DB, guildID int64) *UserRepository {
	return &UserRepository{q: db.Pool, guildID: guildID}
}

// NewUserRepositoryScoped creates a new user repository with a transaction and guild scope
func NewUserRepositoryScoped(tx Queryable, guildID int64) *UserRepository {
	return &UserRepository{
		q:       tx,
		guildID: guildID,
	}
}

// GetByDiscordID retrieves a user by their Discord ID in the current guild
func (r *UserRepository) GetByDiscordID(ctx context.Context, discordID int64) (*entities.User, error) {
	query := `
		SELECT
			uga.id,
			uga.discord_id,
			uga.guild_id,
			uga.balance,
			uga.created_at,
			uga.updated_at,
			u.username
		FROM user_guild_accounts uga
		JOIN users u ON uga.discord_id = u.discord_id
		WHERE uga.discord_id = $1 AND uga.guild_id = $2
	`

	var account entities.UserGuildAccount
	var username string
	err := r.q.QueryRow(ctx, query, discordID, r.guildID).Scan(
		&account.ID,
		&account.DiscordID,
		&account.GuildID,
		&account.Balance,
		&account.CreatedAt,
		&account.UpdatedAt,
		&username,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by discord ID %d in guild %d: %w", discordID, r.guildID, err)
	}

	return account.ToUser(username), nil
}

// Create creates a new user with the initial balance in the current guild
func (r *UserRepository) Create(ctx context.Context, discordID int64, username string, initialBalance int64) (*entities.User, error) {
	userQuery := `
		INSERT INTO users (discord_id, username)
		VALUES ($1, $2)
		ON CONFLICT (discord_id) DO UPDATE SET username = EXCLUDED.username, updated_at = NOW()
	`
	if _, err := r.q.Exec(ctx, userQuery, discordID, username); err != nil {
		return nil, fmt.Errorf("failed to create/update user %d: %w", discordID, err)
	}

	accountQuery := `
		INSERT INTO user_guild_accounts (discord_id, guild_id, balance)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	account := entities.UserGuildAccount{
		DiscordID: discordID,
		GuildID:   r.guildID,
		Balance:   initialBalance,
	}
	err := r.q.QueryRow(ctx, accountQuery, discordID, r.guildID, initialBalance).Scan(
		&account.ID,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user guild account for discord ID %d in guild %d: %w", discordID, r.guildID, err)
	}

	return account.ToUser(username), nil
}

// AddBalance applies delta in a single conditional UPDATE so concurrent
// adjustments to one account serialize on its row lock
func (r *UserRepository) AddBalance(ctx context.Context, discordID int64, delta, floor int64) (int64, error) {
	query := `
		UPDATE user_guild_accounts
		SET balance = balance + $1, updated_at = $5
		WHERE discord_id = $2 AND guild_id = $3 AND balance + $1 >= $4
		RETURNING balance
	`

	var balance int64
	err := r.q.QueryRow(ctx, query, delta, discordID, r.guildID, floor, time.Now()).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		user, lookupErr := r.GetByDiscordID(ctx, discordID)
		if lookupErr != nil {
			return 0, lookupErr
		}
		if user == nil {
			return 0, fmt.Errorf("%w: discord ID %d in guild %d", entities.ErrUserNotFound, discordID, r.guildID)
		}
		return 0, entities.ErrInsufficientBalance
	}
	if err != nil {
		return 0, fmt.Errorf("failed to update balance for user %d in guild %d: %w", discordID, r.guildID, err)
	}

	return balance, nil
}

// GetTopBalances returns the richest users in the current guild
func (r *UserRepository) GetTopBalances(ctx context.Context, limit int) ([]*entities.User, error) {
	query := `
		SELECT
			uga.discord_id,
			u.username,
			uga.balance,
			uga.created_at,
			uga.updated_at
		FROM user_guild_accounts uga
		JOIN users u ON uga.discord_id = u.discord_id
		WHERE uga.guild_id = $1
		ORDER BY uga.balance DESC, uga.discord_id
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, r.guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top balances in guild %d: %w", r.guildID, err)
	}
	defer rows.Close()

	var users []*entities.User
	for rows.Next() {
		var user entities.User
		if err := rows.Scan(&user.DiscordID, &user.Username, &user.Balance, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}
