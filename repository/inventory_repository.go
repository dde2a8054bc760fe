package repository

import (
	"context"
	"errors"
	"fmt"

	"gambler/arcade/database"
	"gambler/arcade/domain/entities"

	"github.com/jackc/pgx/v5"
)

// InventoryRepository implements the InventoryRepository interface
type InventoryRepository struct {
	q       Queryable
	guildID int64
}

// NewInventoryRepository creates an inventory repository on the pool for one guild
func NewInventoryRepository(db *database.DB, guildID int64) *InventoryRepository {
	return &InventoryRepository{q: db.Pool, guildID: guildID}
}

// NewInventoryRepositoryScoped creates an inventory repository with a transaction and guild scope
func NewInventoryRepositoryScoped(tx Queryable, guildID int64) *InventoryRepository {
	return &InventoryRepository{
		q:       tx,
		guildID: guildID,
	}
}

// GetByUser returns every item the user holds, ordered by item id
func (r *InventoryRepository) GetByUser(ctx context.Context, discordID int64) ([]*entities.InventoryItem, error) {
	query := `
		SELECT discord_id, guild_id, item_id, quantity, updated_at
		FROM inventory_items
		WHERE discord_id = $1 AND guild_id = $2 AND quantity > 0
		ORDER BY item_id
	`

	rows, err := r.q.Query(ctx, query, discordID, r.guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory for user %d: %w", discordID, err)
	}
	defer rows.Close()

	var items []*entities.InventoryItem
	for rows.Next() {
		var item entities.InventoryItem
		if err := rows.Scan(&item.DiscordID, &item.GuildID, &item.ItemID, &item.Quantity, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate inventory: %w", err)
	}

	return items, nil
}

// GetQuantity returns how many of an item the user holds
func (r *InventoryRepository) GetQuantity(ctx context.Context, discordID int64, itemID string) (int64, error) {
	query := `
		SELECT quantity FROM inventory_items
		WHERE discord_id = $1 AND guild_id = $2 AND item_id = $3
	`

	var quantity int64
	err := r.q.QueryRow(ctx, query, discordID, r.guildID, itemID).Scan(&quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get %s quantity for user %d: %w", itemID, discordID, err)
	}
	return quantity, nil
}

// Adjust changes the quantity atomically. Increments upsert the row,
// decrements only apply while enough units remain.
func (r *InventoryRepository) Adjust(ctx context.Context, discordID int64, itemID string, delta int64) (*entities.InventoryItem, error) {
	var query string
	switch {
	case delta > 0:
		query = `
			INSERT INTO inventory_items (discord_id, guild_id, item_id, quantity)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (discord_id, guild_id, item_id)
			DO UPDATE SET quantity = inventory_items.quantity + EXCLUDED.quantity, updated_at = NOW()
			RETURNING discord_id, guild_id, item_id, quantity, updated_at
		`
	case delta < 0:
		query = `
			UPDATE inventory_items
			SET quantity = quantity + $4, updated_at = NOW()
			WHERE discord_id = $1 AND guild_id = $2 AND item_id = $3 AND quantity + $4 >= 0
			RETURNING discord_id, guild_id, item_id, quantity, updated_at
		`
	default:
		quantity, err := r.GetQuantity(ctx, discordID, itemID)
		if err != nil {
			return nil, err
		}
		return &entities.InventoryItem{DiscordID: discordID, GuildID: r.guildID, ItemID: itemID, Quantity: quantity}, nil
	}

	var item entities.InventoryItem
	err := r.q.QueryRow(ctx, query, discordID, r.guildID, itemID, delta).Scan(
		&item.DiscordID,
		&item.GuildID,
		&item.ItemID,
		&item.Quantity,
		&item.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entities.ErrInsufficientItems
	}
	if err != nil {
		return nil, fmt.Errorf("failed to adjust %s for user %d: %w", itemID, discordID, err)
	}

	return &item, nil
}
