package entities

import (
	"fmt"
	"time"
)

// Item identifiers for the consumables sold in the shop
const (
	ItemRerollToken = "reroll_token"
	ItemShield      = "shield"
	ItemLuckyCharm  = "lucky_charm"
)

// ItemDefinition describes a shop item
type ItemDefinition struct {
	ID          string
	Name        string
	Emoji       string
	Description string
	Price       int64
}

// Display returns the item name with its emoji
func (d ItemDefinition) Display() string {
	return fmt.Sprintf("%s %s", d.Emoji, d.Name)
}

// ItemCatalog lists every item the shop sells, in display order
var ItemCatalog = []ItemDefinition{
	{
		ID:          ItemRerollToken,
		Name:        "Reroll Token",
		Emoji:       "🔄",
		Description: "Replays a losing round once",
		Price:       2500,
	},
	{
		ID:          ItemShield,
		Name:        "Shield",
		Emoji:       "🛡️",
		Description: "Turns a loss into a refund",
		Price:       4000,
	},
	{
		ID:          ItemLuckyCharm,
		Name:        "Lucky Charm",
		Emoji:       "🍀",
		Description: "Adds 10% to a win",
		Price:       1500,
	},
}

// LookupItem finds an item in the catalog
func LookupItem(id string) (ItemDefinition, error) {
	for _, def := range ItemCatalog {
		if def.ID == id {
			return def, nil
		}
	}
	return ItemDefinition{}, fmt.Errorf("%w: %s", ErrUnknownItem, id)
}

// InventoryItem is how many of an item a user holds in a guild
type InventoryItem struct {
	DiscordID int64     `db:"discord_id"`
	GuildID   int64     `db:"guild_id"`
	ItemID    string    `db:"item_id"`
	Quantity  int64     `db:"quantity"`
	UpdatedAt time.Time `db:"updated_at"`
}
