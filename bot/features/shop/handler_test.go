package shop

import (
	"testing"

	"gambler/arcade/domain/entities"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCatalogEmbed(t *testing.T) {
	embed := buildCatalogEmbed()
	require.Len(t, embed.Fields, len(entities.ItemCatalog))
	assert.Equal(t, "🔄 Reroll Token · 2,500 bits", embed.Fields[0].Name)
	assert.Equal(t, "🛡️ Shield · 4,000 bits", embed.Fields[1].Name)
}

func TestBuildInventoryEmbed(t *testing.T) {
	assert.Contains(t, buildInventoryEmbed(nil).Description, "/shop list")

	embed := buildInventoryEmbed([]*entities.InventoryItem{
		{ItemID: entities.ItemLuckyCharm, Quantity: 3},
	})
	assert.Equal(t, "🍀 Lucky Charm ×3\n", embed.Description)
}

func TestFormatPurchase(t *testing.T) {
	def, err := entities.LookupItem(entities.ItemShield)
	require.NoError(t, err)

	msg := formatPurchase(&entities.PurchaseResult{Item: def, Quantity: 2, Cost: 8000, Balance: 92000, Owned: 3})
	assert.Equal(t, "✅ Bought 2× 🛡️ Shield for **8,000 bits**. You now hold 3. Balance: **92,000 bits**", msg)
}

func TestCommands(t *testing.T) {
	commands := New(nil, 0).Commands()
	require.Len(t, commands, 2)

	buy := commands[0].Options[1]
	assert.Equal(t, discordgo.ApplicationCommandOptionSubCommand, buy.Type)
	require.Len(t, buy.Options[0].Choices, len(entities.ItemCatalog))
	assert.Equal(t, entities.ItemRerollToken, buy.Options[0].Choices[0].Value)
}
