package cmd

import (
	"context"
	"fmt"
	"strconv"

	"gambler/arcade/application"
	"gambler/arcade/config"
	"gambler/arcade/database"
	"gambler/arcade/domain/entities"
	"gambler/arcade/domain/interfaces"
	"gambler/arcade/infrastructure"

	log "github.com/sirupsen/logrus"
)

// Migrate runs a migration subcommand: up, down [steps] or status
func Migrate(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: arcade migrate [up|down|status] [args...]")
	}

	switch args[0] {
	case "up":
		return database.MigrateUp()
	case "down":
		steps := "1"
		if len(args) > 1 {
			steps = args[1]
		}
		return database.MigrateDown(steps)
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migration command: %s", args[0])
	}
}

// AdjustmentArgs identifies an admin balance adjustment
type AdjustmentArgs struct {
	GuildID   int64
	DiscordID int64
	Delta     int64
}

// ParseAdjustmentArgs parses "guild-id user-id amount"
func ParseAdjustmentArgs(args []string) (AdjustmentArgs, error) {
	if len(args) < 3 {
		return AdjustmentArgs{}, fmt.Errorf("usage: arcade update-balance guild-id user-id amount")
	}

	var parsed AdjustmentArgs
	var err error
	if parsed.GuildID, err = strconv.ParseInt(args[0], 10, 64); err != nil {
		return AdjustmentArgs{}, fmt.Errorf("invalid guild ID %q: %w", args[0], err)
	}
	if parsed.DiscordID, err = strconv.ParseInt(args[1], 10, 64); err != nil {
		return AdjustmentArgs{}, fmt.Errorf("invalid user ID %q: %w", args[1], err)
	}
	if parsed.Delta, err = strconv.ParseInt(args[2], 10, 64); err != nil {
		return AdjustmentArgs{}, fmt.Errorf("invalid amount %q: %w", args[2], err)
	}
	if parsed.Delta == 0 {
		return AdjustmentArgs{}, fmt.Errorf("amount must not be zero")
	}
	return parsed, nil
}

// UpdateBalance applies an admin adjustment to one account. Events are not
// published for admin changes.
func UpdateBalance(ctx context.Context, args []string) error {
	adj, err := ParseAdjustmentArgs(args)
	if err != nil {
		return err
	}

	cfg := config.Get()
	ConfigureLogging(cfg)

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	uowFactory := infrastructure.NewUnitOfWorkFactory(db, infrastructure.NewNoopEventPublisher())

	var balance int64
	err = application.WithLedger(ctx, uowFactory, adj.GuildID, cfg.StartingBalance, func(ledger interfaces.LedgerService) error {
		var err error
		balance, err = ledger.AdjustBalance(ctx, adj.DiscordID, adj.Delta, 0, entities.TransactionTypeAdjustment, map[string]any{
			"admin": true,
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to adjust balance: %w", err)
	}

	log.WithFields(log.Fields{
		"guildID":    adj.GuildID,
		"discordID":  adj.DiscordID,
		"delta":      adj.Delta,
		"newBalance": balance,
	}).Info("Balance adjusted")
	return nil
}
