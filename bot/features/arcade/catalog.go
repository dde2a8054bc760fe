package arcade

import (
	"context"
	"time"

	"gambler/arcade/games"
	"gambler/arcade/games/blackjack"
	"gambler/arcade/games/crash"
	"gambler/arcade/games/flip"
	"gambler/arcade/games/horserace"
	"gambler/arcade/games/rps"
	"gambler/arcade/games/scratch"
	"gambler/arcade/games/slots"
	"gambler/arcade/games/wheel"
)

// Starter begins a session of one game
type Starter func(ctx context.Context, engine *games.Engine, req games.Request) (games.Session, error)

// Game is a playable entry exposed as a slash command
type Game struct {
	Name        string
	Description string
	Start       Starter
}

// CatalogConfig carries the animation speeds of the ticking games
type CatalogConfig struct {
	CrashTick time.Duration
	RaceTick  time.Duration
}

// Catalog lists every game in command order
func Catalog(cfg CatalogConfig) []Game {
	return []Game{
		{Name: "flip", Description: "Call a coin toss for double your bet", Start: starter[flip.State](flip.New())},
		{Name: "rps", Description: "Rock, paper, scissors against the house", Start: starter[rps.State](rps.New())},
		{Name: "crash", Description: "Cash out before the multiplier crashes", Start: starter[crash.State](crash.New(cfg.CrashTick))},
		{Name: "blackjack", Description: "Beat the dealer to 21", Start: starter[blackjack.State](blackjack.New())},
		{Name: "horserace", Description: "Back a horse and watch the race", Start: starter[horserace.State](horserace.New(cfg.RaceTick))},
		{Name: "scratch", Description: "Scratch a card for a hidden prize", Start: starter[scratch.State](scratch.New())},
		{Name: "slots", Description: "Spin three reels", Start: starter[slots.State](slots.New())},
		{Name: "wheel", Description: "Spin the wheel of multipliers", Start: starter[wheel.State](wheel.New())},
	}
}

func starter[S any](rules games.Rules[S]) Starter {
	return func(ctx context.Context, engine *games.Engine, req games.Request) (games.Session, error) {
		c, err := games.Start[S](ctx, engine, rules, req)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}
