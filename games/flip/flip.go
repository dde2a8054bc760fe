// Package flip is a coin toss: call the side and double the stake.
package flip

import (
	"fmt"
	"math/rand/v2"

	"gambler/arcade/games"
)

// Side of the coin
type Side string

const (
	Heads Side = "heads"
	Tails Side = "tails"
)

// WinMultiplier is paid on a correct call
const WinMultiplier = 2.0

// State of a toss
type State struct {
	Call   Side
	Landed Side
	rng    *rand.Rand
}

// Game implements games.Rules for a coin toss
type Game struct{}

// New creates the coin toss
func New() Game {
	return Game{}
}

func (Game) Name() string { return "flip" }

func (Game) Actions() []games.Action {
	return []games.Action{
		{ID: string(Heads), Label: "Heads", Emoji: "🪙", Style: games.StylePrimary},
		{ID: string(Tails), Label: "Tails", Emoji: "🦅", Style: games.StylePrimary},
		{ID: "cancel", Label: "Cancel", Style: games.StyleDanger},
	}
}

func (Game) Modifiers() []games.Modifier {
	return games.StandardModifiers()
}

func (Game) Open(rng *rand.Rand) (State, games.Effects) {
	return State{rng: rng}, games.Stay(games.PhasePrompt)
}

func (Game) Transition(s State, ev games.Event) (State, games.Effects) {
	if ev.Kind != games.EventAction {
		return s, games.Reject("The coin is not in the air.")
	}

	switch ev.Action {
	case string(Heads), string(Tails):
		s.Call = Side(ev.Action)
		s.Landed = toss(s.rng)
		return s, games.Effects{Result: s.result()}
	case "cancel":
		return s, games.Cancel()
	default:
		return s, games.Reject("Pick heads or tails.")
	}
}

// Reroll tosses the coin again for the same call
func (Game) Reroll(s State) (State, games.Result) {
	s.Landed = toss(s.rng)
	return s, *s.result()
}

func (Game) View(s State, phase games.Phase) games.View {
	switch phase {
	case games.PhasePrompt:
		return games.View{
			Title:       "🪙 Coin Flip",
			Description: "Call it in the air.",
			Enabled:     []string{string(Heads), string(Tails), "cancel"},
		}
	case games.PhaseCancelled:
		return games.View{Title: "🪙 Coin Flip", Description: "You pocketed the coin."}
	case games.PhaseExpired:
		return games.View{Title: "🪙 Coin Flip", Description: "You took too long to call it."}
	}

	desc := fmt.Sprintf("You called **%s**. The coin landed on **%s**.", s.Call, s.Landed)
	return games.View{Title: "🪙 Coin Flip", Description: desc}
}

func (s State) result() *games.Result {
	if s.Landed == s.Call {
		return &games.Result{Outcome: games.OutcomeWin, Multiplier: WinMultiplier}
	}
	return &games.Result{Outcome: games.OutcomeLoss}
}

func toss(rng *rand.Rand) Side {
	if rng.IntN(2) == 0 {
		return Heads
	}
	return Tails
}
