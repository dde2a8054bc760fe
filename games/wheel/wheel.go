// Package wheel is a prize wheel with multiplier segments.
package wheel

import (
	"fmt"
	"math/rand/v2"

	"gambler/arcade/games"
)

// Segment of the wheel
type Segment struct {
	Label      string
	Multiplier float64
}

// Segments clockwise from the top
var Segments = []Segment{
	{Label: "💀 Bust", Multiplier: 0},
	{Label: "1.5x", Multiplier: 1.5},
	{Label: "💀 Bust", Multiplier: 0},
	{Label: "Refund", Multiplier: 1},
	{Label: "2x", Multiplier: 2},
	{Label: "💀 Bust", Multiplier: 0},
	{Label: "1.5x", Multiplier: 1.5},
	{Label: "Refund", Multiplier: 1},
	{Label: "💀 Bust", Multiplier: 0},
	{Label: "3x", Multiplier: 3},
	{Label: "💀 Bust", Multiplier: 0},
	{Label: "Refund", Multiplier: 1},
	{Label: "💀 Bust", Multiplier: 0},
	{Label: "5x", Multiplier: 5},
}

// State of a spin
type State struct {
	Landed int
	Spun   bool
	rng    *rand.Rand
}

// Game implements games.Rules for the wheel
type Game struct{}

// New creates the game
func New() Game {
	return Game{}
}

func (Game) Name() string { return "wheel" }

func (Game) Actions() []games.Action {
	return []games.Action{
		{ID: "spin", Label: "Spin", Emoji: "🎡", Style: games.StyleSuccess},
		{ID: "cancel", Label: "Cancel", Style: games.StyleDanger},
	}
}

func (Game) Modifiers() []games.Modifier {
	return games.StandardModifiers(games.ModifierReroll, games.ModifierCharm)
}

func (Game) Open(rng *rand.Rand) (State, games.Effects) {
	return State{rng: rng}, games.Stay(games.PhasePrompt)
}

func (Game) Transition(s State, ev games.Event) (State, games.Effects) {
	if ev.Kind != games.EventAction {
		return s, games.Reject("Spin the wheel.")
	}

	switch ev.Action {
	case "spin":
		s.Landed = s.rng.IntN(len(Segments))
		s.Spun = true
		return s, games.Finish(Segments[s.Landed].Multiplier)
	case "cancel":
		return s, games.Cancel()
	}
	return s, games.Reject("Unknown action.")
}

// Reroll spins again
func (Game) Reroll(s State) (State, games.Result) {
	s.Landed = s.rng.IntN(len(Segments))
	return s, *games.Finish(Segments[s.Landed].Multiplier).Result
}

func (Game) View(s State, phase games.Phase) games.View {
	view := games.View{Title: "🎡 Prize Wheel"}
	switch {
	case phase == games.PhasePrompt:
		view.Description = "Give it a spin."
		view.Enabled = []string{"spin", "cancel"}
	case s.Spun:
		prev := Segments[(s.Landed+len(Segments)-1)%len(Segments)]
		next := Segments[(s.Landed+1)%len(Segments)]
		view.Description = fmt.Sprintf("%s ▸ **%s** ◂ %s", prev.Label, Segments[s.Landed].Label, next.Label)
	case phase == games.PhaseExpired:
		view.Description = "The wheel stopped waiting."
	default:
		view.Description = "You stepped away from the wheel."
	}
	return view
}
