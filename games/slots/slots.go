// Package slots is a three-reel slot machine.
package slots

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"gambler/arcade/games"
)

// Reels on the machine
const Reels = 3

// PairMultiplier is paid when exactly two reels match
const PairMultiplier = 1.5

// Symbol on a reel
type Symbol struct {
	Face   string
	Weight int
	// Triple is the multiplier for three of a kind
	Triple float64
}

// Strip is the weighted reel strip shared by all reels
var Strip = []Symbol{
	{Face: "🍒", Weight: 30, Triple: 3},
	{Face: "🍋", Weight: 25, Triple: 4},
	{Face: "🔔", Weight: 20, Triple: 6},
	{Face: "⭐", Weight: 12, Triple: 10},
	{Face: "💎", Weight: 8, Triple: 20},
	{Face: "7️⃣", Weight: 5, Triple: 50},
}

// State of a spin; Stops index into Strip
type State struct {
	Stops [Reels]int
	Spun  bool
	rng   *rand.Rand
}

// Game implements games.Rules for the slot machine
type Game struct{}

// New creates the game
func New() Game {
	return Game{}
}

func (Game) Name() string { return "slots" }

func (Game) Actions() []games.Action {
	return []games.Action{
		{ID: "spin", Label: "Spin", Emoji: "🎰", Style: games.StyleSuccess},
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
		return s, games.Reject("Pull the lever.")
	}

	switch ev.Action {
	case "spin":
		s = s.spin()
		return s, games.Finish(Multiplier(s.Stops))
	case "cancel":
		return s, games.Cancel()
	}
	return s, games.Reject("Unknown action.")
}

// Reroll spins the reels again
func (Game) Reroll(s State) (State, games.Result) {
	s = s.spin()
	return s, *games.Finish(Multiplier(s.Stops)).Result
}

func (Game) View(s State, phase games.Phase) games.View {
	view := games.View{Title: "🎰 Slots"}
	switch {
	case phase == games.PhasePrompt:
		view.Description = "Pull the lever."
		view.Enabled = []string{"spin", "cancel"}
	case s.Spun:
		faces := make([]string, Reels)
		for i, stop := range s.Stops {
			faces[i] = Strip[stop].Face
		}
		view.Description = fmt.Sprintf("[ %s ]", strings.Join(faces, " | "))
	case phase == games.PhaseExpired:
		view.Description = "The machine went back to sleep."
	default:
		view.Description = "You walked away from the machine."
	}
	return view
}

// Multiplier scores the reels: three of a kind pays by symbol, any pair
// pays PairMultiplier and anything else loses
func Multiplier(stops [Reels]int) float64 {
	switch {
	case stops[0] == stops[1] && stops[1] == stops[2]:
		return Strip[stops[0]].Triple
	case stops[0] == stops[1] || stops[1] == stops[2] || stops[0] == stops[2]:
		return PairMultiplier
	default:
		return 0
	}
}

func (s State) spin() State {
	total := 0
	for _, sym := range Strip {
		total += sym.Weight
	}
	for i := range s.Stops {
		roll := s.rng.IntN(total)
		for j, sym := range Strip {
			if roll < sym.Weight {
				s.Stops[i] = j
				break
			}
			roll -= sym.Weight
		}
	}
	s.Spun = true
	return s
}
