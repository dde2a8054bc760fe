// Package scratch is a three-panel scratch card. Three matching symbols pay
// by symbol, a pair returns the stake.
package scratch

import (
	"math/rand/v2"
	"strings"

	"gambler/arcade/games"
)

// Panels on a card
const Panels = 3

// Symbol printed under a panel
type Symbol string

const (
	Cherry  Symbol = "🍒"
	Bell    Symbol = "🔔"
	Clover  Symbol = "🍀"
	Seven   Symbol = "7️⃣"
	Diamond Symbol = "💎"
)

var symbols = []Symbol{Cherry, Bell, Clover, Seven, Diamond}

// Payouts for three of a kind
var Payouts = map[Symbol]float64{
	Cherry:  2,
	Bell:    3,
	Clover:  4,
	Seven:   7,
	Diamond: 10,
}

var panelActions = [Panels]string{"scratch_1", "scratch_2", "scratch_3"}

// State of a card. Every symbol is printed at Open.
type State struct {
	Symbols  [Panels]Symbol
	Revealed [Panels]bool
	rng      *rand.Rand
}

// Scratched returns how many panels are showing
func (s State) Scratched() int {
	n := 0
	for _, r := range s.Revealed {
		if r {
			n++
		}
	}
	return n
}

// Game implements games.Rules for scratch cards
type Game struct{}

// New creates the game
func New() Game {
	return Game{}
}

func (Game) Name() string { return "scratch" }

func (Game) Actions() []games.Action {
	actions := make([]games.Action, 0, Panels+1)
	for i, id := range panelActions {
		actions = append(actions, games.Action{ID: id, Label: "Scratch " + string(rune('1'+i)), Emoji: "🪙", Style: games.StyleSecondary})
	}
	return append(actions, games.Action{ID: "cancel", Label: "Cancel", Style: games.StyleDanger})
}

func (Game) Modifiers() []games.Modifier {
	return games.StandardModifiers()
}

func (Game) Open(rng *rand.Rand) (State, games.Effects) {
	return State{Symbols: printCard(rng), rng: rng}, games.Stay(games.PhasePrompt)
}

func (Game) Transition(s State, ev games.Event) (State, games.Effects) {
	if ev.Kind != games.EventAction {
		return s, games.Reject("Scratch a panel.")
	}
	if ev.Action == "cancel" {
		if s.Scratched() > 0 {
			return s, games.Reject("You've already started scratching.")
		}
		return s, games.Cancel()
	}

	panel := -1
	for i, id := range panelActions {
		if id == ev.Action {
			panel = i
		}
	}
	if panel < 0 {
		return s, games.Reject("Unknown panel.")
	}
	if s.Revealed[panel] {
		return s, games.Reject("That panel is already scratched.")
	}

	s.Revealed[panel] = true
	if s.Scratched() < Panels {
		return s, games.Stay(games.PhaseActive)
	}
	return s, games.Effects{Result: evaluate(s.Symbols)}
}

// Reroll prints and reveals a fresh card
func (Game) Reroll(s State) (State, games.Result) {
	s.Symbols = printCard(s.rng)
	s.Revealed = [Panels]bool{true, true, true}
	return s, *evaluate(s.Symbols)
}

func (Game) View(s State, phase games.Phase) games.View {
	cells := make([]string, Panels)
	for i, sym := range s.Symbols {
		if s.Revealed[i] || phase.Terminal() {
			cells[i] = string(sym)
		} else {
			cells[i] = "⬜"
		}
	}

	view := games.View{Title: "🎟️ Scratch Card", Description: strings.Join(cells, " | ")}
	if phase.Terminal() {
		return view
	}
	for i, id := range panelActions {
		if !s.Revealed[i] {
			view.Enabled = append(view.Enabled, id)
		}
	}
	if s.Scratched() == 0 {
		view.Enabled = append(view.Enabled, "cancel")
	}
	return view
}

func evaluate(card [Panels]Symbol) *games.Result {
	switch {
	case card[0] == card[1] && card[1] == card[2]:
		return &games.Result{Outcome: games.OutcomeWin, Multiplier: Payouts[card[0]]}
	case card[0] == card[1] || card[1] == card[2] || card[0] == card[2]:
		return &games.Result{Outcome: games.OutcomePush}
	default:
		return &games.Result{Outcome: games.OutcomeLoss}
	}
}

func printCard(rng *rand.Rand) [Panels]Symbol {
	var card [Panels]Symbol
	for i := range card {
		card[i] = symbols[rng.IntN(len(symbols))]
	}
	return card
}
