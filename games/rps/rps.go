// Package rps is rock paper scissors against the house.
package rps

import (
	"fmt"
	"math/rand/v2"

	"gambler/arcade/games"
)

// Hand is a thrown shape
type Hand string

const (
	Rock     Hand = "rock"
	Paper    Hand = "paper"
	Scissors Hand = "scissors"
)

var hands = []Hand{Rock, Paper, Scissors}

var beats = map[Hand]Hand{
	Rock:     Scissors,
	Paper:    Rock,
	Scissors: Paper,
}

var emoji = map[Hand]string{
	Rock:     "🪨",
	Paper:    "📄",
	Scissors: "✂️",
}

// WinMultiplier is paid when the player's hand beats the house
const WinMultiplier = 2.0

// State of a round
type State struct {
	Player Hand
	House  Hand
	rng    *rand.Rand
}

// Game implements games.Rules for rock paper scissors
type Game struct{}

// New creates the game
func New() Game {
	return Game{}
}

func (Game) Name() string { return "rps" }

func (Game) Actions() []games.Action {
	actions := make([]games.Action, 0, len(hands)+1)
	for _, h := range hands {
		actions = append(actions, games.Action{
			ID:    string(h),
			Label: capitalize(string(h)),
			Emoji: emoji[h],
			Style: games.StylePrimary,
		})
	}
	return append(actions, games.Action{ID: "cancel", Label: "Cancel", Style: games.StyleDanger})
}

// Draws cannot be lost, so only shields and charms apply
func (Game) Modifiers() []games.Modifier {
	return games.StandardModifiers(games.ModifierShield, games.ModifierCharm)
}

func (Game) Open(rng *rand.Rand) (State, games.Effects) {
	return State{rng: rng}, games.Stay(games.PhasePrompt)
}

func (Game) Transition(s State, ev games.Event) (State, games.Effects) {
	if ev.Kind != games.EventAction {
		return s, games.Reject("Throw a hand.")
	}
	if ev.Action == "cancel" {
		return s, games.Cancel()
	}

	hand := Hand(ev.Action)
	if _, ok := beats[hand]; !ok {
		return s, games.Reject("Throw rock, paper or scissors.")
	}

	s.Player = hand
	s.House = hands[s.rng.IntN(len(hands))]
	switch {
	case s.Player == s.House:
		return s, games.Push()
	case beats[s.Player] == s.House:
		return s, games.Win(WinMultiplier)
	default:
		return s, games.Lose()
	}
}

func (Game) View(s State, phase games.Phase) games.View {
	view := games.View{Title: "🪨 Rock Paper Scissors"}
	switch phase {
	case games.PhasePrompt:
		view.Description = "Choose your throw."
		view.Enabled = []string{string(Rock), string(Paper), string(Scissors), "cancel"}
	case games.PhaseCancelled:
		view.Description = "You walked away."
	case games.PhaseExpired:
		view.Description = "The house got bored waiting."
	default:
		view.Description = fmt.Sprintf("%s vs %s", emoji[s.Player], emoji[s.House])
		view.Fields = []games.Field{
			{Name: "You", Value: capitalize(string(s.Player)), Inline: true},
			{Name: "House", Value: capitalize(string(s.House)), Inline: true},
		}
	}
	return view
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
