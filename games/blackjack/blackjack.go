// Package blackjack is single-hand blackjack against a dealer who stands on
// all 17s.
package blackjack

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"gambler/arcade/games"
)

const (
	// NaturalMultiplier is paid on a two-card 21 (3:2)
	NaturalMultiplier = 2.5
	// WinMultiplier is paid on any other win
	WinMultiplier = 2.0
	// DealerStandsOn is the total the dealer stops drawing at
	DealerStandsOn = 17
)

// State of a hand
type State struct {
	Deck    []Card
	Player  []Card
	Dealer  []Card
	Moves   int
	Doubled bool
	// Revealed is set once the dealer's hole card is shown
	Revealed bool
}

// Game implements games.Rules for blackjack
type Game struct {
	deck []Card
}

// New creates the game with a freshly shuffled deck per session
func New() Game {
	return Game{}
}

// WithDeck deals from the given cards in order instead of shuffling
func WithDeck(cards []Card) Game {
	return Game{deck: cards}
}

func (Game) Name() string { return "blackjack" }

// Every control stays registered; availability is decided per state
func (Game) Actions() []games.Action {
	return []games.Action{
		{ID: "hit", Label: "Hit", Style: games.StylePrimary, Repeatable: true},
		{ID: "stand", Label: "Stand", Style: games.StyleSecondary, Repeatable: true},
		{ID: "double", Label: "Double", Style: games.StyleSuccess, Repeatable: true},
		{ID: "cancel", Label: "Cancel", Style: games.StyleDanger, Repeatable: true},
	}
}

func (Game) Modifiers() []games.Modifier {
	return games.StandardModifiers(games.ModifierShield)
}

// Open deals two cards each. A natural on either side settles immediately.
func (g Game) Open(rng *rand.Rand) (State, games.Effects) {
	deck := g.deck
	if deck == nil {
		deck = Shuffled(rng)
	}
	s := State{Deck: slices.Clone(deck)}

	s = s.dealPlayer()
	s = s.dealDealer()
	s = s.dealPlayer()
	s = s.dealDealer()

	player, dealer := IsNatural(s.Player), IsNatural(s.Dealer)
	switch {
	case player && dealer:
		s.Revealed = true
		return s, games.Push()
	case player:
		s.Revealed = true
		return s, games.Win(NaturalMultiplier)
	case dealer:
		s.Revealed = true
		return s, games.Lose()
	}
	return s, games.Stay(games.PhasePrompt)
}

func (Game) Transition(s State, ev games.Event) (State, games.Effects) {
	if ev.Kind != games.EventAction {
		return s, games.Reject("Waiting for your move.")
	}

	switch ev.Action {
	case "hit":
		s = s.dealPlayer()
		s.Moves++
		total, _ := Total(s.Player)
		switch {
		case total > 21:
			s.Revealed = true
			return s, games.Lose()
		case total == 21:
			return s.stand()
		}
		return s, games.Stay(games.PhaseActive)

	case "stand":
		s.Moves++
		return s.stand()

	case "double":
		if s.Moves > 0 {
			return s, games.Reject("You can only double down on your first move.")
		}
		s = s.dealPlayer()
		s.Moves++
		s.Doubled = true

		var eff games.Effects
		if total, _ := Total(s.Player); total > 21 {
			s.Revealed = true
			eff = games.Lose()
		} else {
			s, eff = s.stand()
		}
		eff.Raise = true
		return s, eff

	case "cancel":
		if s.Moves > 0 {
			return s, games.Reject("The hand is already in play.")
		}
		return s, games.Cancel()
	}
	return s, games.Reject("Unknown move.")
}

func (Game) View(s State, phase games.Phase) games.View {
	player, _ := Total(s.Player)
	dealerHand := Format(s.Dealer, !s.Revealed)
	dealerTotal := "?"
	if s.Revealed {
		total, _ := Total(s.Dealer)
		dealerTotal = fmt.Sprint(total)
	}

	view := games.View{
		Title: "🃏 Blackjack",
		Fields: []games.Field{
			{Name: fmt.Sprintf("Your hand (%d)", player), Value: Format(s.Player, false), Inline: true},
			{Name: fmt.Sprintf("Dealer (%s)", dealerTotal), Value: dealerHand, Inline: true},
		},
	}

	switch phase {
	case games.PhasePrompt:
		view.Description = "Hit, stand or double down."
		view.Enabled = []string{"hit", "stand", "double", "cancel"}
	case games.PhaseActive:
		view.Description = "Hit or stand."
		view.Enabled = []string{"hit", "stand"}
	case games.PhaseCancelled:
		view.Description = "You folded before playing."
	case games.PhaseExpired:
		view.Description = "The dealer moved on to the next table."
	default:
		view.Description = describe(s)
	}
	return view
}

// Reveal the hole card, let the dealer draw, and compare
func (s State) stand() (State, games.Effects) {
	s.Revealed = true
	for {
		total, _ := Total(s.Dealer)
		if total >= DealerStandsOn {
			break
		}
		s = s.dealDealer()
	}

	player, _ := Total(s.Player)
	dealer, _ := Total(s.Dealer)
	switch {
	case dealer > 21 || player > dealer:
		return s, games.Win(WinMultiplier)
	case player == dealer:
		return s, games.Push()
	default:
		return s, games.Lose()
	}
}

func (s State) dealPlayer() State {
	card, rest := s.Deck[0], s.Deck[1:]
	s.Deck = rest
	s.Player = append(slices.Clone(s.Player), card)
	return s
}

func (s State) dealDealer() State {
	card, rest := s.Deck[0], s.Deck[1:]
	s.Deck = rest
	s.Dealer = append(slices.Clone(s.Dealer), card)
	return s
}

func describe(s State) string {
	player, _ := Total(s.Player)
	dealer, _ := Total(s.Dealer)
	switch {
	case IsNatural(s.Player) && IsNatural(s.Dealer):
		return "Both blackjack. Push."
	case IsNatural(s.Player) && s.Moves == 0:
		return "Blackjack!"
	case IsNatural(s.Dealer) && s.Moves == 0:
		return "Dealer has blackjack."
	case player > 21:
		return fmt.Sprintf("Bust with %d.", player)
	case dealer > 21:
		return fmt.Sprintf("Dealer busts with %d.", dealer)
	case player > dealer:
		return fmt.Sprintf("%d beats %d.", player, dealer)
	case player == dealer:
		return fmt.Sprintf("Push at %d.", player)
	default:
		return fmt.Sprintf("Dealer's %d beats %d.", dealer, player)
	}
}
