package blackjack

import (
	"math/rand/v2"
	"strconv"
	"strings"
)

// Card is a playing card. Rank runs from 1 (ace) to 13 (king).
type Card struct {
	Rank int
	Suit string
}

var suits = []string{"♠", "♥", "♦", "♣"}

var rankNames = map[int]string{1: "A", 11: "J", 12: "Q", 13: "K"}

func (c Card) String() string {
	name, ok := rankNames[c.Rank]
	if !ok {
		name = strconv.Itoa(c.Rank)
	}
	return name + c.Suit
}

// Value is the card's blackjack value counting an ace as 1
func (c Card) Value() int {
	if c.Rank > 10 {
		return 10
	}
	return c.Rank
}

// NewDeck returns the 52 cards in order
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for _, suit := range suits {
		for rank := 1; rank <= 13; rank++ {
			deck = append(deck, Card{Rank: rank, Suit: suit})
		}
	}
	return deck
}

// Shuffled returns a new deck shuffled by rng
func Shuffled(rng *rand.Rand) []Card {
	deck := NewDeck()
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// Total returns the best total of a hand and whether an ace counts as 11
func Total(hand []Card) (total int, soft bool) {
	aces := 0
	for _, c := range hand {
		total += c.Value()
		if c.Rank == 1 {
			aces++
		}
	}
	if aces > 0 && total+10 <= 21 {
		return total + 10, true
	}
	return total, false
}

// IsNatural reports a two-card 21
func IsNatural(hand []Card) bool {
	total, _ := Total(hand)
	return len(hand) == 2 && total == 21
}

// Format renders a hand, hiding every card after the first when hide is set
func Format(hand []Card, hide bool) string {
	parts := make([]string, len(hand))
	for i, c := range hand {
		if hide && i > 0 {
			parts[i] = "🂠"
			continue
		}
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
