package blackjack

import (
	"testing"

	"gambler/arcade/games"
	"gambler/arcade/games/gamestest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func card(rank int) Card {
	return Card{Rank: rank, Suit: "♠"}
}

// deck lays out player, dealer, player, dealer, then the draws
func deck(ranks ...int) []Card {
	cards := make([]Card, len(ranks))
	for i, r := range ranks {
		cards[i] = card(r)
	}
	return cards
}

func action(id string) games.Event {
	return games.Event{Kind: games.EventAction, Action: id}
}

func TestTotal(t *testing.T) {
	tests := []struct {
		name  string
		hand  []Card
		total int
		soft  bool
	}{
		{name: "hard", hand: deck(10, 7), total: 17},
		{name: "soft ace", hand: deck(1, 6), total: 17, soft: true},
		{name: "ace falls back to one", hand: deck(1, 6, 10), total: 17},
		{name: "two aces", hand: deck(1, 1), total: 12, soft: true},
		{name: "face cards", hand: deck(13, 12, 11), total: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, soft := Total(tt.hand)
			assert.Equal(t, tt.total, total)
			assert.Equal(t, tt.soft, soft)
		})
	}
}

func TestShuffled_IsAFullDeck(t *testing.T) {
	cards := Shuffled(games.NewRand(3))

	require.Len(t, cards, 52)
	seen := make(map[Card]bool)
	for _, card := range cards {
		seen[card] = true
	}
	assert.Len(t, seen, 52)
	assert.NotEqual(t, NewDeck(), cards)
}

func TestOpen_Naturals(t *testing.T) {
	tests := []struct {
		name    string
		deck    []Card
		outcome games.Outcome
	}{
		{name: "player natural", deck: deck(1, 9, 13, 7), outcome: games.OutcomeWin},
		{name: "dealer natural", deck: deck(9, 1, 7, 13), outcome: games.OutcomeLoss},
		{name: "both natural", deck: deck(1, 1, 12, 10), outcome: games.OutcomePush},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, eff := WithDeck(tt.deck).Open(nil)

			require.NotNil(t, eff.Result)
			assert.Equal(t, tt.outcome, eff.Result.Outcome)
			assert.True(t, s.Revealed)
		})
	}
}

func TestOpen_PlayerNaturalPaysThreeToTwo(t *testing.T) {
	_, eff := WithDeck(deck(1, 9, 13, 7)).Open(nil)

	assert.Equal(t, int64(250), eff.Result.Payout(100))
}

func TestTransition_HitBusts(t *testing.T) {
	g := WithDeck(deck(10, 10, 6, 7, 13))
	s, _ := g.Open(nil)

	next, eff := g.Transition(s, action("hit"))

	require.NotNil(t, eff.Result)
	assert.Equal(t, games.OutcomeLoss, eff.Result.Outcome)
	assert.Len(t, next.Dealer, 2)
}

func TestTransition_HitIsPure(t *testing.T) {
	g := WithDeck(deck(10, 10, 2, 7, 3, 4))
	s, _ := g.Open(nil)

	next, eff := g.Transition(s, action("hit"))

	assert.Nil(t, eff.Result)
	assert.Equal(t, games.PhaseActive, eff.Phase)
	assert.Len(t, s.Player, 2)
	assert.Len(t, next.Player, 3)
	assert.Len(t, s.Deck, 2)
}

func TestTransition_HitToTwentyOneStands(t *testing.T) {
	// 10+5 then 6 makes 21; dealer 10+7 stands on 17
	g := WithDeck(deck(10, 10, 5, 7, 6))
	s, _ := g.Open(nil)

	_, eff := g.Transition(s, action("hit"))

	require.NotNil(t, eff.Result)
	assert.Equal(t, games.OutcomeWin, eff.Result.Outcome)
	assert.Equal(t, WinMultiplier, eff.Result.Multiplier)
}

func TestTransition_DealerDrawsToSeventeen(t *testing.T) {
	// Player 10+8; dealer 10+2, draws 3 then 4 to 19
	g := WithDeck(deck(10, 10, 8, 2, 3, 4, 9))
	s, _ := g.Open(nil)

	next, eff := g.Transition(s, action("stand"))

	require.NotNil(t, eff.Result)
	assert.Equal(t, games.OutcomeLoss, eff.Result.Outcome)
	assert.Len(t, next.Dealer, 4)
	total, _ := Total(next.Dealer)
	assert.Equal(t, 19, total)
}

func TestTransition_StandPush(t *testing.T) {
	g := WithDeck(deck(10, 10, 8, 8))
	s, _ := g.Open(nil)

	_, eff := g.Transition(s, action("stand"))

	assert.Equal(t, games.OutcomePush, eff.Result.Outcome)
}

func TestTransition_DoubleOnlyFirst(t *testing.T) {
	g := WithDeck(deck(2, 10, 3, 7, 2, 2))
	s, _ := g.Open(nil)

	s, eff := g.Transition(s, action("hit"))
	require.Nil(t, eff.Result)

	_, eff = g.Transition(s, action("double"))
	assert.NotEmpty(t, eff.Reject)
	assert.False(t, eff.Raise)

	_, eff = g.Transition(s, action("cancel"))
	assert.NotEmpty(t, eff.Reject)
}

func TestTransition_DoubleDrawsOneAndStands(t *testing.T) {
	g := WithDeck(deck(5, 10, 6, 6, 10, 10))
	s, _ := g.Open(nil)

	next, eff := g.Transition(s, action("double"))

	assert.True(t, eff.Raise)
	require.NotNil(t, eff.Result)
	assert.Equal(t, games.OutcomeWin, eff.Result.Outcome)
	assert.Len(t, next.Player, 3)
	assert.True(t, next.Doubled)
	assert.True(t, next.Revealed)
}

func TestSession_NaturalSettlesBeforeRegistration(t *testing.T) {
	h := gamestest.New(t, 500)

	c := gamestest.Start[State](t, h, WithDeck(deck(1, 9, 13, 7)), 100)

	assert.True(t, c.Resolved())
	assert.Empty(t, c.Tokens())
	assert.Equal(t, 0, h.Router.Len())
	assert.Equal(t, int64(650), h.Ledger.Balance())
	require.Len(t, h.Presenter.Presents, 1)
	assert.Equal(t, games.PhaseResolved, h.Presenter.Presents[0].Phase)
}

func TestSession_DoubleDebitsAgain(t *testing.T) {
	h := gamestest.New(t, 300)
	// Player 5+6 doubles into a 2 for 13; dealer stands on 19
	c := gamestest.Start[State](t, h, WithDeck(deck(5, 10, 6, 9, 2)), 20)
	assert.Equal(t, int64(280), h.Ledger.Balance())

	_, err := gamestest.Press(h, c, "double")
	require.NoError(t, err)

	assert.Equal(t, int64(40), c.Stake())
	assert.Equal(t, int64(260), h.Ledger.Balance())
	assert.Equal(t, []int64{20, 20}, h.Ledger.Debits())
	outcome, _ := c.Outcome()
	assert.Equal(t, games.OutcomeLoss, outcome)
}

func TestSession_DoubleWinPaysDoubledStake(t *testing.T) {
	h := gamestest.New(t, 300)
	c := gamestest.Start[State](t, h, WithDeck(deck(5, 10, 6, 6, 10, 10)), 20)

	_, err := gamestest.Press(h, c, "double")
	require.NoError(t, err)

	_, payout := c.Outcome()
	assert.Equal(t, int64(80), payout)
	assert.Equal(t, int64(340), h.Ledger.Balance())
}

func TestSession_ShieldSavesBust(t *testing.T) {
	h := gamestest.New(t, 300)
	h.Ledger.Give(games.ItemShield, 1)
	c := gamestest.Start[State](t, h, WithDeck(deck(10, 10, 6, 7, 13)), 50)

	_, err := gamestest.Press(h, c, "hit")
	require.NoError(t, err)

	outcome, payout := c.Outcome()
	assert.Equal(t, games.OutcomePush, outcome)
	assert.Equal(t, int64(50), payout)
	assert.Equal(t, int64(300), h.Ledger.Balance())
	assert.Equal(t, 0, h.Ledger.Items(games.ItemShield))
}

func TestSession_RejectedDoubleKeepsControls(t *testing.T) {
	h := gamestest.New(t, 300)
	c := gamestest.Start[State](t, h, WithDeck(deck(2, 10, 3, 7, 2, 2, 2)), 20)

	_, err := gamestest.Press(h, c, "hit")
	require.NoError(t, err)

	_, err = gamestest.Press(h, c, "double")
	var rejected *games.RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, int64(20), c.Stake())
	assert.Equal(t, 4, h.Router.Len())
}
