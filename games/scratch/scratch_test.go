package scratch

import (
	"math/rand/v2"
	"testing"

	"gambler/arcade/games"
	"gambler/arcade/games/gamestest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// printed is a card with known symbols
type printed struct {
	Game
	card [Panels]Symbol
}

func (p printed) Open(rng *rand.Rand) (State, games.Effects) {
	return State{Symbols: p.card, rng: rng}, games.Stay(games.PhasePrompt)
}

func scratch(panel string) games.Event {
	return games.Event{Kind: games.EventAction, Action: panel}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name    string
		card    [Panels]Symbol
		outcome games.Outcome
		mult    float64
	}{
		{name: "three diamonds", card: [Panels]Symbol{Diamond, Diamond, Diamond}, outcome: games.OutcomeWin, mult: 10},
		{name: "three cherries", card: [Panels]Symbol{Cherry, Cherry, Cherry}, outcome: games.OutcomeWin, mult: 2},
		{name: "outer pair", card: [Panels]Symbol{Bell, Seven, Bell}, outcome: games.OutcomePush},
		{name: "nothing", card: [Panels]Symbol{Bell, Seven, Clover}, outcome: games.OutcomeLoss},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := evaluate(tt.card)
			assert.Equal(t, tt.outcome, result.Outcome)
			assert.Equal(t, tt.mult, result.Multiplier)
		})
	}
}

func TestTransition_PanelsAreSingleUse(t *testing.T) {
	g := printed{card: [Panels]Symbol{Seven, Seven, Seven}}
	s, _ := g.Open(games.NewRand(1))

	s, eff := g.Transition(s, scratch("scratch_2"))
	assert.Equal(t, games.PhaseActive, eff.Phase)
	assert.Nil(t, eff.Result)

	_, eff = g.Transition(s, scratch("scratch_2"))
	assert.NotEmpty(t, eff.Reject)

	_, eff = g.Transition(s, scratch("cancel"))
	assert.NotEmpty(t, eff.Reject)

	s, _ = g.Transition(s, scratch("scratch_1"))
	_, eff = g.Transition(s, scratch("scratch_3"))
	require.NotNil(t, eff.Result)
	assert.Equal(t, games.OutcomeWin, eff.Result.Outcome)
	assert.Equal(t, 7.0, eff.Result.Multiplier)
}

func TestView_HidesUnscratchedPanels(t *testing.T) {
	s := State{Symbols: [Panels]Symbol{Bell, Cherry, Clover}, Revealed: [Panels]bool{false, true, false}}

	view := New().View(s, games.PhaseActive)

	assert.Equal(t, "⬜ | 🍒 | ⬜", view.Description)
	assert.Equal(t, []string{"scratch_1", "scratch_3"}, view.Enabled)
}

func TestSession_FullCard(t *testing.T) {
	h := gamestest.New(t, 500)
	c := gamestest.Start[State](t, h, printed{card: [Panels]Symbol{Bell, Bell, Bell}}, 100)

	for _, panel := range panelActions {
		_, err := gamestest.Press(h, c, panel)
		require.NoError(t, err)
	}

	_, payout := c.Outcome()
	assert.Equal(t, int64(300), payout)
	assert.Equal(t, int64(700), h.Ledger.Balance())
}

func TestSession_PairRefunds(t *testing.T) {
	h := gamestest.New(t, 500)
	c := gamestest.Start[State](t, h, printed{card: [Panels]Symbol{Clover, Diamond, Clover}}, 100)

	for _, panel := range panelActions {
		_, err := gamestest.Press(h, c, panel)
		require.NoError(t, err)
	}

	outcome, _ := c.Outcome()
	assert.Equal(t, games.OutcomePush, outcome)
	assert.Equal(t, int64(500), h.Ledger.Balance())
}

func TestSession_RerollReprintsLosingCard(t *testing.T) {
	h := gamestest.New(t, 500)
	h.Ledger.Give(games.ItemRerollToken, 1)
	c := gamestest.Start[State](t, h, printed{card: [Panels]Symbol{Cherry, Bell, Seven}}, 100)

	for _, panel := range panelActions {
		_, err := gamestest.Press(h, c, panel)
		require.NoError(t, err)
	}

	assert.Equal(t, 0, h.Ledger.Items(games.ItemRerollToken))
	outcome, payout := c.Outcome()
	assert.Equal(t, evaluate(c.State().Symbols).Outcome, outcome)
	assert.Equal(t, int64(400)+payout, h.Ledger.Balance())
}
