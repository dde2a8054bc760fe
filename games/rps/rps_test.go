package rps

import (
	"testing"

	"gambler/arcade/games"
	"gambler/arcade/games/gamestest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition_Outcomes(t *testing.T) {
	for seed := uint64(0); seed < 30; seed++ {
		s, _ := New().Open(games.NewRand(seed))

		next, eff := New().Transition(s, games.Event{Kind: games.EventAction, Action: "rock"})
		require.NotNil(t, eff.Result)

		switch next.House {
		case Rock:
			assert.Equal(t, games.OutcomePush, eff.Result.Outcome)
		case Scissors:
			assert.Equal(t, games.OutcomeWin, eff.Result.Outcome)
			assert.Equal(t, WinMultiplier, eff.Result.Multiplier)
		case Paper:
			assert.Equal(t, games.OutcomeLoss, eff.Result.Outcome)
		default:
			t.Fatalf("unexpected house hand %q", next.House)
		}
	}
}

func TestTransition_RejectsUnknownHand(t *testing.T) {
	s, _ := New().Open(games.NewRand(1))

	_, eff := New().Transition(s, games.Event{Kind: games.EventAction, Action: "lizard"})

	assert.NotEmpty(t, eff.Reject)
}

func TestModifiers_NoReroll(t *testing.T) {
	for _, m := range New().Modifiers() {
		assert.NotEqual(t, games.ModifierReroll, m.Kind)
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Scissors", capitalize("scissors"))
	assert.Equal(t, "", capitalize(""))
}

func TestSession_Conservation(t *testing.T) {
	h := gamestest.New(t, 500)
	c := gamestest.Start[State](t, h, New(), 100)

	_, err := gamestest.Press(h, c, "paper")
	require.NoError(t, err)

	outcome, payout := c.Outcome()
	assert.Equal(t, int64(400)+payout, h.Ledger.Balance())
	switch outcome {
	case games.OutcomeWin:
		assert.Equal(t, int64(200), payout)
	case games.OutcomePush:
		assert.Equal(t, int64(100), payout)
	default:
		assert.Equal(t, int64(0), payout)
	}
}

func TestSession_Cancel(t *testing.T) {
	h := gamestest.New(t, 500)
	c := gamestest.Start[State](t, h, New(), 100)

	_, err := gamestest.Press(h, c, "cancel")
	require.NoError(t, err)

	assert.Equal(t, games.PhaseCancelled, c.Phase())
	assert.Equal(t, int64(500), h.Ledger.Balance())
}
