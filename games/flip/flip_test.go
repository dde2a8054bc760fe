package flip

import (
	"testing"

	"gambler/arcade/games"
	"gambler/arcade/games/gamestest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition_CallDecidesOutcome(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		s, eff := New().Open(games.NewRand(seed))
		require.Nil(t, eff.Result)

		next, eff := New().Transition(s, games.Event{Kind: games.EventAction, Action: "heads"})
		require.NotNil(t, eff.Result)

		assert.Equal(t, Heads, next.Call)
		if next.Landed == Heads {
			assert.Equal(t, games.OutcomeWin, eff.Result.Outcome)
			assert.Equal(t, WinMultiplier, eff.Result.Multiplier)
		} else {
			assert.Equal(t, games.OutcomeLoss, eff.Result.Outcome)
		}
	}
}

func TestTransition_Cancel(t *testing.T) {
	s, _ := New().Open(games.NewRand(1))

	_, eff := New().Transition(s, games.Event{Kind: games.EventAction, Action: "cancel"})

	require.NotNil(t, eff.Result)
	assert.Equal(t, games.OutcomeCancel, eff.Result.Outcome)
}

func TestTransition_RejectsUnknownAction(t *testing.T) {
	s, _ := New().Open(games.NewRand(1))

	_, eff := New().Transition(s, games.Event{Kind: games.EventAction, Action: "edge"})

	assert.NotEmpty(t, eff.Reject)
	assert.Nil(t, eff.Result)
}

func TestTosses_AreFair(t *testing.T) {
	rng := games.NewRand(42)
	heads := 0
	for i := 0; i < 10000; i++ {
		if toss(rng) == Heads {
			heads++
		}
	}
	assert.InDelta(t, 5000, heads, 300)
}

func TestSession_SettlesEitherWay(t *testing.T) {
	h := gamestest.New(t, 500)
	c := gamestest.Start[State](t, h, New(), 100)
	assert.Equal(t, int64(400), h.Ledger.Balance())

	_, err := gamestest.Press(h, c, "tails")
	require.NoError(t, err)

	outcome, payout := c.Outcome()
	switch c.State().Landed {
	case Tails:
		assert.Equal(t, games.OutcomeWin, outcome)
		assert.Equal(t, int64(200), payout)
		assert.Equal(t, int64(600), h.Ledger.Balance())
	default:
		assert.Equal(t, games.OutcomeLoss, outcome)
		assert.Equal(t, int64(400), h.Ledger.Balance())
	}
	assert.Equal(t, 0, h.Router.Len())
}

func TestSession_ShieldSavesLoss(t *testing.T) {
	h := gamestest.New(t, 500)
	h.Ledger.Give(games.ItemShield, 1)
	c := gamestest.Start[State](t, h, New(), 100)

	_, err := gamestest.Press(h, c, "heads")
	require.NoError(t, err)

	outcome, _ := c.Outcome()
	assert.NotEqual(t, games.OutcomeLoss, outcome)
	if outcome == games.OutcomePush {
		assert.Equal(t, 0, h.Ledger.Items(games.ItemShield))
		assert.Equal(t, int64(500), h.Ledger.Balance())
	} else {
		assert.Equal(t, 1, h.Ledger.Items(games.ItemShield))
	}
}
