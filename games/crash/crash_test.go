package crash

import (
	"math/rand/v2"
	"testing"
	"time"

	"gambler/arcade/games"
	"gambler/arcade/games/gamestest"
	"gambler/arcade/interactions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedFlight crashes on a known tick
type fixedFlight struct {
	Game
	crashTick int
}

func (f fixedFlight) Open(*rand.Rand) (State, games.Effects) {
	return State{Hundredths: 100, CrashTick: f.crashTick}, games.Stay(games.PhasePrompt)
}

var tick = games.Event{Kind: games.EventTick}

func action(id string) games.Event {
	return games.Event{Kind: games.EventAction, Action: id}
}

func TestOpen_CrashTickInRange(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		s, eff := New(0).Open(games.NewRand(seed))

		assert.Nil(t, eff.Result)
		assert.GreaterOrEqual(t, s.CrashTick, 1)
		assert.LessOrEqual(t, s.CrashTick, MaxTicks)
		assert.Equal(t, int64(100), s.Hundredths)
	}
}

func TestTransition_GrowsAndCashesOut(t *testing.T) {
	g := New(0)
	s := State{Hundredths: 100, CrashTick: 4}

	s, eff := g.Transition(s, action("launch"))
	require.True(t, eff.Tick)
	assert.Equal(t, games.PhaseActive, eff.Phase)

	s, _ = g.Transition(s, tick)
	assert.Equal(t, int64(110), s.Hundredths)
	s, _ = g.Transition(s, tick)
	assert.Equal(t, int64(121), s.Hundredths)

	s, eff = g.Transition(s, action("cashout"))
	require.NotNil(t, eff.Result)
	assert.Equal(t, games.OutcomeWin, eff.Result.Outcome)
	assert.Equal(t, int64(121), eff.Result.Payout(100))
	assert.True(t, s.CashedOut)
}

func TestTransition_CrashCapsMultiplier(t *testing.T) {
	g := New(0)
	s := State{Hundredths: 100, CrashTick: 3, Launched: true}

	s, _ = g.Transition(s, tick)
	s, _ = g.Transition(s, tick)
	shown := s.Hundredths

	s, eff := g.Transition(s, tick)

	require.NotNil(t, eff.Result)
	assert.Equal(t, games.OutcomeLoss, eff.Result.Outcome)
	assert.True(t, s.Crashed)
	assert.Equal(t, shown, s.Hundredths)
	assert.Equal(t, Peak(3), s.Hundredths)
}

func TestTransition_Rejections(t *testing.T) {
	g := New(0)
	s := State{Hundredths: 100, CrashTick: 10}

	_, eff := g.Transition(s, action("cashout"))
	assert.NotEmpty(t, eff.Reject)

	s.Launched = true
	_, eff = g.Transition(s, action("cancel"))
	assert.NotEmpty(t, eff.Reject)
	_, eff = g.Transition(s, action("launch"))
	assert.NotEmpty(t, eff.Reject)
}

func TestTransition_CashOutBeforeFirstTickPushes(t *testing.T) {
	g := New(0)
	s, _ := g.Transition(State{Hundredths: 100, CrashTick: 5}, action("launch"))

	_, eff := g.Transition(s, action("cashout"))

	require.NotNil(t, eff.Result)
	assert.Equal(t, games.OutcomePush, eff.Result.Outcome)
}

func TestPeak(t *testing.T) {
	assert.Equal(t, int64(100), Peak(1))
	assert.Equal(t, int64(110), Peak(2))
	assert.Equal(t, int64(121), Peak(3))
}

func TestSession_CashOutWinsTheRace(t *testing.T) {
	h := gamestest.New(t, 500)
	c := gamestest.Start[State](t, h, fixedFlight{crashTick: 5}, 100)

	_, err := gamestest.Press(h, c, "launch")
	require.NoError(t, err)
	h.Clock.Advance(2 * time.Second)

	_, err = gamestest.Press(h, c, "cashout")
	require.NoError(t, err)

	outcome, payout := c.Outcome()
	assert.Equal(t, games.OutcomeWin, outcome)
	assert.Equal(t, int64(121), payout)
	assert.Equal(t, int64(521), h.Ledger.Balance())

	// The tick that would have crashed never runs
	h.Clock.Advance(10 * time.Second)
	assert.False(t, c.State().Crashed)
	assert.Equal(t, []int64{121}, h.Ledger.Credits())
}

func TestSession_CrashWinsTheRace(t *testing.T) {
	h := gamestest.New(t, 500)
	c := gamestest.Start[State](t, h, fixedFlight{crashTick: 3}, 100)
	cashout := c.Tokens()["cashout"]

	_, err := gamestest.Press(h, c, "launch")
	require.NoError(t, err)
	h.Clock.Advance(3 * time.Second)

	outcome, err := h.Router.Dispatch(t.Context(), cashout, gamestest.Owner.UserID, interactions.Event{})
	require.NoError(t, err)
	assert.Equal(t, interactions.OutcomeUnknown, outcome)

	result, _ := c.Outcome()
	assert.Equal(t, games.OutcomeLoss, result)
	assert.Equal(t, int64(400), h.Ledger.Balance())
	assert.Empty(t, h.Ledger.Credits())
}

func TestSession_UsesGameTickInterval(t *testing.T) {
	h := gamestest.New(t, 500)
	c := gamestest.Start[State](t, h, fixedFlight{Game: New(250 * time.Millisecond), crashTick: 50}, 0)

	_, err := gamestest.Press(h, c, "launch")
	require.NoError(t, err)
	h.Clock.Advance(time.Second)

	assert.Equal(t, 4, c.State().Tick)
}

func TestSession_UnlaunchedFlightExpires(t *testing.T) {
	h := gamestest.New(t, 500)
	c := gamestest.Start[State](t, h, New(0), 75)

	h.Clock.Advance(2 * time.Minute)

	assert.Equal(t, games.PhaseExpired, c.Phase())
	assert.Equal(t, int64(500), h.Ledger.Balance())
}
