package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult_Payout(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		stake  int64
		want   int64
	}{
		{name: "win", result: Result{Outcome: OutcomeWin, Multiplier: 2}, stake: 100, want: 200},
		{name: "fractional win floors", result: Result{Outcome: OutcomeWin, Multiplier: 1.5}, stake: 15, want: 22},
		{name: "float error tolerated", result: Result{Outcome: OutcomeWin, Multiplier: 1.17}, stake: 100, want: 117},
		{name: "loss", result: Result{Outcome: OutcomeLoss}, stake: 100, want: 0},
		{name: "push refunds", result: Result{Outcome: OutcomePush}, stake: 100, want: 100},
		{name: "cancel refunds", result: Result{Outcome: OutcomeCancel}, stake: 40, want: 40},
		{name: "expire refunds", result: Result{Outcome: OutcomeExpire}, stake: 50, want: 50},
		{name: "zero stake", result: Result{Outcome: OutcomeWin, Multiplier: 10}, stake: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.Payout(tt.stake))
		})
	}
}

func TestFinish(t *testing.T) {
	assert.Equal(t, OutcomeLoss, Finish(0).Result.Outcome)
	assert.Equal(t, OutcomePush, Finish(1).Result.Outcome)

	win := Finish(3)
	assert.Equal(t, OutcomeWin, win.Result.Outcome)
	assert.Equal(t, 3.0, win.Result.Multiplier)
}

func TestOutcome_Phase(t *testing.T) {
	assert.Equal(t, PhaseResolved, OutcomeWin.Phase())
	assert.Equal(t, PhaseResolved, OutcomeLoss.Phase())
	assert.Equal(t, PhaseResolved, OutcomePush.Phase())
	assert.Equal(t, PhaseCancelled, OutcomeCancel.Phase())
	assert.Equal(t, PhaseExpired, OutcomeExpire.Phase())
	assert.True(t, PhaseExpired.Terminal())
	assert.False(t, PhaseActive.Terminal())
}

func TestStandardModifiers(t *testing.T) {
	all := StandardModifiers()
	assert.Equal(t, []string{ItemRerollToken, ItemShield, ItemLuckyCharm}, []string{all[0].Item, all[1].Item, all[2].Item})

	// Order is fixed regardless of how kinds are listed
	some := StandardModifiers(ModifierCharm, ModifierReroll)
	assert.Len(t, some, 2)
	assert.Equal(t, ItemRerollToken, some[0].Item)
	assert.Equal(t, ItemLuckyCharm, some[1].Item)
	assert.Equal(t, 0.10, some[1].Bonus)
}

func TestNewRand_Deterministic(t *testing.T) {
	a := NewRand(99)
	b := NewRand(99)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}
