package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/blackjack-sim/internal/game"
	"github.com/palemoky/blackjack-sim/internal/game/rule"
)

func TestStats_Record(t *testing.T) {
	t.Parallel()

	var s Stats
	s.Record(game.Result{Outcome: rule.Win, Bet: 1, Stake: 1, Profit: 1})
	s.Record(game.Result{Outcome: rule.BlackjackWin, Bet: 2, Stake: 2, Profit: 3})
	s.Record(game.Result{Outcome: rule.Loss, Bet: 1, Stake: 2, Profit: -2, Doubled: true})
	s.Record(game.Result{Outcome: rule.Loss, Bet: 1, Stake: 1, Profit: -1, PlayerBust: true})
	s.Record(game.Result{Outcome: rule.Push, Bet: 0, Stake: 0})

	assert.Equal(t, 5, s.Games)
	assert.Equal(t, 2, s.Wins)
	assert.Equal(t, 2, s.Losses)
	assert.Equal(t, 1, s.Pushes)
	assert.Equal(t, 1, s.Blackjacks)
	assert.Equal(t, 1, s.Busts)
	assert.Equal(t, 1, s.Doubles)
	assert.Equal(t, 1, s.SatOut)
	assert.InDelta(t, 1.0, s.Bankroll, 1e-9)
	assert.InDelta(t, 6.0, s.TotalBet, 1e-9)

	assert.InDelta(t, 40.0, s.WinRate(), 1e-9)
	assert.InDelta(t, 50.0, s.DecisiveWinRate(), 1e-9)
	assert.InDelta(t, 40.0, s.LossRate(), 1e-9)
	assert.InDelta(t, 20.0, s.PushRate(), 1e-9)
	assert.InDelta(t, 0.2, s.MeanProfit(), 1e-9)
	assert.InDelta(t, 100.0/6.0, s.ROI(), 1e-9)
}

func TestStats_Empty(t *testing.T) {
	t.Parallel()

	var s Stats
	assert.Zero(t, s.WinRate())
	assert.Zero(t, s.DecisiveWinRate())
	assert.Zero(t, s.MeanProfit())
	assert.Zero(t, s.ROI())
}

func TestStats_Merge(t *testing.T) {
	t.Parallel()

	a := Stats{Games: 2, Wins: 1, Losses: 1, Bankroll: 0, TotalBet: 2}
	b := Stats{Games: 3, Wins: 2, Pushes: 1, Bankroll: 2.5, TotalBet: 3, Blackjacks: 1}
	a.Merge(b)

	assert.Equal(t, 5, a.Games)
	assert.Equal(t, 3, a.Wins)
	assert.Equal(t, 1, a.Pushes)
	assert.Equal(t, 1, a.Blackjacks)
	assert.InDelta(t, 2.5, a.Bankroll, 1e-9)
	assert.InDelta(t, 5.0, a.TotalBet, 1e-9)
}
