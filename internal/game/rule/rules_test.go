package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/blackjack-sim/internal/apperrors"
	"github.com/palemoky/blackjack-sim/internal/game/card"
)

func hand(faces ...string) *card.Hand {
	h := card.NewHand()
	for _, f := range faces {
		h.Add(card.MustParse(f))
	}
	return h
}

func TestRules_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Default().Validate())

	r := Default()
	r.DealerStandOn = 11
	assert.ErrorIs(t, r.Validate(), apperrors.ErrInvalidDealerRule)

	r = Default()
	r.DealerStandOn = 22
	assert.ErrorIs(t, r.Validate(), apperrors.ErrInvalidDealerRule)

	r = Default()
	r.BlackjackPayout = 0
	assert.ErrorIs(t, r.Validate(), apperrors.ErrInvalidPayout)
}

func TestRules_DealerShouldHit(t *testing.T) {
	t.Parallel()

	std := Default()
	assert.True(t, std.DealerShouldHit(hand("10", "6")))
	assert.False(t, std.DealerShouldHit(hand("10", "7")))
	assert.False(t, std.DealerShouldHit(hand("A", "6")), "stands on soft 17 by default")

	h17 := Default()
	h17.DealerHitsSoft17 = true
	assert.True(t, h17.DealerShouldHit(hand("A", "6")))
	assert.False(t, h17.DealerShouldHit(hand("10", "7")))

	low := Default()
	low.DealerStandOn = 16
	assert.False(t, low.DealerShouldHit(hand("10", "6")))
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		player   []string
		dealer   []string
		expected Outcome
	}{
		{"Player bust loses even when dealer busts", []string{"10", "6", "9"}, []string{"10", "6", "K"}, Loss},
		{"Dealer bust", []string{"10", "8"}, []string{"10", "6", "K"}, Win},
		{"Player natural", []string{"A", "K"}, []string{"10", "9"}, BlackjackWin},
		{"Natural against three card 21", []string{"A", "K"}, []string{"7", "7", "7"}, BlackjackWin},
		{"Both naturals", []string{"A", "K"}, []string{"A", "Q"}, Push},
		{"Dealer natural", []string{"10", "A", "K"}, []string{"A", "Q"}, Loss},
		{"Higher total", []string{"10", "9"}, []string{"10", "8"}, Win},
		{"Lower total", []string{"10", "7"}, []string{"10", "8"}, Loss},
		{"Equal totals", []string{"10", "8"}, []string{"9", "9"}, Push},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Resolve(hand(tt.player...), hand(tt.dealer...)))
		})
	}
}

func TestRules_Profit(t *testing.T) {
	t.Parallel()

	r := Default()
	assert.InDelta(t, 15.0, r.Profit(BlackjackWin, 10, 10), 1e-9)
	assert.InDelta(t, 10.0, r.Profit(Win, 10, 10), 1e-9)
	assert.InDelta(t, 20.0, r.Profit(Win, 10, 20), 1e-9)
	assert.InDelta(t, -20.0, r.Profit(Loss, 10, 20), 1e-9)
	assert.InDelta(t, 0.0, r.Profit(Push, 10, 20), 1e-9)

	r.BlackjackPayout = 1.2
	assert.InDelta(t, 12.0, r.Profit(BlackjackWin, 10, 10), 1e-9)
}

func TestOutcome_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "BLACKJACK_WIN", BlackjackWin.String())
	assert.Equal(t, "PUSH", Push.String())
	assert.Equal(t, "UNKNOWN", Outcome(99).String())
	assert.True(t, BlackjackWin.IsWin())
	assert.False(t, Push.IsWin())
}
