package game

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/blackjack-sim/internal/game/card"
	"github.com/palemoky/blackjack-sim/internal/game/rule"
	"github.com/palemoky/blackjack-sim/internal/game/strategy"
)

// stackedShoe 返回顶部按发牌顺序叠好的单副牌靴
func stackedShoe(t *testing.T, faces ...string) *card.Shoe {
	t.Helper()
	top := make([]card.Card, len(faces))
	for i, f := range faces {
		top[i] = card.MustParse(f)
	}
	shoe, err := card.NewShoe(1, card.WithSeed(11), card.WithStack(top...))
	require.NoError(t, err)
	return shoe
}

func threshold(t *testing.T, v int) strategy.Strategy {
	t.Helper()
	s, err := strategy.NewThreshold(v, 1)
	require.NoError(t, err)
	return s
}

func TestPlayRound_ThresholdStandsOn17(t *testing.T) {
	t.Parallel()

	// 玩家 9+8，庄家明牌 6、暗牌 10，庄家 16 再要一张 5 → 21
	shoe := stackedShoe(t, "9♠", "6♥", "8♣", "10♦", "5♠")

	r := PlayRound(shoe, threshold(t, 17), rule.Default())

	assert.Len(t, r.Player, 2, "player stands on 17")
	assert.Equal(t, 17, r.PlayerTotal)
	assert.Equal(t, 21, r.DealerTotal)
	assert.Equal(t, rule.Loss, r.Outcome)
	assert.InDelta(t, -1.0, r.Profit, 1e-9)
}

func TestPlayRound_DealerBust(t *testing.T) {
	t.Parallel()

	shoe := stackedShoe(t, "9♠", "6♥", "8♣", "10♦", "K♠")

	r := PlayRound(shoe, threshold(t, 17), rule.Default())

	assert.True(t, r.DealerBust)
	assert.Equal(t, rule.Win, r.Outcome)
	assert.InDelta(t, r.Bet, r.Profit, 1e-9)
}

func TestPlayRound_PlayerBustEndsRound(t *testing.T) {
	t.Parallel()

	// 玩家 10+6 要牌得 K 爆牌，庄家不再要牌
	shoe := stackedShoe(t, "10♠", "6♥", "6♣", "10♦", "K♠")

	r := PlayRound(shoe, threshold(t, 17), rule.Default())

	assert.True(t, r.PlayerBust)
	assert.Equal(t, rule.Loss, r.Outcome)
	assert.Len(t, r.Dealer, 2)
	assert.InDelta(t, -1.0, r.Profit, 1e-9)
}

func TestPlayRound_DealerStandsOnHard17(t *testing.T) {
	t.Parallel()

	shoe := stackedShoe(t, "10♠", "10♥", "9♣", "7♦", "2♠")

	r := PlayRound(shoe, threshold(t, 17), rule.Default())

	assert.Len(t, r.Dealer, 2, "dealer never draws on hard 17")
	assert.Equal(t, 17, r.DealerTotal)
	assert.Equal(t, rule.Win, r.Outcome)
}

func TestPlayRound_DealerThresholdIsConfigurable(t *testing.T) {
	t.Parallel()

	rules := rule.Default()
	rules.DealerStandOn = 16
	shoe := stackedShoe(t, "9♠", "6♥", "8♣", "10♦", "5♠")

	r := PlayRound(shoe, threshold(t, 17), rules)

	assert.Len(t, r.Dealer, 2)
	assert.Equal(t, rule.Win, r.Outcome)
}

func TestPlayRound_NaturalPaysPayout(t *testing.T) {
	t.Parallel()

	rules := rule.Default()
	shoe := stackedShoe(t, "A♠", "9♥", "K♣", "7♦")

	r := PlayRound(shoe, threshold(t, 17), rules)

	assert.Equal(t, rule.BlackjackWin, r.Outcome)
	assert.InDelta(t, 1.5, r.Profit, 1e-9)

	rules.BlackjackPayout = 1.2
	shoe = stackedShoe(t, "A♠", "9♥", "K♣", "7♦")
	r = PlayRound(shoe, threshold(t, 17), rules)
	assert.InDelta(t, 1.2, r.Profit, 1e-9)
}

func TestPlayRound_DealerNatural(t *testing.T) {
	t.Parallel()

	shoe := stackedShoe(t, "10♠", "A♥", "9♣", "K♦")

	r := PlayRound(shoe, threshold(t, 17), rule.Default())

	assert.Equal(t, rule.Loss, r.Outcome)
	assert.Len(t, r.Player, 2, "no player decisions against a dealer natural")
}

func TestPlayRound_Double(t *testing.T) {
	t.Parallel()

	// 玩家 6+5 对庄家 9 明牌：加倍拿到 10 → 21；庄家 9+8=17 停牌
	shoe := stackedShoe(t, "6♠", "9♥", "5♣", "8♦", "10♠")

	r := PlayRound(shoe, strategy.NewBasic(2, true), rule.Default())

	assert.True(t, r.Doubled)
	assert.Len(t, r.Player, 3)
	assert.InDelta(t, 2.0, r.Bet, 1e-9)
	assert.InDelta(t, 4.0, r.Stake, 1e-9)
	assert.Equal(t, rule.Win, r.Outcome)
	assert.InDelta(t, 4.0, r.Profit, 1e-9)
}

func TestGame_DoubleNotAllowedActsAsHit(t *testing.T) {
	t.Parallel()

	rules := rule.Default()
	rules.AllowDouble = false
	shoe := stackedShoe(t, "6♠", "9♥", "5♣", "8♦", "2♠")

	g := NewGame(shoe, rules, 1, nil)
	g.Deal()
	require.Equal(t, PlayerTurn, g.State())
	assert.False(t, g.CanDouble())

	require.NoError(t, g.Double())
	assert.Equal(t, PlayerTurn, g.State())
	assert.Equal(t, 13, g.Player.Value())
}

func TestGame_StepAPI(t *testing.T) {
	t.Parallel()

	shoe := stackedShoe(t, "9♠", "6♥", "8♣", "10♦", "K♠")
	g := NewGame(shoe, rule.Default(), 5, nil)

	assert.Equal(t, Dealing, g.State())
	assert.ErrorIs(t, g.Hit(), ErrNotPlayerTurn)

	g.Deal()
	assert.Equal(t, PlayerTurn, g.State())
	assert.Equal(t, card.MustParse("6♥"), g.Upcard())
	assert.False(t, g.HoleRevealed())
	_, done := g.Result()
	assert.False(t, done)

	require.NoError(t, g.Stand())
	assert.Equal(t, Resolved, g.State())
	assert.True(t, g.HoleRevealed())
	assert.ErrorIs(t, g.Stand(), ErrNotPlayerTurn)
	assert.ErrorIs(t, g.Double(), ErrNotPlayerTurn)

	r, done := g.Result()
	require.True(t, done)
	assert.Equal(t, rule.Win, r.Outcome)
	assert.InDelta(t, 5.0, r.Profit, 1e-9)
}

func TestPlayRound_ObserverSeesEveryCard(t *testing.T) {
	t.Parallel()

	// 2,3,4 各 +1；暗牌 5 在庄家回合翻开后 +1；庄家再要 K -1
	shoe := stackedShoe(t, "2♠", "3♥", "4♣", "5♦", "K♠")
	s, err := strategy.NewCounting(strategy.DefaultRamp(), true)
	require.NoError(t, err)

	g := NewGame(shoe, rule.Default(), 1, s)
	g.Deal()
	assert.Equal(t, 3, s.Running(), "hole card is not counted before it is revealed")

	require.NoError(t, g.Stand())
	assert.Equal(t, 3, s.Running())
	assert.Equal(t, 5, s.Seen())
}

func TestPlayRound_CountResetsOnReshuffle(t *testing.T) {
	t.Parallel()

	shoe, err := card.NewShoe(1, card.WithSeed(21))
	require.NoError(t, err)
	s, err := strategy.NewCounting(strategy.DefaultRamp(), true)
	require.NoError(t, err)
	shoe.Subscribe(s)

	for shoe.Remaining() > 10 {
		PlayRound(shoe, s, rule.Default())
	}
	shoe.Reshuffle()

	assert.Equal(t, 0, s.Running())
	assert.InDelta(t, 1.0, s.BetSize(CountState(shoe, s)), 1e-9)
}

func TestGame_HoleCardFromOldShoeNotCounted(t *testing.T) {
	t.Parallel()

	// 整副牌顺序固定：最后 4 张为 9♠ 6♥ 8♣ 10♦，发完牌靴即空
	last := []card.Card{card.MustParse("9♠"), card.MustParse("6♥"), card.MustParse("8♣"), card.MustParse("10♦")}
	order := make([]card.Card, 0, card.DeckSize)
	for _, c := range card.NewDeck() {
		if !slices.Contains(last, c) {
			order = append(order, c)
		}
	}
	order = append(order, last...)

	shoe, err := card.NewShoe(1, card.WithSeed(5), card.WithStack(order...))
	require.NoError(t, err)
	for shoe.Remaining() > len(last) {
		shoe.Draw()
	}

	s, err := strategy.NewCounting(strategy.DefaultRamp(), true)
	require.NoError(t, err)
	shoe.Subscribe(s)

	g := NewGame(shoe, rule.Default(), 1, s)
	g.Deal()
	require.Equal(t, PlayerTurn, g.State())
	require.Equal(t, 0, shoe.Remaining())

	// 玩家要牌时牌靴重洗，计数清零
	require.NoError(t, g.Hit())
	require.Equal(t, 1, shoe.Shuffles())
	if g.State() == PlayerTurn {
		require.NoError(t, g.Stand())
	}
	require.Equal(t, Resolved, g.State())

	dealtSinceReshuffle := shoe.Size() - shoe.Remaining()
	assert.Equal(t, dealtSinceReshuffle, s.Seen())
}

func TestCountState_NonCounting(t *testing.T) {
	t.Parallel()

	shoe := stackedShoe(t)
	assert.Equal(t, strategy.CountState{}, CountState(shoe, strategy.NewBasic(1, true)))
}

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "PLAYER_TURN", PlayerTurn.String())
	assert.Equal(t, "UNKNOWN", State(42).String())
}
