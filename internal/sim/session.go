package sim

import (
	"context"

	"github.com/palemoky/blackjack-sim/internal/config"
	"github.com/palemoky/blackjack-sim/internal/game"
	"github.com/palemoky/blackjack-sim/internal/game/card"
	"github.com/palemoky/blackjack-sim/internal/game/rule"
	"github.com/palemoky/blackjack-sim/internal/game/strategy"
)

// ctxCheckEvery is how many rounds are played between cancellation checks.
const ctxCheckEvery = 4096

// TableConfig describes one table: shoe, penetration and house rules.
type TableConfig struct {
	Decks       int
	Penetration float64
	Seed        uint64
	Rules       rule.Rules
}

// Validate rejects unusable tables.
func (c TableConfig) Validate() error {
	if err := c.Rules.Validate(); err != nil {
		return err
	}
	return config.ValidatePenetration(c.Penetration)
}

// Session plays consecutive rounds from one shoe with one strategy, the way a
// single player sits at a casino table.
type Session struct {
	shoe        *card.Shoe
	strategy    strategy.Strategy
	rules       rule.Rules
	penetration float64
	stats       Stats
}

// NewSession builds the shoe and wires the strategy's count reset to it.
func NewSession(tc TableConfig, s strategy.Strategy) (*Session, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	shoe, err := card.NewShoe(tc.Decks, card.WithSeed(tc.Seed))
	if err != nil {
		return nil, err
	}
	if obs, ok := s.(card.ShuffleObserver); ok {
		shoe.Subscribe(obs)
	}
	return &Session{
		shoe:        shoe,
		strategy:    s,
		rules:       tc.Rules,
		penetration: tc.Penetration,
	}, nil
}

// Shoe exposes the session's shoe.
func (s *Session) Shoe() *card.Shoe {
	return s.shoe
}

// Stats returns the results so far.
func (s *Session) Stats() Stats {
	return s.stats
}

// PlayRound reshuffles when the cut card is reached, then plays one round.
func (s *Session) PlayRound() game.Result {
	if s.shoe.NeedsShuffle(s.penetration) {
		s.shoe.Reshuffle()
	}
	r := game.PlayRound(s.shoe, s.strategy, s.rules)
	s.stats.Record(r)
	return r
}

// Play plays n rounds. It stops early with ctx.Err() when ctx is done.
func (s *Session) Play(ctx context.Context, n int) (Stats, error) {
	for i := range n {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return s.stats, err
			}
		}
		s.PlayRound()
	}
	return s.stats, nil
}
