package strategy

import (
	"fmt"

	"github.com/palemoky/blackjack-sim/internal/apperrors"
	"github.com/palemoky/blackjack-sim/internal/game/card"
)

// NewThreshold 接受的阈值范围
const (
	MinThreshold = 4
	MaxThreshold = 21
)

// Threshold 点数低于 T 时要牌，否则停牌
type Threshold struct {
	t   int
	bet float64
}

// NewThreshold 点数达到 t 即停牌的阈值策略
func NewThreshold(t int, bet float64) (*Threshold, error) {
	if t < MinThreshold || t > MaxThreshold {
		return nil, apperrors.Invalid(apperrors.ErrInvalidThreshold, t)
	}
	return &Threshold{t: t, bet: bet}, nil
}

func (s *Threshold) Name() string {
	return fmt.Sprintf("threshold_%d", s.t)
}

func (s *Threshold) Decide(player *card.Hand, _ card.Card, _ CountState) Action {
	if player.Value() < s.t {
		return Hit
	}
	return Stand
}

func (s *Threshold) BetSize(CountState) float64 {
	return s.bet
}
