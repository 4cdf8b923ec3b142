//go:build !production

package testutil

import (
	"github.com/stretchr/testify/mock"

	"github.com/palemoky/blackjack-sim/internal/game/card"
	"github.com/palemoky/blackjack-sim/internal/game/strategy"
)

// MockStrategy strategy.Strategy 的 mock
type MockStrategy struct {
	mock.Mock
}

func (m *MockStrategy) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockStrategy) Decide(player *card.Hand, upcard card.Card, count strategy.CountState) strategy.Action {
	args := m.Called(player, upcard, count)
	return args.Get(0).(strategy.Action)
}

func (m *MockStrategy) BetSize(count strategy.CountState) float64 {
	args := m.Called(count)
	return args.Get(0).(float64)
}
