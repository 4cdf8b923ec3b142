//go:build !production

package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/blackjack-sim/internal/sim"
)

// MockSink sim.Sink 的 mock
type MockSink struct {
	mock.Mock
}

func (m *MockSink) SavePoint(ctx context.Context, runID string, p sim.Point) error {
	args := m.Called(ctx, runID, p)
	return args.Error(0)
}
