package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "decks: 牌靴至少需要 1 副牌", ErrInvalidDecks.Error())
	assert.Equal(t, "plain", (&ConfigError{Message: "plain"}).Error())
}

func TestInvalid_MatchesBase(t *testing.T) {
	t.Parallel()

	err := Invalid(ErrInvalidThreshold, 3)

	assert.ErrorIs(t, err, ErrInvalidThreshold)
	assert.NotErrorIs(t, err, ErrInvalidDecks)
	assert.Contains(t, err.Error(), "got 3")
}

func TestIsConfigError_Wrapped(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("load: %w", Invalid(ErrInvalidDecks, 0))

	assert.True(t, IsConfigError(wrapped))
	assert.True(t, errors.Is(wrapped, ErrInvalidDecks))
	assert.False(t, IsConfigError(errors.New("io")))
}
