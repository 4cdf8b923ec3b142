package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/blackjack-sim/internal/apperrors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	t.Parallel()

	content := `
rules:
  dealer_stand_on: 16
  dealer_hits_soft_17: true
  blackjack_payout: 1.2
  allow_double: false

shoe:
  decks: 2
  penetration: 80
  seed: 42

betting:
  base_unit: 5
  ramp:
    - min_true_count: 0
      units: 1
    - min_true_count: 2
      units: 4

sweep:
  rounds: 5000
  decks: [1, 2]
  thresholds: [12, 17]
  penetrations: [60, 90]
  strategies: ["threshold:15", "counting"]
  output_dir: "out"
  plots: false

redis:
  addr: "redis:6379"
  password: "secret"
  db: 1
`
	cfg, err := Load(writeConfig(t, content))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 16, cfg.Rules.DealerStandOn)
	assert.True(t, cfg.Rules.DealerHitsSoft17)
	assert.InDelta(t, 1.2, cfg.Rules.BlackjackPayout, 1e-9)
	assert.False(t, cfg.Rules.AllowDouble)
	assert.Equal(t, 2, cfg.Shoe.Decks)
	assert.InDelta(t, 80.0, cfg.Shoe.Penetration, 1e-9)
	assert.Equal(t, uint64(42), cfg.Shoe.Seed)
	assert.InDelta(t, 5.0, cfg.Betting.BaseUnit, 1e-9)
	assert.Len(t, cfg.Betting.Ramp, 2)
	assert.InDelta(t, 20.0, cfg.Betting.BetRamp().Bet(2.5), 1e-9)
	assert.Equal(t, 5000, cfg.Sweep.Rounds)
	assert.Equal(t, []int{1, 2}, cfg.Sweep.Decks)
	assert.Equal(t, []int{12, 17}, cfg.Sweep.Thresholds)
	assert.Equal(t, []string{"threshold:15", "counting"}, cfg.Sweep.Strategies)
	assert.Equal(t, "out", cfg.Sweep.OutputDir)
	assert.False(t, cfg.Sweep.Plots)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "secret", cfg.Redis.Password)
	assert.False(t, cfg.StrategyOptions().AllowDouble)
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	cfg, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, "invalid: yaml: :::"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, `{}`))
	require.NoError(t, err)

	assert.Equal(t, defaultDecks, cfg.Shoe.Decks)
	assert.InDelta(t, defaultPenetration, cfg.Shoe.Penetration, 1e-9)
	assert.Equal(t, 17, cfg.Rules.DealerStandOn)
	assert.InDelta(t, 1.5, cfg.Rules.BlackjackPayout, 1e-9)
	assert.True(t, cfg.Rules.AllowDouble)
	assert.Equal(t, defaultRounds, cfg.Sweep.Rounds)
	assert.Equal(t, defaultOutputDir, cfg.Sweep.OutputDir)
	assert.Len(t, cfg.Sweep.Thresholds, 18)
	assert.Equal(t, 4, cfg.Sweep.Thresholds[0])
	assert.Equal(t, 21, cfg.Sweep.Thresholds[17])
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    *apperrors.ConfigError
	}{
		{"Zero decks", "shoe: {decks: 0}", apperrors.ErrInvalidDecks},
		{"Negative sweep decks", "sweep: {decks: [1, -2]}", apperrors.ErrInvalidDecks},
		{"Threshold too low", "sweep: {thresholds: [3]}", apperrors.ErrInvalidThreshold},
		{"Threshold too high", "sweep: {thresholds: [22]}", apperrors.ErrInvalidThreshold},
		{"Penetration over 100", "shoe: {penetration: 120}", apperrors.ErrInvalidPenetration},
		{"Zero payout", "rules: {blackjack_payout: 0}", apperrors.ErrInvalidPayout},
		{"Dealer rule", "rules: {dealer_stand_on: 25}", apperrors.ErrInvalidDealerRule},
		{"Empty ramp", "betting: {ramp: []}", apperrors.ErrInvalidBetRamp},
		{"Zero rounds", "sweep: {rounds: 0}", apperrors.ErrInvalidRounds},
		{"Bad strategy threshold", `sweep: {strategies: ["threshold:2"]}`, apperrors.ErrInvalidThreshold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := Load(writeConfig(t, tt.content))
			assert.Nil(t, cfg)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, apperrors.IsConfigError(err))
		})
	}
}

func TestLoad_UnknownStrategy(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, `sweep: {strategies: ["martingale"]}`))
	assert.Nil(t, cfg)
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NotNil(t, cfg)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, []string{defaultCompareStrategy, "basic", "counting"}, cfg.Sweep.Strategies)
}

func TestLoadFromEnv(t *testing.T) {
	// Not parallel because it modifies environment variables
	t.Setenv("SHOE_DECKS", "8")
	t.Setenv("SHOE_SEED", "7")
	t.Setenv("SWEEP_ROUNDS", "250")
	t.Setenv("SWEEP_STRATEGIES", "basic,threshold:17")
	t.Setenv("REDIS_URL", "redis://localhost:6379/2")

	cfg, err := Load(writeConfig(t, `{}`))
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Shoe.Decks)
	assert.Equal(t, uint64(7), cfg.Shoe.Seed)
	assert.Equal(t, 250, cfg.Sweep.Rounds)
	assert.Equal(t, []string{"basic", "threshold:17"}, cfg.Sweep.Strategies)
	assert.Equal(t, "redis://localhost:6379/2", cfg.Redis.URL)
	assert.True(t, cfg.Redis.Enabled())
}

func TestLoadOrDefault(t *testing.T) {
	t.Parallel()

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Shoe, cfg.Shoe)

	cfg, err = LoadOrDefault(writeConfig(t, `shoe: {decks: 2}`))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Shoe.Decks)

	_, err = LoadOrDefault(writeConfig(t, `shoe: {decks: 0}`))
	assert.ErrorIs(t, err, apperrors.ErrInvalidDecks)
}

func TestPlayConfig(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, `play: {bankroll: 250, default_bet: 5, show_count: true}`))
	require.NoError(t, err)
	assert.InDelta(t, 250.0, cfg.Play.Bankroll, 1e-9)
	assert.InDelta(t, 5.0, cfg.Play.DefaultBet, 1e-9)
	assert.True(t, cfg.Play.ShowCount)
	assert.Equal(t, defaultSoundDir, cfg.Play.SoundDir)

	_, err = Load(writeConfig(t, `play: {bankroll: -1}`))
	assert.ErrorIs(t, err, apperrors.ErrInvalidBankroll)
}
