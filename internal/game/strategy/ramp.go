package strategy

import (
	"slices"

	"github.com/palemoky/blackjack-sim/internal/apperrors"
)

// BetStep 真数达到 MinTrueCount 后下注 Units 个基础单位
type BetStep struct {
	MinTrueCount float64 `yaml:"min_true_count"`
	Units        float64 `yaml:"units"`
}

// BetRamp 按真数加注的下注表。低于第一档时下注为 0，这一局空打
type BetRamp struct {
	BaseUnit float64   `yaml:"base_unit"`
	Steps    []BetStep `yaml:"steps"`
}

// DefaultRamp 1 到 50 倍的默认下注表
func DefaultRamp() BetRamp {
	return BetRamp{
		BaseUnit: 1,
		Steps: []BetStep{
			{MinTrueCount: 0, Units: 1},
			{MinTrueCount: 1, Units: 2},
			{MinTrueCount: 2, Units: 5},
			{MinTrueCount: 3, Units: 10},
			{MinTrueCount: 4, Units: 25},
			{MinTrueCount: 5, Units: 50},
		},
	}
}

// Validate 至少一档，真数严格递增，基础单位为正
func (r BetRamp) Validate() error {
	if len(r.Steps) == 0 || r.BaseUnit <= 0 {
		return apperrors.Invalid(apperrors.ErrInvalidBetRamp, len(r.Steps))
	}
	sorted := slices.IsSortedFunc(r.Steps, func(a, b BetStep) int {
		switch {
		case a.MinTrueCount < b.MinTrueCount:
			return -1
		case a.MinTrueCount > b.MinTrueCount:
			return 1
		}
		return 0
	})
	if !sorted {
		return apperrors.Invalid(apperrors.ErrInvalidBetRamp, r.Steps)
	}
	for i := 1; i < len(r.Steps); i++ {
		if r.Steps[i].MinTrueCount == r.Steps[i-1].MinTrueCount {
			return apperrors.Invalid(apperrors.ErrInvalidBetRamp, r.Steps[i].MinTrueCount)
		}
	}
	return nil
}

// Bet 给定真数对应的下注额
func (r BetRamp) Bet(trueCount float64) float64 {
	units := 0.0
	for _, step := range r.Steps {
		if trueCount < step.MinTrueCount {
			break
		}
		units = step.Units
	}
	return units * r.BaseUnit
}
