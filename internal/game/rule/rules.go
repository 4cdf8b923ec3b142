package rule

import (
	"github.com/palemoky/blackjack-sim/internal/apperrors"
	"github.com/palemoky/blackjack-sim/internal/game/card"
)

// 默认桌规
const (
	DefaultDealerStandOn   = 17
	DefaultBlackjackPayout = 1.5
)

// Rules 桌规：庄家停牌点数与黑杰克赔率均可配置，扫描脚本会改变它们
type Rules struct {
	DealerStandOn    int     `yaml:"dealer_stand_on"`     // 庄家点数达到此值即停牌
	DealerHitsSoft17 bool    `yaml:"dealer_hits_soft_17"` // 软 17 时庄家继续要牌
	BlackjackPayout  float64 `yaml:"blackjack_payout"`    // 天然黑杰克赔率（3:2 为 1.5）
	AllowDouble      bool    `yaml:"allow_double"`        // 是否允许加倍
}

// Default 返回常见赌场桌规
func Default() Rules {
	return Rules{
		DealerStandOn:   DefaultDealerStandOn,
		BlackjackPayout: DefaultBlackjackPayout,
		AllowDouble:     true,
	}
}

// Validate 校验桌规
func (r Rules) Validate() error {
	if r.DealerStandOn < 12 || r.DealerStandOn > card.BlackjackValue {
		return apperrors.Invalid(apperrors.ErrInvalidDealerRule, r.DealerStandOn)
	}
	if r.BlackjackPayout <= 0 {
		return apperrors.Invalid(apperrors.ErrInvalidPayout, r.BlackjackPayout)
	}
	return nil
}

// DealerShouldHit 庄家固定策略：点数低于停牌值时要牌，软 17 视桌规而定
func (r Rules) DealerShouldHit(dealer *card.Hand) bool {
	v := dealer.Value()
	if v < r.DealerStandOn {
		return true
	}
	return r.DealerHitsSoft17 && v == 17 && dealer.IsSoft()
}
