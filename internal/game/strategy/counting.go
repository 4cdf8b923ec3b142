package strategy

import (
	"github.com/palemoky/blackjack-sim/internal/game/card"
)

// HiLo Hi-Lo 流水计数：2-6 记 +1，7-9 记 0，10 点牌和 A 记 -1
type HiLo struct {
	running int
	seen    int
}

// HiLoValue 单张牌的 Hi-Lo 计数值
func HiLoValue(c card.Card) int {
	switch {
	case c.Rank >= card.Rank2 && c.Rank <= card.Rank6:
		return 1
	case c.Rank == card.RankA || c.Rank.IsTen():
		return -1
	default:
		return 0
	}
}

func (h *HiLo) Observe(c card.Card) {
	h.running += HiLoValue(c)
	h.seen++
}

// Reset 每次洗牌时清零
func (h *HiLo) Reset() {
	h.running = 0
	h.seen = 0
}

func (h *HiLo) Running() int {
	return h.running
}

// Seen 本靴已计入的张数
func (h *HiLo) Seen() int {
	return h.seen
}

// CountState 流水数除以剩余副数得到真数
func (h *HiLo) CountState(decksRemaining float64) CountState {
	if decksRemaining <= 0 {
		decksRemaining = 0.5
	}
	return CountState{
		Running:        h.running,
		TrueCount:      float64(h.running) / decksRemaining,
		DecksRemaining: decksRemaining,
	}
}

// indexPlay 真数越过指数时覆盖硬点数的决策
type indexPlay struct {
	total, upcard int
	index         float64
	// standAbove 为真：TC >= index 停牌，否则要牌
	// 否则：TC <= index 要牌，否则停牌
	standAbove bool
}

var indexPlays = []indexPlay{
	{total: 16, upcard: 9, index: 5, standAbove: true},
	{total: 16, upcard: 10, index: 0, standAbove: true},
	{total: 16, upcard: 11, index: 0, standAbove: true},
	{total: 15, upcard: 10, index: 4, standAbove: true},
	{total: 13, upcard: 2, index: -1},
	{total: 13, upcard: 3, index: -2},
	{total: 12, upcard: 2, index: 3, standAbove: true},
	{total: 12, upcard: 3, index: 2, standAbove: true},
	{total: 12, upcard: 4, index: 0},
	{total: 12, upcard: 5, index: -5},
	{total: 12, upcard: 6, index: -1},
}

func (p indexPlay) action(tc float64) Action {
	if p.standAbove {
		if tc >= p.index {
			return Stand
		}
		return Hit
	}
	if tc <= p.index {
		return Hit
	}
	return Stand
}

// Counting 在基本策略上按真数做指数调整，并按下注表加注
type Counting struct {
	HiLo
	basic *Basic
	ramp  BetRamp
}

// NewCounting Hi-Lo 算牌策略
func NewCounting(ramp BetRamp, allowDouble bool) (*Counting, error) {
	if err := ramp.Validate(); err != nil {
		return nil, err
	}
	return &Counting{
		basic: NewBasic(ramp.BaseUnit, allowDouble),
		ramp:  ramp,
	}, nil
}

func (s *Counting) Name() string {
	return "counting"
}

func (s *Counting) Decide(player *card.Hand, upcard card.Card, count CountState) Action {
	if !player.IsSoft() {
		total, up := player.Value(), DealerValue(upcard)
		for _, p := range indexPlays {
			if p.total == total && p.upcard == up {
				return p.action(count.TrueCount)
			}
		}
	}
	return s.basic.Decide(player, upcard, count)
}

func (s *Counting) BetSize(count CountState) float64 {
	return s.ramp.Bet(count.TrueCount)
}
