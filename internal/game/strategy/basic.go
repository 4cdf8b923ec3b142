package strategy

import (
	"github.com/palemoky/blackjack-sim/internal/game/card"
)

// 策略表单元格。'X' 可加倍时加倍，否则停牌
const (
	cellHit         = 'H'
	cellStand       = 'S'
	cellDouble      = 'D'
	cellDoubleStand = 'X'
)

// 每行按庄家明牌 2,3,4,5,6,7,8,9,10,A 排列
var hardChart = map[int]string{
	8:  "HHHHHHHHHH",
	9:  "HDDDDHHHHH",
	10: "DDDDDDDDHH",
	11: "DDDDDDDDDH",
	12: "HHSSSHHHHH",
	13: "SSSSSHHHHH",
	14: "SSSSSHHHHH",
	15: "SSSSSHHHHH",
	16: "SSSSSHHHHH",
	17: "SSSSSSSSSS",
}

var softChart = map[int]string{
	12: "HHHHHHHHHH",
	13: "HHHDDHHHHH",
	14: "HHHDDHHHHH",
	15: "HHDDDHHHHH",
	16: "HHDDDHHHHH",
	17: "HDDDDHHHHH",
	18: "SXXXXSSHHH",
	19: "SSSSSSSSSS",
}

// Basic 多副牌标准基本策略表（不含分牌）
type Basic struct {
	bet         float64
	allowDouble bool
}

// NewBasic 固定下注的基本策略
func NewBasic(bet float64, allowDouble bool) *Basic {
	return &Basic{bet: bet, allowDouble: allowDouble}
}

func (s *Basic) Name() string {
	return "basic"
}

func (s *Basic) Decide(player *card.Hand, upcard card.Card, _ CountState) Action {
	return s.lookup(player, upcard)
}

func (s *Basic) BetSize(CountState) float64 {
	return s.bet
}

func (s *Basic) lookup(player *card.Hand, upcard card.Card) Action {
	total := player.Value()
	var row string
	if player.IsSoft() {
		row = softChart[clamp(total, 12, 19)]
	} else {
		row = hardChart[clamp(total, 8, 17)]
	}

	cell := row[DealerValue(upcard)-2]
	canDouble := s.allowDouble && player.Len() == 2
	switch cell {
	case cellStand:
		return Stand
	case cellDouble:
		if canDouble {
			return Double
		}
		return Hit
	case cellDoubleStand:
		if canDouble {
			return Double
		}
		return Stand
	default:
		return Hit
	}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
