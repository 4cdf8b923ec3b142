package rule

import "github.com/palemoky/blackjack-sim/internal/game/card"

// Outcome 一局的结果（从玩家角度）
type Outcome int

const (
	Loss Outcome = iota
	Push
	Win
	BlackjackWin
)

// outcomeNames 结果名称映射表
var outcomeNames = map[Outcome]string{
	Loss:         "LOSS",
	Push:         "PUSH",
	Win:          "WIN",
	BlackjackWin: "BLACKJACK_WIN",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsWin 普通胜利或黑杰克胜利
func (o Outcome) IsWin() bool {
	return o == Win || o == BlackjackWin
}

// Resolve 比较双方手牌决定结果，判定顺序：
// 玩家爆牌 > 庄家爆牌 > 玩家黑杰克 > 庄家黑杰克 > 比点数
func Resolve(player, dealer *card.Hand) Outcome {
	switch {
	case player.IsBust():
		return Loss
	case dealer.IsBust():
		return Win
	case player.IsBlackjack() && !dealer.IsBlackjack():
		return BlackjackWin
	case dealer.IsBlackjack() && !player.IsBlackjack():
		return Loss
	}

	pv, dv := player.Value(), dealer.Value()
	switch {
	case pv > dv:
		return Win
	case pv < dv:
		return Loss
	default:
		return Push
	}
}

// Profit 计算净盈亏。stake 为实际押注（加倍后为两倍），bet 为基础下注
func (r Rules) Profit(o Outcome, bet, stake float64) float64 {
	switch o {
	case BlackjackWin:
		return bet * r.BlackjackPayout
	case Win:
		return stake
	case Loss:
		return -stake
	default:
		return 0
	}
}
