// Package strategy 玩家决策与下注策略
package strategy

import (
	"github.com/palemoky/blackjack-sim/internal/game/card"
)

// Action 玩家回合的动作
type Action int

const (
	Stand Action = iota
	Hit
	Double
)

var actionNames = map[Action]string{
	Stand:  "STAND",
	Hit:    "HIT",
	Double: "DOUBLE",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "UNKNOWN"
}

// CountState 策略可见的计数信息，不算牌的策略得到零值
type CountState struct {
	Running        int
	TrueCount      float64
	DecksRemaining float64
}

// Strategy 决定要牌、停牌或加倍，并给出每局下注
type Strategy interface {
	Name() string
	Decide(player *card.Hand, upcard card.Card, count CountState) Action
	BetSize(count CountState) float64
}

// Observer 需要看到每张亮出的牌的策略实现此接口
type Observer interface {
	Observe(c card.Card)
}

// Counter 持有计数状态的策略实现此接口
type Counter interface {
	CountState(decksRemaining float64) CountState
}

// DealerValue 庄家明牌点数，A 按 11 计
func DealerValue(upcard card.Card) int {
	return upcard.Value()
}
