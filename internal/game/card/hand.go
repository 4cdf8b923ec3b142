package card

import "strings"

// BlackjackValue 21 点
const BlackjackValue = 21

// Hand 一方（庄家或玩家）的手牌，按发牌顺序保存
type Hand struct {
	Cards []Card
}

// NewHand 用给定的牌创建手牌
func NewHand(cards ...Card) *Hand {
	h := &Hand{Cards: make([]Card, 0, 4)}
	h.Cards = append(h.Cards, cards...)
	return h
}

// Add 追加一张牌
func (h *Hand) Add(c Card) {
	h.Cards = append(h.Cards, c)
}

// Len 手牌张数
func (h *Hand) Len() int {
	return len(h.Cards)
}

// HardValue 所有 A 按 1 计算的点数，即最小可能点数
func (h *Hand) HardValue() int {
	total := 0
	for _, c := range h.Cards {
		if c.Rank == RankA {
			total++
			continue
		}
		total += c.Value()
	}
	return total
}

// Value 返回最佳点数：最多一张 A 计 11 且不超过 21，否则为最小点数
func (h *Hand) Value() int {
	total := h.HardValue()
	if h.hasAce() && total+10 <= BlackjackValue {
		return total + 10
	}
	return total
}

// IsSoft 有一张 A 按 11 计且未爆
func (h *Hand) IsSoft() bool {
	return h.hasAce() && h.HardValue()+10 <= BlackjackValue
}

// IsBust 最小点数超过 21 即爆牌
func (h *Hand) IsBust() bool {
	return h.HardValue() > BlackjackValue
}

// IsBlackjack 恰好两张且点数为 21
func (h *Hand) IsBlackjack() bool {
	return len(h.Cards) == 2 && h.Value() == BlackjackValue
}

func (h *Hand) hasAce() bool {
	for _, c := range h.Cards {
		if c.Rank == RankA {
			return true
		}
	}
	return false
}

func (h *Hand) String() string {
	parts := make([]string, len(h.Cards))
	for i, c := range h.Cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
