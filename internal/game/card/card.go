package card

import (
	"fmt"
	"strconv"
)

// Suit 定义花色
type Suit int

// Rank 定义点数
type Rank int

// Card 定义一张牌
type Card struct {
	Suit Suit
	Rank Rank
}

const (
	Spade   Suit = iota // 黑桃
	Heart               // 红心
	Club                // 梅花
	Diamond             // 方块
)

// suitSymbols 花色符号映射表
var suitSymbols = map[Suit]string{
	Spade:   "♠",
	Heart:   "♥",
	Club:    "♣",
	Diamond: "♦",
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return "?"
}

// IsRed 红心和方块为红色
func (s Suit) IsRed() bool {
	return s == Heart || s == Diamond
}

const (
	RankA Rank = iota + 1
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJ // Jack
	RankQ // Queen
	RankK // King
)

// Suits 和 Ranks 按建牌顺序排列
var (
	Suits = []Suit{Spade, Heart, Club, Diamond}
	Ranks = []Rank{RankA, Rank2, Rank3, Rank4, Rank5, Rank6, Rank7, Rank8, Rank9, Rank10, RankJ, RankQ, RankK}
)

// rankNames 牌面值字符串映射表
var rankNames = map[Rank]string{
	RankA:  "A",
	Rank10: "10",
	RankJ:  "J",
	RankQ:  "Q",
	RankK:  "K",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return strconv.Itoa(int(r))
}

// Value 返回 21 点中的点数：A 先按 11 计，由 Hand 负责降为 1；J/Q/K 为 10
func (r Rank) Value() int {
	switch {
	case r == RankA:
		return 11
	case r >= Rank10:
		return 10
	default:
		return int(r)
	}
}

// IsTen 10/J/Q/K 都是十点牌
func (r Rank) IsTen() bool {
	return r >= Rank10
}

// charToRank 用于快速查找字符对应的 Rank
var charToRank = map[rune]Rank{
	'A': RankA,
	'2': Rank2,
	'3': Rank3,
	'4': Rank4,
	'5': Rank5,
	'6': Rank6,
	'7': Rank7,
	'8': Rank8,
	'9': Rank9,
	'T': Rank10,
	'J': RankJ,
	'Q': RankQ,
	'K': RankK,
}

func RankFromChar(char rune) (Rank, error) {
	if rank, ok := charToRank[char]; ok {
		return rank, nil
	}
	return 0, fmt.Errorf("无法识别的点数: %c", char)
}

// Value 见 Rank.Value
func (c Card) Value() int {
	return c.Rank.Value()
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Parse 解析形如 "A♠"、"10h"、"Td" 的牌面，花色可省略（默认黑桃）
func Parse(s string) (Card, error) {
	runes := []rune(s)
	if len(runes) == 0 {
		return Card{}, fmt.Errorf("空牌面")
	}
	if len(runes) >= 2 && runes[0] == '1' && runes[1] == '0' {
		runes = append([]rune{'T'}, runes[2:]...)
	}

	rank, err := RankFromChar(runes[0])
	if err != nil {
		return Card{}, err
	}
	if len(runes) == 1 {
		return Card{Suit: Spade, Rank: rank}, nil
	}

	suit, err := suitFromChar(runes[1])
	if err != nil {
		return Card{}, err
	}
	return Card{Suit: suit, Rank: rank}, nil
}

// MustParse 解析失败时 panic，仅用于常量牌面
func MustParse(s string) Card {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func suitFromChar(char rune) (Suit, error) {
	switch char {
	case '♠', 's', 'S':
		return Spade, nil
	case '♥', 'h', 'H':
		return Heart, nil
	case '♣', 'c', 'C':
		return Club, nil
	case '♦', 'd', 'D':
		return Diamond, nil
	}
	return 0, fmt.Errorf("无法识别的花色: %c", char)
}

// NewDeck 生成一副 52 张的标准牌（未洗）
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range Suits {
		for _, r := range Ranks {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// DeckSize 一副牌的张数
const DeckSize = 52
