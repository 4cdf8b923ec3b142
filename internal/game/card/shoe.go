package card

import (
	"math/rand/v2"
	"time"

	"github.com/palemoky/blackjack-sim/internal/apperrors"
)

// ShuffleObserver 在牌靴重新洗牌时收到通知（算牌策略据此清零计数）
type ShuffleObserver interface {
	Reset()
}

// ShuffleObserverFunc 函数适配器
type ShuffleObserverFunc func()

func (f ShuffleObserverFunc) Reset() { f() }

// Shoe 由多副牌组成的牌靴，独占其中的牌
type Shoe struct {
	numDecks  int
	cards     []Card
	pos       int
	shuffles  int
	rng       *rand.Rand
	observers []ShuffleObserver
	stacked   []Card
}

// ShoeOption 牌靴配置项
type ShoeOption func(*Shoe)

// WithSeed 使用固定种子，结果可复现；0 表示按当前时间播种
func WithSeed(seed uint64) ShoeOption {
	return func(s *Shoe) {
		if seed == 0 {
			return
		}
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithStack 将指定的牌按顺序放到牌靴顶部，仅对第一靴生效
func WithStack(cards ...Card) ShoeOption {
	return func(s *Shoe) {
		s.stacked = append(s.stacked, cards...)
	}
}

// NewShoe 创建并洗好 numDecks 副牌
func NewShoe(numDecks int, opts ...ShoeOption) (*Shoe, error) {
	if numDecks < 1 {
		return nil, apperrors.Invalid(apperrors.ErrInvalidDecks, numDecks)
	}

	now := uint64(time.Now().UnixNano())
	s := &Shoe{
		numDecks: numDecks,
		rng:      rand.New(rand.NewPCG(now, now>>1)),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.build()
	if len(s.stacked) > 0 {
		s.stack(s.stacked)
		s.stacked = nil
	}
	return s, nil
}

// build 重建 numDecks×52 张牌并洗牌
func (s *Shoe) build() {
	if cap(s.cards) < s.numDecks*DeckSize {
		s.cards = make([]Card, 0, s.numDecks*DeckSize)
	}
	s.cards = s.cards[:0]
	for range s.numDecks {
		s.cards = append(s.cards, NewDeck()...)
	}
	s.rng.Shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
	s.pos = 0
}

// stack 把指定牌依次换到顶部，保持牌靴总张数与每种牌的数量不变
func (s *Shoe) stack(top []Card) {
	for i, want := range top {
		if i >= len(s.cards) {
			return
		}
		for j := i; j < len(s.cards); j++ {
			if s.cards[j] == want {
				s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
				break
			}
		}
	}
}

// Subscribe 注册洗牌观察者
func (s *Shoe) Subscribe(o ShuffleObserver) {
	s.observers = append(s.observers, o)
}

// Reshuffle 重建整靴牌并通知观察者
func (s *Shoe) Reshuffle() {
	s.build()
	s.shuffles++
	for _, o := range s.observers {
		o.Reset()
	}
}

// Draw 发出下一张牌；牌靴空时先洗牌，永不失败
func (s *Shoe) Draw() Card {
	if s.pos >= len(s.cards) {
		s.Reshuffle()
	}
	c := s.cards[s.pos]
	s.pos++
	return c
}

// Size 整靴张数
func (s *Shoe) Size() int {
	return s.numDecks * DeckSize
}

// Remaining 剩余张数
func (s *Shoe) Remaining() int {
	return len(s.cards) - s.pos
}

// Shuffles 自创建以来的洗牌次数（不含初次洗牌）
func (s *Shoe) Shuffles() int {
	return s.shuffles
}

// Penetration 已发出牌的百分比
func (s *Shoe) Penetration() float64 {
	return float64(s.pos) / float64(s.Size()) * 100
}

// NeedsShuffle 渗透率达到阈值（百分比）时需要洗牌
func (s *Shoe) NeedsShuffle(threshold float64) bool {
	return s.Penetration() >= threshold
}

// DecksRemaining 估算剩余副数，最少按半副计算
func (s *Shoe) DecksRemaining() float64 {
	return max(float64(s.Remaining())/DeckSize, 0.5)
}
