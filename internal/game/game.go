package game

import (
	"errors"

	"github.com/palemoky/blackjack-sim/internal/game/card"
	"github.com/palemoky/blackjack-sim/internal/game/rule"
	"github.com/palemoky/blackjack-sim/internal/game/strategy"
)

// State 一局的阶段
type State int

const (
	Dealing State = iota
	PlayerTurn
	DealerTurn
	Resolved
)

var stateNames = map[State]string{
	Dealing:    "DEALING",
	PlayerTurn: "PLAYER_TURN",
	DealerTurn: "DEALER_TURN",
	Resolved:   "RESOLVED",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// ErrNotPlayerTurn 非玩家回合时调用了玩家操作
var ErrNotPlayerTurn = errors.New("还没轮到玩家操作")

// Result 一局结束后的结算信息
type Result struct {
	Outcome     rule.Outcome
	Bet         float64 // 基础下注
	Stake       float64 // 实际押注，加倍后为两倍
	Profit      float64 // 净盈亏
	Doubled     bool
	PlayerBust  bool
	DealerBust  bool
	PlayerTotal int
	DealerTotal int
	Player      []card.Card
	Dealer      []card.Card
}

// Game 一局 21 点：持有本局双方手牌，借用共享牌靴
type Game struct {
	Player *card.Hand
	Dealer *card.Hand

	shoe     *card.Shoe
	rules    rule.Rules
	observer strategy.Observer

	state        State
	bet          float64
	stake        float64
	doubled      bool
	holeRevealed bool
	holeShuffle  int // 发暗牌时牌靴的洗牌次数
	result       Result
}

// NewGame 创建一局。observer 可为 nil，非 nil 时每张亮出的牌都会转发给它
func NewGame(shoe *card.Shoe, rules rule.Rules, bet float64, observer strategy.Observer) *Game {
	return &Game{
		Player:   card.NewHand(),
		Dealer:   card.NewHand(),
		shoe:     shoe,
		rules:    rules,
		observer: observer,
		state:    Dealing,
		bet:      bet,
		stake:    bet,
	}
}

// State 当前阶段
func (g *Game) State() State {
	return g.state
}

// Bet 基础下注
func (g *Game) Bet() float64 {
	return g.bet
}

// Upcard 庄家明牌
func (g *Game) Upcard() card.Card {
	return g.Dealer.Cards[0]
}

// HoleRevealed 庄家暗牌是否已翻开
func (g *Game) HoleRevealed() bool {
	return g.holeRevealed
}

// CanDouble 仅在起手两张且桌规允许时可加倍
func (g *Game) CanDouble() bool {
	return g.state == PlayerTurn && g.rules.AllowDouble && g.Player.Len() == 2
}

// Deal 发牌顺序：玩家、庄家明牌、玩家、庄家暗牌。任一方天然黑杰克则直接结算
func (g *Game) Deal() {
	if g.state != Dealing {
		return
	}

	g.Player.Add(g.draw(true))
	g.Dealer.Add(g.draw(true))
	g.Player.Add(g.draw(true))
	g.Dealer.Add(g.draw(false))
	g.holeShuffle = g.shoe.Shuffles()

	if g.Player.IsBlackjack() || g.Dealer.IsBlackjack() {
		g.resolve()
		return
	}
	g.state = PlayerTurn
}

// Hit 玩家要牌，爆牌直接结算
func (g *Game) Hit() error {
	if g.state != PlayerTurn {
		return ErrNotPlayerTurn
	}
	g.Player.Add(g.draw(true))
	if g.Player.IsBust() {
		g.resolve()
	}
	return nil
}

// Stand 玩家停牌，进入庄家回合
func (g *Game) Stand() error {
	if g.state != PlayerTurn {
		return ErrNotPlayerTurn
	}
	g.dealerTurn()
	return nil
}

// Double 加倍：押注翻倍，只再要一张牌然后停牌；不满足加倍条件时按要牌处理
func (g *Game) Double() error {
	if g.state != PlayerTurn {
		return ErrNotPlayerTurn
	}
	if !g.CanDouble() {
		return g.Hit()
	}

	g.doubled = true
	g.stake = g.bet * 2
	g.Player.Add(g.draw(true))
	if g.Player.IsBust() {
		g.resolve()
		return nil
	}
	g.dealerTurn()
	return nil
}

// Apply 执行策略给出的动作
func (g *Game) Apply(a strategy.Action) error {
	switch a {
	case strategy.Hit:
		return g.Hit()
	case strategy.Double:
		return g.Double()
	default:
		return g.Stand()
	}
}

// Result 返回结算结果，未结算时 ok 为 false
func (g *Game) Result() (Result, bool) {
	return g.result, g.state == Resolved
}

// dealerTurn 庄家固定策略要牌，然后结算
func (g *Game) dealerTurn() {
	g.state = DealerTurn
	g.revealHole()
	for g.rules.DealerShouldHit(g.Dealer) {
		g.Dealer.Add(g.draw(true))
	}
	g.resolve()
}

// revealHole 翻开暗牌。发暗牌后牌靴若已重洗，暗牌属于旧牌靴，不计入新计数
func (g *Game) revealHole() {
	if g.holeRevealed {
		return
	}
	g.holeRevealed = true
	if g.shoe.Shuffles() != g.holeShuffle {
		return
	}
	if g.observer != nil && g.Dealer.Len() > 1 {
		g.observer.Observe(g.Dealer.Cards[1])
	}
}

func (g *Game) draw(visible bool) card.Card {
	c := g.shoe.Draw()
	if visible && g.observer != nil {
		g.observer.Observe(c)
	}
	return c
}

// resolve 结算。暗牌在收牌时总会亮出，因此这里也转发给观察者
func (g *Game) resolve() {
	g.revealHole()

	outcome := rule.Resolve(g.Player, g.Dealer)
	g.result = Result{
		Outcome:     outcome,
		Bet:         g.bet,
		Stake:       g.stake,
		Profit:      g.rules.Profit(outcome, g.bet, g.stake),
		Doubled:     g.doubled,
		PlayerBust:  g.Player.IsBust(),
		DealerBust:  g.Dealer.IsBust(),
		PlayerTotal: g.Player.Value(),
		DealerTotal: g.Dealer.Value(),
		Player:      append([]card.Card(nil), g.Player.Cards...),
		Dealer:      append([]card.Card(nil), g.Dealer.Cards...),
	}
	g.state = Resolved
}

// PlayRound 用给定策略打完一局：下注、发牌、玩家决策循环、庄家回合、结算
func PlayRound(shoe *card.Shoe, s strategy.Strategy, rules rule.Rules) Result {
	observer, _ := s.(strategy.Observer)

	g := NewGame(shoe, rules, s.BetSize(CountState(shoe, s)), observer)
	g.Deal()
	for g.State() == PlayerTurn {
		action := s.Decide(g.Player, g.Upcard(), CountState(shoe, s))
		if err := g.Apply(action); err != nil {
			break
		}
	}

	r, _ := g.Result()
	return r
}

// CountState 策略可见的计数状态；不算牌的策略得到零值
func CountState(shoe *card.Shoe, s strategy.Strategy) strategy.CountState {
	counter, ok := s.(strategy.Counter)
	if !ok {
		return strategy.CountState{}
	}
	return counter.CountState(shoe.DecksRemaining())
}
