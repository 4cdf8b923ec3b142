// Package ui provides the interactive terminal blackjack table.
package ui

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/blackjack-sim/internal/game"
	"github.com/palemoky/blackjack-sim/internal/game/card"
	"github.com/palemoky/blackjack-sim/internal/game/rule"
	"github.com/palemoky/blackjack-sim/internal/game/strategy"
	"github.com/palemoky/blackjack-sim/internal/logger"
	"github.com/palemoky/blackjack-sim/internal/sim"
	"github.com/palemoky/blackjack-sim/internal/sound"
)

// Phase is the table's interaction phase.
type Phase int

const (
	PhaseBetting Phase = iota
	PhasePlaying
	PhaseRoundOver
)

// minBet is the smallest accepted wager.
const minBet = 1.0

// SoundPlayer plays a named cue.
type SoundPlayer interface {
	Play(name string)
}

// Options configure a table.
type Options struct {
	Rules       rule.Rules
	Penetration float64
	Bankroll    float64
	DefaultBet  float64
	ShowCount   bool
	Sound       SoundPlayer
}

// TableModel is a single-seat blackjack table driven by keyboard input.
type TableModel struct {
	shoe        *card.Shoe
	rules       rule.Rules
	penetration float64

	counter *strategy.HiLo
	advisor strategy.Strategy

	round *game.Game
	phase Phase

	buyIn    float64
	bankroll float64
	lastBet  float64
	stats    sim.Stats
	last     *game.Result

	input     textinput.Model
	showCount bool
	showHelp  bool
	message   string
	errMsg    string
	quitting  bool

	sound  SoundPlayer
	width  int
	height int
}

// NewTableModel seats a player at a table dealt from shoe.
func NewTableModel(shoe *card.Shoe, opts Options) *TableModel {
	ti := textinput.New()
	ti.Placeholder = "输入下注金额，回车发牌"
	ti.CharLimit = 10
	ti.Width = 24
	ti.Prompt = "下注 > "
	ti.Focus()

	if opts.DefaultBet < minBet {
		opts.DefaultBet = minBet
	}
	ti.SetValue(formatAmount(opts.DefaultBet))

	counter := &strategy.HiLo{}
	shoe.Subscribe(counter)

	return &TableModel{
		shoe:        shoe,
		rules:       opts.Rules,
		penetration: opts.Penetration,
		counter:     counter,
		advisor:     strategy.NewBasic(minBet, opts.Rules.AllowDouble),
		phase:       PhaseBetting,
		buyIn:       opts.Bankroll,
		bankroll:    opts.Bankroll,
		lastBet:     opts.DefaultBet,
		input:       ti,
		showCount:   opts.ShowCount,
		sound:       opts.Sound,
	}
}

func (m *TableModel) Init() tea.Cmd {
	return textinput.Blink
}

// Phase returns the current phase.
func (m *TableModel) Phase() Phase { return m.phase }

// Bankroll returns the player's chips.
func (m *TableModel) Bankroll() float64 { return m.bankroll }

// Stats returns the session results.
func (m *TableModel) Stats() sim.Stats { return m.stats }

// Count returns the Hi-Lo state of the cards seen since the last shuffle.
func (m *TableModel) Count() strategy.CountState {
	return m.counter.CountState(m.shoe.DecksRemaining())
}

// Update handles tea messages.
func (m *TableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.phase == PhaseBetting {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *TableModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m.quit()
	}

	key := strings.ToLower(msg.String())
	switch key {
	case "q":
		return m.quit()
	case "c":
		m.showCount = !m.showCount
		return m, nil
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	}

	switch m.phase {
	case PhaseBetting:
		return m.handleBettingKey(msg, key)
	case PhasePlaying:
		m.handlePlayingKey(key)
	case PhaseRoundOver:
		if msg.Type == tea.KeyEnter || key == "n" || key == " " {
			m.nextRound()
		}
	}
	return m, nil
}

func (m *TableModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	logger.LogInfo("table closed: %d hands, bankroll %.2f (buy-in %.2f)", m.stats.Games, m.bankroll, m.buyIn)
	return m, tea.Quit
}

func (m *TableModel) handleBettingKey(msg tea.KeyMsg, key string) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEnter:
		m.placeBet()
		return m, nil
	case key == "r" && m.bankroll < minBet:
		m.bankroll = m.buyIn
		m.message = fmt.Sprintf("重新买入 %s 筹码", formatAmount(m.buyIn))
		return m, nil
	case msg.Type == tea.KeyRunes && !isAmount(msg.Runes):
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *TableModel) handlePlayingKey(key string) {
	var err error
	switch key {
	case "h":
		err = m.round.Hit()
	case "s":
		err = m.round.Stand()
	case "d":
		switch {
		case !m.round.CanDouble():
			m.errMsg = "当前不能加倍"
			return
		case m.bankroll < m.round.Bet()*2:
			m.errMsg = "筹码不足，无法加倍"
			return
		}
		err = m.round.Double()
	case "t":
		a := m.advisor.Decide(m.round.Player, m.round.Upcard(), m.Count())
		m.message = "基本策略建议: " + actionName(a)
		return
	default:
		return
	}

	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.message = ""
	if m.round.State() == game.Resolved {
		m.settle()
	}
}

// placeBet validates the typed amount and deals a new round.
func (m *TableModel) placeBet() {
	if m.bankroll < minBet {
		m.errMsg = "筹码已用完，按 R 重新买入"
		return
	}

	bet, err := strconv.ParseFloat(strings.TrimSpace(m.input.Value()), 64)
	switch {
	case err != nil:
		m.errMsg = "请输入有效的金额"
		return
	case bet < minBet:
		m.errMsg = fmt.Sprintf("最低下注 %s", formatAmount(minBet))
		return
	case bet > m.bankroll:
		m.errMsg = fmt.Sprintf("下注不能超过剩余筹码 %s", formatAmount(m.bankroll))
		return
	}

	m.errMsg = ""
	m.message = ""
	m.lastBet = bet
	m.deal(bet)
}

func (m *TableModel) deal(bet float64) {
	if m.shoe.NeedsShuffle(m.penetration) {
		m.shoe.Reshuffle()
		m.message = "牌靴已洗牌，计数清零"
	}

	m.round = game.NewGame(m.shoe, m.rules, bet, m.counter)
	m.round.Deal()
	m.input.Blur()
	m.play(sound.CueDeal)

	if m.round.State() == game.Resolved {
		m.settle()
		return
	}
	m.phase = PhasePlaying
}

// settle pays out the finished round.
func (m *TableModel) settle() {
	r, ok := m.round.Result()
	if !ok {
		return
	}
	m.last = &r
	m.bankroll += r.Profit
	m.stats.Record(r)
	m.phase = PhaseRoundOver

	switch r.Outcome {
	case rule.BlackjackWin:
		m.play(sound.CueBlackjack)
	case rule.Win:
		m.play(sound.CueWin)
	case rule.Push:
		m.play(sound.CuePush)
	default:
		m.play(sound.CueLose)
	}
	logger.LogInfo("hand %d: %s bet=%.2f profit=%+.2f bankroll=%.2f",
		m.stats.Games, r.Outcome, r.Stake, r.Profit, m.bankroll)
}

func (m *TableModel) nextRound() {
	m.phase = PhaseBetting
	m.round = nil
	m.errMsg = ""
	m.input.SetValue(formatAmount(min(m.lastBet, max(m.bankroll, minBet))))
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *TableModel) play(cue string) {
	if m.sound != nil {
		m.sound.Play(cue)
	}
}

func actionName(a strategy.Action) string {
	switch a {
	case strategy.Hit:
		return "要牌 (H)"
	case strategy.Double:
		return "加倍 (D)"
	default:
		return "停牌 (S)"
	}
}

func isAmount(runes []rune) bool {
	for _, r := range runes {
		if !unicode.IsDigit(r) && r != '.' {
			return false
		}
	}
	return true
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
