package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/blackjack-sim/internal/game"
	"github.com/palemoky/blackjack-sim/internal/game/card"
	"github.com/palemoky/blackjack-sim/internal/game/rule"
)

func (m *TableModel) View() string {
	if m.quitting {
		return fmt.Sprintf("再见！本次共 %d 局，剩余筹码 %s\n", m.stats.Games, formatAmount(m.bankroll))
	}

	sections := []string{titleStyle("♠ 21 点 ♥")}

	top := m.renderDealer()
	if m.showCount {
		top = lipgloss.JoinHorizontal(lipgloss.Top, top, "  ", m.renderCount())
	}
	sections = append(sections, top, m.renderPlayer(), m.renderStatus(), m.renderPrompt())
	if m.showHelp {
		sections = append(sections, RenderHelp(m.rules))
	}

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *TableModel) renderDealer() string {
	if m.round == nil {
		return boxStyle.Render(DealerIcon + " 庄家\n(等待下注...)")
	}

	cards := m.round.Dealer.Cards
	hideHole := !m.round.HoleRevealed()
	title := fmt.Sprintf("%s 庄家 %s", DealerIcon, handTotal(m.round.Dealer))
	if hideHole {
		title = fmt.Sprintf("%s 庄家 明牌 %d", DealerIcon, m.round.Upcard().Value())
	}
	return renderHand(title, cards, hideHole)
}

func (m *TableModel) renderPlayer() string {
	if m.round == nil {
		return boxStyle.Render(PlayerIcon + " 玩家\n(无手牌)")
	}

	title := fmt.Sprintf("%s 玩家 %s  下注 %s", PlayerIcon, handTotal(m.round.Player), formatAmount(m.round.Bet()))
	if r, ok := m.round.Result(); ok && r.Doubled {
		title += " ×2"
	}
	return renderHand(title, m.round.Player.Cards, false)
}

// renderHand draws a hand as rank and suit rows inside a box.
func renderHand(title string, cards []card.Card, hideHole bool) string {
	var rankStr, suitStr strings.Builder
	for i, c := range cards {
		if hideHole && i == 1 {
			style := grayStyle.Align(lipgloss.Center).Margin(0, 1)
			rankStr.WriteString(style.Render(HiddenCard))
			suitStr.WriteString(style.Render(HiddenCard))
			continue
		}
		style := blackStyle
		if c.Suit.IsRed() {
			style = redStyle
		}
		style = style.Align(lipgloss.Center).Margin(0, 1)
		rankStr.WriteString(style.Render(fmt.Sprintf("%-2s", c.Rank.String())))
		suitStr.WriteString(style.Render(fmt.Sprintf("%-2s", c.Suit.String())))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, title, rankStr.String(), suitStr.String())
	return boxStyle.Render(content)
}

func handTotal(h *card.Hand) string {
	switch {
	case h.IsBlackjack():
		return "Blackjack!"
	case h.IsBust():
		return fmt.Sprintf("%d 爆牌", h.Value())
	case h.IsSoft():
		return fmt.Sprintf("软 %d", h.Value())
	}
	return fmt.Sprintf("%d", h.Value())
}

func (m *TableModel) renderCount() string {
	cs := m.Count()
	var sb strings.Builder
	sb.WriteString("Hi-Lo 计数\n")
	sb.WriteString(fmt.Sprintf("流水数: %+d\n", cs.Running))
	sb.WriteString(fmt.Sprintf("真数:   %+.1f\n", cs.TrueCount))
	sb.WriteString(fmt.Sprintf("剩余:   %.1f 副\n", cs.DecksRemaining))
	sb.WriteString(fmt.Sprintf("已计:   %d 张\n", m.counter.Seen()))
	sb.WriteString(fmt.Sprintf("已发:   %.0f%%", m.shoe.Penetration()))
	return boxStyle.Render(sb.String())
}

func (m *TableModel) renderStatus() string {
	s := m.stats
	status := fmt.Sprintf("💰 筹码 %s   局数 %d   胜/负/平 %d/%d/%d   胜率 %.1f%%",
		formatAmount(m.bankroll), s.Games, s.Wins, s.Losses, s.Pushes, s.WinRate())

	if m.phase == PhaseRoundOver && m.last != nil {
		status = renderOutcome(*m.last) + "\n" + status
	}
	return status
}

func renderOutcome(r game.Result) string {
	detail := fmt.Sprintf("玩家 %d vs 庄家 %d", r.PlayerTotal, r.DealerTotal)
	switch r.Outcome {
	case rule.BlackjackWin:
		return winStyle.Render(fmt.Sprintf("🎉 Blackjack！赢 %s", formatAmount(r.Profit)))
	case rule.Win:
		if r.DealerBust {
			detail = "庄家爆牌"
		}
		return winStyle.Render(fmt.Sprintf("✅ 你赢了 %s (%s)", formatAmount(r.Profit), detail))
	case rule.Push:
		return pushStyle.Render(fmt.Sprintf("🤝 平局 (%s)", detail))
	default:
		if r.PlayerBust {
			detail = "爆牌"
		}
		return loseStyle.Render(fmt.Sprintf("❌ 你输了 %s (%s)", formatAmount(-r.Profit), detail))
	}
}

func (m *TableModel) renderPrompt() string {
	var sb strings.Builder
	switch m.phase {
	case PhaseBetting:
		sb.WriteString(m.input.View())
		if m.bankroll < minBet {
			sb.WriteString("\n" + dimStyle.Render("筹码已用完，按 R 重新买入"))
		}
	case PhasePlaying:
		keys := "[H] 要牌  [S] 停牌"
		if m.round != nil && m.round.CanDouble() {
			keys += "  [D] 加倍"
		}
		keys += "  [T] 提示"
		sb.WriteString(keys)
	case PhaseRoundOver:
		sb.WriteString("[Enter/N] 下一局")
	}
	sb.WriteString("\n" + dimStyle.Render("[C] 计数  [?] 帮助  [Q] 退出"))

	if m.message != "" {
		sb.WriteString("\n" + m.message)
	}
	if m.errMsg != "" {
		sb.WriteString("\n" + errorStyle.Render(m.errMsg))
	}
	return promptStyle.Render(sb.String())
}

// RenderHelp renders the table rules and key bindings.
func RenderHelp(r rule.Rules) string {
	var sb strings.Builder

	sb.WriteString("【游戏目标】\n")
	sb.WriteString("手牌点数比庄家更接近 21 点且不超过 21 点\n\n")

	sb.WriteString("【点数】\n")
	sb.WriteString("• 2-10 按牌面计，J/Q/K 计 10\n")
	sb.WriteString("• A 计 11，超过 21 点时计 1\n")
	sb.WriteString("• 起手两张 21 点为 Blackjack\n\n")

	sb.WriteString("【本桌规则】\n")
	dealer := fmt.Sprintf("• 庄家点数低于 %d 时必须要牌", r.DealerStandOn)
	if r.DealerHitsSoft17 {
		dealer += "，软 17 要牌"
	}
	sb.WriteString(dealer + "\n")
	sb.WriteString(fmt.Sprintf("• Blackjack 赔付 %s 倍\n", formatAmount(r.BlackjackPayout)))
	if r.AllowDouble {
		sb.WriteString("• 起手两张可加倍，只再拿一张牌\n")
	}
	sb.WriteString("\n")

	sb.WriteString("【快捷键】\n")
	sb.WriteString("• H：要牌  S：停牌  D：加倍\n")
	sb.WriteString("• T：基本策略提示\n")
	sb.WriteString("• C：显示/隐藏 Hi-Lo 计数\n")
	sb.WriteString("• Q/ESC：退出")

	return boxStyle.Render(sb.String())
}
