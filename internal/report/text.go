package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/palemoky/blackjack-sim/internal/sim"
)

const lineWidth = 100

// Series groups the points of one sweep line in the order they were produced.
type Series struct {
	Name   string
	Points []sim.Point
}

// GroupSeries splits points by Series, keeping first-seen order.
func GroupSeries(points []sim.Point) []Series {
	var out []Series
	idx := make(map[string]int)
	for _, p := range points {
		i, ok := idx[p.Series]
		if !ok {
			i = len(out)
			idx[p.Series] = i
			out = append(out, Series{Name: p.Series})
		}
		out[i].Points = append(out[i].Points, p)
	}
	return out
}

// TextFileName is the report file of a sweep.
func TextFileName(kind sim.Kind) string {
	return "results_" + string(kind) + ".txt"
}

// WriteTextFile writes the report of one sweep into dir and returns its path.
func WriteTextFile(dir string, kind sim.Kind, rounds int, runID string, points []sim.Point) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, TextFileName(kind))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := WriteText(f, kind, rounds, runID, points); err != nil {
		return "", err
	}
	return path, f.Close()
}

// WriteText renders the fixed-width comparison table of one sweep.
func WriteText(w io.Writer, kind sim.Kind, rounds int, runID string, points []sim.Point) error {
	bw := bufio.NewWriter(w)
	rule := strings.Repeat("=", lineWidth)

	fmt.Fprintln(bw, rule)
	fmt.Fprintf(bw, "BLACKJACK STRATEGY COMPARISON: %s SWEEP\n", strings.ToUpper(string(kind)))
	fmt.Fprintf(bw, "Testing %d games per configuration\n", rounds)
	if runID != "" {
		fmt.Fprintf(bw, "Run %s\n", runID)
	}
	fmt.Fprintln(bw, rule)

	series := GroupSeries(points)
	for _, s := range series {
		fmt.Fprintf(bw, "\n%s\n", banner(strings.ToUpper(s.Name)))
		fmt.Fprint(bw, header(kind))
		fmt.Fprintln(bw, strings.Repeat("-", lineWidth))
		for _, p := range s.Points {
			fmt.Fprint(bw, formatRow(p))
		}
	}

	if len(series) > 0 {
		fmt.Fprintf(bw, "\n%s\n", banner("BEST ROI PER SERIES"))
		for _, s := range series {
			best := Best(s.Points)
			fmt.Fprintf(bw, "%-24s %s=%-8s ROI %7.2f%%  win %6.2f%%\n",
				s.Name, shortLabel(kind), best.ParamString(), best.Stats.ROI(), best.Stats.WinRate())
		}
	}
	return bw.Flush()
}

// Best returns the point with the highest ROI; ties keep the earlier point.
func Best(points []sim.Point) sim.Point {
	var best sim.Point
	for i, p := range points {
		if i == 0 || p.Stats.ROI() > best.Stats.ROI() {
			best = p
		}
	}
	return best
}

func banner(title string) string {
	title = " " + title + " "
	if len(title) >= lineWidth {
		return title
	}
	left := (lineWidth - len(title)) / 2
	return strings.Repeat("=", left) + title + strings.Repeat("=", lineWidth-left-len(title))
}

func header(kind sim.Kind) string {
	return center(shortLabel(kind), 8) +
		center("Win %", 10) +
		center("Decisive %", 12) +
		center("Loss %", 9) +
		center("Push %", 9) +
		center("W/L/P", 14) +
		fmt.Sprintf("%16s", "Profit") +
		fmt.Sprintf("%11s", "Mean") +
		fmt.Sprintf("%11s", "ROI") + "\n"
}

// formatRow 胜率为 wins/N，Decisive 为 wins/(wins+losses)，Mean 为每局平均盈亏
func formatRow(p sim.Point) string {
	s := p.Stats
	return center(p.ParamString(), 8) +
		center(fmt.Sprintf("%.2f%%", s.WinRate()), 10) +
		center(fmt.Sprintf("%.2f%%", s.DecisiveWinRate()), 12) +
		center(fmt.Sprintf("%.2f%%", s.LossRate()), 9) +
		center(fmt.Sprintf("%.2f%%", s.PushRate()), 9) +
		center(fmt.Sprintf("%d/%d/%d", s.Wins, s.Losses, s.Pushes), 14) +
		fmt.Sprintf("%16s", fmt.Sprintf("%.2f units", s.Bankroll)) +
		fmt.Sprintf("%11s", fmt.Sprintf("%.4f", s.MeanProfit())) +
		fmt.Sprintf("%11s", fmt.Sprintf("%.2f%%", s.ROI())) + "\n"
}

func shortLabel(kind sim.Kind) string {
	switch kind {
	case sim.SweepThreshold:
		return "T"
	case sim.SweepDecks:
		return "Decks"
	case sim.SweepPenetration:
		return "Pen%"
	}
	return "Param"
}

// center pads s to width, extra space going right.
func center(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}
