package report

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/palemoky/blackjack-sim/internal/sim"
)

const (
	plotWidth  = 10 * vg.Inch
	plotHeight = 6 * vg.Inch
)

// WritePlots renders the charts of one sweep into dir and returns their paths.
func WritePlots(dir string, kind sim.Kind, points []sim.Point) ([]string, error) {
	if len(points) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	series := GroupSeries(points)
	var paths []string
	save := func(p *plot.Plot, name string) error {
		path := filepath.Join(dir, name)
		if err := p.Save(plotWidth, plotHeight, path); err != nil {
			return fmt.Errorf("save %s: %w", name, err)
		}
		paths = append(paths, path)
		return nil
	}

	winRate, err := linePlot(series, kind, "Win Rate (%)", "Win Rate vs "+kind.ParamLabel(),
		func(s sim.Stats) float64 { return s.WinRate() }, false)
	if err != nil {
		return paths, err
	}
	if err := save(winRate, fmt.Sprintf("plot_winrate_vs_%s.png", kind)); err != nil {
		return paths, err
	}

	profit, err := linePlot(series, kind, "Total Profit (units)", "Total Profit vs "+kind.ParamLabel(),
		func(s sim.Stats) float64 { return s.Bankroll }, true)
	if err != nil {
		return paths, err
	}
	if err := save(profit, fmt.Sprintf("plot_profit_vs_%s.png", kind)); err != nil {
		return paths, err
	}

	if kind == sim.SweepThreshold {
		avg, err := averagePlot(points, kind)
		if err != nil {
			return paths, err
		}
		if err := save(avg, "plot_avg_winrate_vs_threshold.png"); err != nil {
			return paths, err
		}

		heat := roiHeatMap(points)
		if err := save(heat, "plot_roi_heatmap.png"); err != nil {
			return paths, err
		}
	}
	return paths, nil
}

// linePlot draws one line per series of metric against the swept parameter.
func linePlot(series []Series, kind sim.Kind, yLabel, title string, metric func(sim.Stats) float64, zeroLine bool) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = kind.ParamLabel()
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	if zeroLine {
		zero := plotter.NewFunction(func(float64) float64 { return 0 })
		zero.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
		p.Add(zero)
	}

	lines := make([]any, 0, 2*len(series))
	for _, s := range series {
		xys := make(plotter.XYs, len(s.Points))
		for i, pt := range s.Points {
			xys[i].X = pt.Param
			xys[i].Y = metric(pt.Stats)
		}
		lines = append(lines, s.Name, xys)
	}
	if err := plotutil.AddLinePoints(p, lines...); err != nil {
		return nil, fmt.Errorf("add lines: %w", err)
	}
	p.Legend.Top = true
	return p, nil
}

// averagePlot averages win rate over every series at each parameter value.
func averagePlot(points []sim.Point, kind sim.Kind) (*plot.Plot, error) {
	sum := make(map[float64]float64)
	count := make(map[float64]int)
	for _, pt := range points {
		sum[pt.Param] += pt.Stats.WinRate()
		count[pt.Param]++
	}

	params := sortedKeys(count)
	xys := make(plotter.XYs, len(params))
	for i, x := range params {
		xys[i].X = x
		xys[i].Y = sum[x] / float64(count[x])
	}

	p := plot.New()
	p.Title.Text = "Average Win Rate vs " + kind.ParamLabel()
	p.X.Label.Text = kind.ParamLabel()
	p.Y.Label.Text = "Average Win Rate (%)"
	p.Add(plotter.NewGrid())
	if err := plotutil.AddLinePoints(p, xys); err != nil {
		return nil, fmt.Errorf("add lines: %w", err)
	}
	return p, nil
}

// roiGrid arranges ROI by parameter (columns) and deck count (rows).
type roiGrid struct {
	xs, ys []float64
	z      map[[2]float64]float64
}

func newROIGrid(points []sim.Point) *roiGrid {
	g := &roiGrid{z: make(map[[2]float64]float64)}
	xs := make(map[float64]int)
	ys := make(map[float64]int)
	for _, pt := range points {
		x, y := pt.Param, float64(pt.Decks)
		xs[x]++
		ys[y]++
		g.z[[2]float64{x, y}] = pt.Stats.ROI()
	}
	g.xs = sortedKeys(xs)
	g.ys = sortedKeys(ys)
	return g
}

func (g *roiGrid) Dims() (c, r int) { return len(g.xs), len(g.ys) }
func (g *roiGrid) X(c int) float64  { return g.xs[c] }
func (g *roiGrid) Y(r int) float64  { return g.ys[r] }

func (g *roiGrid) Z(c, r int) float64 {
	v, ok := g.z[[2]float64{g.xs[c], g.ys[r]}]
	if !ok {
		return math.NaN()
	}
	return v
}

// roiHeatMap is the two-parameter view: stand threshold against deck count.
func roiHeatMap(points []sim.Point) *plot.Plot {
	g := newROIGrid(points)

	p := plot.New()
	p.Title.Text = "ROI (%) by Stand Threshold and Shoe Size"
	p.X.Label.Text = sim.SweepThreshold.ParamLabel()
	p.Y.Label.Text = "Number of Decks"

	h := plotter.NewHeatMap(g, palette.Heat(12, 1))
	if h.Max == h.Min {
		h.Max = h.Min + 1
	}
	p.Add(h)
	return p
}

func sortedKeys[V any](m map[float64]V) []float64 {
	keys := make([]float64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
