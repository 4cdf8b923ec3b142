package sim

import (
	"context"
	"fmt"
	"strconv"

	"github.com/palemoky/blackjack-sim/internal/apperrors"
	"github.com/palemoky/blackjack-sim/internal/config"
	"github.com/palemoky/blackjack-sim/internal/game/strategy"
	"github.com/palemoky/blackjack-sim/internal/logger"
)

// Kind names a parameter sweep.
type Kind string

const (
	// SweepThreshold varies the stand threshold for every deck count.
	SweepThreshold Kind = "threshold"
	// SweepDecks compares strategies across deck counts.
	SweepDecks Kind = "decks"
	// SweepPenetration compares strategies across reshuffle points, which is
	// where counting gains or loses its edge.
	SweepPenetration Kind = "penetration"
)

// Kinds lists every sweep in run order.
var Kinds = []Kind{SweepThreshold, SweepDecks, SweepPenetration}

// ParseKind validates a sweep name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", apperrors.Invalid(apperrors.ErrInvalidSweep, s)
}

// ParamLabel is the x-axis name of a sweep.
func (k Kind) ParamLabel() string {
	switch k {
	case SweepThreshold:
		return "Stand threshold (T)"
	case SweepDecks:
		return "Number of decks in shoe"
	case SweepPenetration:
		return "Reshuffle penetration (%)"
	}
	return string(k)
}

// Point is one configuration of a sweep and its aggregated result.
type Point struct {
	Sweep    Kind    `json:"sweep"`
	Series   string  `json:"series"`
	Param    float64 `json:"param"`
	Decks    int     `json:"decks"`
	Strategy string  `json:"strategy"`
	Stats    Stats   `json:"stats"`
}

// ParamString formats Param without trailing zeros.
func (p Point) ParamString() string {
	return strconv.FormatFloat(p.Param, 'f', -1, 64)
}

// Sink receives every finished point, e.g. a result store.
type Sink interface {
	SavePoint(ctx context.Context, runID string, p Point) error
}

// Runner executes sweeps described by the configuration.
type Runner struct {
	cfg   *config.Config
	runID string
	sinks []Sink
	seq   uint64
}

// NewRunner creates a runner tagged with runID.
func NewRunner(cfg *config.Config, runID string, sinks ...Sink) *Runner {
	return &Runner{cfg: cfg, runID: runID, sinks: sinks}
}

// Run executes one sweep and returns its points in order.
func (r *Runner) Run(ctx context.Context, kind Kind) ([]Point, error) {
	logger.LogInfo("run %s: starting %s sweep (%d rounds per point)", r.runID, kind, r.cfg.Sweep.Rounds)

	var points []Point
	emit := func(series, name string, decks int, pen, param float64) error {
		p, err := r.point(ctx, kind, series, name, decks, pen, param)
		if err != nil {
			return err
		}
		points = append(points, p)
		return nil
	}

	sw := r.cfg.Sweep
	switch kind {
	case SweepThreshold:
		for _, decks := range sw.Decks {
			series := fmt.Sprintf("%d decks", decks)
			for _, t := range sw.Thresholds {
				name := "threshold:" + strconv.Itoa(t)
				if err := emit(series, name, decks, r.cfg.Shoe.Penetration, float64(t)); err != nil {
					return points, err
				}
			}
		}
	case SweepDecks:
		for _, name := range sw.Strategies {
			for _, decks := range sw.Decks {
				if err := emit("", name, decks, r.cfg.Shoe.Penetration, float64(decks)); err != nil {
					return points, err
				}
			}
		}
	case SweepPenetration:
		for _, name := range sw.Strategies {
			for _, pen := range sw.Penetrations {
				if err := emit("", name, r.cfg.Shoe.Decks, pen, pen); err != nil {
					return points, err
				}
			}
		}
	default:
		return nil, apperrors.Invalid(apperrors.ErrInvalidSweep, kind)
	}

	logger.LogInfo("run %s: %s sweep finished, %d points", r.runID, kind, len(points))
	return points, nil
}

// point plays one configuration and hands the result to the sinks.
func (r *Runner) point(ctx context.Context, kind Kind, series, name string, decks int, pen, param float64) (Point, error) {
	s, err := strategy.New(name, r.cfg.StrategyOptions())
	if err != nil {
		return Point{}, err
	}

	session, err := NewSession(TableConfig{
		Decks:       decks,
		Penetration: pen,
		Seed:        r.nextSeed(),
		Rules:       r.cfg.Rules,
	}, s)
	if err != nil {
		return Point{}, err
	}

	stats, err := session.Play(ctx, r.cfg.Sweep.Rounds)
	if err != nil {
		return Point{}, err
	}

	if series == "" {
		series = s.Name()
	}
	p := Point{
		Sweep:    kind,
		Series:   series,
		Param:    param,
		Decks:    decks,
		Strategy: s.Name(),
		Stats:    stats,
	}
	logger.LogInfo("run %s: %s %s=%s win=%.2f%% profit=%.2f roi=%.2f%%",
		r.runID, p.Series, kind, p.ParamString(), stats.WinRate(), stats.Bankroll, stats.ROI())

	for _, sink := range r.sinks {
		if err := sink.SavePoint(ctx, r.runID, p); err != nil {
			// Store failures do not abort the sweep.
			logger.LogError("run %s: save point %s/%s: %v", r.runID, p.Series, p.ParamString(), err)
		}
	}
	return p, nil
}

// nextSeed derives a distinct seed per point so a seeded run is reproducible.
func (r *Runner) nextSeed() uint64 {
	base := r.cfg.Shoe.Seed
	if base == 0 {
		return 0
	}
	r.seq++
	return base + r.seq
}
