package sim

import (
	"github.com/palemoky/blackjack-sim/internal/game"
	"github.com/palemoky/blackjack-sim/internal/game/rule"
)

// Stats aggregates round results.
type Stats struct {
	Games      int     `json:"total_games"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	Pushes     int     `json:"pushes"`
	Blackjacks int     `json:"blackjacks"`
	Busts      int     `json:"busts"`
	Doubles    int     `json:"doubles"`
	SatOut     int     `json:"sat_out"`
	Bankroll   float64 `json:"bankroll"`
	TotalBet   float64 `json:"total_bet"`
}

// Record adds one round.
func (s *Stats) Record(r game.Result) {
	s.Games++
	s.TotalBet += r.Stake
	s.Bankroll += r.Profit

	switch r.Outcome {
	case rule.BlackjackWin:
		s.Wins++
		s.Blackjacks++
	case rule.Win:
		s.Wins++
	case rule.Loss:
		s.Losses++
		if r.PlayerBust {
			s.Busts++
		}
	case rule.Push:
		s.Pushes++
	}
	if r.Doubled {
		s.Doubles++
	}
	if r.Bet == 0 {
		s.SatOut++
	}
}

// Merge folds other into s.
func (s *Stats) Merge(other Stats) {
	s.Games += other.Games
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Pushes += other.Pushes
	s.Blackjacks += other.Blackjacks
	s.Busts += other.Busts
	s.Doubles += other.Doubles
	s.SatOut += other.SatOut
	s.Bankroll += other.Bankroll
	s.TotalBet += other.TotalBet
}

// WinRate is wins over all rounds, in percent.
func (s Stats) WinRate() float64 {
	return percent(s.Wins, s.Games)
}

// DecisiveWinRate is wins over wins+losses, in percent.
func (s Stats) DecisiveWinRate() float64 {
	return percent(s.Wins, s.Wins+s.Losses)
}

func (s Stats) LossRate() float64 {
	return percent(s.Losses, s.Games)
}

func (s Stats) PushRate() float64 {
	return percent(s.Pushes, s.Games)
}

// MeanProfit is the average profit per round.
func (s Stats) MeanProfit() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.Bankroll / float64(s.Games)
}

// ROI is profit over total amount wagered, in percent.
func (s Stats) ROI() float64 {
	if s.TotalBet == 0 {
		return 0
	}
	return s.Bankroll / s.TotalBet * 100
}

func percent(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d) * 100
}
