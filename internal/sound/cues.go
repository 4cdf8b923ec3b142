package sound

import "time"

// Cue names played by the table.
const (
	CueDeal      = "deal"
	CueWin       = "win"
	CueLose      = "lose"
	CuePush      = "push"
	CueBlackjack = "blackjack"
)

// Cues lists every cue the table may play.
var Cues = []string{CueDeal, CueWin, CueLose, CuePush, CueBlackjack}

type note struct {
	freq float64
	dur  time.Duration
}

// 没有音频文件时使用的合成音
var cueTones = map[string][]note{
	CueDeal:      {{880, 40 * time.Millisecond}},
	CueWin:       {{523.25, 90 * time.Millisecond}, {659.25, 90 * time.Millisecond}, {783.99, 140 * time.Millisecond}},
	CueLose:      {{392, 120 * time.Millisecond}, {311.13, 200 * time.Millisecond}},
	CuePush:      {{440, 120 * time.Millisecond}},
	CueBlackjack: {{523.25, 80 * time.Millisecond}, {659.25, 80 * time.Millisecond}, {783.99, 80 * time.Millisecond}, {1046.5, 200 * time.Millisecond}},
}
