package strategy

import (
	"fmt"
	"strconv"
	"strings"
)

// Options New 构建策略时的配置
type Options struct {
	Ramp        BetRamp
	AllowDouble bool
}

// New 按名称构建策略："basic"、"counting" 或 "threshold:<T>"
func New(name string, opts Options) (Strategy, error) {
	kind, arg, _ := strings.Cut(strings.ToLower(strings.TrimSpace(name)), ":")
	switch kind {
	case "basic":
		return NewBasic(opts.Ramp.BaseUnit, opts.AllowDouble), nil
	case "counting":
		s, err := NewCounting(opts.Ramp, opts.AllowDouble)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "threshold":
		t, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid threshold %q: %w", arg, err)
		}
		s, err := NewThreshold(t, opts.Ramp.BaseUnit)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown strategy %q", name)
}
