package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/palemoky/blackjack-sim/internal/apperrors"
	"github.com/palemoky/blackjack-sim/internal/game/rule"
	"github.com/palemoky/blackjack-sim/internal/game/strategy"
)

// 默认值
const (
	defaultDecks           = 6
	defaultPenetration     = 75.0
	defaultRounds          = 100_000
	defaultOutputDir       = "results"
	defaultCompareStrategy = "threshold:16"
	defaultLogDir          = ".blackjack-sim"
	defaultBankroll        = 1000.0
	defaultTableBet        = 10.0
	defaultSoundDir        = "assets/sounds"
)

// Config 模拟器配置
type Config struct {
	Rules   rule.Rules    `yaml:"rules"`
	Shoe    ShoeConfig    `yaml:"shoe"`
	Betting BettingConfig `yaml:"betting"`
	Sweep   SweepConfig   `yaml:"sweep"`
	Play    PlayConfig    `yaml:"play"`
	Redis   RedisConfig   `yaml:"redis"`
	Log     LogConfig     `yaml:"log"`
}

// ShoeConfig 牌靴配置
type ShoeConfig struct {
	Decks       int     `yaml:"decks"`       // 副数
	Penetration float64 `yaml:"penetration"` // 发出该百分比的牌后洗牌
	Seed        uint64  `yaml:"seed"`        // 随机种子，0 表示按时间播种
}

// BettingConfig 下注配置
type BettingConfig struct {
	BaseUnit float64            `yaml:"base_unit"` // 基础注码
	Ramp     []strategy.BetStep `yaml:"ramp"`      // 算牌策略的真数下注梯度
}

// SweepConfig 参数扫描配置
type SweepConfig struct {
	Rounds       int       `yaml:"rounds"`       // 每个参数点的局数
	Decks        []int     `yaml:"decks"`        // 扫描的副数
	Thresholds   []int     `yaml:"thresholds"`   // 扫描的停牌阈值
	Penetrations []float64 `yaml:"penetrations"` // 扫描的洗牌渗透率
	Strategies   []string  `yaml:"strategies"`   // 参与对比的策略
	OutputDir    string    `yaml:"output_dir"`   // 结果输出目录
	Plots        bool      `yaml:"plots"`        // 是否生成图表
}

// PlayConfig 交互牌桌配置
type PlayConfig struct {
	Bankroll   float64 `yaml:"bankroll"`    // 初始筹码
	DefaultBet float64 `yaml:"default_bet"` // 默认下注
	ShowCount  bool    `yaml:"show_count"`  // 启动时显示 Hi-Lo 计数
	Sound      bool    `yaml:"sound"`       // 是否播放音效
	SoundDir   string  `yaml:"sound_dir"`   // 音效文件目录
}

// RedisConfig Redis 配置，Addr 与 URL 均为空时不写入结果库
type RedisConfig struct {
	URL      string `yaml:"url"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Enabled 是否配置了 Redis
func (c *RedisConfig) Enabled() bool {
	return c.URL != "" || c.Addr != ""
}

// LogConfig 日志配置
type LogConfig struct {
	Dir  string `yaml:"dir"`  // 相对路径基于用户主目录
	Echo bool   `yaml:"echo"` // 同时输出到 stderr
}

// BetRamp 组装下注梯度
func (c *BettingConfig) BetRamp() strategy.BetRamp {
	return strategy.BetRamp{BaseUnit: c.BaseUnit, Steps: c.Ramp}
}

// StrategyOptions 构造策略所需的参数
func (c *Config) StrategyOptions() strategy.Options {
	return strategy.Options{
		Ramp:        c.Betting.BetRamp(),
		AllowDouble: c.Rules.AllowDouble,
	}
}

// Load 加载配置文件：在默认配置之上覆盖文件内容，再应用环境变量并校验
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault 配置文件不存在时使用默认配置，环境变量同样生效
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg = Default()
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	ramp := strategy.DefaultRamp()
	return &Config{
		Rules: rule.Default(),
		Shoe: ShoeConfig{
			Decks:       defaultDecks,
			Penetration: defaultPenetration,
		},
		Betting: BettingConfig{
			BaseUnit: ramp.BaseUnit,
			Ramp:     ramp.Steps,
		},
		Sweep: SweepConfig{
			Rounds:       defaultRounds,
			Decks:        []int{1, 2, 3, 4, 5, 6, 7, 8},
			Thresholds:   defaultThresholds(),
			Penetrations: []float64{50, 60, 70, 75, 80, 90},
			Strategies:   []string{defaultCompareStrategy, "basic", "counting"},
			OutputDir:    defaultOutputDir,
			Plots:        true,
		},
		Play: PlayConfig{
			Bankroll:   defaultBankroll,
			DefaultBet: defaultTableBet,
			Sound:      true,
			SoundDir:   defaultSoundDir,
		},
		Log: LogConfig{
			Dir: defaultLogDir,
		},
	}
}

func defaultThresholds() []int {
	ts := make([]int, 0, strategy.MaxThreshold-strategy.MinThreshold+1)
	for t := strategy.MinThreshold; t <= strategy.MaxThreshold; t++ {
		ts = append(ts, t)
	}
	return ts
}

// applyDefaults 文件中显式写成空值的字段回退为默认值
func (c *Config) applyDefaults() {
	if c.Sweep.OutputDir == "" {
		c.Sweep.OutputDir = defaultOutputDir
	}
	if c.Log.Dir == "" {
		c.Log.Dir = defaultLogDir
	}
	if len(c.Sweep.Strategies) == 0 {
		c.Sweep.Strategies = []string{defaultCompareStrategy, "basic", "counting"}
	}
}

// applyEnv 环境变量覆盖（可由 .env 文件提供）
func (c *Config) applyEnv() {
	if v := os.Getenv("SHOE_DECKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Shoe.Decks = n
		}
	}
	if v := os.Getenv("SHOE_PENETRATION"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Shoe.Penetration = f
		}
	}
	if v := os.Getenv("SHOE_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Shoe.Seed = n
		}
	}
	if v := os.Getenv("SWEEP_ROUNDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Sweep.Rounds = n
		}
	}
	if v := os.Getenv("SWEEP_OUTPUT_DIR"); v != "" {
		c.Sweep.OutputDir = v
	}
	if v := os.Getenv("SWEEP_STRATEGIES"); v != "" {
		c.Sweep.Strategies = strings.Split(v, ",")
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Redis.URL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
}

// Validate 校验配置，违规时返回 apperrors.ConfigError
func (c *Config) Validate() error {
	if err := c.Rules.Validate(); err != nil {
		return err
	}
	if c.Shoe.Decks < 1 {
		return apperrors.Invalid(apperrors.ErrInvalidDecks, c.Shoe.Decks)
	}
	if err := ValidatePenetration(c.Shoe.Penetration); err != nil {
		return err
	}
	if err := c.Betting.BetRamp().Validate(); err != nil {
		return err
	}
	if c.Sweep.Rounds < 1 {
		return apperrors.Invalid(apperrors.ErrInvalidRounds, c.Sweep.Rounds)
	}
	for _, d := range c.Sweep.Decks {
		if d < 1 {
			return apperrors.Invalid(apperrors.ErrInvalidDecks, d)
		}
	}
	for _, t := range c.Sweep.Thresholds {
		if t < strategy.MinThreshold || t > strategy.MaxThreshold {
			return apperrors.Invalid(apperrors.ErrInvalidThreshold, t)
		}
	}
	for _, p := range c.Sweep.Penetrations {
		if err := ValidatePenetration(p); err != nil {
			return err
		}
	}
	if c.Play.Bankroll <= 0 || c.Play.DefaultBet <= 0 {
		return apperrors.Invalid(apperrors.ErrInvalidBankroll, c.Play.Bankroll)
	}
	opts := c.StrategyOptions()
	for _, name := range c.Sweep.Strategies {
		if _, err := strategy.New(name, opts); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePenetration 渗透率必须在 (0, 100]
func ValidatePenetration(p float64) error {
	if p <= 0 || p > 100 {
		return apperrors.Invalid(apperrors.ErrInvalidPenetration, p)
	}
	return nil
}
