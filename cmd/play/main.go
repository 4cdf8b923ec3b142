package main

import (
	"flag"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/palemoky/blackjack-sim/internal/config"
	"github.com/palemoky/blackjack-sim/internal/game/card"
	"github.com/palemoky/blackjack-sim/internal/logger"
	"github.com/palemoky/blackjack-sim/internal/sound"
	"github.com/palemoky/blackjack-sim/internal/ui"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	bankroll := flag.Float64("bankroll", 0, "初始筹码，0 表示使用配置")
	showCount := flag.Bool("count", false, "显示 Hi-Lo 计数")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if *bankroll > 0 {
		cfg.Play.Bankroll = *bankroll
	}

	// 终端由 bubbletea 接管，日志只写文件
	if err := logger.Init(cfg.Log.Dir, false); err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer logger.Close()

	shoe, err := card.NewShoe(cfg.Shoe.Decks, card.WithSeed(cfg.Shoe.Seed))
	if err != nil {
		log.Fatalf("创建牌靴失败: %v", err)
	}

	opts := ui.Options{
		Rules:       cfg.Rules,
		Penetration: cfg.Shoe.Penetration,
		Bankroll:    cfg.Play.Bankroll,
		DefaultBet:  cfg.Play.DefaultBet,
		ShowCount:   cfg.Play.ShowCount || *showCount,
	}
	if cfg.Play.Sound {
		sm := sound.NewSoundManager(cfg.Play.SoundDir)
		if err := sm.Init(); err != nil {
			logger.LogError("sound disabled: %v", err)
		} else {
			defer sm.Close()
			opts.Sound = sm
		}
	}

	model := ui.NewTableModel(shoe, opts)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.LogError("table exited: %v", err)
		log.Fatalf("启动牌桌时出错: %v", err)
	}
}
