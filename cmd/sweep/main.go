package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/palemoky/blackjack-sim/internal/config"
	"github.com/palemoky/blackjack-sim/internal/logger"
	"github.com/palemoky/blackjack-sim/internal/report"
	"github.com/palemoky/blackjack-sim/internal/sim"
	"github.com/palemoky/blackjack-sim/internal/storage"
)

// topN 每个扫描打印的 ROI 排行条数
const topN = 5

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	sweepName := flag.String("sweep", "all", "扫描类型: threshold|decks|penetration|all")
	flag.Parse()

	// .env 不存在时忽略
	_ = godotenv.Load()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	kinds := sim.Kinds
	if *sweepName != "all" {
		kind, err := sim.ParseKind(*sweepName)
		if err != nil {
			log.Fatalf("%v", err)
		}
		kinds = []sim.Kind{kind}
	}

	if err := logger.Init(cfg.Log.Dir, cfg.Log.Echo); err != nil {
		log.Printf("初始化日志失败，仅输出到终端: %v", err)
	}

	code := sweep(cfg, kinds)
	logger.Close()
	os.Exit(code)
}

// sweep 执行扫描并返回进程退出码
func sweep(cfg *config.Config, kinds []sim.Kind) (code int) {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			code = 1
		}
	}()

	// 优雅关闭：收到信号后当前参数点结束即停止
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, kinds); err != nil {
		logger.LogError("%v", err)
		fmt.Fprintf(os.Stderr, "扫描失败: %v\n", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg *config.Config, kinds []sim.Kind) error {
	runID := uuid.NewString()

	var sinks []sim.Sink
	var store *storage.RedisStore
	if cfg.Redis.Enabled() {
		client, err := storage.NewClient(ctx, cfg.Redis)
		if err != nil {
			// 结果库不可用时仍然输出本地报告
			logger.LogError("result store disabled: %v", err)
		} else {
			defer func() { _ = client.Close() }()
			store = storage.NewRedisStore(client)
			sinks = append(sinks, store)
		}
	}

	runner := sim.NewRunner(cfg, runID, sinks...)
	fmt.Printf("run %s\n", runID)

	for _, kind := range kinds {
		points, runErr := runner.Run(ctx, kind)
		// 被中断时仍写出已完成的参数点
		if runErr != nil && !errors.Is(runErr, context.Canceled) {
			return fmt.Errorf("%s sweep: %w", kind, runErr)
		}

		path, err := report.WriteTextFile(cfg.Sweep.OutputDir, kind, cfg.Sweep.Rounds, runID, points)
		if err != nil {
			return fmt.Errorf("%s report: %w", kind, err)
		}
		fmt.Printf("Detailed report saved to: %s\n", path)

		if cfg.Sweep.Plots {
			plots, err := report.WritePlots(cfg.Sweep.OutputDir, kind, points)
			if err != nil {
				return fmt.Errorf("%s plots: %w", kind, err)
			}
			for _, p := range plots {
				fmt.Printf("Plot saved to: %s\n", p)
			}
		}

		if runErr != nil {
			return fmt.Errorf("%s sweep interrupted after %d points: %w", kind, len(points), runErr)
		}
		if store != nil {
			printLeaderboard(ctx, store, kind)
		}
	}
	return nil
}

// printLeaderboard 打印历次运行中该扫描 ROI 最高的参数点
func printLeaderboard(ctx context.Context, store *storage.RedisStore, kind sim.Kind) {
	entries, err := store.TopPoints(ctx, kind, topN)
	if err != nil {
		logger.LogError("leaderboard %s: %v", kind, err)
		return
	}
	if len(entries) == 0 {
		return
	}

	fmt.Printf("Top %d %s configurations (all runs):\n", len(entries), kind)
	for _, e := range entries {
		fmt.Printf("  %d. %-16s %s=%-6s ROI %7.2f%%  %s\n",
			e.Rank, e.Point.Series, kind, e.Point.ParamString(), e.ROI, e.Key)
	}
}
