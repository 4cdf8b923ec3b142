package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/blackjack-sim/internal/config"
	"github.com/palemoky/blackjack-sim/internal/sim"
)

const (
	// Redis key 前缀
	resultKeyPrefix = "result:"
	runKeyPrefix    = "run:"
	runsKey         = "runs"

	pingTimeout = 5 * time.Second
)

// NewClient 按配置创建 Redis 客户端并测试连接，URL 优先于 Addr
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("解析 Redis URL 失败: %w", err)
		}
		opts = parsed
	}

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis 连接失败: %w", err)
	}
	return rdb, nil
}

// RedisStore 扫描结果存储，实现 sim.Sink
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 创建结果存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

var _ sim.Sink = (*RedisStore)(nil)

// ResultKey 返回参数点的存储 key: result:<run>:<sweep>:<series>:<param>
func ResultKey(runID string, p sim.Point) string {
	return fmt.Sprintf("%s%s:%s:%s:%s", resultKeyPrefix, runID, p.Sweep, p.Series, p.ParamString())
}

func leaderboardKey(kind sim.Kind) string {
	return "leaderboard:" + string(kind)
}

func runPointsKey(runID string) string {
	return runKeyPrefix + runID + ":points"
}

// SavePoint 保存参数点并更新该扫描的 ROI 排行榜
func (rs *RedisStore) SavePoint(ctx context.Context, runID string, p sim.Point) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("序列化结果失败: %w", err)
	}

	key := ResultKey(runID, p)
	pipe := rs.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.ZAdd(ctx, leaderboardKey(p.Sweep), redis.Z{
		Score:  p.Stats.ROI(),
		Member: key,
	})
	pipe.SAdd(ctx, runPointsKey(runID), key)
	pipe.SAdd(ctx, runsKey, runID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("保存结果 %s 失败: %w", key, err)
	}
	return nil
}

// GetPoint 按 key 读取参数点，不存在时返回 nil
func (rs *RedisStore) GetPoint(ctx context.Context, key string) (*sim.Point, error) {
	data, err := rs.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var p sim.Point
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("反序列化结果失败: %w", err)
	}
	return &p, nil
}

// RunPoints 返回某次运行保存的全部 key
func (rs *RedisStore) RunPoints(ctx context.Context, runID string) ([]string, error) {
	return rs.client.SMembers(ctx, runPointsKey(runID)).Result()
}

// Runs 返回所有运行 ID
func (rs *RedisStore) Runs(ctx context.Context) ([]string, error) {
	return rs.client.SMembers(ctx, runsKey).Result()
}

// DeleteRun 删除某次运行的全部结果并从排行榜移除
func (rs *RedisStore) DeleteRun(ctx context.Context, runID string) error {
	keys, err := rs.RunPoints(ctx, runID)
	if err != nil {
		return err
	}

	pipe := rs.client.TxPipeline()
	for _, kind := range sim.Kinds {
		members := make([]any, len(keys))
		for i, k := range keys {
			members[i] = k
		}
		if len(members) > 0 {
			pipe.ZRem(ctx, leaderboardKey(kind), members...)
		}
	}
	if len(keys) > 0 {
		pipe.Del(ctx, keys...)
	}
	pipe.Del(ctx, runPointsKey(runID))
	pipe.SRem(ctx, runsKey, runID)
	_, err = pipe.Exec(ctx)
	return err
}
