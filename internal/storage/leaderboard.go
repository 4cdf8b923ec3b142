package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/blackjack-sim/internal/sim"
)

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank  int       `json:"rank"`
	Key   string    `json:"key"`
	ROI   float64   `json:"roi"`
	Point sim.Point `json:"point"`
}

// TopPoints 获取某个扫描 ROI 最高的参数点（从高到低）
func (rs *RedisStore) TopPoints(ctx context.Context, kind sim.Kind, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, nil
	}

	results, err := rs.client.ZRevRangeWithScores(ctx, leaderboardKey(kind), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(results))
	for i, result := range results {
		key, ok := result.Member.(string)
		if !ok {
			continue
		}

		// 结果已被删除时跳过
		p, err := rs.GetPoint(ctx, key)
		if err != nil || p == nil {
			continue
		}

		entries = append(entries, LeaderboardEntry{
			Rank:  i + 1,
			Key:   key,
			ROI:   result.Score,
			Point: *p,
		})
	}
	return entries, nil
}

// PointRank 获取参数点在扫描排行榜中的名次，未上榜返回 -1
func (rs *RedisStore) PointRank(ctx context.Context, runID string, p sim.Point) (int64, error) {
	rank, err := rs.client.ZRevRank(ctx, leaderboardKey(p.Sweep), ResultKey(runID, p)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return -1, nil
		}
		return -1, err
	}
	return rank + 1, nil // Redis 排名从 0 开始
}
