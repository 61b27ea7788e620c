package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// LeaderboardCache handles Redis ZSET operations for the global taggerz
// leaderboard.
type LeaderboardCache interface {
	UpdateScore(ctx context.Context, account string, taggerz int) error
	GetTop(ctx context.Context, limit int) ([]LeaderboardEntry, error)
	GetRank(ctx context.Context, account string) (int64, error)
}

// LeaderboardEntry represents a single leaderboard entry
type LeaderboardEntry struct {
	Account string `json:"account"`
	Taggerz int    `json:"taggerz"`
	Rank    int    `json:"rank"`
}

type leaderboardCache struct {
	client *redis.Client
}

// NewLeaderboardCache creates a new leaderboard cache
func NewLeaderboardCache(client *redis.Client) LeaderboardCache {
	return &leaderboardCache{
		client: client,
	}
}

const leaderboardKey = "taggerz:lb"

func (c *leaderboardCache) UpdateScore(ctx context.Context, account string, taggerz int) error {
	return c.client.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  float64(taggerz),
		Member: account,
	}).Err()
}

func (c *leaderboardCache) GetTop(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(results))
	for i, z := range results {
		entries[i] = LeaderboardEntry{
			Account: z.Member.(string),
			Taggerz: int(z.Score),
			Rank:    i + 1,
		}
	}
	return entries, nil
}

func (c *leaderboardCache) GetRank(ctx context.Context, account string) (int64, error) {
	rank, err := c.client.ZRevRank(ctx, leaderboardKey, account).Result()
	if err == redis.Nil {
		return -1, nil
	}
	return rank + 1, err // 1-indexed
}
