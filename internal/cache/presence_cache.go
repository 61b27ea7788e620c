package cache

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// PresenceCache mirrors live room membership into Redis so the REST room
// list can be served without touching the in-process registry.
type PresenceCache interface {
	SetRoom(ctx context.Context, code string, players int) error
	DeleteRoom(ctx context.Context, code string) error
	ListRooms(ctx context.Context) ([]RoomEntry, error)
}

// RoomEntry is one row of the live room list.
type RoomEntry struct {
	Code    string `json:"code"`
	Players int    `json:"players"`
}

type presenceCache struct {
	client *redis.Client
}

// NewPresenceCache creates a new presence cache
func NewPresenceCache(client *redis.Client) PresenceCache {
	return &presenceCache{
		client: client,
	}
}

const presenceKey = "rooms:live"

func (c *presenceCache) SetRoom(ctx context.Context, code string, players int) error {
	return c.client.HSet(ctx, presenceKey, code, players).Err()
}

func (c *presenceCache) DeleteRoom(ctx context.Context, code string) error {
	return c.client.HDel(ctx, presenceKey, code).Err()
}

func (c *presenceCache) ListRooms(ctx context.Context) ([]RoomEntry, error) {
	fields, err := c.client.HGetAll(ctx, presenceKey).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]RoomEntry, 0, len(fields))
	for code, raw := range fields {
		n, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		entries = append(entries, RoomEntry{Code: code, Players: n})
	}
	return entries, nil
}
