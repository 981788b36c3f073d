package store

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "cbbgm:save:"
	redisIndexKey  = "cbbgm:saves"
)

// Redis is a Backend over a Redis instance. Each save is a hash keyed by the
// save name, with an index set tracking known keys for listing.
type Redis struct {
	rdb *redis.Client
}

// OpenRedis connects to the Redis URL (redis://...) and verifies the
// connection with a ping.
func OpenRedis(ctx context.Context, url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("unable to reach redis: %w", err)
	}
	return &Redis{rdb: client}, nil
}

func (r *Redis) Name() string { return "redis" }

func (r *Redis) List(ctx context.Context) ([]Entry, error) {
	keys, err := r.rdb.SMembers(ctx, redisIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("listing saves: %w", err)
	}
	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		rec, err := r.Get(ctx, key)
		if err == ErrNotFound {
			continue // index entry with no hash; skip
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Key: rec.Key, Size: len(rec.Data), UpdatedAt: rec.UpdatedAt})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}

func (r *Redis) Get(ctx context.Context, key string) (Record, error) {
	fields, err := r.rdb.HGetAll(ctx, redisKeyPrefix+key).Result()
	if err != nil {
		return Record{}, fmt.Errorf("loading save %q: %w", key, err)
	}
	if len(fields) == 0 {
		return Record{}, ErrNotFound
	}
	millis, _ := strconv.ParseInt(fields["updatedAt"], 10, 64)
	return Record{
		Key:       key,
		Data:      fields["data"],
		UpdatedAt: time.UnixMilli(millis).UTC(),
	}, nil
}

func (r *Redis) Put(ctx context.Context, key, data string) error {
	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, redisKeyPrefix+key, "data", data, "updatedAt", time.Now().UnixMilli())
	pipe.SAdd(ctx, redisIndexKey, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("storing save %q: %w", key, err)
	}
	return nil
}

func (r *Redis) Close() error { return r.rdb.Close() }
