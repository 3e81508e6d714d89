package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ewintr.nl/tubesum/model"
	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slog"
)

// RedisCache keeps transcripts across restarts. Redis errors are logged and
// reported as a miss, they never fail a fetch.
type RedisCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisCache(ctx context.Context, redisURL string, ttl time.Duration, logger *slog.Logger) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis unreachable: %w", err)
	}

	return &RedisCache{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}, nil
}

// CacheKey hashes the url so arbitrary user input never ends up in a key.
func CacheKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return fmt.Sprintf("tubesum:transcript:%x", hash[:12])
}

func (r *RedisCache) Get(ctx context.Context, url string) (model.Transcript, bool) {
	data, err := r.rdb.Get(ctx, CacheKey(url)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("redis get failed", slog.String("error", err.Error()))
		}
		return model.Transcript{}, false
	}

	var t model.Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		r.logger.Warn("invalid cached transcript", slog.String("error", err.Error()))
		return model.Transcript{}, false
	}

	return t, true
}

func (r *RedisCache) Set(ctx context.Context, url string, transcript model.Transcript) {
	data, err := json.Marshal(transcript)
	if err != nil {
		r.logger.Warn("could not marshal transcript", slog.String("error", err.Error()))
		return
	}
	if err := r.rdb.Set(ctx, CacheKey(url), data, r.ttl).Err(); err != nil {
		r.logger.Warn("redis set failed", slog.String("error", err.Error()))
	}
}

func (r *RedisCache) Close() error {
	return r.rdb.Close()
}
