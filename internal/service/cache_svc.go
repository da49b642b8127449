package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Cache TTLs. Summaries are cheap to recompute, so short TTLs keep the
// dashboard fresh after a pipeline run without explicit invalidation storms.
const (
	SummaryCacheTTL = 5 * time.Minute

	summaryKey = "adpipe:summary:latest"
)

// CacheService provides a Redis cache-aside layer for summary lookups. If no
// Redis is configured or the connection fails, the client is nil and all
// operations become no-ops.
type CacheService struct {
	rdb *redis.Client
	log zerolog.Logger
}

func NewCacheService(redisURL string, log zerolog.Logger) *CacheService {
	if redisURL == "" {
		log.Info().Msg("redis: no URL configured, caching disabled")
		return &CacheService{log: log}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn().Err(err).Str("url", redisURL).Msg("redis: invalid URL, caching disabled")
		return &CacheService{log: log}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis: connection failed, caching disabled")
		return &CacheService{log: log}
	}

	log.Info().Msg("redis: connected, caching enabled")
	return &CacheService{rdb: rdb, log: log}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetSummary retrieves the cached summary. Returns nil when not cached or
// caching is disabled.
func (c *CacheService) GetSummary(ctx context.Context) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, summaryKey).Bytes()
	switch {
	case err == redis.Nil:
		cacheOps.WithLabelValues("summary", "miss").Inc()
		return nil, nil
	case err != nil:
		cacheOps.WithLabelValues("summary", "error").Inc()
		return nil, err
	}
	cacheOps.WithLabelValues("summary", "hit").Inc()
	return data, nil
}

// SetSummary stores the summary in cache.
func (c *CacheService) SetSummary(ctx context.Context, summary interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, summaryKey, b, SummaryCacheTTL).Err()
}

// InvalidateSummary removes the cached summary (called after a pipeline run).
func (c *CacheService) InvalidateSummary(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, summaryKey).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
