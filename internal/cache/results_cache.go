// Package cache holds the redis-backed results cache. Tallies for ended
// elections are immutable, so serving them from redis spares the vote
// ledger a count query per candidate on every results view.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hs2213/proelection/internal/domain"
	"github.com/hs2213/proelection/pkg/config"
	"github.com/hs2213/proelection/pkg/logger"
)

type ResultsCache interface {
	Get(ctx context.Context, electionID uuid.UUID) ([]domain.CandidateResult, bool)
	Set(ctx context.Context, electionID uuid.UUID, results []domain.CandidateResult)
}

type RedisResultsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisResultsCache(cfg config.RedisConfig, ttl time.Duration) (*RedisResultsCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	opts.DB = cfg.DB

	return &RedisResultsCache{
		client: redis.NewClient(opts),
		ttl:    ttl,
	}, nil
}

func resultsKey(electionID uuid.UUID) string {
	return "results:" + electionID.String()
}

func (c *RedisResultsCache) Get(ctx context.Context, electionID uuid.UUID) ([]domain.CandidateResult, bool) {
	payload, err := c.client.Get(ctx, resultsKey(electionID)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.WarnContext(ctx, "Results cache read failed", "error", err, "election_id", electionID)
		return nil, false
	}

	var results []domain.CandidateResult
	if err := json.Unmarshal(payload, &results); err != nil {
		logger.WarnContext(ctx, "Results cache entry corrupt", "error", err, "election_id", electionID)
		return nil, false
	}
	return results, true
}

func (c *RedisResultsCache) Set(ctx context.Context, electionID uuid.UUID, results []domain.CandidateResult) {
	payload, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, resultsKey(electionID), payload, c.ttl).Err(); err != nil {
		logger.WarnContext(ctx, "Results cache write failed", "error", err, "election_id", electionID)
	}
}

func (c *RedisResultsCache) Close() error {
	return c.client.Close()
}

// NoopResultsCache is used when redis is not configured.
type NoopResultsCache struct{}

func (NoopResultsCache) Get(context.Context, uuid.UUID) ([]domain.CandidateResult, bool) {
	return nil, false
}

func (NoopResultsCache) Set(context.Context, uuid.UUID, []domain.CandidateResult) {}

var (
	_ ResultsCache = (*RedisResultsCache)(nil)
	_ ResultsCache = NoopResultsCache{}
)
