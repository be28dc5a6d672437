// Package searchcache is the cache-aside layer for search results.
package searchcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/talentdex/internal/db"
	"github.com/kailas-cloud/talentdex/internal/domain"
	"github.com/kailas-cloud/talentdex/internal/metrics"
)

// keyPrefix namespaces search entries so invalidation and key counting
// never touch unrelated keys in a shared store.
const keyPrefix = "search:"

// Cache stores serialized search results keyed by request fingerprint.
type Cache struct {
	store  db.KVStore
	ttl    time.Duration
	logger *zap.Logger
}

// New creates the search result cache.
func New(store db.KVStore, ttl time.Duration, logger *zap.Logger) *Cache {
	return &Cache{store: store, ttl: ttl, logger: logger}
}

// fingerprintPayload is the canonical serialized form of a search request.
// Maps marshal with sorted keys, so equal requests always produce equal
// fingerprints regardless of field arrival order.
type fingerprintPayload struct {
	Filters map[string]any `json:"filters"`
	Query   string         `json:"query"`
}

// Fingerprint derives the cache key for a search request.
func Fingerprint(query string, filters domain.FilterSet) string {
	payload, _ := json.Marshal(fingerprintPayload{
		Filters: filters.Canonical(),
		Query:   query,
	})
	sum := sha256.Sum256(payload)
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached results for a key, or (nil, false) on a miss.
// Store errors and corrupt payloads count as misses; the pipeline never
// fails because the cache is unhealthy.
func (c *Cache) Get(ctx context.Context, key string) ([]domain.CandidateRecord, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		metrics.SearchCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	var records []domain.CandidateRecord
	if err := json.Unmarshal(data, &records); err != nil {
		c.logger.Warn("cache entry corrupt", zap.String("key", key), zap.Error(err))
		metrics.SearchCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	metrics.SearchCacheTotal.WithLabelValues("hit").Inc()
	return records, true
}

// Set stores results under a key with the configured TTL. Returns false
// when the write fails; callers carry on serving the uncached result.
func (c *Cache) Set(ctx context.Context, key string, records []domain.CandidateRecord) bool {
	data, err := json.Marshal(records)
	if err != nil {
		c.logger.Warn("cache entry marshal failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Invalidate deletes all search entries matching pattern (without the
// namespace prefix; empty means everything) and returns the count removed.
func (c *Cache) Invalidate(ctx context.Context, pattern string) (int64, error) {
	if pattern == "" {
		pattern = "*"
	}
	keys, err := c.store.Scan(ctx, keyPrefix+pattern)
	if err != nil {
		return 0, fmt.Errorf("scan cache keys: %w", err)
	}
	if len(keys) == 0 {
		return 0, nil
	}
	deleted, err := c.store.Del(ctx, keys...)
	if err != nil {
		return 0, fmt.Errorf("delete cache keys: %w", err)
	}
	c.logger.Info("cache invalidated",
		zap.String("pattern", pattern),
		zap.Int64("deleted", deleted))
	return deleted, nil
}

// Stats reports store-level hit/miss counters plus the current number of
// search entries. Hit rate divides by at least one to stay defined on an
// idle store.
func (c *Cache) Stats(ctx context.Context) (domain.CacheStats, error) {
	info, err := c.store.InfoSection(ctx, "stats")
	if err != nil {
		return domain.CacheStats{}, fmt.Errorf("read store stats: %w", err)
	}

	hits, _ := strconv.ParseInt(info["keyspace_hits"], 10, 64)
	misses, _ := strconv.ParseInt(info["keyspace_misses"], 10, 64)

	keys, err := c.store.Scan(ctx, keyPrefix+"*")
	if err != nil {
		return domain.CacheStats{}, fmt.Errorf("count cache keys: %w", err)
	}

	total := hits + misses
	if total < 1 {
		total = 1
	}

	return domain.CacheStats{
		Hits:     hits,
		Misses:   misses,
		KeyCount: int64(len(keys)),
		HitRate:  float64(hits) / float64(total),
	}, nil
}
