// Package cache provides a Redis-backed result cache for search requests,
// keyed on the full normalized request, with singleflight collapsing of
// concurrent identical misses. The cache is invalidated wholesale whenever
// a document's indexed fields change.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Damatnic/astral-turf-helpcenter/internal/search"
	"github.com/Damatnic/astral-turf-helpcenter/pkg/logger"
	pkgredis "github.com/Damatnic/astral-turf-helpcenter/pkg/redis"
	"golang.org/x/sync/singleflight"
)

const keyPrefix = "helpsearch:"

// ResultCache caches search results in Redis.
type ResultCache struct {
	client *pkgredis.Client
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a ResultCache with the given TTL.
func New(client *pkgredis.Client, ttl time.Duration) *ResultCache {
	return &ResultCache{
		client: client,
		ttl:    ttl,
		logger: logger.WithComponent("search-cache"),
	}
}

// Get returns the cached result for req, if present.
func (c *ResultCache) Get(ctx context.Context, req search.Request) (*search.Result, bool) {
	key := c.buildKey(req)
	data, err := c.client.Get(ctx, key)
	if err != nil {
		if !pkgredis.IsNilError(err) {
			c.logger.Error("cache get failed", "key", key, "error", err)
		}
		c.misses.Add(1)
		return nil, false
	}
	var result search.Result
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	c.logger.Debug("cache hit", "query", req.Query, "key", key)
	return &result, true
}

// Set stores a result for req.
func (c *ResultCache) Set(ctx context.Context, req search.Request, result *search.Result) {
	key := c.buildKey(req)
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}

// GetOrCompute returns the cached result for req or computes and caches it,
// collapsing concurrent identical requests into one computation. The second
// return value reports whether the result came from the cache.
func (c *ResultCache) GetOrCompute(
	ctx context.Context,
	req search.Request,
	computeFn func() (*search.Result, error),
) (*search.Result, bool, error) {
	if result, ok := c.Get(ctx, req); ok {
		return result, true, nil
	}
	key := c.buildKey(req)
	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		if result, ok := c.Get(ctx, req); ok {
			return result, nil
		}
		result, err := computeFn()
		if err != nil {
			return nil, err
		}
		c.Set(ctx, req, result)
		return result, nil
	})
	if err != nil {
		return nil, false, err
	}
	return val.(*search.Result), false, nil
}

// Invalidate removes every cached search result. Called after any update
// that changes a document's indexed fields.
func (c *ResultCache) Invalidate(ctx context.Context) error {
	deleted, err := c.client.FlushByPattern(ctx, keyPrefix+"*")
	if err != nil {
		return fmt.Errorf("invalidating search cache: %w", err)
	}
	c.logger.Info("search cache invalidated", "keys_deleted", deleted)
	return nil
}

// Stats returns the hit and miss counters.
func (c *ResultCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// buildKey hashes the normalized request into a stable cache key. Filter
// order does not affect the key; query casing and surrounding whitespace do
// not either.
func (c *ResultCache) buildKey(req search.Request) string {
	categories := make([]string, 0, len(req.Categories))
	for _, v := range req.Categories {
		categories = append(categories, string(v))
	}
	difficulties := make([]string, 0, len(req.Difficulties))
	for _, v := range req.Difficulties {
		difficulties = append(difficulties, string(v))
	}
	tags := append([]string(nil), req.Tags...)
	sort.Strings(categories)
	sort.Strings(difficulties)
	sort.Strings(tags)

	raw := strings.Join([]string{
		strings.ToLower(strings.TrimSpace(req.Query)),
		strings.Join(categories, ","),
		strings.Join(tags, ","),
		strings.Join(difficulties, ","),
		fmt.Sprintf("limit=%d,offset=%d,sort=%s,%s", req.Limit, req.Offset, req.SortBy, req.SortOrder),
	}, "|")

	hash := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:16])
}
