package fetcher

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Adithya-Monish-Kumar-K/wordfreq/pkg/metrics"
	pkgredis "github.com/Adithya-Monish-Kumar-K/wordfreq/pkg/redis"
)

const keyPrefix = "wordfreq:doc:"

// Store is the key/value backend of a DocumentCache. *pkgredis.Client
// satisfies it.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Source produces a document body for a location.
type Source interface {
	Fetch(ctx context.Context, location string) (string, error)
}

// DocumentCache stores extracted bodies by location. Failed fetches are never
// cached, and store errors degrade to a plain fetch.
type DocumentCache struct {
	source  Source
	store   Store
	ttl     time.Duration
	refresh bool
	group   singleflight.Group
	metrics *metrics.Metrics
	logger  *slog.Logger
	hits    atomic.Int64
	misses  atomic.Int64
}

// NewDocumentCache wraps source. With refresh set, cached entries are ignored
// and overwritten by a fresh fetch.
func NewDocumentCache(source Source, store Store, ttl time.Duration, refresh bool, m *metrics.Metrics) *DocumentCache {
	return &DocumentCache{
		source:  source,
		store:   store,
		ttl:     ttl,
		refresh: refresh,
		metrics: m,
		logger:  slog.Default().With("component", "document-cache"),
	}
}

// Fetch returns the cached body for location or fetches and stores it.
func (c *DocumentCache) Fetch(ctx context.Context, location string) (string, error) {
	body, _, err := c.GetOrFetch(ctx, location)
	return body, err
}

// GetOrFetch is Fetch that also reports whether the body came from the cache.
// Concurrent callers for the same location share one upstream fetch.
func (c *DocumentCache) GetOrFetch(ctx context.Context, location string) (string, bool, error) {
	if !c.refresh {
		if body, ok := c.get(ctx, location); ok {
			return body, true, nil
		}
	}
	key := buildKey(location)
	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		body, err := c.source.Fetch(ctx, location)
		if err != nil {
			return "", err
		}
		c.set(ctx, location, body)
		return body, nil
	})
	if err != nil {
		return "", false, err
	}
	return val.(string), false, nil
}

// Stats returns the hit and miss counts seen by this cache.
func (c *DocumentCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *DocumentCache) get(ctx context.Context, location string) (string, bool) {
	key := buildKey(location)
	body, err := c.store.Get(ctx, key)
	if err != nil {
		if !pkgredis.IsNilError(err) {
			c.logger.Error("cache get failed", "key", key, "error", err)
		}
		c.miss()
		return "", false
	}
	c.hits.Add(1)
	c.metrics.CacheHitsTotal.Inc()
	c.logger.Debug("cache hit", "url", location, "key", key)
	return body, true
}

func (c *DocumentCache) set(ctx context.Context, location, body string) {
	key := buildKey(location)
	if err := c.store.Set(ctx, key, body, c.ttl); err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}

func (c *DocumentCache) miss() {
	c.misses.Add(1)
	c.metrics.CacheMissesTotal.Inc()
}

func buildKey(location string) string {
	hash := sha256.Sum256([]byte(location))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:16])
}
