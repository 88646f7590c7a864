package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wonny/epsdash/internal/contracts"
	"github.com/wonny/epsdash/pkg/logger"
	"github.com/wonny/epsdash/pkg/redis"
)

// CacheTTL holds the cache lifetimes
type CacheTTL struct {
	Snapshot time.Duration // 날짜별 스냅샷 (불변)
	Live     time.Duration // 날짜 목록, 히스토리, 시장 상태
}

// Cached decorates a Source with a Redis read-through cache.
// With Redis disabled every call passes through to the inner source.
type Cached struct {
	inner  Source
	cache  *redis.Cache
	ttl    CacheTTL
	logger *logger.Logger
}

// NewCached wraps inner with cache
func NewCached(inner Source, cache *redis.Cache, ttl CacheTTL, log *logger.Logger) *Cached {
	if ttl.Snapshot <= 0 {
		ttl.Snapshot = redis.TTLDaily
	}
	if ttl.Live <= 0 {
		ttl.Live = redis.TTLShort
	}
	return &Cached{inner: inner, cache: cache, ttl: ttl, logger: log}
}

// Kind implements Source
func (c *Cached) Kind() string {
	if !c.cache.Enabled() {
		return c.inner.Kind()
	}
	return fmt.Sprintf("cached(%s)", c.inner.Kind())
}

// Dates implements Source
func (c *Cached) Dates(ctx context.Context) ([]string, error) {
	return redis.GetOrLoad(ctx, c.cache, redis.DatesKey(), c.ttl.Live, c.inner.Dates)
}

// Screening implements Source
func (c *Cached) Screening(ctx context.Context, date string) ([]contracts.Candidate, error) {
	return redis.GetOrLoad(ctx, c.cache, redis.SnapshotKey("screening", date), c.ttl.Snapshot,
		func(ctx context.Context) ([]contracts.Candidate, error) {
			return c.inner.Screening(ctx, date)
		})
}

// Stats implements Source
func (c *Cached) Stats(ctx context.Context, date string) (*contracts.ScreeningStats, error) {
	return redis.GetOrLoad(ctx, c.cache, redis.SnapshotKey("stats", date), c.ttl.Snapshot,
		func(ctx context.Context) (*contracts.ScreeningStats, error) {
			return c.inner.Stats(ctx, date)
		})
}

// Portfolio implements Source
func (c *Cached) Portfolio(ctx context.Context, date string) ([]contracts.PortfolioEntry, error) {
	return redis.GetOrLoad(ctx, c.cache, redis.SnapshotKey("portfolio", date), c.ttl.Snapshot,
		func(ctx context.Context) ([]contracts.PortfolioEntry, error) {
			return c.inner.Portfolio(ctx, date)
		})
}

// PortfolioHistory implements Source
func (c *Cached) PortfolioHistory(ctx context.Context) ([]contracts.PortfolioEntry, error) {
	return redis.GetOrLoad(ctx, c.cache, "portfolio:history", c.ttl.Live, c.inner.PortfolioHistory)
}

// TickerHistory implements Source
func (c *Cached) TickerHistory(ctx context.Context, ticker string) ([]contracts.TickerHistory, error) {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	return redis.GetOrLoad(ctx, c.cache, redis.TickerKey(t), c.ttl.Live,
		func(ctx context.Context) ([]contracts.TickerHistory, error) {
			return c.inner.TickerHistory(ctx, t)
		})
}

// Exited implements Source
func (c *Cached) Exited(ctx context.Context, date string) ([]contracts.ExitedStock, error) {
	return redis.GetOrLoad(ctx, c.cache, redis.SnapshotKey("exited", date), c.ttl.Snapshot,
		func(ctx context.Context) ([]contracts.ExitedStock, error) {
			return c.inner.Exited(ctx, date)
		})
}

// MarketStatus implements Source
func (c *Cached) MarketStatus(ctx context.Context) (*contracts.MarketStatus, error) {
	return redis.GetOrLoad(ctx, c.cache, "market", c.ttl.Live, c.inner.MarketStatus)
}

// Warm refreshes the cached snapshots of date plus the live lists.
// An empty date warms the latest date.
func (c *Cached) Warm(ctx context.Context, date string) (string, error) {
	dates, err := c.inner.Dates(ctx)
	if err != nil {
		return "", fmt.Errorf("warm dates: %w", err)
	}
	c.store(ctx, redis.DatesKey(), dates, c.ttl.Live)

	if date == "" {
		date = Latest(dates)
		if date == "" {
			return "", fmt.Errorf("warm: %w", ErrNotFound)
		}
	}

	screening, err := c.inner.Screening(ctx, date)
	if err != nil {
		return date, fmt.Errorf("warm screening: %w", err)
	}
	c.store(ctx, redis.SnapshotKey("screening", date), screening, c.ttl.Snapshot)

	stats, err := c.inner.Stats(ctx, date)
	if err != nil {
		return date, fmt.Errorf("warm stats: %w", err)
	}
	c.store(ctx, redis.SnapshotKey("stats", date), stats, c.ttl.Snapshot)

	portfolio, err := c.inner.Portfolio(ctx, date)
	if err != nil {
		return date, fmt.Errorf("warm portfolio: %w", err)
	}
	c.store(ctx, redis.SnapshotKey("portfolio", date), portfolio, c.ttl.Snapshot)

	exited, err := c.inner.Exited(ctx, date)
	if err != nil {
		return date, fmt.Errorf("warm exited: %w", err)
	}
	c.store(ctx, redis.SnapshotKey("exited", date), exited, c.ttl.Snapshot)

	history, err := c.inner.PortfolioHistory(ctx)
	if err != nil {
		return date, fmt.Errorf("warm portfolio history: %w", err)
	}
	c.store(ctx, "portfolio:history", history, c.ttl.Live)

	c.logger.WithFields(map[string]interface{}{
		"date":       date,
		"candidates": len(screening),
		"exited":     len(exited),
	}).Info("Cache warmed")

	return date, nil
}

func (c *Cached) store(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if err := c.cache.Set(ctx, key, value, ttl); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
}

// Latest returns the newest date of a dates list in either order
func Latest(dates []string) string {
	latest := ""
	for _, d := range dates {
		if d > latest {
			latest = d
		}
	}
	return latest
}
