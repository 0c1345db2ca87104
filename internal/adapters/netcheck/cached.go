package netcheck

import (
	"context"
	"time"

	"github.com/mikey/job-scam-detector/internal/core"
	"go.uber.org/zap"
)

// CachedChecker wraps a ReachabilityChecker with a short-TTL cache keyed by
// host, so repeated submissions naming the same employer don't re-resolve
// and re-probe on every call. Caching is an optimization only; cache errors
// fall through to a live check.
type CachedChecker struct {
	inner  core.ReachabilityChecker
	cache  core.ReachabilityCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedChecker creates a caching decorator around inner.
func NewCachedChecker(inner core.ReachabilityChecker, cache core.ReachabilityCache, ttl time.Duration, logger *zap.Logger) *CachedChecker {
	return &CachedChecker{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// Check serves the probe result from cache when present, otherwise delegates
// to the wrapped checker and caches the outcome.
func (c *CachedChecker) Check(ctx context.Context, website string) core.ProbeResult {
	host := HostOf(website)
	if host == "" {
		return c.inner.Check(ctx, website)
	}

	if entry, err := c.cache.Get(ctx, host); err == nil {
		c.logger.Debug("Reachability cache hit", zap.String("host", host))
		return entry.Result
	}

	result := c.inner.Check(ctx, website)

	now := time.Now()
	entry := &core.ReachabilityEntry{
		Host:      host,
		Result:    result,
		CheckedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}
	if err := c.cache.Set(ctx, entry); err != nil {
		c.logger.Error("Failed to update reachability cache", zap.Error(err), zap.String("host", host))
	}

	return result
}
