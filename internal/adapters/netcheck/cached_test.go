package netcheck

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mikey/job-scam-detector/internal/core"
	"go.uber.org/zap"
)

type countingChecker struct {
	result core.ProbeResult
	calls  int
}

func (c *countingChecker) Check(ctx context.Context, website string) core.ProbeResult {
	c.calls++
	return c.result
}

type fakeCache struct {
	entries map[string]*core.ReachabilityEntry
	getErr  error
	setErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*core.ReachabilityEntry)}
}

func (f *fakeCache) Get(ctx context.Context, host string) (*core.ReachabilityEntry, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	entry, ok := f.entries[host]
	if !ok {
		return nil, errors.New("not found")
	}
	return entry, nil
}

func (f *fakeCache) Set(ctx context.Context, entry *core.ReachabilityEntry) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.entries[entry.Host] = entry
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, host string) error {
	delete(f.entries, host)
	return nil
}

func (f *fakeCache) Cleanup(ctx context.Context) error { return nil }

func TestCachedChecker_SecondCheckServedFromCache(t *testing.T) {
	inner := &countingChecker{result: core.ProbeResult{State: core.ProbeReachable, Detail: "Website accessible (Status: 200, HTTPS: true)"}}
	cache := newFakeCache()
	checker := NewCachedChecker(inner, cache, time.Minute, zap.NewNop())

	first := checker.Check(context.Background(), "https://acme.com/careers")
	second := checker.Check(context.Background(), "https://acme.com")

	if inner.calls != 1 {
		t.Errorf("inner checker called %d times, want 1", inner.calls)
	}
	if first != second {
		t.Errorf("cached result differs: %+v vs %+v", first, second)
	}
	entry, ok := cache.entries["acme.com"]
	if !ok {
		t.Fatal("no cache entry written for acme.com")
	}
	if entry.ExpiresAt.Sub(entry.CheckedAt) != time.Minute {
		t.Errorf("entry TTL = %v, want 1m", entry.ExpiresAt.Sub(entry.CheckedAt))
	}
}

func TestCachedChecker_CacheErrorFallsThrough(t *testing.T) {
	inner := &countingChecker{result: core.ProbeResult{State: core.ProbeUnreachable, Detail: "Domain does not resolve"}}
	cache := newFakeCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	checker := NewCachedChecker(inner, cache, time.Minute, zap.NewNop())

	result := checker.Check(context.Background(), "https://acme.com")
	if inner.calls != 1 {
		t.Errorf("inner checker called %d times, want 1", inner.calls)
	}
	if result.State != core.ProbeUnreachable {
		t.Errorf("State = %v, want the live result", result.State)
	}
}

func TestCachedChecker_UnusableWebsiteBypassesCache(t *testing.T) {
	inner := &countingChecker{result: core.ProbeResult{State: core.ProbeUnreachable, Detail: "no website supplied"}}
	cache := newFakeCache()
	checker := NewCachedChecker(inner, cache, time.Minute, zap.NewNop())

	checker.Check(context.Background(), "")
	if inner.calls != 1 {
		t.Errorf("inner checker called %d times, want 1", inner.calls)
	}
	if len(cache.entries) != 0 {
		t.Errorf("cache entries = %d, want none for an unusable website", len(cache.entries))
	}
}
