package cache

import (
	"context"
	"testing"
	"time"

	"github.com/mikey/job-scam-detector/internal/core"
	"go.uber.org/zap"
)

func entryFor(host string, ttl time.Duration) *core.ReachabilityEntry {
	now := time.Now()
	return &core.ReachabilityEntry{
		Host:      host,
		Result:    core.ProbeResult{State: core.ProbeReachable, Detail: "Website accessible (Status: 200, HTTPS: true)"},
		CheckedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	defer c.Stop()
	ctx := context.Background()

	if err := c.Set(ctx, entryFor("acme.com", time.Minute)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	entry, err := c.Get(ctx, "acme.com")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if entry.Host != "acme.com" || entry.Result.State != core.ProbeReachable {
		t.Errorf("unexpected entry: %+v", entry)
	}
}

func TestMemoryCache_MissingHost(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	defer c.Stop()

	if _, err := c.Get(context.Background(), "unknown.example"); err != ErrNotFound {
		t.Errorf("Get = %v, want ErrNotFound", err)
	}
}

func TestMemoryCache_ExpiredEntry(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	defer c.Stop()
	ctx := context.Background()

	if err := c.Set(ctx, entryFor("acme.com", -time.Second)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := c.Get(ctx, "acme.com"); err != ErrNotFound {
		t.Errorf("Get on expired entry = %v, want ErrNotFound", err)
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	defer c.Stop()
	ctx := context.Background()

	c.Set(ctx, entryFor("acme.com", time.Minute))
	if err := c.Delete(ctx, "acme.com"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, "acme.com"); err != ErrNotFound {
		t.Errorf("Get after Delete = %v, want ErrNotFound", err)
	}
}

func TestMemoryCache_CleanupRemovesExpired(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	defer c.Stop()
	ctx := context.Background()

	c.Set(ctx, entryFor("expired.example", -time.Second))
	c.Set(ctx, entryFor("fresh.example", time.Minute))

	if err := c.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}

	if _, err := c.Get(ctx, "fresh.example"); err != nil {
		t.Errorf("fresh entry removed by cleanup: %v", err)
	}
	c.mu.RLock()
	_, stillThere := c.entries["expired.example"]
	c.mu.RUnlock()
	if stillThere {
		t.Error("expired entry survived cleanup")
	}
}
