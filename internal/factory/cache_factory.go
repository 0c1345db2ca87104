package factory

import (
	"fmt"
	"time"

	"github.com/mikey/job-scam-detector/internal/adapters/cache"
	"github.com/mikey/job-scam-detector/internal/config"
	"github.com/mikey/job-scam-detector/internal/core"
	"go.uber.org/zap"
)

// CacheFactory creates reachability caches based on configuration
type CacheFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewCacheFactory creates a new cache factory
func NewCacheFactory(cfg *config.Config, logger *zap.Logger) *CacheFactory {
	return &CacheFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateReachabilityCache creates a reachability cache based on the configuration
func (f *CacheFactory) CreateReachabilityCache() (core.ReachabilityCache, error) {
	cacheType := f.cfg.GetString("cache.type")

	switch cacheType {
	case "memory":
		cleanupFreq, err := f.cfg.GetDuration("cache.cleanup_frequency")
		if err != nil {
			return nil, fmt.Errorf("invalid cache cleanup frequency: %w", err)
		}
		return cache.NewMemoryCache(f.logger, cleanupFreq), nil
	case "redis":
		return cache.NewRedisCache(
			f.cfg.GetString("cache.redis_addr"),
			f.cfg.GetString("cache.redis_password"),
			f.cfg.GetInt("cache.redis_db"),
			f.logger,
		)
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cacheType)
	}
}

// GetCacheTTL returns the configured cache TTL
func (f *CacheFactory) GetCacheTTL() (time.Duration, error) {
	return f.cfg.GetDuration("cache.ttl")
}

// IsCacheEnabled returns whether reachability caching is enabled
func (f *CacheFactory) IsCacheEnabled() bool {
	return f.cfg.GetBool("cache.enabled")
}
