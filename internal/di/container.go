package di

import (
	"context"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/job-scam-detector/internal/adapters/httpapi"
	"github.com/mikey/job-scam-detector/internal/adapters/netcheck"
	"github.com/mikey/job-scam-detector/internal/adapters/store"
	"github.com/mikey/job-scam-detector/internal/auth"
	"github.com/mikey/job-scam-detector/internal/config"
	"github.com/mikey/job-scam-detector/internal/core"
	"github.com/mikey/job-scam-detector/internal/factory"
	"github.com/mikey/job-scam-detector/internal/logging"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewNarrativeFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}

	// Register lexicon and score weights
	if err := container.Provide(core.DefaultLexicon); err != nil {
		return nil, err
	}
	if err := container.Provide(core.DefaultScoreWeights); err != nil {
		return nil, err
	}

	// Register reachability checker, wrapped with a cache when enabled. The
	// cache is registered alongside it so the main can stop it on shutdown.
	if err := container.Provide(func(
		cfg *config.Config,
		cacheFactory *factory.CacheFactory,
		logger *zap.Logger,
	) (core.ReachabilityChecker, core.ReachabilityCache, error) {
		timeout, err := cfg.GetDuration("engine.website_timeout")
		if err != nil {
			return nil, nil, err
		}
		checker := netcheck.NewChecker(timeout, logger)

		if !cacheFactory.IsCacheEnabled() {
			return checker, nil, nil
		}

		cache, err := cacheFactory.CreateReachabilityCache()
		if err != nil {
			return nil, nil, err
		}
		ttl, err := cacheFactory.GetCacheTTL()
		if err != nil {
			return nil, nil, err
		}
		return netcheck.NewCachedChecker(checker, cache, ttl, logger), cache, nil
	}); err != nil {
		return nil, err
	}

	// Register narrative client
	if err := container.Provide(func(f *factory.NarrativeFactory) (core.NarrativeClient, error) {
		return f.CreateNarrativeClient(context.Background())
	}); err != nil {
		return nil, err
	}

	// Register storage backend
	if err := container.Provide(func(f *factory.StoreFactory) (store.AnalysisUserStore, error) {
		return f.CreateStore(context.Background())
	}); err != nil {
		return nil, err
	}

	// Register rule engine
	if err := container.Provide(core.NewEngine); err != nil {
		return nil, err
	}

	// Register analyzer service
	if err := container.Provide(func(
		engine *core.Engine,
		narrative core.NarrativeClient,
		st store.AnalysisUserStore,
		cfg *config.Config,
		logger *zap.Logger,
	) (*core.AnalyzerService, error) {
		narrativeTimeout, err := cfg.GetDuration("engine.narrative_timeout")
		if err != nil {
			return nil, err
		}
		return core.NewAnalyzerService(engine, narrative, st, logger, narrativeTimeout), nil
	}); err != nil {
		return nil, err
	}

	// Register token issuer
	if err := container.Provide(func(cfg *config.Config) (*auth.TokenIssuer, error) {
		ttl, err := cfg.GetDuration("auth.token_ttl")
		if err != nil {
			return nil, err
		}
		return auth.NewTokenIssuer(cfg.GetString("auth.secret"), ttl), nil
	}); err != nil {
		return nil, err
	}

	// Register HTTP server
	if err := container.Provide(func(
		service *core.AnalyzerService,
		st store.AnalysisUserStore,
		tokens *auth.TokenIssuer,
		cfg *config.Config,
		logger *zap.Logger,
	) (*httpapi.Server, error) {
		readTimeout, err := cfg.GetDuration("server.read_timeout")
		if err != nil {
			return nil, err
		}
		writeTimeout, err := cfg.GetDuration("server.write_timeout")
		if err != nil {
			return nil, err
		}
		return httpapi.NewServer(
			service,
			st,
			tokens,
			logger,
			cfg.GetString("server.listen_address"),
			cfg.GetInt("server.min_text_length"),
			readTimeout,
			writeTimeout,
		), nil
	}); err != nil {
		return nil, err
	}

	return container, nil
}
