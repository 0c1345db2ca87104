package factory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mikey/job-scam-detector/internal/adapters/store"
	"github.com/mikey/job-scam-detector/internal/config"
	"go.uber.org/zap"
)

// StoreFactory creates storage backends based on configuration
type StoreFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStoreFactory creates a new store factory
func NewStoreFactory(cfg *config.Config, logger *zap.Logger) *StoreFactory {
	return &StoreFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateStore creates a storage backend based on the configuration
func (f *StoreFactory) CreateStore(ctx context.Context) (store.AnalysisUserStore, error) {
	storageType := f.cfg.GetString("storage.type")

	switch storageType {
	case "sqlite":
		sqlitePath := f.cfg.GetString("storage.sqlite_path")
		if err := os.MkdirAll(filepath.Dir(sqlitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return store.NewSQLiteStore(sqlitePath, f.logger)
	case "mysql":
		mysqlDSN := f.cfg.GetString("storage.mysql_dsn")
		return store.NewMySQLStore(mysqlDSN, f.logger)
	case "postgres":
		postgresDSN := f.cfg.GetString("storage.postgres_dsn")
		return store.NewPostgresStore(ctx, postgresDSN, f.logger)
	case "memory":
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageType)
	}
}
