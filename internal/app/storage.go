package app

import (
	"context"
	"fmt"

	"github.com/fadedpez/pokersquares/internal/config"
	"github.com/fadedpez/pokersquares/internal/logging"
	"github.com/fadedpez/pokersquares/pkg/repositories/history"
)

// OpenHistory builds the repository selected by STORAGE_TYPE. A SQLite
// database that cannot be opened falls back to memory, and an unreachable
// Elasticsearch cluster falls back to SQLite alone.
func OpenHistory(ctx context.Context, cfg *config.Config, logger *logging.Logger) (history.Repository, error) {
	if logger == nil {
		logger = logging.Default
	}

	switch cfg.StorageType {
	case config.StorageMemory:
		logger.Warn("Using in-memory repository for game data (data will be lost on restart)")
		return history.NewMemoryRepository(), nil

	case config.StorageFile:
		logger.Info("Using JSON history at %s", cfg.HistoryFilePath())
		repo, err := history.NewFileRepository(cfg.HistoryFilePath())
		if err != nil {
			return nil, fmt.Errorf("failed to open history file: %w", err)
		}
		return repo, nil

	case config.StorageSQLite:
		return openSQLite(cfg, logger), nil

	case config.StorageElasticsearch:
		base := openSQLite(cfg, logger)
		esConfig := history.DefaultElasticsearchConfig()
		esConfig.URL = cfg.ESURL
		esConfig.Username = cfg.ESUsername
		esConfig.Password = cfg.ESPassword
		esConfig.IndexPrefix = cfg.ESIndexPrefix

		repo, err := history.NewElasticsearchRepository(ctx, base, esConfig)
		if err != nil {
			logger.Warn("Elasticsearch unavailable, leaderboards will use the database: %v", err)
			return base, nil
		}
		logger.Info("Indexing results in Elasticsearch at %s", cfg.ESURL)
		return repo, nil

	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.StorageType)
	}
}

func openSQLite(cfg *config.Config, logger *logging.Logger) history.Repository {
	logger.Info("Initializing SQLite repository at %s", cfg.SQLitePath())
	repo, err := history.NewSQLiteRepository(cfg.SQLitePath())
	if err != nil {
		logger.Error("Failed to initialize SQLite repository: %v", err)
		logger.Warn("Falling back to in-memory repository")
		return history.NewMemoryRepository()
	}
	return repo
}
