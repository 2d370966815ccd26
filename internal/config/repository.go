package config

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"taskboard/internal/cache"
	"taskboard/internal/repository"
	"taskboard/internal/repository/postgres"
	"taskboard/internal/repository/sqlite"
)

// CreateRepository opens the task store selected by the configuration and
// wraps it with the Redis list cache when one is configured.
func CreateRepository(ctx context.Context, config *Config, logger *log.Logger) (repository.Repository, error) {
	var (
		repo repository.Repository
		err  error
	)

	switch config.Database.Driver {
	case DriverPostgres:
		repo, err = postgres.New(ctx, config.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		logger.Info("using postgres task store")
	default:
		dbPath := config.GetDatabasePath()
		if dbPath != ":memory:" {
			dir := expandHome(config.Database.Dir)
			if err := os.MkdirAll(dir, os.FileMode(config.Database.DirPermissions)); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		repo, err = sqlite.New(dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		logger.Info("using sqlite task store", "path", dbPath)
	}

	if !config.CacheEnabled() {
		return repo, nil
	}

	client, err := cache.NewClient(ctx, config.Cache.RedisAddr)
	if err != nil {
		repo.Close()
		return nil, err
	}
	logger.Info("task list cache enabled", "addr", config.Cache.RedisAddr, "prefix", config.Cache.Prefix, "ttl", config.Cache.TTL)

	return cache.NewCachedRepository(repo, cache.New(client, config.Cache.Prefix, config.Cache.TTL), logger), nil
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (repository.Repository, error) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	return repo, nil
}
