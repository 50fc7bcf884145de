package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/thermochef/backend/config"
	httpDelivery "github.com/thermochef/backend/internal/delivery/http"
	"github.com/thermochef/backend/internal/domain"
	"github.com/thermochef/backend/internal/infrastructure/cache"
	"github.com/thermochef/backend/internal/infrastructure/oracle"
	"github.com/thermochef/backend/internal/infrastructure/postgres"
	"github.com/thermochef/backend/internal/logging"
	"github.com/thermochef/backend/internal/tables"
	"github.com/thermochef/backend/internal/usecase"
)

const startupTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	os.Exit(exitCode(logger, run(cfg, logger)))
}

// exitCode logs a run failure and flushes the logger before the process exits.
func exitCode(logger *zap.Logger, err error) int {
	if err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
	_ = logger.Sync()
	if err != nil {
		return 1
	}
	return 0
}

func run(cfg *config.Config, logger *zap.Logger) error {
	logger.Info("starting ThermoChef backend",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("cache", cfg.Cache.Type),
		zap.String("oracle", cfg.Oracle.Provider))

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	t := tables.Default()
	if cfg.Tables.Path != "" {
		loaded, err := tables.Load(cfg.Tables.Path)
		if err != nil {
			return fmt.Errorf("load tables: %w", err)
		}
		logger.Info("reference tables loaded", zap.String("path", cfg.Tables.Path))
		t = loaded
	}

	return serve(ctx, cfg, logger, t)
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger, t *tables.Tables) error {
	responseCache, err := newCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer responseCache.Close()

	var converter domain.ConversionOracle
	client, err := oracle.New(ctx, oracle.Config{
		Provider:          cfg.Oracle.Provider,
		APIKey:            cfg.Oracle.APIKey,
		BaseURL:           cfg.Oracle.BaseURL,
		Model:             cfg.Oracle.Model,
		Timeout:           cfg.Oracle.Timeout,
		RequestsPerMinute: cfg.Oracle.RequestsPerMinute,
	}, logger)
	if err != nil {
		return fmt.Errorf("create oracle: %w", err)
	}
	if client != nil {
		defer client.Close()
		converter = usecase.NewCachingOracle(client, responseCache, cfg.Cache.TTL, logger)
		logger.Info("conversion oracle enabled", zap.String("provider", client.Name()))
	} else {
		logger.Info("conversion oracle disabled, using rule engine only")
	}

	var store domain.ConversionRepository
	if cfg.Database.URL != "" {
		conversions, err := postgres.NewConversionStore(ctx, cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("connect conversion store: %w", err)
		}
		defer conversions.Close()
		store = conversions
		logger.Info("conversion history enabled")
	}

	recipes := usecase.NewRecipeService(t, converter, store, usecase.RecipeServiceConfig{
		OracleTimeout:    cfg.Oracle.Timeout,
		OracleMaxRetries: cfg.Oracle.MaxRetries,
	}, logger)

	handler := httpDelivery.NewHandler(recipes)
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("server listening", zap.String("addr", addr))

	return router.Run(addr)
}

type closableCache interface {
	domain.CacheRepository
	Close() error
}

func newCache(ctx context.Context, cfg *config.Config) (closableCache, error) {
	if cfg.Cache.Type == "redis" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL, "thermochef:")
		if err != nil {
			return nil, fmt.Errorf("connect redis cache: %w", err)
		}
		return redisCache, nil
	}
	return cache.NewMemoryCache(cache.DefaultCleanupInterval), nil
}
