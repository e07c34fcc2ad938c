package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gift-suggest-core/internal/adapter/api"
	"gift-suggest-core/internal/adapter/client"
	"gift-suggest-core/internal/adapter/store"
	"gift-suggest-core/internal/config"
	"gift-suggest-core/internal/domain/repository"
	"gift-suggest-core/internal/platform/logger"
	"gift-suggest-core/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, envFound, err := config.Load(".env.dev")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Env, "gift-suggest")
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zl.Sync()
	if !envFound {
		zl.Info(".env.dev file not found, using system environment variables")
	}

	ctx := context.Background()

	// Postgres for people and gift history
	pool, err := store.NewPostgresPool(ctx, store.PostgresConfig{
		URL:            cfg.DatabaseURL,
		MaxConnections: cfg.DatabaseMaxConns,
	})
	if err != nil {
		zl.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()
	people := store.NewPostgresPeople(pool)

	// Redis for per-user token quota
	var limiter repository.UsageLimiter
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer rdb.Close()
		limiter = store.NewRedisLimiter(rdb, cfg.UserTokenLimit)
	} else {
		zl.Warn("REDIS_ADDR not set, usage limiting disabled")
	}

	generator, err := newGenerator(ctx, cfg.Generation)
	if err != nil {
		zl.Fatal("failed to init generation backend", zap.Error(err))
	}
	if err := generator.CheckCredentials(); err != nil {
		// Not fatal: requests will fail with a config error until this is fixed.
		zl.Warn("generation backend has no credentials", zap.String("provider", generator.Name()), zap.Error(err))
	}

	aggregator := usecase.NewContextAggregator(people, people, store.NewStaticOccasions(store.DefaultOccasions), zl)
	invoker := usecase.NewModelInvoker(generator, usecase.GenerationBudget, cfg.Generation.MaxOutputTokens, zl)

	// Inject the adapters into the Orchestration Layer
	orchestrator := usecase.NewOrchestrator(aggregator, invoker, limiter, zl)

	// Initialize API Layer (Delivery Layer)
	app := fiber.New(fiber.Config{
		AppName: "Gift Suggestion Service",
	})

	handler := api.NewSuggestionHandler(orchestrator, zl)
	auth := api.NewAuthMiddleware([]byte(cfg.JWTSecret), zl)
	api.SetupRouter(app, handler, auth, api.BuildInfo{Version: cfg.AppVersion, Env: cfg.Env})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go shutdownOnSignal(app, sig, shutdownTimeout, zl)

	// Start Server
	zl.Info("gift suggestion service running", zap.String("port", cfg.Port), zap.String("provider", generator.Name()))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

// shutdownOnSignal stops app after the first signal, letting in-flight
// requests finish within timeout.
func shutdownOnSignal(app *fiber.App, sig <-chan os.Signal, timeout time.Duration, zl *zap.Logger) {
	s := <-sig
	zl.Info("shutting down", zap.String("signal", s.String()))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		zl.Error("shutdown failed", zap.Error(err))
	}
}

func newGenerator(ctx context.Context, cfg config.GenerationConfig) (repository.Generator, error) {
	if cfg.Provider == config.ProviderGemini {
		return client.NewGeminiClient(ctx, client.GeminiConfig{
			APIKey:   cfg.GeminiAPIKey,
			Project:  cfg.GoogleCloudProject,
			Location: cfg.GoogleCloudLocation,
			Model:    cfg.GeminiModel,
		})
	}
	return client.NewOpenAIClient(client.OpenAIConfig{
		APIKey:          cfg.OpenAIAPIKey,
		BaseURL:         cfg.OpenAIBaseURL,
		Model:           cfg.OpenAIModel,
		ReasoningEffort: cfg.OpenAIReasoningEffort,
	}), nil
}
