package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/kaviyasaravananibm/vibe-narrative/internal/adapters/guard"
	httpadapter "github.com/kaviyasaravananibm/vibe-narrative/internal/adapters/http"
	"github.com/kaviyasaravananibm/vibe-narrative/internal/adapters/llm/gateway"
	"github.com/kaviyasaravananibm/vibe-narrative/internal/adapters/prompts"
	"github.com/kaviyasaravananibm/vibe-narrative/internal/adapters/web"
	"github.com/kaviyasaravananibm/vibe-narrative/internal/app"
	"github.com/kaviyasaravananibm/vibe-narrative/internal/config"
	"github.com/kaviyasaravananibm/vibe-narrative/internal/ports"
)

// metricsRoutes exposes the Prometheus registry.
type metricsRoutes struct{}

func (metricsRoutes) Register(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	catalog, err := loadPrompts(cfg.PromptsFile)
	if err != nil {
		logger.Error("failed to load prompts", "error", err)
		os.Exit(1)
	}

	if cfg.AIAPIKey == "" {
		logger.Warn("upstream credential missing, generation requests will fail", "key", gateway.CredentialName)
	}

	writer := gateway.NewClient(
		&http.Client{Timeout: cfg.AITimeout},
		cfg.AIAPIKey,
		cfg.AIBaseURL,
		cfg.AIModel,
		logger,
	)

	sessionGuard, closeGuard, err := newSessionGuard(cfg, logger)
	if err != nil {
		logger.Error("failed to set up session guard", "backend", cfg.GuardBackend, "error", err)
		os.Exit(1)
	}
	defer closeGuard()

	svc := app.NewStoryService(catalog, writer, sessionGuard, cfg.AIModel)

	renderer, err := web.NewTemplateRenderer()
	if err != nil {
		logger.Error("failed to load templates", "error", err)
		os.Exit(1)
	}

	e := httpadapter.NewServer(logger,
		httpadapter.NewHandler(svc),
		web.NewHandler(renderer, "/generate-story"),
		metricsRoutes{},
	)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server",
			"addr", cfg.HTTPAddr,
			"model", cfg.AIModel,
			"guard", cfg.GuardBackend,
		)
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func loadPrompts(path string) (*prompts.Store, error) {
	if path != "" {
		return prompts.NewFileStore(path)
	}
	return prompts.NewEmbeddedStore()
}

func newSessionGuard(cfg config.Config, logger *slog.Logger) (ports.SessionGuard, func(), error) {
	switch cfg.GuardBackend {
	case config.GuardMemory:
		return guard.NewMemoryGuard(), func() {}, nil
	case config.GuardRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opts)
		g := guard.NewRedisGuard(rdb, cfg.GuardTTL, logger)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := g.Ping(ctx); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		return g, func() { _ = rdb.Close() }, nil
	default:
		return nil, func() {}, nil
	}
}
