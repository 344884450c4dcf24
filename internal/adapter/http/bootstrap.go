package http

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"taskapp/internal/adapter/cache"
	"taskapp/internal/adapter/database/postgres"
	database "taskapp/internal/adapter/database/sqlite"
	"taskapp/internal/adapter/http/routes"
	"taskapp/internal/core/port"
	"taskapp/pkg/config"
	"taskapp/pkg/tracing"
)

// Server owns the HTTP listener and the resources that must be
// released when it stops.
type Server struct {
	httpServer *http.Server
	cache      port.CacheRepository
}

func NewServer(metrics *tracing.AppMetrics, logger *config.AppLogger, appConfig *config.AppConfig) *Server {
	container := newContainerFromEnv(logger, metrics)

	handlers := routes.HandlersConfig{
		AuthHandler:   container.AuthHandler,
		TaskHandler:   container.TaskHandler,
		HealthHandler: container.HealthHandler,
	}

	var store port.CacheRepository

	if appConfig.CacheEnabled {
		store = newCacheStore(appConfig)
		handlers.CacheMiddleware = NewResponseCache(store, metrics).CacheMiddleware()
	}

	router := routes.SetupRouterWithConfig(handlers, metrics, logger, appConfig)

	serverPort := config.GetServerPort()

	slog.Info("Server starting",
		"port", serverPort,
		"environment", appConfig.Environment,
		"cache_enabled", appConfig.CacheEnabled,
		"https_enforced", appConfig.EnforceHTTPS)

	return &Server{
		httpServer: &http.Server{
			Addr:         ":" + serverPort,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		cache: store,
	}
}

// Start blocks until the listener stops. A regular Shutdown is not an
// error.
func (s *Server) Start() error {
	err := s.httpServer.ListenAndServe()

	if err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

// Shutdown drains in-flight requests within the context deadline and
// releases the cache store.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)

	if s.cache != nil {
		s.cache.Close()
	}

	return err
}

// newContainerFromEnv picks the postgres adapter when DATABASE_URL is
// set and falls back to the sqlite file database otherwise.
func newContainerFromEnv(logger *config.AppLogger, metrics *tracing.AppMetrics) *Container {
	if os.Getenv("DATABASE_URL") != "" {
		db, err := postgres.NewDB(context.Background())

		if err != nil {
			slog.Error("Failed to connect to postgres", "error", err)
			os.Exit(1)
		}

		return NewPostgresContainer(db, logger, metrics)
	}

	db, err := database.NewDB()

	if err != nil {
		slog.Error("Failed to open sqlite database", "error", err)
		os.Exit(1)
	}

	return NewContainer(db, logger, metrics)
}

func newCacheStore(appConfig *config.AppConfig) port.CacheRepository {
	if appConfig.RedisURL != "" {
		store, err := cache.NewRedisRepository(context.Background(), appConfig.RedisURL)

		if err == nil {
			return store
		}

		slog.Warn("Redis unavailable, using in-process cache", "error", err)
	}

	return cache.NewMemoryRepository()
}
