package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nulzo/media-relay/cmd"
	"github.com/nulzo/media-relay/internal/config"
	"github.com/nulzo/media-relay/internal/core/domain"
	"github.com/nulzo/media-relay/internal/core/services"
	"github.com/nulzo/media-relay/internal/httpclient"
	"github.com/nulzo/media-relay/internal/platform/logger"
	"github.com/nulzo/media-relay/internal/platform/otel"
	"github.com/nulzo/media-relay/internal/server"
	"github.com/nulzo/media-relay/internal/store"
	redisstore "github.com/nulzo/media-relay/internal/store/redis"
	"github.com/nulzo/media-relay/internal/store/sqlite"
	"go.uber.org/zap"
)

func main() {
	// 1. Logger
	logger.Initialize(logger.DefaultConfig())
	log := logger.Get()
	defer logger.Sync()

	cmd.CheckForUpdates()

	// 2. Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	domain.InitValidator()

	// 3. Tracing (optional)
	if cfg.Tracing.Enabled {
		shutdown, err := otel.InitTracer("media-relay", log, os.Stdout)
		if err != nil {
			log.Warn("Failed to initialize tracing", zap.Error(err))
		} else {
			defer func() {
				_ = shutdown(context.Background())
			}()
		}
	}

	// 4. Persistence backends, priority order: local sqlite first, then
	// redis. Either (or both) may be absent; the relay degrades to
	// memory-only configuration.
	var backends []store.TableStore
	if cfg.Sqlite.Enabled {
		sqliteStore, err := sqlite.NewSQLiteStorage(cfg.Sqlite.DSN)
		if err != nil {
			log.Warn("Sqlite store unavailable", zap.Error(err))
		} else {
			backends = append(backends, sqliteStore)
		}
	}
	if cfg.Redis.Enabled {
		backends = append(backends, redisstore.NewRedisStore(redisstore.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Key:      cfg.Redis.Key,
		}))
	}
	defer func() {
		for _, backend := range backends {
			_ = backend.Close()
		}
	}()

	// 5. Route table
	configStore := services.NewConfigStore(log, backends...)
	configStore.Load(context.Background())
	seedRoutes(configStore, cfg.Server.SeedFile, log)

	// 6. Resolution engine
	extractor := services.NewExtractor(services.SearchOrder{
		Containers: cfg.Extractor.Containers,
		Fields:     cfg.Extractor.Fields,
	})
	upstream := httpclient.New(cfg.Upstream.Timeout)
	resolver := services.NewResolver(configStore, extractor, upstream, log)

	// 7. HTTP server with graceful shutdown
	srv := server.New(cfg, log, configStore, resolver)
	httpServer := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: srv.Handler(),
	}

	go func() {
		log.Info("Starting media-relay",
			zap.String("port", cfg.Server.Port),
			zap.Int("routes", len(configStore.Get().Routes)),
		)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
}

// seedRoutes installs a starter route table from a JSON file when no
// persisted configuration exists yet.
func seedRoutes(configStore *services.ConfigStore, path string, log *zap.Logger) {
	if path == "" || len(configStore.Get().Routes) > 0 {
		return
	}

	body, err := os.ReadFile(path)
	if err != nil {
		log.Warn("Failed to read seed file", zap.String("path", path), zap.Error(err))
		return
	}

	var table domain.RouteTable
	if err := json.Unmarshal(body, &table); err != nil {
		log.Warn("Failed to parse seed file", zap.String("path", path), zap.Error(err))
		return
	}

	result, err := configStore.Replace(context.Background(), &table)
	if err != nil {
		log.Warn("Seed table rejected", zap.Error(err))
		return
	}

	log.Info("Seeded route table",
		zap.String("path", path),
		zap.Int("routes", len(table.Routes)),
		zap.String("durability", string(result.Durability)),
	)
}
