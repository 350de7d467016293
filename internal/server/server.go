package server

import (
	"net/http"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/nulzo/media-relay/internal/config"
	"github.com/nulzo/media-relay/internal/core/services"
	"github.com/nulzo/media-relay/internal/server/middleware"
	"go.uber.org/zap"
)

type Server struct {
	router   *gin.Engine
	config   *config.Config
	logger   *zap.Logger
	store    *services.ConfigStore
	resolver *services.Resolver
}

func New(cfg *config.Config, logger *zap.Logger, store *services.ConfigStore, resolver *services.Resolver) *Server {

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(ginzap.RecoveryWithZap(logger, true))
	engine.Use(middleware.Logger(logger))

	if cfg.Tracing.Enabled {
		engine.Use(middleware.Tracing("media-relay"))
	}

	s := &Server{
		router:   engine,
		config:   cfg,
		logger:   logger,
		store:    store,
		resolver: resolver,
	}

	s.SetupRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}
