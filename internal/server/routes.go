package server

import (
	"github.com/nulzo/media-relay/internal/server/middleware"
	v1 "github.com/nulzo/media-relay/internal/server/v1"
)

func (s *Server) SetupRoutes() {
	s.router.Use(middleware.CORS())
	s.router.Use(middleware.ErrorHandler(s.logger))

	// Health Check (Public)
	healthHandler := v1.NewHealthHandler()
	s.router.GET("/health", healthHandler.Health)

	// Admin config surface, guarded by static keys and a rate limit
	limiter := middleware.NewRateLimiter(
		s.config.RateLimit.RequestsPerSecond,
		s.config.RateLimit.Burst,
		s.logger,
	)

	configHandler := v1.NewConfigHandler(s.store)
	admin := s.router.Group("/config")
	admin.Use(middleware.Auth(s.config.Server.APIKeys))
	admin.Use(limiter.Middleware())
	{
		admin.GET("", configHandler.Get)
		admin.POST("", configHandler.Save)
	}

	// Everything else is a candidate route key. The resolver declines
	// reserved and unknown keys, which end up as a plain 404 here.
	resolveHandler := v1.NewResolveHandler(s.resolver)
	s.router.NoRoute(resolveHandler.Resolve)
}
