package server

import (
	"github.com/parcelscope/parcelscope/internal/server/handlers"
)

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes() {
	s.router.Get("/health", handlers.HealthHandler)
	s.router.Get("/health/live", handlers.LivenessHandler)
	s.router.Get("/health/ready", handlers.ReadinessHandler)

	s.router.Get("/version", handlers.VersionHandler)

	s.router.Get("/metrics", MetricsHandler)

	s.router.Post("/api/v1/lookups", handlers.LookupHandler)
}
