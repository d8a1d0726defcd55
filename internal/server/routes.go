package server

import (
	"log/slog"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"locationservice/internal/handlers"
	"locationservice/internal/handlers/api"
	"locationservice/internal/locator"
	"locationservice/internal/middleware"
	"locationservice/internal/resolver"
)

// Store is the location database as the routes use it.
type Store interface {
	resolver.Lookup
	middleware.OwnerChecker
	locator.LocationStore
	handlers.Pinger
}

// RegisterRoutes registers all application routes. recorder may be nil to
// disable search statistics.
func (s *Server) RegisterRoutes(store Store, recorder locator.Recorder) {
	var rules resolver.RuleSource
	if rs, ok := store.(resolver.RuleSource); ok {
		rules = rs
	}

	res := resolver.New(store, rules, resolver.Config{
		MaxWords:  s.Cfg.MaxCallNoWords,
		Collation: s.Cfg.Collation,
		Logger:    slog.Default(),
	})
	svc := locator.New(res, store, recorder, s.Cfg.ResolveTimeout)

	// Initialize middleware
	validateLocate := middleware.ValidateLocate(store, s.Cfg.DefaultLang)

	// Initialize handlers
	locateHandler := handlers.NewLocateHandler(svc, s.Cfg)
	apiLocateHandler := api.NewLocateHandler(svc, store, s.Cfg.DefaultLang)
	probeHandler := handlers.NewProbeHandler(store, s.Cfg.MaxCallNoWords)

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Location page
	s.App.Get("/locate", validateLocate, locateHandler.Locate)

	// JSON API
	v1 := s.App.Group("/api/v1")
	v1.Get("/locate", validateLocate, apiLocateHandler.Locate)
	v1.Post("/locate/batch", apiLocateHandler.Batch)
}
