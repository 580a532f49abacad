// Package server provides HTTP server management and lifecycle handling for the vaccines API.
// It includes server setup, middleware configuration, route management, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/giygas/vaccines-api/config"
	"github.com/giygas/vaccines-api/interfaces"
	"github.com/giygas/vaccines-api/logging"
	"github.com/giygas/vaccines-api/metrics"
)

// Server represents the HTTP server
type Server struct {
	server  *http.Server
	router  chi.Router
	handler interfaces.HTTPHandler
	limiter *RateLimiter
	config  *config.Config
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, handler interfaces.HTTPHandler) *Server {
	router := chi.NewRouter()
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		server: &http.Server{
			Handler:           router,
			Addr:              cfg.Address + ":" + cfg.Port,
			ReadTimeout:       15 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
			MaxHeaderBytes:    int(cfg.MaxHeaderSize),
		},
		router:  router,
		handler: handler,
		limiter: NewRateLimiter(),
		config:  cfg,
		ctx:     ctx,
		cancel:  cancel,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Router exposes the configured router, mostly for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// setupMiddleware configures all middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	if s.config.BlockDirectAccess {
		// Needs the original RemoteAddr, so it runs before RealIPMiddleware.
		s.router.Use(BlockDirectAccessMiddleware)
	}
	s.router.Use(RealIPMiddleware)
	s.router.Use(logging.LoggingMiddleware(logging.Logger()))
	s.router.Use(middleware.RedirectSlashes)
	s.router.Use(middleware.Recoverer)
	s.router.Use(metrics.Metrics)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Location", "X-RateLimit-Remaining"},
		MaxAge:         300,
	}))
	s.router.Use(RequestSizeMiddleware(s.config))
	s.router.Use(s.limiter.Middleware)
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	h := s.handler

	s.router.Route("/pathogens/{id}", func(r chi.Router) {
		r.Get("/", h.ServePathogen)
		r.Get("/vaccines", h.ServePathogenVaccines)
		r.Get("/candidates", h.ServePathogenCandidates)
	})

	s.router.Get("/vaccines/name/{name}", h.ServeVaccineByName)
	s.router.Route("/vaccines/{id}", func(r chi.Router) {
		r.Get("/", h.ServeVaccine)
		r.Get("/pathogens", h.ServeVaccinePathogens)
		r.Get("/manufacturers", h.ServeVaccineManufacturers)
		r.Get("/licensers", h.ServeVaccineLicensers)
	})

	s.router.Get("/manufacturers/name/{name}", h.ServeManufacturerByName)
	s.router.Route("/manufacturers/{id}", func(r chi.Router) {
		r.Get("/", h.ServeManufacturer)
		r.Get("/vaccines", h.ServeManufacturerVaccines)
		r.Get("/pipeline", h.ServeManufacturerPipeline)
	})

	s.router.Get("/licensers/acronym/{acronym}", h.ServeLicenserByAcronym)
	s.router.Get("/licensers/acronym/{acronym}/vaccines", h.ServeLicenserVaccinesByAcronym)
	s.router.Route("/licensers/{id}", func(r chi.Router) {
		r.Get("/", h.ServeLicenser)
		r.Get("/vaccines", h.ServeLicenserVaccines)
	})

	s.router.Get("/browse", h.ServeTabs)
	s.router.Get("/browse/{tab}", h.Browse)

	s.router.Route("/compare", func(r chi.Router) {
		r.Get("/fields", h.ServeCompareFields)
		r.Post("/table", h.BuildCompareTable)
		r.Post("/sessions", h.CreateCompareSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", h.GetCompareSession)
			r.Delete("/", h.DeleteCompareSession)
			r.Post("/vaccines/{vaccineId}/toggle", h.ToggleSessionVaccine)
			r.Post("/vaccines/{vaccineId}/licensers/{acronym}/toggle", h.ToggleSessionLicenser)
			r.Post("/fields", h.AddSessionField)
			r.Put("/fields", h.SetSessionFields)
			r.Delete("/fields/{field}", h.RemoveSessionField)
			r.Get("/table", h.ServeSessionTable)
		})
	})

	s.router.Get("/health", h.HealthCheck)
	s.router.Handle("/metrics", promhttp.Handler())
}

// Start serves until Shutdown is called. It returns nil on a clean shutdown.
func (s *Server) Start() error {
	go s.limiter.Run(s.ctx)

	logging.Info(fmt.Sprintf("Starting server at: %s:%s", s.config.Address, s.config.Port))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.cancel()
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")
	s.cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
		if err := s.server.Close(); err != nil {
			logging.Error("Server close error", "error", err)
			return err
		}
	}

	logging.Info("Server shutdown complete")
	return nil
}
