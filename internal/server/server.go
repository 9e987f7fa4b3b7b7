// Package server exposes the tax calculator over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"fjacquet/taxcalc/internal/currencyutils"
	"fjacquet/taxcalc/internal/logging"
	"fjacquet/taxcalc/internal/metrics"
	"fjacquet/taxcalc/internal/models"
	"fjacquet/taxcalc/internal/taxengine"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// Engine is the calculator surface the HTTP handlers use.
type Engine interface {
	Calculate(input models.CalculationInput) (models.CalculationResult, error)
	Rules() *taxengine.RuleSet
}

// Options configures the HTTP server.
type Options struct {
	Port     int
	Currency string
}

// Server serves the calculation API.
type Server struct {
	options Options
	router  *gin.Engine
	engine  Engine
	metrics *metrics.Metrics
	logger  logging.Logger
}

// NewServer builds the router. m may be nil, in which case /metrics is not served.
func NewServer(engine Engine, m *metrics.Metrics, logger logging.Logger, opts Options) *Server {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if opts.Currency == "" {
		opts.Currency = currencyutils.DefaultSymbol
	}

	router := gin.New()
	router.Use(gin.Recovery(), CorrelationIDMiddleware(), RequestLogger(logger))

	s := &Server{
		options: opts,
		router:  router,
		engine:  engine,
		metrics: m,
		logger:  logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.Health)
	if s.metrics != nil {
		s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/calculate", s.Calculate)
		v1.GET("/brackets", s.Brackets)
	}
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.options.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", logging.F("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
