package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ValueSentinel/internal/config"
	"ValueSentinel/internal/model"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Valuer computes a single valuation. Satisfied by valuation.Service.
type Valuer interface {
	Valuate(ctx context.Context, req *model.ValuationRequest) *model.ValuationResult
}

// Server manages the HTTP server and routes.
type Server struct {
	cfg    *config.Config
	svc    Valuer
	router *gin.Engine
	server *http.Server
}

// New builds the router and wraps it in an http.Server.
func New(cfg *config.Config, svc Valuer) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		cfg: cfg,
		svc: svc,
	}
	s.router = s.setupRoutes()

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: s.router,
		// Write timeout covers a full batch of upstream calls.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) setupRoutes() *gin.Engine {
	r := gin.Default()

	r.GET("/", s.handleIndex)
	r.GET("/health", s.handleHealth)

	api := r.Group("/api")
	{
		api.POST("/valuation", s.handleValuation)
		api.POST("/valuation/batch", s.handleBatch)
	}

	return r
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves HTTP until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	log.Printf("[INFO] HTTP server listening on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Printf("[INFO] shutting down HTTP server")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
