package httpapp

import (
	"context"
	"net/http"
	"sync"

	"github.com/labstack/echo/v5"
	"github.com/opsdeck/opsdeck/internal/config"
	"github.com/opsdeck/opsdeck/internal/history"
	"github.com/opsdeck/opsdeck/internal/http/handlers"
	"github.com/opsdeck/opsdeck/internal/refresh"
)

// Server is the HTTP server wrapper for the dashboard API.
type Server struct {
	h *handlers.Handlers
	e *echo.Echo

	mu  sync.Mutex
	srv *http.Server
}

// NewServer creates the dashboard API server. The history recorder may
// be nil when no database is configured.
func NewServer(cfg config.Config, ctrl *refresh.Controller, hist *history.Recorder) (*Server, error) {
	h := &handlers.Handlers{Cfg: cfg, Controller: ctrl, History: hist}
	s := &Server{h: h, e: echo.New()}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.e.GET("/healthz", s.h.HandleHealthz)

	api := s.e.Group("/api")
	api.GET("/telemetry", s.h.HandleTelemetry)
	api.GET("/status", s.h.HandleStatus)
	api.GET("/status/stream", s.h.HandleStatusStream)
	api.POST("/refresh", s.h.HandleRefresh)
	api.GET("/refresh/history", s.h.HandleRefreshHistory)
}

// Start starts the HTTP server.
func (s *Server) Start(addr string) error {
	return s.StartServer(&http.Server{Addr: addr})
}

// StartServer starts the HTTP server with a custom http.Server.
func (s *Server) StartServer(server *http.Server) error {
	server.Handler = s.e
	s.mu.Lock()
	s.srv = server
	s.mu.Unlock()
	return server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
