// internal/server/server.go

// Package server exposes the generation pipeline over HTTP: the two
// generation endpoints, health and service info, Prometheus metrics,
// and the /api aliases the original web client calls.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pitchforge/internal/common/config"
	"pitchforge/internal/common/logger"
	"pitchforge/internal/pipeline"
)

type Server struct {
	cfg       *config.Config
	generator *pipeline.Generator
	logger    logger.Logger
	httpSrv   *http.Server
}

func New(cfg *config.Config, generator *pipeline.Generator, log logger.Logger) *Server {
	return &Server{
		cfg:       cfg,
		generator: generator,
		logger:    log.WithFields(map[string]interface{}{"component": "server"}),
	}
}

// Handler builds the full route table wrapped in the middleware chain.
// Exposed separately from Start so tests can drive it directly.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.routes(mux)
	return s.recoveryMiddleware(corsMiddleware(requestIDMiddleware(s.accessLogMiddleware(mux))))
}

func (s *Server) routes(mux *http.ServeMux) {
	generate := trackInFlight("generate", http.HandlerFunc(s.handleGenerate))
	generateDetailed := trackInFlight("generate-detailed", http.HandlerFunc(s.handleGenerateDetailed))

	mux.Handle("POST /generate", generate)
	mux.Handle("POST /generate-detailed", generateDetailed)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.Handle("GET /metrics", promhttp.Handler())

	// The original web client reaches everything under /api.
	mux.Handle("POST /api/generate", generate)
	mux.Handle("POST /api/generate-detailed", generateDetailed)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/test-mock", s.handleTestMock)
}

// Start blocks serving HTTP until the listener fails or Shutdown runs.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  config.GetDuration(s.cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(s.cfg.Server.WriteTimeout),
	}

	s.logger.Info("server listening", map[string]interface{}{
		"addr":     addr,
		"mockMode": s.cfg.Generation.MockMode,
		"provider": s.cfg.PrimaryProvider(),
	})
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}
