package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/shahar-caura/textuml/internal/config"
	"github.com/shahar-caura/textuml/internal/metrics"
	"github.com/shahar-caura/textuml/web"
)

// Server is the textuml HTTP API and web UI server.
type Server struct {
	cfg       config.ServerConfig
	version   string
	extractor Extractor
	metrics   *metrics.Registry
	logger    *slog.Logger
}

// New creates a Server. reg may be nil to disable metrics.
func New(cfg config.ServerConfig, extractor Extractor, reg *metrics.Registry, version string, logger *slog.Logger) *Server {
	return &Server{
		cfg:       cfg,
		version:   version,
		extractor: extractor,
		metrics:   reg,
		logger:    logger,
	}
}

// Handler assembles the full route table and middleware stack.
func (s *Server) Handler(ctx context.Context) (http.Handler, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	router, err := NewRouter(doc)
	if err != nil {
		return nil, err
	}
	docHandler, err := openAPIHandler(doc)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	// Wire up generated strict handlers.
	h := &Handlers{
		Version:   s.version,
		Extractor: s.extractor,
		Metrics:   s.metrics,
		Logger:    s.logger,
	}
	strictHandler := NewStrictHandlerWithOptions(h, nil, StrictHTTPServerOptions{
		RequestErrorHandlerFunc:  requestErrorHandler(s.logger),
		ResponseErrorHandlerFunc: responseErrorHandler(s.logger),
	})
	HandlerWithOptions(strictHandler, StdHTTPServerOptions{
		BaseURL:     "/api",
		BaseRouter:  mux,
		Middlewares: []MiddlewareFunc{requireData},
	})

	mux.Handle("GET /api/openapi.json", docHandler)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}

	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		writeFailure(w, http.StatusNotFound, "No such endpoint: "+r.Method+" "+r.URL.Path)
	})

	// SPA catch-all: serves embedded static files, falls back to index.html.
	mux.Handle("/", SPAHandler(web.DistFS))

	return chain(mux,
		withRequestID,
		observe(s.metrics, s.logger),
		cors(s.cfg.CORSOrigin),
		limitBody(s.cfg.MaxBodyBytes),
		validateRequests(router),
	), nil
}

// Run starts the HTTP server and blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	handler, err := s.Handler(ctx)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", s.cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       s.cfg.ReadTimeout.Duration,
		ReadHeaderTimeout: s.cfg.ReadTimeout.Duration,
		WriteTimeout:      s.cfg.WriteTimeout.Duration,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	// Start listener so we can log the actual port.
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	s.logger.Info("server started", "addr", ln.Addr().String(), "version", s.version)

	shutdownTimeout := s.cfg.ShutdownTimeout.Duration
	if shutdownTimeout <= 0 {
		shutdownTimeout = 5 * time.Second
	}

	// Graceful shutdown on context cancellation.
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("shutdown incomplete", "error", err)
		}
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	<-done
	s.logger.Info("server stopped")
	return nil
}
