// Package server exposes projections and the history log over HTTP.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rgehrsitz/finbuddy/internal/calculation"
	"github.com/rgehrsitz/finbuddy/internal/config"
	"github.com/rgehrsitz/finbuddy/internal/history"
	"github.com/rgehrsitz/finbuddy/internal/narrative"
	"github.com/rgehrsitz/finbuddy/internal/observability/metrics"
	"github.com/rgehrsitz/finbuddy/internal/output"
)

const shutdownTimeout = 10 * time.Second

// Server wires the HTTP handlers to their collaborators.
type Server struct {
	Engine    *calculation.CalculationEngine
	History   *history.Store
	Generator narrative.Generator
	Settings  config.Settings
	Logger    *log.Logger

	// Formatters resolves report formats; output.GetFormatterByName when nil.
	Formatters func(name string) output.Formatter
}

// New constructs a server. A nil generator disables narratives.
func New(settings config.Settings, engine *calculation.CalculationEngine, store *history.Store, gen narrative.Generator, logger *log.Logger) (*Server, error) {
	if engine == nil {
		return nil, errors.New("server: nil engine")
	}
	if store == nil {
		return nil, errors.New("server: nil history store")
	}
	if logger == nil {
		logger = log.New(log.Writer(), "", log.LstdFlags)
	}
	metrics.Init()
	return &Server{Engine: engine, History: store, Generator: gen, Settings: settings, Logger: logger}, nil
}

// Handler returns the root handler with request logging applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/v1/projections", &ProjectionsHandler{server: s})
	mux.Handle("/api/v1/history", &HistoryHandler{store: s.History})
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return loggingMiddleware(mux, s.Logger)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Printf("http listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.Logger.Printf("http shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
