// Package server exposes the supply pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/abhisek/quizbuddy/internal/catalog"
	"github.com/abhisek/quizbuddy/internal/logger"
	"github.com/abhisek/quizbuddy/internal/quizgen"
	"github.com/abhisek/quizbuddy/internal/supply"
)

// Supplier serves question batches and extends rounds that are about to
// run out.
type Supplier interface {
	Supply(ctx context.Context, req supply.Request) (*supply.Result, error)
	TopUp(ctx context.Context, category string, remaining []quizgen.Question) []quizgen.Question
}

// PoolSizer reports pool sizes for diagnostics.
type PoolSizer interface {
	Size(ctx context.Context, category string) int
}

// CategoryLister lists the menu categories.
type CategoryLister interface {
	Categories() []catalog.Category
}

// Server holds the HTTP handlers.
type Server struct {
	supplier   Supplier
	pool       PoolSizer
	categories CategoryLister
	log        *logger.Logger
}

// New creates a Server.
func New(s Supplier, p PoolSizer, c CategoryLister, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{supplier: s, pool: p, categories: c, log: log}
}

// Handler returns the routed handler wrapped in CORS.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed"})
	})

	r.HandleFunc("/api/generate-questions", s.GenerateQuestions).Methods("POST")
	r.HandleFunc("/api/top-up", s.TopUp).Methods("POST")
	r.HandleFunc("/api/categories", s.ListCategories).Methods("GET")
	r.HandleFunc("/api/pool/{category}", s.PoolStatus).Methods("GET")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"latency_ms", time.Since(start).Milliseconds(),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
