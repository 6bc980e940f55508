package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"CreditSentinel/internal/scheduler"
	"CreditSentinel/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server serves the read API over already-persisted score records.
type Server struct {
	store      store.Store
	sched      *scheduler.Scheduler
	httpServer *http.Server
}

// New creates the API server. sched may be nil to disable the manual refresh
// endpoint.
func New(addr string, st store.Store, sched *scheduler.Scheduler) *Server {
	s := &Server{store: st, sched: sched}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/health", s.handleHealth)
	r.Get("/api/companies", s.handleListCompanies)
	r.Get("/api/companies/{name}", s.handleCompanyDetail)
	r.Post("/api/refresh", s.handleRefresh)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	log.Printf("[INFO] api server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("[INFO] shutting down api server")
	return s.httpServer.Shutdown(ctx)
}
