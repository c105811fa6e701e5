package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
)

// Server exposes liveness and readiness over HTTP for process supervisors.
// It is read-only: chat traffic stays on the line protocol.
type Server struct {
	ready func() bool
	srv   *http.Server
}

func New(addr string, ready func() bool) *Server {
	s := &Server{
		ready: ready,
	}

	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/readyz", s.handleReady).Methods(http.MethodGet)

	s.srv = &http.Server{
		Addr:    addr,
		Handler: router,
	}

	return s
}

func (s *Server) Start() {
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("health server stopped", "error", err)
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil && s.ready() {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ready"))
		return
	}

	w.WriteHeader(http.StatusServiceUnavailable)
	w.Write([]byte("initializing"))
}
