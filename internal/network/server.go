package network

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/leengari/sillyql/internal/engine"
	"github.com/leengari/sillyql/internal/repl"
)

// shutdownTimeout bounds how long in-flight requests may finish after the
// serve context is cancelled
const shutdownTimeout = 5 * time.Second

// QueryRequest is the body of POST /query: a protocol script run as one
// session
type QueryRequest struct {
	Script string `json:"script"`
	Quiet  bool   `json:"quiet"`
}

// QueryResponse carries the session output, exactly as the REPL would
// print it without prompts
type QueryResponse struct {
	Output string `json:"output"`
}

// ErrorResponse is returned for malformed requests
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server exposes the engine over HTTP. Every request runs in its own
// session; all sessions share the engine's tables.
type Server struct {
	router *chi.Mux
	eng    *engine.Engine
	quiet  bool
}

// NewServer creates a server over eng. quiet is the default output mode for
// requests that do not ask for it.
func NewServer(eng *engine.Engine, quiet bool) *Server {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	s := &Server{router: r, eng: eng, quiet: quiet}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/tables", s.handleTableList)
	s.router.Get("/tables/{name}", s.handleTableDescribe)
	s.router.Post("/query", s.handleQuery)
}

// Router returns the handler, for tests and embedding
func (s *Server) Router() http.Handler {
	return s.router
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on an existing listener until ctx is cancelled
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("server listening", slog.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		slog.Info("shutting down server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTableList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"tables": s.eng.ListTables()})
}

func (s *Server) handleTableDescribe(w http.ResponseWriter, r *http.Request) {
	info, err := s.eng.Describe(chi.URLParam(r, "name"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid request format: %v", err)})
		return
	}

	var out bytes.Buffer
	session := repl.NewSession(s.eng, strings.NewReader(req.Script), &out, repl.Options{
		Quiet:    req.Quiet || s.quiet,
		NoPrompt: true,
	})
	if err := session.Run(r.Context()); err != nil {
		slog.Error("query session failed",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, QueryResponse{Output: out.String()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode error", "error", err)
	}
}
