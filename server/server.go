package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gridbase/command"
	"gridbase/registry"
	"gridbase/tags"
)

// Server is the HTTP command surface: a thin transport wrapper around
// command.Execute, the registry it mutates, and the tags file it
// exposes read-only.
type Server struct {
	reg      *registry.Registry
	env      command.Env
	log      *zap.Logger
	tagsPath string
	metrics  *metrics
	router   *mux.Router
}

// New builds a Server and wires its routes.
func New(reg *registry.Registry, env command.Env, tagsPath string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	promReg := prometheus.NewRegistry()
	s := &Server{
		reg:      reg,
		env:      env,
		log:      log,
		tagsPath: tagsPath,
		metrics:  newMetrics(promReg),
	}
	s.router = mux.NewRouter()
	s.router.HandleFunc("/api/execute", s.handleExecute).Methods(http.MethodPost)
	s.router.HandleFunc("/api/tags", s.handleTags).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.HandlerFor(promReg, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type executeRequest struct {
	Command command.Name   `json:"command"`
	Params  command.Params `json:"params"`
}

type executeResponse struct {
	Table   interface{} `json:"table,omitempty"`
	NewName string      `json:"newName,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	start := time.Now()
	res, err := command.Execute(r.Context(), s.reg, req.Command, req.Params, s.env, s.log)
	s.recordMetrics(req.Command, err, time.Since(start))

	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(executeResponse{Table: res.Table, NewName: res.NewName})
}

func (s *Server) recordMetrics(name command.Name, err error, elapsed time.Duration) {
	s.metrics.commandsTotal.WithLabelValues(string(name)).Inc()
	s.metrics.commandDuration.WithLabelValues(string(name)).Observe(elapsed.Seconds())
	if err != nil {
		kind := "unknown"
		if ce, ok := command.AsError(err); ok {
			kind = string(ce.Kind)
		}
		s.metrics.commandErrors.WithLabelValues(string(name), kind).Inc()
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if ce, ok := command.AsError(err); ok {
		switch ce.Kind {
		case command.NotFound:
			status = http.StatusNotFound
		case command.Exists, command.TypeMismatch, command.ValidationFailure, command.BadParameter, command.ExpressionError:
			status = http.StatusBadRequest
		case command.IoError:
			status = http.StatusInternalServerError
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(executeResponse{Error: err.Error()})
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	list, err := tags.Load(s.tagsPath)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// ListenAndServe starts the HTTP server on addr until ctx is
// cancelled. If the server's Env carries a rules.Cache and a non-empty
// DataDir, a watcher goroutine
// also runs for the duration, invalidating cached rule sets as soon as a
// .RUL file under DataDir changes on disk, per SPEC_FULL.md's long-running
// server behavior.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if s.env.Rules != nil && s.env.DataDir != "" {
		go func() {
			if err := s.env.Rules.Watch(ctx, s.env.DataDir, s.log); err != nil {
				s.log.Warn("rule file watcher stopped", zap.Error(err))
			}
		}()
	}

	srv := &http.Server{Addr: addr, Handler: s}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
	s.log.Info("gridbase server listening", zap.String("addr", addr))
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
