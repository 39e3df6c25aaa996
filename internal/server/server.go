// Package server exposes the title cache over HTTP. Each request performs
// its own indexing run against the shared store, the same way concurrent
// page renders each instantiate the plugin in the host framework.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/vertextoedge/site-title-cache/internal/domain"
	"github.com/vertextoedge/site-title-cache/internal/extract"
	"github.com/vertextoedge/site-title-cache/internal/port"
	"github.com/vertextoedge/site-title-cache/internal/titles"
)

// Config contains HTTP server configuration
type Config struct {
	BindAddr     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		BindAddr:     "0.0.0.0:8080",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// ScanFunc produces a fresh authoritative file index for one request.
type ScanFunc func() (port.FileIndex, error)

// Server represents the HTTP API server
type Server struct {
	config   *Config
	store    port.TitleStore
	scan     ScanFunc
	registry *extract.Registry
	logger   *zap.Logger
	server   *http.Server
}

// New creates a new HTTP server
func New(cfg *Config, store port.TitleStore, scan ScanFunc, registry *extract.Registry, logger *zap.Logger) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if registry == nil {
		registry = extract.NewRegistry()
	}

	s := &Server{
		config:   cfg,
		store:    store,
		scan:     scan,
		registry: registry,
		logger:   logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/titles", s.handleTitles)
	mux.HandleFunc("/reindex", s.handleReindex)

	s.server = &http.Server{
		Addr:         cfg.BindAddr,
		Handler:      LoggingMiddleware(logger)(mux),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// Start begins listening for HTTP requests. It blocks until the server
// stops.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.config.BindAddr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// run performs one indexing pass against a fresh scan and returns the
// manager holding the resulting mapping.
func (s *Server) run(d domain.ReindexDirective) (*titles.Manager, *titles.RunResult, error) {
	idx, err := s.scan()
	if err != nil {
		return nil, nil, err
	}

	m := titles.New(s.store, idx, s.registry, s.logger)
	result := m.Run(d)
	return m, result, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTitles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	m, _, err := s.run(domain.ReindexDirective{Kind: domain.DirectiveNone})
	if err != nil {
		s.logger.Error("failed to index content", zap.Error(err))
		http.Error(w, "failed to index content", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, m.Titles())
}

// reindexResponse summarizes a reindex run for the caller
type reindexResponse struct {
	Directive string `json:"directive"`
	Category  string `json:"category,omitempty"`
	Loaded    bool   `json:"loaded"`
	Mutated   int    `json:"mutated"`
	Entries   int    `json:"entries"`
	Saved     bool   `json:"saved"`
}

func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	d := domain.ParseDirective(
		paramSet(query.Get("reindex_all")),
		paramSet(query.Get("reindex")),
		query.Get("reindex_cat"),
		paramSet(query.Get("delindex")),
	)

	_, result, err := s.run(d)
	if err != nil {
		s.logger.Error("failed to index content", zap.Error(err))
		http.Error(w, "failed to index content", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, reindexResponse{
		Directive: result.Directive.Kind.String(),
		Category:  result.Directive.Category,
		Loaded:    result.LoadedOK,
		Mutated:   result.Mutated,
		Entries:   result.Entries,
		Saved:     result.Saved,
	})
}

// paramSet interprets a request parameter as a boolean flag
func paramSet(value string) bool {
	switch value {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
