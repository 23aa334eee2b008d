// Package api exposes the HTTP invocation surface for the discovery service.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/discovery"
	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/metrics"
	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/pipeline"
)

// actionDiscoverDomain is the only action the invocation surface accepts.
const actionDiscoverDomain = "discover-domain"

// Runner abstracts the pipeline so handler tests can stub it.
type Runner interface {
	Run(ctx context.Context, req pipeline.Request) (discovery.Result, error)
}

// Server wires HTTP handlers to the pipeline.
type Server struct {
	router  chi.Router
	runner  Runner
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewServer constructs a Server with middleware and routes.
func NewServer(runner Runner, logger *zap.Logger, m *metrics.Metrics) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{runner: runner, logger: logger, metrics: m}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Use(recoverMiddleware(logger))
	r.Use(timeoutMiddleware(10 * time.Minute))

	r.Get("/healthz", s.healthz)
	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}
	r.Route("/v1", func(r chi.Router) {
		r.Post("/discover", s.discover)
	})

	s.router = r
	return s
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type discoverRequest struct {
	Action           string `json:"action"`
	TargetDomain     string `json:"targetDomain,omitempty"`
	MaxURLsPerBatch  int    `json:"maxUrlsPerBatch,omitempty"`
	MaxDiscoveryURLs int    `json:"maxDiscoveryUrls,omitempty"`
	MinPriority      int    `json:"minPriority,omitempty"`
}

func (s *Server) discover(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r.Context())

	var req discoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", requestID)
		return
	}
	if req.Action != actionDiscoverDomain {
		writeError(w, http.StatusBadRequest, "unsupported action", requestID)
		return
	}

	result, err := s.runner.Run(r.Context(), pipeline.Request{
		TargetDomain:     req.TargetDomain,
		MaxURLsPerBatch:  req.MaxURLsPerBatch,
		MaxDiscoveryURLs: req.MaxDiscoveryURLs,
		MinPriority:      req.MinPriority,
	})
	if err != nil {
		s.logger.Error("discovery run failed",
			zap.String("request_id", requestID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error(), requestID)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message, requestID string) {
	writeJSON(w, status, map[string]string{
		"error":     message,
		"requestId": requestID,
	})
}
