package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/montage"
	"github.com/aretw0/montage/internal/dto"
	"github.com/aretw0/montage/internal/validator"
	"github.com/aretw0/montage/pkg/domain"
	"github.com/aretw0/montage/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodyBytes bounds request documents.
const maxBodyBytes = 8 << 20

// Server exposes a Synthesizer over HTTP. It holds no per-request state.
type Server struct {
	Engine   ports.Synthesizer
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// HandlerOption configures the handler.
type HandlerOption func(*Server)

// WithGatherer serves the gatherer's metrics on GET /metrics.
func WithGatherer(g prometheus.Gatherer) HandlerOption {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) HandlerOption {
	return func(s *Server) {
		if l != nil {
			s.Logger = l
		}
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine ports.Synthesizer, opts ...HandlerOption) http.Handler {
	s := &Server{Engine: engine, Logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Post("/trace", s.Trace)
	r.Post("/transition", s.Transition)
	r.Post("/validate", s.Validate)
	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": montage.Version})
}

// TraceResponse is the body of a successful POST /trace.
type TraceResponse struct {
	GraphID string              `json:"graph_id"`
	Chains  []dto.ChainDocument `json:"chains"`
}

// Trace handles the POST /trace request.
func (s *Server) Trace(w http.ResponseWriter, r *http.Request) {
	doc, g, ok := s.decode(w, r)
	if !ok {
		return
	}

	chains, err := s.Engine.Trace(r.Context(), g)
	if err != nil {
		s.fail(w, "Trace", err)
		return
	}

	s.writeJSON(w, http.StatusOK, TraceResponse{GraphID: doc.Graph.ID, Chains: dto.FromChains(chains)})
}

// Transition handles the POST /transition request. A selection in the body
// restricts synthesis to the selected vertices.
func (s *Server) Transition(w http.ResponseWriter, r *http.Request) {
	doc, g, ok := s.decode(w, r)
	if !ok {
		return
	}

	var (
		v   domain.Vertex
		err error
	)
	if doc.Selection != nil {
		v, err = s.Engine.CreateTransitionFromSelection(r.Context(), g, *doc.Selection)
	} else {
		v, err = s.Engine.CreateTransition(r.Context(), g)
	}
	if err != nil {
		s.fail(w, "Transition", err)
		return
	}

	s.writeJSON(w, http.StatusOK, dto.NewDocument(v, nil))
}

// ValidateResponse is the body of POST /validate.
type ValidateResponse struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues,omitempty"`
}

// Validate handles the POST /validate request.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	doc, g, ok := s.decode(w, r)
	if !ok {
		return
	}

	errs := validator.Issues(validator.ValidateGraph(g))
	if doc.Selection != nil {
		errs = append(errs, validator.Issues(validator.ValidateSelection(g, *doc.Selection))...)
	}

	resp := ValidateResponse{Valid: len(errs) == 0}
	for _, err := range errs {
		resp.Issues = append(resp.Issues, err.Error())
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// decode reads a document body. On failure it has already answered 400.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (*dto.Document, *domain.Graph, bool) {
	var raw map[string]any
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&raw); err != nil {
		s.Logger.Warn("Invalid request body", "path", r.URL.Path, "error", err)
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, nil, false
	}

	doc, err := dto.Decode(raw)
	if err != nil {
		s.Logger.Warn("Invalid document", "path", r.URL.Path, "error", err)
		s.writeError(w, http.StatusBadRequest, err.Error())
		return nil, nil, false
	}
	g, err := doc.ToGraph()
	if err != nil {
		s.Logger.Warn("Invalid graph", "path", r.URL.Path, "error", err)
		s.writeError(w, http.StatusBadRequest, err.Error())
		return nil, nil, false
	}
	return doc, g, true
}

// fail maps synthesis errors: problems with the graph's content are 422,
// anything else is an internal error.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrUnbakedTrace),
		errors.Is(err, domain.ErrUnsupportedOperator),
		errors.Is(err, domain.ErrDanglingSelection):
		status = http.StatusUnprocessableEntity
		s.Logger.Warn(op+" rejected", "error", err)
	default:
		s.Logger.Error(op+" failed", "error", err)
	}
	s.writeError(w, status, fmt.Sprintf("%s: %v", op, err))
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.Logger.Error("Response encode failed", "error", err)
	}
}
