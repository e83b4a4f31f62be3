// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	service "github.com/okian/combine/internal/app"
	"github.com/okian/combine/internal/domain/model"
	"github.com/okian/combine/pkg/logger"
	"github.com/okian/combine/pkg/metrics"
)

const (
	maxBodyBytes   = 1 << 20
	requestTimeout = 30 * time.Second
)

// Dependencies required by HTTP handlers. *service.Service implements it.
type Dependencies interface {
	Assess(ctx context.Context, sub model.Submission) (service.Report, error)
	SubmitBatch(ctx context.Context, subs []model.Submission) (service.BatchResult, error)
	Athlete(ctx context.Context, athleteID string) (service.AthleteView, error)
	Squad(ctx context.Context, limit int) ([]model.SquadEntry, error)
	Options() service.Options
	ParseTime(text string) (service.ParsedTime, error)
	GetStats() map[string]any
}

// RegisterFunc attaches extra routes, such as the API docs, to the router.
type RegisterFunc func(ctx context.Context, r chi.Router)

// Server wires HTTP routes for the assessment API.
type Server struct {
	deps        Dependencies
	corsOrigins []string
	extra       []RegisterFunc
	logger      logger.Logger
}

// NewServer creates a new API server.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		deps:        deps,
		corsOrigins: []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("http")
	}
	return s
}

// Router builds the chi router with every route and middleware attached.
func (s *Server) Router(ctx context.Context) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(LoggingMiddleware(s.logger))
	r.Use(MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		r.Get("/options", s.handleOptions)
		r.Post("/time/parse", s.handleParseTime)
		r.Post("/assessments", s.handleAssess)
		r.Post("/assessments/batch", s.handleBatch)
		r.Get("/athletes/{athleteID}", s.handleAthlete)
		r.Get("/squad", s.handleSquad)
		r.Get("/stats", s.handleStats)
	})

	for _, register := range s.extra {
		register(ctx, r)
	}
	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps err onto a response. Internal errors are logged and
// their text is not sent to the client.
func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	status, code, msg := classify(err)
	if status >= statusInternalError {
		s.logger.Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.Error(err),
		)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// decodeJSON reads one JSON document of at most maxBodyBytes into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(v)
}
