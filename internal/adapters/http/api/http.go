// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	service "github.com/okian/prospect/internal/app"
	"github.com/okian/prospect/internal/domain/model"
	"github.com/okian/prospect/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Compute(ctx context.Context, req types.ValuationRequest) (model.ValuationResult, error)
	ComputeBatch(ctx context.Context, reqs []types.ValuationRequest) ([]service.BatchItem, error)
	Models() []types.ModelInfo
	Tiers(version string) ([]types.TierInfo, error)
}

// Server wires HTTP routes for the valuation API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	valuationHandler *ValuationHandler
	modelsHandler    *ModelsHandler

	corsOrigins []string
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithCORSOrigins sets the origins allowed to call the API from a browser.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.corsOrigins = origins
		}
	}
}

// WithMaxBodyBytes caps request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.valuationHandler.maxBody = n
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		valuationHandler: NewValuationHandler(deps),
		modelsHandler:    NewModelsHandler(deps),
		corsOrigins:      []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all API routes to r inside a group that carries CORS.
func (s *Server) Register(_ context.Context, r chi.Router) {
	if r == nil {
		panic("router is nil")
	}
	r.Group(func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.corsOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			ExposedHeaders: []string{"Content-Length"},
			MaxAge:         300,
		}))

		r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
		r.Get("/metrics", MetricsMiddleware(s.healthHandler.HandleMetrics, "metrics"))
		r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

		r.Route("/v1", func(r chi.Router) {
			r.Get("/valuations", MetricsMiddleware(s.valuationHandler.HandleGetValuation, "valuations"))
			r.Post("/valuations", MetricsMiddleware(s.valuationHandler.HandlePostValuation, "valuations"))
			r.Post("/valuations/batch", MetricsMiddleware(s.valuationHandler.HandlePostBatch, "valuations_batch"))
			r.Get("/models", MetricsMiddleware(s.modelsHandler.HandleListModels, "models"))
			r.Get("/models/{version}/tiers", MetricsMiddleware(s.modelsHandler.HandleGetTiers, "model_tiers"))
		})
	})
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

// statusFor maps a service error onto an HTTP status and error code.
func statusFor(err error) (int, string) {
	kind := service.ErrorKind(err)
	switch kind {
	case service.KindInvalidInput, service.KindBatch:
		return http.StatusBadRequest, kind
	case service.KindUnknownModel:
		return http.StatusNotFound, kind
	case service.KindMissingSegment:
		return http.StatusUnprocessableEntity, kind
	case service.KindUnavailable:
		return http.StatusServiceUnavailable, kind
	default:
		return http.StatusInternalServerError, service.KindInternal
	}
}

// writeServiceError renders err with the status its kind maps to.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	status, code := statusFor(err)
	writeError(w, status, code, fmt.Errorf("%s: %w", op, err))
}
