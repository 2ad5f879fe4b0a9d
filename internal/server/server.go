// Package server exposes the estimation engines over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sitescope/estimator-cli/internal/model"
	"github.com/sitescope/estimator-cli/internal/plan"
	"github.com/sitescope/estimator-cli/internal/store"
	"github.com/sitescope/estimator-cli/internal/valuation"
)

// Options configures a Server.
type Options struct {
	Port           int
	AllowedOrigins []string
	Valuer         *valuation.Engine
	// Store is optional; when nil, results are returned but not persisted.
	Store store.Store
}

// Server runs the HTTP API.
type Server struct {
	opts   Options
	router chi.Router
}

// New builds a Server with its routes mounted.
func New(opts Options) *Server {
	s := &Server{opts: opts}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/plan", s.handlePlan)
		r.Post("/valuation", s.handleValuation)
		r.Get("/assessments", s.handleListAssessments)
		r.Get("/assessments/{id}", s.handleGetAssessment)
	})

	s.router = r
	return s
}

// Handler returns the mounted router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.opts.Port),
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	zap.L().Info("starting server", zap.Int("port", s.opts.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server: listen")
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var analysis model.SiteAnalysis
	if err := json.NewDecoder(r.Body).Decode(&analysis); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	output := plan.Build(analysis.PlanInput())
	id := s.persist(r.Context(), model.KindPlan, analysis, output)

	zap.L().Info("plan computed",
		zap.String("location", analysis.Location),
		zap.String("stage", analysis.StageOfConstruction),
	)
	writeJSON(w, http.StatusOK, assessmentResponse{ID: id, Result: output})
}

func (s *Server) handleValuation(w http.ResponseWriter, r *http.Request) {
	var analysis model.SiteAnalysis
	if err := json.NewDecoder(r.Body).Decode(&analysis); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := s.opts.Valuer.Compute(analysis.ValuationInput())
	id := s.persist(r.Context(), model.KindValuation, analysis, result)

	zap.L().Info("valuation computed",
		zap.String("location", analysis.Location),
		zap.Float64("confidence", result.Confidence),
		zap.Int("warnings", len(result.Warnings)),
	)
	writeJSON(w, http.StatusOK, assessmentResponse{ID: id, Result: result})
}

func (s *Server) handleListAssessments(w http.ResponseWriter, r *http.Request) {
	if s.opts.Store == nil {
		writeError(w, http.StatusNotImplemented, "no store configured")
		return
	}

	filter := store.Filter{
		Kind:     model.AssessmentKind(r.URL.Query().Get("kind")),
		Location: r.URL.Query().Get("location"),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		filter.Limit = limit
	}

	assessments, err := s.opts.Store.ListAssessments(r.Context(), filter)
	if err != nil {
		zap.L().Error("list assessments failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "list failed")
		return
	}
	if assessments == nil {
		assessments = []model.Assessment{}
	}
	writeJSON(w, http.StatusOK, assessments)
}

func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	if s.opts.Store == nil {
		writeError(w, http.StatusNotImplemented, "no store configured")
		return
	}

	id := chi.URLParam(r, "id")
	a, err := s.opts.Store.GetAssessment(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "assessment not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// persist saves the assessment when a store is configured and returns the
// record ID, or "" when persistence is off or failed. Persistence failures
// are logged, not surfaced: the computed result is still useful.
func (s *Server) persist(ctx context.Context, kind model.AssessmentKind, analysis model.SiteAnalysis, result any) string {
	if s.opts.Store == nil {
		return ""
	}

	inputJSON, err := json.Marshal(analysis)
	if err != nil {
		zap.L().Error("marshal assessment input", zap.Error(err))
		return ""
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		zap.L().Error("marshal assessment result", zap.Error(err))
		return ""
	}

	a := &model.Assessment{
		Kind:     kind,
		Location: analysis.Location,
		Input:    inputJSON,
		Result:   resultJSON,
	}
	if err := s.opts.Store.SaveAssessment(ctx, a); err != nil {
		zap.L().Error("save assessment", zap.Error(err))
		return ""
	}
	return a.ID
}

type assessmentResponse struct {
	ID     string `json:"id,omitempty"`
	Result any    `json:"result"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
