// Package api provides the HTTP surface over the resolver: resolve a catalog
// for a backend/mode target and browse past resolution runs.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/storekit/storeplan/internal/core/binding"
	"github.com/storekit/storeplan/internal/core/catalog"
	"github.com/storekit/storeplan/internal/core/plan"
	"github.com/storekit/storeplan/internal/core/registry"
	"github.com/storekit/storeplan/internal/core/topology"
	"github.com/storekit/storeplan/internal/shell/store"
)

// =============================================================================
// Handler
// =============================================================================

// Handler provides HTTP handlers for the resolver API.
type Handler struct {
	registry *registry.Registry
	store    store.Store // nil disables run history
	bindOpts binding.BindOptions
	logger   *slog.Logger
}

// NewHandler creates a new API handler. A nil store disables run history; a
// nil registry uses the built-in defaults.
func NewHandler(reg *registry.Registry, s store.Store, opts binding.BindOptions, l *slog.Logger) *Handler {
	if reg == nil {
		reg = registry.Defaults()
	}
	if l == nil {
		l = slog.Default()
	}
	return &Handler{registry: reg, store: s, bindOpts: opts, logger: l}
}

// Routes returns the router with all routes configured.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(h.jsonContentType)

	r.Get("/healthz", h.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/resolve", h.handleResolve)
		r.Get("/runs", h.handleListRuns)
		r.Get("/runs/{id}", h.handleGetRun)
	})

	return r
}

func (h *Handler) jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// Handlers
// =============================================================================

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "bad_request")
		return
	}

	backend := registry.Backend(req.Backend)
	mode := registry.Mode(req.Mode)
	if !backend.IsValid() {
		writeError(w, http.StatusBadRequest, "unknown backend: "+req.Backend, "bad_request")
		return
	}
	if !mode.IsValid() {
		writeError(w, http.StatusBadRequest, "unknown mode: "+req.Mode, "bad_request")
		return
	}

	specs := catalog.SampleShop()
	if req.CatalogYAML != "" {
		loaded, err := catalog.Load([]byte(req.CatalogYAML))
		if err != nil {
			h.writeResolveError(w, err)
			return
		}
		specs = loaded
	}

	opts := h.bindOpts
	if req.Namespace != "" {
		opts.Namespace = req.Namespace
	}
	if req.Region != "" {
		opts.Region = req.Region
	}
	if req.AccountID != "" {
		opts.AccountID = req.AccountID
	}
	if req.BaseDomain != "" {
		opts.BaseDomain = req.BaseDomain
	}

	resolved, err := plan.Resolve(specs, h.registry, backend, mode, opts)
	if err != nil {
		h.writeResolveError(w, err)
		return
	}

	runID := uuid.NewString()
	if h.store != nil {
		if planJSON, err := json.Marshal(resolved); err != nil {
			h.logger.Error("failed to serialize plan for run history", "error", err, "run_id", runID)
		} else {
			rec := &store.RunRecord{
				ID:        runID,
				Backend:   backend,
				Mode:      mode,
				Services:  len(resolved.Graph.Services()),
				Providers: len(resolved.Graph.Providers()),
				Edges:     len(resolved.Graph.Edges),
				PlanJSON:  planJSON,
			}
			if err := h.store.CreateRun(r.Context(), rec); err != nil {
				h.logger.Error("failed to record run", "error", err, "run_id", runID)
			}
		}
	}

	h.logger.Info("resolved topology",
		"run_id", runID,
		"backend", backend,
		"mode", mode,
		"nodes", len(resolved.Graph.Nodes),
		"edges", len(resolved.Graph.Edges),
	)
	writeJSON(w, http.StatusOK, ResolveResponse{RunID: runID, Plan: resolved})
}

func (h *Handler) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusNotFound, "run history is disabled", "history_disabled")
		return
	}
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	runs, err := h.store.ListRuns(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list runs", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list runs", "internal")
		return
	}
	// Trim plan bodies from the listing.
	for i := range runs {
		runs[i].PlanJSON = nil
	}
	writeJSON(w, http.StatusOK, RunListResponse{Runs: runs})
}

func (h *Handler) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusNotFound, "run history is disabled", "history_disabled")
		return
	}
	id := chi.URLParam(r, "id")
	run, err := h.store.GetRun(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "run not found", "not_found")
			return
		}
		h.logger.Error("failed to get run", "error", err, "run_id", id)
		writeError(w, http.StatusInternalServerError, "failed to get run", "internal")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// =============================================================================
// Error Mapping
// =============================================================================

// writeResolveError maps the resolver's typed failures onto HTTP statuses.
// Everything in the taxonomy is a configuration/data problem, so it's a 4xx:
// the caller must fix catalog or registry data and retry, never proceed.
func (h *Handler) writeResolveError(w http.ResponseWriter, err error) {
	var (
		catErr    *catalog.CatalogError
		noProv    *registry.NoProviderError
		ambiguous *registry.AmbiguousProviderError
		cycle     *topology.CycleError
		template  *binding.UnresolvedTemplateError
	)
	switch {
	case errors.As(err, &catErr):
		writeError(w, http.StatusUnprocessableEntity, catErr.Error(), "catalog_error")
	case errors.As(err, &noProv):
		writeError(w, http.StatusUnprocessableEntity, noProv.Error(), "no_provider")
	case errors.As(err, &ambiguous):
		writeError(w, http.StatusUnprocessableEntity, ambiguous.Error(), "ambiguous_provider")
	case errors.As(err, &cycle):
		writeError(w, http.StatusUnprocessableEntity, cycle.Error(), "cycle")
	case errors.As(err, &template):
		writeError(w, http.StatusUnprocessableEntity, template.Error(), "unresolved_template")
	case errors.Is(err, topology.ErrUnsupportedMode):
		writeError(w, http.StatusUnprocessableEntity, err.Error(), "unsupported_mode")
	default:
		h.logger.Error("resolve failed", "error", err)
		writeError(w, http.StatusInternalServerError, "resolve failed", "internal")
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message, kind string) {
	writeJSON(w, status, ErrorResponse{Error: message, Kind: kind})
}
