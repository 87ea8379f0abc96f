package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/storekit/storeplan/internal/core/catalog"
	"github.com/storekit/storeplan/internal/core/plan"
	"github.com/storekit/storeplan/internal/core/registry"
	"github.com/storekit/storeplan/internal/shell/emit"
	"github.com/storekit/storeplan/internal/shell/store"
)

// =============================================================================
// resolve
// =============================================================================

// runResolve loads the catalog, resolves the topology for the configured
// backend/mode, records the run when history is enabled, and writes the
// rendered artifact.
func runResolve(cfg *Config, logger *slog.Logger) int {
	specs, code := loadSpecs(cfg, logger)
	if code != ExitSuccess {
		return code
	}

	backend := registry.Backend(cfg.Target.Backend)
	mode := registry.Mode(cfg.Target.Mode)

	resolved, err := plan.Resolve(specs, registry.Defaults(), backend, mode, cfg.Binding.Options())
	if err != nil {
		logger.Error("resolution failed", "backend", backend, "mode", mode, "error", err)
		return ExitResolveError
	}
	logger.Info("resolved topology",
		"backend", backend,
		"mode", mode,
		"nodes", len(resolved.Graph.Nodes),
		"edges", len(resolved.Graph.Edges),
	)

	if cfg.Database.DSN != "" {
		recordRun(cfg, logger, resolved)
	}

	format := emit.Format(cfg.Output.Format)
	if cfg.Output.Format == "" {
		format = emit.DefaultFormat(backend)
	}
	artifact, err := emit.NewEmitter(logger).Render(resolved, format)
	if err != nil {
		logger.Error("artifact rendering failed", "format", format, "error", err)
		return ExitOutputError
	}

	if cfg.Output.Path == "" || cfg.Output.Path == "-" {
		fmt.Println(string(artifact))
		return ExitSuccess
	}
	if err := os.WriteFile(cfg.Output.Path, artifact, 0o644); err != nil {
		logger.Error("failed to write artifact", "path", cfg.Output.Path, "error", err)
		return ExitOutputError
	}
	logger.Info("artifact written", "path", cfg.Output.Path, "format", format)
	return ExitSuccess
}

// loadSpecs loads the catalog from file, compose import, or the built-in
// sample.
func loadSpecs(cfg *Config, logger *slog.Logger) ([]catalog.ServiceSpec, int) {
	switch {
	case cfg.Target.Catalog != "":
		data, err := os.ReadFile(cfg.Target.Catalog)
		if err != nil {
			logger.Error("failed to read catalog", "path", cfg.Target.Catalog, "error", err)
			return nil, ExitConfigError
		}
		specs, err := catalog.Load(data)
		if err != nil {
			logger.Error("invalid catalog", "path", cfg.Target.Catalog, "error", err)
			return nil, ExitResolveError
		}
		return specs, ExitSuccess

	case cfg.Target.Compose != "":
		data, err := os.ReadFile(cfg.Target.Compose)
		if err != nil {
			logger.Error("failed to read compose file", "path", cfg.Target.Compose, "error", err)
			return nil, ExitConfigError
		}
		specs, err := catalog.ImportCompose(string(data))
		if err != nil {
			logger.Error("compose import failed", "path", cfg.Target.Compose, "error", err)
			return nil, ExitResolveError
		}
		return specs, ExitSuccess

	default:
		return catalog.SampleShop(), ExitSuccess
	}
}

// recordRun persists the run to the history ledger. History failures are
// logged, not fatal: the artifact still gets emitted.
func recordRun(cfg *Config, logger *slog.Logger, resolved *plan.Plan) {
	s, err := store.NewSQLiteStore(cfg.Database.DSN)
	if err != nil {
		logger.Error("run history unavailable", "dsn", cfg.Database.DSN, "error", err)
		return
	}
	defer s.Close()

	planJSON, err := json.Marshal(resolved)
	if err != nil {
		logger.Error("failed to serialize plan", "error", err)
		return
	}
	rec := &store.RunRecord{
		ID:        uuid.NewString(),
		Backend:   resolved.Backend,
		Mode:      resolved.Mode,
		Services:  len(resolved.Graph.Services()),
		Providers: len(resolved.Graph.Providers()),
		Edges:     len(resolved.Graph.Edges),
		PlanJSON:  planJSON,
	}
	if err := s.CreateRun(context.Background(), rec); err != nil {
		logger.Error("failed to record run", "error", err)
		return
	}
	logger.Info("run recorded", "run_id", rec.ID)
}

// =============================================================================
// history
// =============================================================================

// runHistory lists recorded resolution runs.
func runHistory(cfg *Config, logger *slog.Logger) int {
	if cfg.Database.DSN == "" {
		fmt.Fprintln(os.Stderr, "run history is disabled (set database.dsn)")
		return ExitConfigError
	}
	s, err := store.NewSQLiteStore(cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to open run history", "dsn", cfg.Database.DSN, "error", err)
		return ExitServerError
	}
	defer s.Close()

	runs, err := s.ListRuns(context.Background(), 50)
	if err != nil {
		logger.Error("failed to list runs", "error", err)
		return ExitServerError
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return ExitSuccess
	}
	for _, r := range runs {
		fmt.Printf("%s  %-12s %-24s services=%d providers=%d edges=%d  %s\n",
			r.ID, r.Backend, r.Mode, r.Services, r.Providers, r.Edges,
			r.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return ExitSuccess
}
