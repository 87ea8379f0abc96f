// Command storeplan resolves the sample shop's deployment topology for a
// chosen backend and dependency mode, and renders the result as a
// backend-specific deployment artifact.
//
// Verbs:
//
//	storeplan [resolve]   resolve the catalog and emit an artifact (default)
//	storeplan serve       run the HTTP resolve API
//	storeplan history     list recorded resolution runs
package main

import (
	"flag"
	"fmt"
	"os"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// =============================================================================
// Exit Codes
// =============================================================================

const (
	ExitSuccess      = 0
	ExitConfigError  = 1
	ExitResolveError = 2
	ExitOutputError  = 3
	ExitServerError  = 4
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "Path to config file")
	catalogPath := flag.String("catalog", "", "Path to catalog YAML (overrides config)")
	composePath := flag.String("compose", "", "Path to docker-compose file to import (overrides config)")
	backend := flag.String("backend", "", "Target backend (overrides config)")
	mode := flag.String("mode", "", "Dependency mode (overrides config)")
	format := flag.String("format", "", "Artifact format: helm-values, tfvars, taskdef (overrides config)")
	output := flag.String("o", "", "Artifact output path, - for stdout (overrides config)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("storeplan %s (built %s)\n", Version, BuildTime)
		return ExitSuccess
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return ExitConfigError
	}

	// Flag overrides win over file and environment.
	if *catalogPath != "" {
		cfg.Target.Catalog = *catalogPath
		cfg.Target.Compose = ""
	}
	if *composePath != "" {
		cfg.Target.Compose = *composePath
		cfg.Target.Catalog = ""
	}
	if *backend != "" {
		cfg.Target.Backend = *backend
	}
	if *mode != "" {
		cfg.Target.Mode = *mode
	}
	if *format != "" {
		cfg.Output.Format = *format
	}
	if *output != "" {
		cfg.Output.Path = *output
	}

	logger := SetupLogger(cfg)

	verb := flag.Arg(0)
	switch verb {
	case "", "resolve":
		return runResolve(cfg, logger)
	case "serve":
		return runServe(cfg, logger)
	case "history":
		return runHistory(cfg, logger)
	default:
		fmt.Fprintf(os.Stderr, "unknown verb %q (want resolve, serve, or history)\n", verb)
		return ExitConfigError
	}
}
