package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/storekit/storeplan/internal/core/binding"
)

// =============================================================================
// Config Types
// =============================================================================

// Config holds all application configuration.
type Config struct {
	Target   TargetConfig   `mapstructure:"target"`
	Output   OutputConfig   `mapstructure:"output"`
	Binding  BindingConfig  `mapstructure:"binding"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
}

// TargetConfig selects what to resolve.
type TargetConfig struct {
	// Catalog is a path to a catalog YAML file. Empty uses the built-in
	// sample-shop catalog.
	Catalog string `mapstructure:"catalog"`

	// Compose is a path to a docker-compose file to import as the
	// catalog. Mutually exclusive with Catalog.
	Compose string `mapstructure:"compose"`

	Backend string `mapstructure:"backend"`
	Mode    string `mapstructure:"mode"`
}

// OutputConfig controls artifact emission.
type OutputConfig struct {
	// Format is one of helm-values, tfvars, taskdef, or empty for the
	// backend's natural format.
	Format string `mapstructure:"format"`

	// Path is the artifact destination; "-" or empty writes to stdout.
	Path string `mapstructure:"path"`
}

// BindingConfig carries the static naming inputs for the wiring binder.
type BindingConfig struct {
	Namespace  string `mapstructure:"namespace"`
	Region     string `mapstructure:"region"`
	AccountID  string `mapstructure:"account_id"`
	BaseDomain string `mapstructure:"base_domain"`
}

// Options converts the config into binder options.
func (c BindingConfig) Options() binding.BindOptions {
	return binding.BindOptions{
		Namespace:  c.Namespace,
		Region:     c.Region,
		AccountID:  c.AccountID,
		BaseDomain: c.BaseDomain,
	}
}

// ServerConfig holds HTTP server configuration for the serve verb.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Address returns the server address in host:port format.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds the run-history database configuration.
type DatabaseConfig struct {
	// DSN is the sqlite path for run history. Empty disables history.
	DSN string `mapstructure:"dsn"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// =============================================================================
// Config Loading
// =============================================================================

// LoadConfig loads configuration from file and environment.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("target.catalog", "")
	v.SetDefault("target.compose", "")
	v.SetDefault("target.backend", "eks-default")
	v.SetDefault("target.mode", "managed-dependencies")
	v.SetDefault("output.format", "")
	v.SetDefault("output.path", "-")
	v.SetDefault("binding.namespace", "sample-shop")
	v.SetDefault("binding.region", "us-east-1")
	v.SetDefault("binding.account_id", "000000000000")
	v.SetDefault("binding.base_domain", "shop.example.com")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("database.dsn", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigParseError); ok {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
			// File not found is OK, we'll use defaults
		}
	}

	v.SetEnvPrefix("STOREPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Target.Catalog != "" && cfg.Target.Compose != "" {
		return nil, fmt.Errorf("target.catalog and target.compose are mutually exclusive")
	}

	return &cfg, nil
}

// =============================================================================
// Logger Setup
// =============================================================================

// SetupLogger creates a logger with the configured level and format.
func SetupLogger(cfg *Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.ToLower(cfg.Log.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
