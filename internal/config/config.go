// Package config provides configuration types, defaults and validation for
// enernova.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/enernova/enernova/internal/i18n"
	"github.com/enernova/enernova/internal/log"
	"github.com/enernova/enernova/internal/registration"
	"github.com/enernova/enernova/internal/tracing"
)

// MarkdownStyles lists the accepted ui.markdown_style values.
var MarkdownStyles = []string{"auto", "dark", "light", "notty"}

// Auth backends.
const (
	BackendLocal = "local"
	BackendHTTP  = "http"
)

// Config holds all configuration options for enernova.
type Config struct {
	Locale  string         `mapstructure:"locale"`
	Auth    AuthConfig     `mapstructure:"auth"`
	Tracing tracing.Config `mapstructure:"tracing"`
	UI      UIConfig       `mapstructure:"ui"`
}

// AuthConfig selects and configures the account backend.
type AuthConfig struct {
	Backend string        `mapstructure:"backend"`  // "local" (default) or "http"
	BaseURL string        `mapstructure:"base_url"` // required for "http"
	Timeout time.Duration `mapstructure:"timeout"`  // per registration call
	LocalDB string        `mapstructure:"local_db"` // sqlite file for "local"
}

// UIConfig holds user interface options.
type UIConfig struct {
	Mouse         bool   `mapstructure:"mouse"`
	MarkdownStyle string `mapstructure:"markdown_style"` // one of MarkdownStyles; "dark" by default
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	tr := tracing.DefaultConfig()
	tr.FilePath = DefaultTracesFilePath()
	return Config{
		Locale: i18n.BaseLocale,
		Auth: AuthConfig{
			Backend: BackendLocal,
			BaseURL: "http://localhost:8086",
			Timeout: registration.DefaultTimeout,
			LocalDB: DefaultLocalDBPath(),
		},
		Tracing: tr,
		UI: UIConfig{
			Mouse:         true,
			MarkdownStyle: "dark",
		},
	}
}

// DefaultTracesFilePath returns ~/.config/enernova/traces/traces.jsonl, or
// empty when the home directory is unknown.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "enernova", "traces", "traces.jsonl")
}

// DefaultLocalDBPath returns ~/.enernova/accounts.db, or a relative path when
// the home directory is unknown.
func DefaultLocalDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".enernova", "accounts.db")
	}
	return filepath.Join(home, ".enernova", "accounts.db")
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// Validate reports every invalid setting.
func Validate(cfg Config) error {
	var errs []error

	if !i18n.Default().HasLocale(cfg.Locale) {
		errs = append(errs, fmt.Errorf("locale must be one of %v, got %q", i18n.Default().Locales(), cfg.Locale))
	}
	if err := ValidateAuth(cfg.Auth); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateTracing(cfg.Tracing); err != nil {
		errs = append(errs, err)
	}
	if cfg.UI.MarkdownStyle != "" && !slices.Contains(MarkdownStyles, cfg.UI.MarkdownStyle) {
		errs = append(errs, fmt.Errorf("ui.markdown_style must be one of %v, got %q", MarkdownStyles, cfg.UI.MarkdownStyle))
	}
	return errors.Join(errs...)
}

// ValidateAuth checks the auth section.
func ValidateAuth(auth AuthConfig) error {
	switch auth.Backend {
	case BackendLocal:
		if auth.LocalDB == "" {
			return errors.New("auth.local_db is required when backend is \"local\"")
		}
	case BackendHTTP:
		if auth.BaseURL == "" {
			return errors.New("auth.base_url is required when backend is \"http\"")
		}
	default:
		return fmt.Errorf("auth.backend must be \"local\" or \"http\", got %q", auth.Backend)
	}
	if auth.Timeout <= 0 {
		return fmt.Errorf("auth.timeout must be positive, got %s", auth.Timeout)
	}
	return nil
}

// ValidateTracing checks the tracing section.
func ValidateTracing(tc tracing.Config) error {
	if tc.SampleRate < 0.0 || tc.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tc.SampleRate)
	}
	if tc.Exporter != "" && !slices.Contains(tracing.Exporters, tc.Exporter) {
		return fmt.Errorf("tracing.exporter must be one of %v, got %q", tracing.Exporters, tc.Exporter)
	}
	if tc.Enabled {
		if tc.Exporter == tracing.ExporterFile && tc.FilePath == "" {
			return errors.New("tracing.file_path is required when exporter is \"file\"")
		}
		if tc.Exporter == tracing.ExporterOTLP && tc.OTLPEndpoint == "" {
			return errors.New("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}
	return nil
}

// DefaultConfigTemplate returns the default config as YAML with comments.
func DefaultConfigTemplate() string {
	return `# EnerNova Configuration

# Interface language: id-ID (default) or en-US
locale: id-ID

# Account backend
auth:
  backend: local                      # "local" (sqlite on this machine) or "http"
  base_url: http://localhost:8086     # auth service for the http backend
  timeout: 15s                        # registration gives up after this long
  local_db: ~/.enernova/accounts.db   # database for the local backend
  # Local backend secrets are read from the environment:
  #   ENERNOVA_LOCAL_AUTH_SECRET, ENERNOVA_LOCAL_AUTH_TOKEN_TTL

# UI settings
ui:
  mouse: true             # Click on buttons and fields
  markdown_style: dark    # auto, dark, light or notty

# Tracing (OpenTelemetry)
tracing:
  enabled: false
  exporter: file          # none, file, stdout, otlp
  file_path: ~/.config/enernova/traces/traces.jsonl
  otlp_endpoint: localhost:4317
  sample_rate: 1.0
`
}

// WriteDefaultConfig writes DefaultConfigTemplate to configPath, creating the
// parent directory if needed.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
