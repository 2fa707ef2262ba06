package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}

	return false
}

// Level maps l to its slog level. Unknown values map to info.
func (l LogLevel) Level() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Transport selects how the tool server is exposed.
type Transport string

const (
	// TransportStdio serves a single session over stdin/stdout.
	TransportStdio Transport = "stdio"
	// TransportHTTP serves streamable HTTP sessions on ListenAddr.
	TransportHTTP Transport = "http"
)

// Tool family names accepted by tools.enabled.
const (
	FamilyArithmetic = "arithmetic"
	FamilyWeather    = "weather"
	FamilyTodo       = "todo"
	FamilyProduct    = "product"
	FamilyCatalog    = "catalog"
	FamilyText       = "text"
)

// Families lists every tool family in registration order.
var Families = []string{
	FamilyArithmetic,
	FamilyWeather,
	FamilyTodo,
	FamilyProduct,
	FamilyCatalog,
	FamilyText,
}

// DefaultCatalogURL is the base URL of the product catalog service when none
// is configured.
const DefaultCatalogURL = "http://localhost:5000"

// ServerConfig is the tool server configuration file.
type ServerConfig struct {
	// Name and Version are reported to clients during initialization.
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	Transport Transport `yaml:"transport"`

	// ListenAddr is the address of the streamable HTTP endpoint. Only used
	// with the http transport.
	ListenAddr string `yaml:"listen_addr"`

	LogLevel LogLevel `yaml:"log_level"`

	Catalog CatalogConfig `yaml:"catalog"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tools   ToolsConfig   `yaml:"tools"`
}

// CatalogConfig locates the external product catalog.
type CatalogConfig struct {
	BaseURL string `yaml:"base_url"`

	// Timeout bounds each catalog request. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	// ListenAddr serves /metrics when non-empty.
	ListenAddr string `yaml:"listen_addr"`
}

// ToolsConfig selects the tool families to register.
type ToolsConfig struct {
	// Enabled lists family names. Empty enables every family.
	Enabled []string `yaml:"enabled"`
}

// Default returns a configuration with every field set to its default.
func Default() *ServerConfig {
	return &ServerConfig{
		Name:       "toolkit",
		Version:    "0.1.0",
		Transport:  TransportStdio,
		ListenAddr: "127.0.0.1:8080",
		LogLevel:   LogInfo,
		Catalog: CatalogConfig{
			BaseURL: DefaultCatalogURL,
		},
	}
}

// Load reads the YAML configuration file at path and returns a validated
// [ServerConfig]. Fields missing from the file keep their defaults.
func Load(path string) (*ServerConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}

	return cfg, nil
}

// LoadFromReader decodes a YAML config from r over [Default] and validates
// the result. An empty document yields the defaults.
func LoadFromReader(r io.Reader) (*ServerConfig, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *ServerConfig) error {
	var errs []error

	if strings.TrimSpace(cfg.Name) == "" {
		errs = append(errs, fmt.Errorf("name is required"))
	}

	switch cfg.Transport {
	case TransportStdio:
	case TransportHTTP:
		if cfg.ListenAddr == "" {
			errs = append(errs, fmt.Errorf("listen_addr is required for the http transport"))
		}
	default:
		errs = append(errs, fmt.Errorf("transport %q is invalid; valid values: stdio, http", cfg.Transport))
	}

	if !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}

	if cfg.Catalog.Timeout < 0 {
		errs = append(errs, fmt.Errorf("catalog.timeout %s must not be negative", cfg.Catalog.Timeout))
	}

	if cfg.FamilyEnabled(FamilyCatalog) && cfg.Catalog.BaseURL == "" {
		errs = append(errs, fmt.Errorf("catalog.base_url is required when the catalog family is enabled"))
	}

	seen := make(map[string]int, len(cfg.Tools.Enabled))

	for i, name := range cfg.Tools.Enabled {
		if !slices.Contains(Families, name) {
			errs = append(errs, fmt.Errorf("tools.enabled[%d] %q is not a tool family; valid values: %s",
				i, name, strings.Join(Families, ", ")))

			continue
		}

		if prev, ok := seen[name]; ok {
			errs = append(errs, fmt.Errorf("tools.enabled[%d] %q is a duplicate of tools.enabled[%d]", i, name, prev))
		}

		seen[name] = i
	}

	return errors.Join(errs...)
}

// FamilyEnabled reports whether the named tool family should be registered.
func (c *ServerConfig) FamilyEnabled(name string) bool {
	return len(c.Tools.Enabled) == 0 || slices.Contains(c.Tools.Enabled, name)
}
