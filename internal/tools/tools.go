// Package tools registers the tool families selected by the server
// configuration.
package tools

import (
	"fmt"
	"log/slog"
	"time"

	catalogapi "github.com/wagiedev/toolkit-mcp-go/internal/catalog"
	"github.com/wagiedev/toolkit-mcp-go/internal/config"
	internalmcp "github.com/wagiedev/toolkit-mcp-go/internal/mcp"
	"github.com/wagiedev/toolkit-mcp-go/internal/tools/arithmetic"
	"github.com/wagiedev/toolkit-mcp-go/internal/tools/catalog"
	"github.com/wagiedev/toolkit-mcp-go/internal/tools/product"
	"github.com/wagiedev/toolkit-mcp-go/internal/tools/text"
	"github.com/wagiedev/toolkit-mcp-go/internal/tools/todo"
	"github.com/wagiedev/toolkit-mcp-go/internal/tools/weather"
)

type options struct {
	log     *slog.Logger
	now     func() time.Time
	catalog catalog.Service
}

// Option customizes Register.
type Option func(*options)

// WithLogger sets the logger handed to collaborators.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithClock sets the clock used by the weather and todo families.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithCatalog replaces the HTTP catalog client.
func WithCatalog(svc catalog.Service) Option {
	return func(o *options) { o.catalog = svc }
}

// Register adds every family enabled in cfg to reg, in [config.Families]
// order. Each call creates fresh in-memory stores.
func Register(reg *internalmcp.Registry, cfg *config.ServerConfig, opts ...Option) error {
	o := &options{
		log: slog.New(slog.DiscardHandler),
		now: time.Now,
	}

	for _, opt := range opts {
		opt(o)
	}

	for _, family := range config.Families {
		if !cfg.FamilyEnabled(family) {
			continue
		}

		if err := register(reg, cfg, o, family); err != nil {
			return fmt.Errorf("register %s tools: %w", family, err)
		}

		o.log.Debug("Registered tool family", "family", family)
	}

	return nil
}

func register(reg *internalmcp.Registry, cfg *config.ServerConfig, o *options, family string) error {
	switch family {
	case config.FamilyArithmetic:
		return arithmetic.Register(reg)
	case config.FamilyWeather:
		return weather.Register(reg, weather.New(weather.WithClock(o.now)))
	case config.FamilyTodo:
		return todo.Register(reg, todo.New(todo.WithClock(o.now)))
	case config.FamilyProduct:
		return product.Register(reg, product.New())
	case config.FamilyCatalog:
		svc := o.catalog
		if svc == nil {
			client, err := catalogapi.NewClient(cfg.Catalog.BaseURL,
				catalogapi.WithTimeout(cfg.Catalog.Timeout),
				catalogapi.WithLogger(o.log),
			)
			if err != nil {
				return err
			}

			svc = client
		}

		return catalog.Register(reg, svc)
	case config.FamilyText:
		return text.Register(reg)
	default:
		return fmt.Errorf("unknown tool family %q", family)
	}
}
