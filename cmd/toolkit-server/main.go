// Command toolkit-server serves the toolkit tools over stdio or streamable
// HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"golang.org/x/sync/errgroup"

	toolkit "github.com/wagiedev/toolkit-mcp-go"
	"github.com/wagiedev/toolkit-mcp-go/internal/config"
	"github.com/wagiedev/toolkit-mcp-go/internal/observe"
)

const version = "0.1.0"

const shutdownTimeout = 5 * time.Second

// flags override values from the configuration file when set.
type flags struct {
	Config         string           `help:"Path to the YAML configuration file." type:"existingfile" short:"c"`
	Transport      string           `help:"Transport to serve: stdio or http."`
	ListenAddr     string           `help:"Listen address for the http transport."`
	LogLevel       string           `help:"Log level: debug, info, warn or error."`
	LogFormat      string           `help:"Log format." enum:"text,json" default:"text"`
	CatalogURL     string           `help:"Base URL of the product catalog service." name:"catalog-url"`
	CatalogTimeout time.Duration    `help:"Timeout for each catalog request (0 disables)."`
	MetricsAddr    string           `help:"Serve Prometheus metrics on this address."`
	Tools          []string         `help:"Tool families to enable (default all)." sep:","`
	Version        kong.VersionFlag `help:"Print the version and exit."`
}

func main() {
	var cli flags

	kong.Parse(&cli,
		kong.Name("toolkit-server"),
		kong.Description("Serve the toolkit tools over the Model Context Protocol."),
		kong.Vars{"version": "toolkit-server " + version},
	)

	if err := run(cli); err != nil {
		fmt.Fprintf(os.Stderr, "toolkit-server: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(cli flags) (*config.ServerConfig, error) {
	cfg := config.Default()

	if cli.Config != "" {
		loaded, err := config.Load(cli.Config)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	if cli.Transport != "" {
		cfg.Transport = config.Transport(cli.Transport)
	}

	if cli.ListenAddr != "" {
		cfg.ListenAddr = cli.ListenAddr
	}

	if cli.LogLevel != "" {
		cfg.LogLevel = config.LogLevel(cli.LogLevel)
	}

	if cli.CatalogURL != "" {
		cfg.Catalog.BaseURL = cli.CatalogURL
	}

	if cli.CatalogTimeout != 0 {
		cfg.Catalog.Timeout = cli.CatalogTimeout
	}

	if cli.MetricsAddr != "" {
		cfg.Metrics.ListenAddr = cli.MetricsAddr
	}

	if len(cli.Tools) > 0 {
		cfg.Tools.Enabled = cli.Tools
	}

	if cfg.Version == "" {
		cfg.Version = version
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// newLogger writes to stderr; stdout carries the protocol in stdio mode.
func newLogger(format string, level config.LogLevel) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level.Level()}

	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}

	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func run(cli flags) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	log := newLogger(cli.LogFormat, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverOpts := []toolkit.ServerOption{toolkit.WithServerLogger(log)}

	var provider *observe.Provider

	if cfg.Metrics.ListenAddr != "" {
		provider, err = observe.InitProvider(ctx, observe.ProviderConfig{
			ServiceName:    cfg.Name,
			ServiceVersion: cfg.Version,
		})
		if err != nil {
			return fmt.Errorf("init telemetry: %w", err)
		}

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := provider.Shutdown(shutdownCtx); err != nil {
				log.Warn("telemetry shutdown failed", "error", err)
			}
		}()

		serverOpts = append(serverOpts, toolkit.WithTelemetry())
	}

	srv, err := toolkit.NewServer(cfg, serverOpts...)
	if err != nil {
		return err
	}

	log.Info("toolkit server starting",
		"name", cfg.Name,
		"version", cfg.Version,
		"transport", cfg.Transport,
		"tools", len(srv.Tools()),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	switch cfg.Transport {
	case config.TransportHTTP:
		mux := http.NewServeMux()
		mux.Handle("/mcp", observe.Middleware(observe.DefaultMetrics(), log)(srv.Handler()))

		g.Go(func() error {
			return serveHTTP(gctx, log, "mcp", cfg.ListenAddr, mux)
		})
	default:
		g.Go(func() error {
			// The session ends when the client closes stdin.
			defer cancel()

			return srv.ServeStdio(gctx)
		})
	}

	if provider != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", provider.Handler())

		g.Go(func() error {
			return serveHTTP(gctx, log, "metrics", cfg.Metrics.ListenAddr, mux)
		})
	}

	err = g.Wait()

	log.Info("toolkit server stopped")

	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

// serveHTTP runs an HTTP server until ctx is done, then shuts it down.
func serveHTTP(ctx context.Context, log *slog.Logger, name, addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		log.Info("listening", "server", name, "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("%s server: %w", name, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	}
}
