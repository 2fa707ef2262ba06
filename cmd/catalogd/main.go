// Command catalogd runs the reference product catalog service used by the
// catalog tools.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/shopspring/decimal"

	"github.com/wagiedev/toolkit-mcp-go/internal/catalog"
	"github.com/wagiedev/toolkit-mcp-go/internal/models"
)

var cfg struct {
	Addr  string `help:"Listen address." default:"127.0.0.1:5000"`
	Seed  bool   `help:"Load sample products at startup." default:"true" negatable:""`
	Debug bool   `help:"Log every request."`
}

func sampleProducts() []models.ProductInput {
	desc := func(s string) *string { return &s }

	return []models.ProductInput{
		{Name: "Mechanical Keyboard", Price: decimal.RequireFromString("89.99"), Description: desc("Tenkeyless, brown switches"), IsActive: true},
		{Name: "Wireless Mouse", Price: decimal.RequireFromString("24.50"), IsActive: true},
		{Name: "USB-C Hub", Price: decimal.RequireFromString("39.00"), Description: desc("7 ports"), IsActive: false},
		{Name: "Monitor Arm", Price: decimal.RequireFromString("59.95"), IsActive: true},
	}
}

func main() {
	kong.Parse(&cfg,
		kong.Name("catalogd"),
		kong.Description("Serve an in-memory product catalog over REST."),
	)

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	svc := catalog.NewService(log)
	if cfg.Seed {
		svc.Seed(sampleProducts()...)
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           svc.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = server.Shutdown(shutdownCtx)
	}()

	log.Info("catalog listening", "addr", cfg.Addr)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("catalog server failed", "error", err)
		os.Exit(1)
	}
}
