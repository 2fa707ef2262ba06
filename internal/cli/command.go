package cli

import (
	"context"
	"maps"
	"slices"

	"github.com/wagiedev/toolkit-mcp-go/internal/config"
	"github.com/wagiedev/toolkit-mcp-go/internal/mcp"
)

// ResolveServer picks the server connection for options.
//
// An injected transport wins, then an HTTP endpoint. Otherwise the server
// binary is located with d (or a default discoverer when d is nil) and
// launched with the configured arguments and environment.
func ResolveServer(ctx context.Context, options *config.Options, d Discoverer) (mcp.ServerConfig, error) {
	if options == nil {
		options = &config.Options{}
	}

	if options.Transport != nil {
		return &mcp.TransportServerConfig{Transport: options.Transport}, nil
	}

	if options.Endpoint != "" {
		return &mcp.HTTPServerConfig{
			URL:     options.Endpoint,
			Headers: maps.Clone(options.Headers),
		}, nil
	}

	if d == nil {
		d = NewDiscoverer(&Config{
			ServerPath: options.ServerPath,
			Logger:     options.Logger,
		})
	}

	path, err := d.Discover(ctx)
	if err != nil {
		return nil, err
	}

	return &mcp.StdioServerConfig{
		Command: path,
		Args:    slices.Clone(options.ServerArgs),
		Env:     maps.Clone(options.ServerEnv),
	}, nil
}
