package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	gosdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/wagiedev/toolkit-mcp-go/internal/config"
	"github.com/wagiedev/toolkit-mcp-go/internal/errors"
	"github.com/wagiedev/toolkit-mcp-go/internal/mcp"
)

func writeFakeServer(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ServerBinary)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\necho 0.2.0\n"), 0o755))

	return path
}

func TestDiscoverer_NotFound(t *testing.T) {
	d := NewDiscoverer(&Config{
		ServerPath:       "/nonexistent/path/to/toolkit-server",
		SkipVersionCheck: true,
	})

	_, err := d.Discover(context.Background())

	var notFound *errors.ServerNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, []string{"/nonexistent/path/to/toolkit-server"}, notFound.SearchedPaths)
}

func TestDiscoverer_ExplicitPath(t *testing.T) {
	fake := writeFakeServer(t)

	path, err := NewDiscoverer(&Config{ServerPath: fake}).Discover(context.Background())
	require.NoError(t, err)
	require.Equal(t, fake, path)
}

func TestDiscoverer_PathLookup(t *testing.T) {
	fake := writeFakeServer(t)
	t.Setenv("PATH", filepath.Dir(fake))

	path, err := NewDiscoverer(nil).Discover(context.Background())
	require.NoError(t, err)
	require.Equal(t, fake, path)
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{a: "0.1.0", b: "0.1.0", want: 0},
		{a: "0.2.0", b: "0.1.9", want: 1},
		{a: "1.0", b: "1.0.1", want: -1},
		{a: "10.0.0", b: "9.9.9", want: 1},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, compareVersions(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
	}
}

type stubDiscoverer struct {
	path string
	err  error
}

func (s stubDiscoverer) Discover(context.Context) (string, error) { return s.path, s.err }

func TestResolveServer(t *testing.T) {
	ctx := context.Background()

	t.Run("transport wins", func(t *testing.T) {
		_, clientT := gosdk.NewInMemoryTransports()

		cfg, err := ResolveServer(ctx, &config.Options{Transport: clientT, Endpoint: "http://x"}, stubDiscoverer{})
		require.NoError(t, err)
		require.Equal(t, mcp.ServerTypeTransport, cfg.GetType())
	})

	t.Run("endpoint", func(t *testing.T) {
		cfg, err := ResolveServer(ctx, &config.Options{
			Endpoint: "http://localhost:8080/mcp",
			Headers:  map[string]string{"X-Trace": "1"},
		}, stubDiscoverer{})
		require.NoError(t, err)
		require.Equal(t, &mcp.HTTPServerConfig{
			URL:     "http://localhost:8080/mcp",
			Headers: map[string]string{"X-Trace": "1"},
		}, cfg)
	})

	t.Run("subprocess", func(t *testing.T) {
		cfg, err := ResolveServer(ctx, &config.Options{
			ServerArgs: []string{"--log-level", "debug"},
			ServerEnv:  map[string]string{"A": "b"},
		}, stubDiscoverer{path: "/opt/toolkit-server"})
		require.NoError(t, err)
		require.Equal(t, &mcp.StdioServerConfig{
			Command: "/opt/toolkit-server",
			Args:    []string{"--log-level", "debug"},
			Env:     map[string]string{"A": "b"},
		}, cfg)
	})

	t.Run("discovery failure", func(t *testing.T) {
		_, err := ResolveServer(ctx, nil, stubDiscoverer{err: &errors.ServerNotFoundError{}})

		var notFound *errors.ServerNotFoundError
		require.ErrorAs(t, err, &notFound)
	})
}
