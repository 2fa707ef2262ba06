//go:build integration

package integration

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wagiedev/toolkit-mcp-go"
	"github.com/wagiedev/toolkit-mcp-go/internal/catalog"
)

var fixedNow = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

// skipIfServerNotInstalled skips the test if the error indicates the
// toolkit-server binary is not found.
func skipIfServerNotInstalled(t *testing.T, err error) {
	t.Helper()

	if _, ok := errors.AsType[*toolkit.ServerNotFoundError](err); ok {
		t.Skip("toolkit-server not installed")
	}
}

// startHTTPServer serves a full tool server, backed by a fresh reference
// catalog, over streamable HTTP and returns its endpoint.
func startHTTPServer(t *testing.T) string {
	t.Helper()

	backend := httptest.NewServer(catalog.NewService(nil).Handler())
	t.Cleanup(backend.Close)

	cfg := toolkit.DefaultServerConfig()
	cfg.Catalog.BaseURL = backend.URL

	server, err := toolkit.NewServer(cfg, toolkit.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	return ts.URL
}
