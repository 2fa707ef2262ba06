package mcp

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

func TestServerConfigGetType(t *testing.T) {
	require.Equal(t, ServerTypeStdio, (&StdioServerConfig{}).GetType())
	require.Equal(t, ServerTypeHTTP, (&HTTPServerConfig{}).GetType())
	require.Equal(t, ServerTypeTransport, (&TransportServerConfig{}).GetType())
}

func TestNewClientTransport(t *testing.T) {
	t.Run("stdio builds a command transport", func(t *testing.T) {
		tr, err := NewClientTransport(&StdioServerConfig{
			Command: "toolkit-server",
			Args:    []string{"--log-level", "debug"},
			Env:     map[string]string{"FOO": "bar"},
		})
		require.NoError(t, err)

		ct, ok := tr.(*mcp.CommandTransport)
		require.True(t, ok)
		require.Equal(t, []string{"toolkit-server", "--log-level", "debug"}, ct.Command.Args)
		require.Contains(t, ct.Command.Env, "FOO=bar")
	})

	t.Run("stdio routes stderr", func(t *testing.T) {
		var buf bytes.Buffer

		tr, err := NewClientTransport(&StdioServerConfig{Command: "/usr/local/bin/toolkit-server", Stderr: &buf})
		require.NoError(t, err)
		require.Same(t, &buf, tr.(*mcp.CommandTransport).Command.Stderr)

		tr, err = NewClientTransport(&StdioServerConfig{Command: "/usr/local/bin/toolkit-server"})
		require.NoError(t, err)
		require.Equal(t, os.Stderr, tr.(*mcp.CommandTransport).Command.Stderr)
	})

	t.Run("stdio requires a command", func(t *testing.T) {
		_, err := NewClientTransport(&StdioServerConfig{})
		require.Error(t, err)
	})

	t.Run("http builds a streamable transport", func(t *testing.T) {
		tr, err := NewClientTransport(&HTTPServerConfig{URL: "http://localhost:8080/mcp"})
		require.NoError(t, err)

		st, ok := tr.(*mcp.StreamableClientTransport)
		require.True(t, ok)
		require.Equal(t, "http://localhost:8080/mcp", st.Endpoint)
		require.Nil(t, st.HTTPClient)
	})

	t.Run("http headers are applied", func(t *testing.T) {
		var got string

		srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("X-Test")
		}))
		defer srv.Close()

		tr, err := NewClientTransport(&HTTPServerConfig{URL: srv.URL, Headers: map[string]string{"X-Test": "yes"}})
		require.NoError(t, err)

		resp, err := tr.(*mcp.StreamableClientTransport).HTTPClient.Get(srv.URL)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		require.Equal(t, "yes", got)
	})

	t.Run("transport passes through", func(t *testing.T) {
		_, clientT := mcp.NewInMemoryTransports()

		tr, err := NewClientTransport(&TransportServerConfig{Transport: clientT})
		require.NoError(t, err)
		require.Same(t, clientT, tr)
	})

	t.Run("nil transport is rejected", func(t *testing.T) {
		_, err := NewClientTransport(&TransportServerConfig{})
		require.Error(t, err)
	})
}
