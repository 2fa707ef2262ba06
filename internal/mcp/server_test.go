package mcp

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/wagiedev/toolkit-mcp-go/internal/message"
)

func connectTestServer(t *testing.T) *mcp.ClientSession {
	t.Helper()

	ctx := context.Background()
	d, _ := newTestDispatcher(t)
	srv := NewServer(ServerInfo{Name: "test-server", Version: "v0.0.1"}, d, nil)

	serverT, clientT := mcp.NewInMemoryTransports()

	ss, err := srv.Connect(ctx, serverT)
	require.NoError(t, err)

	t.Cleanup(func() { _ = ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)

	cs, err := client.Connect(ctx, clientT, nil)
	require.NoError(t, err)

	t.Cleanup(func() { _ = cs.Close() })

	return cs
}

func TestServer_ListTools(t *testing.T) {
	cs := connectTestServer(t)

	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, res.Tools, 5)

	orders := make(map[string]int, len(res.Tools))

	for _, tool := range res.Tools {
		_, order, err := FromTool(tool)
		require.NoError(t, err)

		orders[tool.Name] = order
	}

	require.Equal(t, map[string]int{"echo": 0, "point": 1, "nothing": 2, "fail": 3, "explode": 4}, orders)
}

func TestServer_CallTool(t *testing.T) {
	ctx := context.Background()
	cs := connectTestServer(t)

	t.Run("text result", func(t *testing.T) {
		res, err := cs.CallTool(ctx, &mcp.CallToolParams{Name: "echo", Arguments: map[string]any{"text": "hi", "times": 3}})
		require.NoError(t, err)

		env := message.FromResult(res)
		require.False(t, env.IsError)
		require.Equal(t, "hihihi", env.String())
	})

	t.Run("data result keeps its kind", func(t *testing.T) {
		res, err := cs.CallTool(ctx, &mcp.CallToolParams{Name: "point", Arguments: map[string]any{"x": 1, "y": 2}})
		require.NoError(t, err)

		env := message.FromResult(res)
		require.Len(t, env.Parts, 1)
		require.Equal(t, message.PartData, env.Parts[0].Kind)

		var p point
		require.NoError(t, env.Decode(&p))
		require.Equal(t, point{X: 1, Y: 2}, p)
	})

	t.Run("empty result", func(t *testing.T) {
		res, err := cs.CallTool(ctx, &mcp.CallToolParams{Name: "nothing"})
		require.NoError(t, err)
		require.True(t, message.FromResult(res).IsEmpty())
	})

	t.Run("unknown tool is an error envelope, not a protocol error", func(t *testing.T) {
		res, err := cs.CallTool(ctx, &mcp.CallToolParams{Name: "ehco", Arguments: map[string]any{}})
		require.NoError(t, err)

		env := message.FromResult(res)
		require.True(t, env.IsError)
		require.Contains(t, env.String(), "Tool not found: ehco")
	})

	t.Run("fault is an error envelope", func(t *testing.T) {
		res, err := cs.CallTool(ctx, &mcp.CallToolParams{Name: "explode"})
		require.NoError(t, err)
		require.True(t, res.IsError)
	})
}

func TestServer_InProcess(t *testing.T) {
	d, _ := newTestDispatcher(t)
	srv := NewServer(ServerInfo{Name: "test-server", Version: "v1"}, d, nil)

	require.Equal(t, "test-server", srv.Info().Name)
	require.Len(t, srv.ListTools(), 5)
	require.Equal(t, "x", srv.CallTool(context.Background(), "echo", map[string]any{"text": "x"}).String())
}

func TestServer_HTTPHandler(t *testing.T) {
	d, _ := newTestDispatcher(t)
	srv := NewServer(ServerInfo{Name: "test-server", Version: "v1"}, d, nil)

	ts := httptest.NewServer(srv.HTTPHandler())
	defer ts.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v1"}, nil)

	cs, err := client.Connect(context.Background(), &mcp.StreamableClientTransport{Endpoint: ts.URL}, nil)
	require.NoError(t, err)

	defer cs.Close()

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{Name: "echo", Arguments: map[string]any{"text": "ok"}})
	require.NoError(t, err)
	require.Equal(t, "ok", message.FromResult(res).String())
}
