//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wagiedev/toolkit-mcp-go"
)

// TestSubprocess_Lifecycle starts an installed toolkit-server over stdio,
// calls a tool and closes the session.
func TestSubprocess_Lifecycle(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := toolkit.NewClient()

	err := client.Start(ctx, toolkit.WithServerArgs("--tools", "arithmetic,text"))
	if err != nil {
		skipIfServerNotInstalled(t, err)
		t.Fatalf("Start failed: %v", err)
	}

	status, err := client.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, toolkit.ServerTypeStdio, status.Type)
	require.Equal(t, 16, status.Tools)

	env, err := client.CallTool(ctx, "reverse_text", map[string]any{"text": "stressed"})
	require.NoError(t, err)
	require.Equal(t, "desserts", env.String())

	require.ErrorIs(t, client.Start(ctx), toolkit.ErrClientAlreadyConnected)

	closeStart := time.Now()
	require.NoError(t, client.Close())
	require.Less(t, time.Since(closeStart), 10*time.Second, "Close should not hang on the subprocess")

	require.NoError(t, client.Close())

	_, err = client.CallTool(ctx, "reverse_text", map[string]any{"text": "x"})
	require.Error(t, err)
}
