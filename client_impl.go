package toolkit

import (
	"context"

	"github.com/wagiedev/toolkit-mcp-go/internal/client"
)

// clientWrapper wraps the internal client to adapt it to the public interface.
type clientWrapper struct {
	impl *client.Client
}

// Compile-time check that *clientWrapper implements the Client interface.
var _ Client = (*clientWrapper)(nil)

// newClientImpl creates the internal client implementation.
func newClientImpl() Client {
	return &clientWrapper{impl: client.New()}
}

func (c *clientWrapper) Start(ctx context.Context, opts ...Option) error {
	return c.impl.Start(ctx, applyOptions(opts))
}

func (c *clientWrapper) ListTools(ctx context.Context) ([]ToolDescriptor, error) {
	return c.impl.ListTools(ctx)
}

func (c *clientWrapper) CallTool(ctx context.Context, name string, args map[string]any) (*Envelope, error) {
	return c.impl.CallTool(ctx, name, args)
}

func (c *clientWrapper) Status(ctx context.Context) (*ServerStatus, error) {
	return c.impl.Status(ctx)
}

func (c *clientWrapper) Close() error {
	return c.impl.Close()
}
