package toolkit

import "context"

// Client is a session with one tool server.
//
// Lifecycle: Clients are single-use. After Close(), create a new client with
// NewClient().
//
// Example usage:
//
//	client := toolkit.NewClient()
//	defer client.Close()
//
//	if err := client.Start(ctx, toolkit.WithServerPath("/usr/local/bin/toolkit-server")); err != nil {
//	    log.Fatal(err)
//	}
//
//	env, err := client.CallTool(ctx, "slugify", map[string]any{"text": "Hello World"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(env.String()) // hello-world
type Client interface {
	// Start connects to the tool server.
	// Must be called before any other methods.
	// Returns ServerNotFoundError if the server binary is not found,
	// ConnectionError if the handshake fails.
	Start(ctx context.Context, opts ...Option) error

	// ListTools returns the server's tools in registration order.
	ListTools(ctx context.Context) ([]ToolDescriptor, error)

	// CallTool invokes a tool with named arguments.
	// Tool faults are reported in the envelope with IsError set; the error
	// covers transport failures only.
	CallTool(ctx context.Context, name string, args map[string]any) (*Envelope, error)

	// Status reports the server identity and tool count.
	Status(ctx context.Context) (*ServerStatus, error)

	// Close ends the session. It is safe to call more than once.
	Close() error
}

// NewClient creates a new client. It is not connected until Start is called.
func NewClient() Client {
	return newClientImpl()
}
