package toolkit

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/toolkit-mcp-go/internal/config"
	"github.com/wagiedev/toolkit-mcp-go/internal/hook"
	internalmcp "github.com/wagiedev/toolkit-mcp-go/internal/mcp"
	"github.com/wagiedev/toolkit-mcp-go/internal/observe"
	"github.com/wagiedev/toolkit-mcp-go/internal/tools"
)

// ServerConfig configures a tool server. The zero value is not valid; start
// from DefaultServerConfig or LoadServerConfig.
type ServerConfig = config.ServerConfig

// DefaultServerConfig returns a configuration with every tool family enabled.
func DefaultServerConfig() *ServerConfig {
	return config.Default()
}

// LoadServerConfig reads a YAML server configuration file.
func LoadServerConfig(path string) (*ServerConfig, error) {
	return config.Load(path)
}

type serverOptions struct {
	log       *slog.Logger
	now       func() time.Time
	catalog   CatalogService
	telemetry bool
	hooks     map[HookEvent][]*HookMatcher
}

// ServerOption configures NewServer.
type ServerOption func(*serverOptions)

// WithServerLogger sets the server logger.
func WithServerLogger(log *slog.Logger) ServerOption {
	return func(o *serverOptions) { o.log = log }
}

// WithClock sets the clock used by the weather and todo tools.
func WithClock(now func() time.Time) ServerOption {
	return func(o *serverOptions) { o.now = now }
}

// WithCatalogService replaces the HTTP client used by the catalog tools.
func WithCatalogService(svc CatalogService) ServerOption {
	return func(o *serverOptions) { o.catalog = svc }
}

// WithTelemetry records tool call metrics through the global OpenTelemetry
// meter provider.
func WithTelemetry() ServerOption {
	return func(o *serverOptions) { o.telemetry = true }
}

// WithHooks registers callbacks that run around tool calls. A PreToolCall
// hook can block a call; the client then receives an error envelope.
func WithHooks(hooks map[HookEvent][]*HookMatcher) ServerOption {
	return func(o *serverOptions) { o.hooks = hooks }
}

// Server is an embeddable tool server. Each Server owns its own in-memory
// todo and product stores.
type Server struct {
	impl *internalmcp.Server
	log  *slog.Logger
}

// NewServer builds a tool server from cfg. A nil cfg means
// DefaultServerConfig.
func NewServer(cfg *ServerConfig, opts ...ServerOption) (*Server, error) {
	if cfg == nil {
		cfg = DefaultServerConfig()
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid server config: %w", err)
	}

	o := &serverOptions{log: NopLogger(), now: time.Now}
	for _, opt := range opts {
		opt(o)
	}

	toolOpts := []tools.Option{tools.WithLogger(o.log), tools.WithClock(o.now)}
	if o.catalog != nil {
		toolOpts = append(toolOpts, tools.WithCatalog(o.catalog))
	}

	reg := internalmcp.NewRegistry()
	if err := tools.Register(reg, cfg, toolOpts...); err != nil {
		return nil, err
	}

	dispatchOpts := []internalmcp.DispatcherOption{internalmcp.WithLogger(o.log)}

	if len(o.hooks) > 0 {
		runner, err := hook.NewRunner(o.hooks)
		if err != nil {
			return nil, fmt.Errorf("invalid hooks: %w", err)
		}

		dispatchOpts = append(dispatchOpts, internalmcp.WithHooks(runner))
	}

	if o.telemetry {
		dispatchOpts = append(dispatchOpts, internalmcp.WithMetrics(observe.DefaultMetrics()))
	}

	info := internalmcp.ServerInfo{Name: cfg.Name, Version: cfg.Version}

	return &Server{
		impl: internalmcp.NewServer(info, internalmcp.NewDispatcher(reg, dispatchOpts...), o.log),
		log:  o.log,
	}, nil
}

// Info returns the server identity.
func (s *Server) Info() ServerInfo {
	return s.impl.Info()
}

// Tools returns the registered tools in registration order.
func (s *Server) Tools() []ToolDescriptor {
	return s.impl.ListTools()
}

// CallTool dispatches a call in process without a transport.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) *Envelope {
	return s.impl.CallTool(ctx, name, args)
}

// InProcessTransport starts a session with s and returns the client side
// of the connection, for use with WithTransport. The session ends when the
// client closes.
func (s *Server) InProcessTransport(ctx context.Context) (mcp.Transport, error) {
	serverT, clientT := mcp.NewInMemoryTransports()

	if _, err := s.impl.Connect(ctx, serverT); err != nil {
		return nil, fmt.Errorf("connect in-process session: %w", err)
	}

	return clientT, nil
}

// ServeStdio serves one session over stdin and stdout until the client
// disconnects or ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.impl.Run(ctx, &mcp.StdioTransport{})
}

// Handler serves sessions over streamable HTTP.
func (s *Server) Handler() http.Handler {
	return s.impl.HTTPHandler()
}
