package mcp

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/toolkit-mcp-go/internal/message"
)

// methodCallTool is the JSON-RPC method of a tool invocation.
const methodCallTool = "tools/call"

// Server exposes a dispatcher's registry as an MCP tool server.
//
// The tool list is captured when the server is created; tools registered
// afterwards are not advertised.
type Server struct {
	info       ServerInfo
	dispatcher *Dispatcher
	server     *mcp.Server
	log        *slog.Logger
}

// NewServer builds an MCP server advertising every registered tool in
// registration order.
func NewServer(info ServerInfo, dispatcher *Dispatcher, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		info:       info,
		dispatcher: dispatcher,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    info.Name,
			Version: info.Version,
		}, nil),
		log: log.With("component", "mcp_server"),
	}

	for i, desc := range dispatcher.Registry().List() {
		s.server.AddTool(ToTool(desc, i), s.handle)
	}

	s.server.AddReceivingMiddleware(s.unknownToolMiddleware)

	s.log.Debug("tool server created", "name", info.Name, "tools", dispatcher.Registry().Len())

	return s
}

// handle adapts the dispatcher to an mcp.ToolHandler. Errors are always
// encoded in the result.
func (s *Server) handle(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return message.ToResult(s.dispatcher.CallRaw(ctx, req.Params.Name, req.Params.Arguments)), nil
}

// unknownToolMiddleware answers calls for unregistered tools with the
// dispatcher's not-found envelope instead of a JSON-RPC error.
func (s *Server) unknownToolMiddleware(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		if method != methodCallTool {
			return next(ctx, method, req)
		}

		params, ok := req.GetParams().(*mcp.CallToolParamsRaw)
		if !ok || params == nil {
			return next(ctx, method, req)
		}

		if _, found := s.dispatcher.Registry().Resolve(params.Name); found {
			return next(ctx, method, req)
		}

		return message.ToResult(s.dispatcher.CallRaw(ctx, params.Name, params.Arguments)), nil
	}
}

// Info returns the server identity.
func (s *Server) Info() ServerInfo {
	return s.info
}

// ListTools returns the advertised descriptors in registration order.
func (s *Server) ListTools() []Descriptor {
	return s.dispatcher.Registry().List()
}

// CallTool dispatches a call in process, bypassing any transport.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) *message.Envelope {
	return s.dispatcher.Call(ctx, name, args)
}

// Run serves a single session over t until the client disconnects or ctx
// is cancelled.
func (s *Server) Run(ctx context.Context, t mcp.Transport) error {
	s.log.Info("serving")

	return s.server.Run(ctx, t)
}

// Connect starts a session over t without blocking.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.server.Connect(ctx, t, nil)
}

// HTTPHandler serves sessions over streamable HTTP.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)
}
