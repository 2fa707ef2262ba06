package mcp

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/toolkit-mcp-go/internal/subprocess"
)

// ServerType identifies how a client reaches a tool server.
type ServerType string

const (
	// ServerTypeStdio launches the server as a subprocess speaking over stdio.
	ServerTypeStdio ServerType = "stdio"
	// ServerTypeHTTP connects to a streamable HTTP endpoint.
	ServerTypeHTTP ServerType = "http"
	// ServerTypeTransport uses a caller-supplied transport.
	ServerTypeTransport ServerType = "transport"
)

// ServerConfig is the interface for tool server connection configurations.
type ServerConfig interface {
	GetType() ServerType
}

// Compile-time verification that all server config types implement ServerConfig.
var (
	_ ServerConfig = (*StdioServerConfig)(nil)
	_ ServerConfig = (*HTTPServerConfig)(nil)
	_ ServerConfig = (*TransportServerConfig)(nil)
)

// StdioServerConfig launches a server executable.
type StdioServerConfig struct {
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`

	// Stderr receives the server's stderr. Nil means os.Stderr.
	Stderr io.Writer `json:"-"`
}

// GetType implements ServerConfig.
func (c *StdioServerConfig) GetType() ServerType { return ServerTypeStdio }

// HTTPServerConfig connects to a running server over streamable HTTP.
type HTTPServerConfig struct {
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers,omitempty"`
}

// GetType implements ServerConfig.
func (c *HTTPServerConfig) GetType() ServerType { return ServerTypeHTTP }

// TransportServerConfig wraps an already-constructed transport, typically
// one half of mcp.NewInMemoryTransports in tests.
type TransportServerConfig struct {
	Transport mcp.Transport `json:"-"`
}

// GetType implements ServerConfig.
func (c *TransportServerConfig) GetType() ServerType { return ServerTypeTransport }

// NewClientTransport builds the client side transport for cfg.
func NewClientTransport(cfg ServerConfig) (mcp.Transport, error) {
	switch c := cfg.(type) {
	case *StdioServerConfig:
		if c.Command == "" {
			return nil, fmt.Errorf("stdio server: command must not be empty")
		}

		cmd := subprocess.Command(c.Command, c.Args, c.Env)

		cmd.Stderr = c.Stderr
		if cmd.Stderr == nil {
			cmd.Stderr = os.Stderr
		}

		return &mcp.CommandTransport{Command: cmd}, nil
	case *HTTPServerConfig:
		if c.URL == "" {
			return nil, fmt.Errorf("http server: url must not be empty")
		}

		t := &mcp.StreamableClientTransport{Endpoint: c.URL}
		if len(c.Headers) > 0 {
			t.HTTPClient = &http.Client{
				Transport: &headerRoundTripper{headers: c.Headers, next: http.DefaultTransport},
			}
		}

		return t, nil
	case *TransportServerConfig:
		if c.Transport == nil {
			return nil, fmt.Errorf("transport server: transport must not be nil")
		}

		return c.Transport, nil
	default:
		return nil, fmt.Errorf("unsupported server config %T", cfg)
	}
}

type headerRoundTripper struct {
	headers map[string]string
	next    http.RoundTripper
}

func (h *headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range h.headers {
		req.Header.Set(k, v)
	}

	return h.next.RoundTrip(req)
}
