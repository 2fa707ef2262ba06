// Package config provides configuration types for the toolkit client and
// server.
package config

import (
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Options configures the behavior of the toolkit client.
type Options struct {
	// Logger is the slog logger for debug output.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// ServerPath is the explicit path to the toolkit-server binary.
	// If empty, the server is searched in PATH.
	ServerPath string

	// ServerArgs are passed to the server binary.
	ServerArgs []string

	// ServerEnv provides additional environment variables for the server
	// process.
	ServerEnv map[string]string

	// Stderr is called with each line the server process writes to stderr.
	// Lines are also logged at debug level.
	Stderr func(string) `json:"-"`

	// Endpoint connects to a running server over streamable HTTP instead of
	// spawning a subprocess.
	Endpoint string

	// Headers are added to every HTTP request when Endpoint is set.
	Headers map[string]string

	// ConnectTimeout bounds the initialize handshake.
	// If zero, defaults to DefaultConnectTimeout.
	ConnectTimeout time.Duration

	// Transport allows injecting a go-sdk transport, typically one half of
	// mcp.NewInMemoryTransports in tests. It takes precedence over Endpoint
	// and ServerPath.
	Transport mcp.Transport `json:"-"`
}

// DefaultConnectTimeout is used when Options.ConnectTimeout is zero.
const DefaultConnectTimeout = 30 * time.Second

// EffectiveConnectTimeout returns ConnectTimeout or its default.
func (o *Options) EffectiveConnectTimeout() time.Duration {
	if o == nil || o.ConnectTimeout <= 0 {
		return DefaultConnectTimeout
	}

	return o.ConnectTimeout
}
