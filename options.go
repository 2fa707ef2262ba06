package toolkit

import (
	"log/slog"
	"maps"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/toolkit-mcp-go/internal/config"
)

// Options configures a Client. Build it with the With* functions.
type Options = config.Options

// Option configures Options using the functional options pattern.
type Option func(*Options)

// applyOptions applies functional options to a fresh Options struct.
func applyOptions(opts []Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithServerPath sets the explicit path to the toolkit-server binary.
// If not set, the server is searched in PATH.
func WithServerPath(path string) Option {
	return func(o *Options) {
		o.ServerPath = path
	}
}

// WithServerArgs sets the arguments passed to the server binary.
func WithServerArgs(args ...string) Option {
	return func(o *Options) {
		o.ServerArgs = append(o.ServerArgs, args...)
	}
}

// WithServerEnv adds environment variables for the server process.
func WithServerEnv(env map[string]string) Option {
	return func(o *Options) {
		if o.ServerEnv == nil {
			o.ServerEnv = make(map[string]string, len(env))
		}

		maps.Copy(o.ServerEnv, env)
	}
}

// WithStderr sets a callback that receives each line the server process
// writes to stderr.
func WithStderr(handler func(string)) Option {
	return func(o *Options) {
		o.Stderr = handler
	}
}

// WithEndpoint connects to a running server over streamable HTTP instead of
// launching a subprocess.
func WithEndpoint(url string) Option {
	return func(o *Options) {
		o.Endpoint = url
	}
}

// WithHeaders adds HTTP headers sent with every request to the endpoint.
func WithHeaders(headers map[string]string) Option {
	return func(o *Options) {
		if o.Headers == nil {
			o.Headers = make(map[string]string, len(headers))
		}

		maps.Copy(o.Headers, headers)
	}
}

// WithConnectTimeout bounds the initialize handshake.
func WithConnectTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.ConnectTimeout = d
	}
}

// WithTransport injects a go-sdk transport. It takes precedence over
// WithEndpoint and WithServerPath.
func WithTransport(t mcp.Transport) Option {
	return func(o *Options) {
		o.Transport = t
	}
}
