// Package cli locates the toolkit-server binary and resolves client options
// into a server connection configuration.
//
// # Server Discovery
//
// The Discoverer interface locates and validates the server binary:
//
//	discoverer := cli.NewDiscoverer(&cli.Config{
//	    ServerPath: "",           // Optional explicit path
//	    Logger:     slog.Default(),
//	})
//	path, err := discoverer.Discover(ctx)
//
// Discovery searches in the following order:
//  1. Explicit path in Config.ServerPath (if provided)
//  2. System PATH
//  3. Common installation directories (/usr/local/bin, /usr/bin, ~/go/bin, ~/.local/bin)
//
// During discovery, the server version reported by "--version" is compared
// against MinimumVersion. A warning is logged if it is older.
//
// # Connection Resolution
//
// ResolveServer turns client options into an mcp.ServerConfig: an injected
// transport wins, then an HTTP endpoint, then a discovered subprocess.
package cli
