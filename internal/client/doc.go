// Package client implements the toolkit Client: a single MCP session with a
// tool server, reached over an injected transport, streamable HTTP, or a
// toolkit-server subprocess.
//
// A Client is single-use. Start connects it, Close ends the session, and a
// closed Client cannot be started again.
package client
