package toolkit

import "github.com/wagiedev/toolkit-mcp-go/internal/errors"

// Re-export error types from internal package

// ToolkitError is the base interface for all toolkit errors.
type ToolkitError = errors.ToolkitError

// ServerNotFoundError indicates the toolkit-server binary was not found.
type ServerNotFoundError = errors.ServerNotFoundError

// ConnectionError indicates failure to connect to the tool server.
type ConnectionError = errors.ConnectionError

// ToolCallError indicates a tool call failed in transport or returned an
// error envelope where a value was expected.
type ToolCallError = errors.ToolCallError

// CollaboratorError indicates the external product catalog failed.
type CollaboratorError = errors.CollaboratorError

// Re-export sentinel errors from internal package.
var (
	// ErrClientNotConnected indicates the client is not connected.
	ErrClientNotConnected = errors.ErrClientNotConnected

	// ErrClientAlreadyConnected indicates the client is already connected.
	ErrClientAlreadyConnected = errors.ErrClientAlreadyConnected

	// ErrClientClosed indicates the client has been closed and cannot be reused.
	ErrClientClosed = errors.ErrClientClosed

	// ErrNoContent indicates a tool response carried no content parts.
	ErrNoContent = errors.ErrNoContent

	// ErrUnknownTool indicates the server does not expose the requested tool.
	ErrUnknownTool = errors.ErrUnknownTool
)
