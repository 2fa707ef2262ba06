package errors

import (
	"errors"
	"fmt"
)

// ToolkitError is the base interface for all toolkit errors.
type ToolkitError interface {
	error
	IsToolkitError() bool
}

// Compile-time verification that all error types implement ToolkitError.
var (
	_ ToolkitError = (*ServerNotFoundError)(nil)
	_ ToolkitError = (*ConnectionError)(nil)
	_ ToolkitError = (*ToolCallError)(nil)
	_ ToolkitError = (*CollaboratorError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrClientNotConnected indicates the client is not connected.
	ErrClientNotConnected = errors.New("client not connected")

	// ErrClientAlreadyConnected indicates the client is already connected.
	ErrClientAlreadyConnected = errors.New("client already connected")

	// ErrClientClosed indicates the client has been closed and cannot be reused.
	ErrClientClosed = errors.New("client closed: clients are single-use, create a new one with NewClient()")

	// ErrNoContent indicates a tool response carried no content parts.
	ErrNoContent = errors.New("tool response has no content")

	// ErrUnknownTool indicates the server does not expose the requested tool.
	ErrUnknownTool = errors.New("unknown tool")
)

// ServerNotFoundError indicates the tool server executable was not found.
type ServerNotFoundError struct {
	SearchedPaths []string
}

func (e *ServerNotFoundError) Error() string {
	return fmt.Sprintf("tool server not found in: %v", e.SearchedPaths)
}

// IsToolkitError implements ToolkitError.
func (e *ServerNotFoundError) IsToolkitError() bool { return true }

// ConnectionError indicates failure to connect to the tool server.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to tool server: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsToolkitError implements ToolkitError.
func (e *ConnectionError) IsToolkitError() bool { return true }

// ToolCallError indicates a tool call failed at the transport level or
// returned an error envelope.
type ToolCallError struct {
	Tool    string
	Message string
	Err     error
}

func (e *ToolCallError) Error() string {
	subject := "tool call"
	if e.Tool != "" {
		subject = fmt.Sprintf("tool %q", e.Tool)
	}

	if e.Err != nil {
		return fmt.Sprintf("%s failed: %v", subject, e.Err)
	}

	return fmt.Sprintf("%s failed: %s", subject, e.Message)
}

func (e *ToolCallError) Unwrap() error {
	return e.Err
}

// IsToolkitError implements ToolkitError.
func (e *ToolCallError) IsToolkitError() bool { return true }

// CollaboratorError indicates the external product catalog service failed
// or answered with an unexpected status.
type CollaboratorError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *CollaboratorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog %s failed: %v", e.Op, e.Err)
	}

	return fmt.Sprintf("catalog %s failed: unexpected status %d", e.Op, e.StatusCode)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// IsToolkitError implements ToolkitError.
func (e *CollaboratorError) IsToolkitError() bool { return true }
