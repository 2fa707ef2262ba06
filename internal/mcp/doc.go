// Package mcp implements the tool registry, argument coercion, dispatcher,
// and Model Context Protocol server that together host the toolkit's tools.
//
// Tools are registered at startup as an explicit, ordered table of
// descriptors and handlers. The dispatcher resolves a tool by exact name,
// coerces the caller's loosely-typed argument bag against the declared
// parameters, invokes the handler exactly once, and wraps the outcome in a
// message.Envelope. Faults never cross the dispatcher unconverted.
//
// Server exposes the registry over any go-sdk transport (stdio, streamable
// HTTP, or in-memory for tests).
package mcp
