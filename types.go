package toolkit

import (
	"github.com/wagiedev/toolkit-mcp-go/internal/mcp"
	"github.com/wagiedev/toolkit-mcp-go/internal/message"
	"github.com/wagiedev/toolkit-mcp-go/internal/tools/catalog"
)

// Re-export types from internal packages

// ===== Results =====

// Envelope is the structured response of a tool call.
type Envelope = message.Envelope

// ContentPart is one element of an Envelope.
type ContentPart = message.ContentPart

// PartKind tags a ContentPart.
type PartKind = message.PartKind

const (
	// PartText is a plain text part.
	PartText = message.PartText
	// PartData is a JSON document part.
	PartData = message.PartData
)

// ===== Tool Descriptions =====

// ToolDescriptor describes a tool: name, description, parameters and hints.
type ToolDescriptor = mcp.Descriptor

// ParameterSpec declares one parameter of a tool.
type ParameterSpec = mcp.ParameterSpec

// Kind is the declared type of a tool parameter.
type Kind = mcp.Kind

const (
	// KindString accepts text; numbers and booleans are formatted.
	KindString = mcp.KindString
	// KindInteger accepts whole numbers and numeric strings.
	KindInteger = mcp.KindInteger
	// KindFloat accepts finite numbers and numeric strings.
	KindFloat = mcp.KindFloat
	// KindDecimal accepts numbers and numeric strings as exact decimals.
	KindDecimal = mcp.KindDecimal
	// KindBoolean accepts booleans and common boolean words.
	KindBoolean = mcp.KindBoolean
)

// ===== Server Status =====

// ServerStatus describes the server a client is connected to.
type ServerStatus = mcp.Status

// ServerInfo identifies a tool server.
type ServerInfo = mcp.ServerInfo

// ServerType identifies how a client reaches a tool server.
type ServerType = mcp.ServerType

const (
	// ServerTypeStdio is a toolkit-server subprocess.
	ServerTypeStdio = mcp.ServerTypeStdio
	// ServerTypeHTTP is a streamable HTTP endpoint.
	ServerTypeHTTP = mcp.ServerTypeHTTP
	// ServerTypeTransport is a caller-supplied transport.
	ServerTypeTransport = mcp.ServerTypeTransport
)

// CatalogService is the product catalog seen by the catalog tools.
type CatalogService = catalog.Service

// CatalogUpdateResult reports whether a catalog update found its product.
type CatalogUpdateResult = catalog.UpdateResult
