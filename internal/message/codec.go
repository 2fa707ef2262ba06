package message

import (
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// metaKindKey marks MCP text content that carries a JSON data part.
const metaKindKey = "toolkit/kind"

// ToResult converts an envelope into an MCP tool result.
//
// Text parts become text content. Data parts become text content holding
// the JSON document, tagged in _meta so the client can restore the kind.
func ToResult(env *Envelope) *mcp.CallToolResult {
	if env == nil {
		return &mcp.CallToolResult{Content: []mcp.Content{}}
	}

	content := make([]mcp.Content, 0, len(env.Parts))
	for _, p := range env.Parts {
		switch p.Kind {
		case PartData:
			content = append(content, &mcp.TextContent{
				Text: string(p.Data),
				Meta: mcp.Meta{metaKindKey: string(PartData)},
			})
		default:
			content = append(content, &mcp.TextContent{Text: p.Text})
		}
	}

	return &mcp.CallToolResult{
		Content: content,
		IsError: env.IsError,
	}
}

// FromResult converts an MCP tool result back into an envelope.
//
// Text content tagged as data is restored as a data part when it holds
// valid JSON. Binary content types are summarised as text parts.
func FromResult(result *mcp.CallToolResult) *Envelope {
	if result == nil {
		return Empty()
	}

	env := &Envelope{
		Parts:   make([]ContentPart, 0, len(result.Content)),
		IsError: result.IsError,
	}

	for _, c := range result.Content {
		switch v := c.(type) {
		case *mcp.TextContent:
			if kind, _ := v.Meta[metaKindKey].(string); kind == string(PartData) && json.Valid([]byte(v.Text)) {
				env.Parts = append(env.Parts, ContentPart{Kind: PartData, Data: json.RawMessage(v.Text)})

				continue
			}

			env.Parts = append(env.Parts, TextPart(v.Text))
		case *mcp.ImageContent:
			env.Parts = append(env.Parts, TextPart(fmt.Sprintf("[image %s, %d bytes]", v.MIMEType, len(v.Data))))
		case *mcp.AudioContent:
			env.Parts = append(env.Parts, TextPart(fmt.Sprintf("[audio %s, %d bytes]", v.MIMEType, len(v.Data))))
		case *mcp.ResourceLink:
			env.Parts = append(env.Parts, TextPart(v.URI))
		case *mcp.EmbeddedResource:
			if v.Resource != nil {
				env.Parts = append(env.Parts, TextPart(v.Resource.Text))
			}
		}
	}

	return env
}
