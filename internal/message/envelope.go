// Package message provides the response envelope returned by every tool call
// and its codec to and from MCP tool results.
//
// An Envelope is an ordered list of content parts. A part is either text or
// data (a JSON document). An envelope with zero parts means "no content",
// which is distinct from an error envelope.
package message

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wagiedev/toolkit-mcp-go/internal/errors"
)

// PartKind tags a ContentPart.
type PartKind string

// Part kind constants.
const (
	PartText PartKind = "text"
	PartData PartKind = "data"
)

// ContentPart is one element of an Envelope.
type ContentPart struct {
	Kind PartKind        `json:"kind"`
	Text string          `json:"text,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

// TextPart creates a text content part.
func TextPart(text string) ContentPart {
	return ContentPart{Kind: PartText, Text: text}
}

// DataPart creates a data content part by encoding v as JSON.
func DataPart(v any) (ContentPart, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return ContentPart{}, fmt.Errorf("encode data part: %w", err)
	}

	return ContentPart{Kind: PartData, Data: raw}, nil
}

// Envelope is the structured response of a tool call.
type Envelope struct {
	Parts   []ContentPart `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

// Empty returns an envelope with no content.
func Empty() *Envelope {
	return &Envelope{Parts: []ContentPart{}}
}

// Text returns an envelope with a single text part.
func Text(text string) *Envelope {
	return &Envelope{Parts: []ContentPart{TextPart(text)}}
}

// Data returns an envelope with a single data part holding v.
func Data(v any) (*Envelope, error) {
	part, err := DataPart(v)
	if err != nil {
		return nil, err
	}

	return &Envelope{Parts: []ContentPart{part}}, nil
}

// Error returns an error envelope with a single text part.
func Error(format string, args ...any) *Envelope {
	return &Envelope{
		Parts:   []ContentPart{TextPart(fmt.Sprintf(format, args...))},
		IsError: true,
	}
}

// IsEmpty reports whether the envelope carries no parts.
func (e *Envelope) IsEmpty() bool {
	return e == nil || len(e.Parts) == 0
}

// String joins all text parts and the raw JSON of all data parts with
// newlines, in order.
func (e *Envelope) String() string {
	if e.IsEmpty() {
		return ""
	}

	parts := make([]string, 0, len(e.Parts))
	for _, p := range e.Parts {
		switch p.Kind {
		case PartData:
			parts = append(parts, string(p.Data))
		default:
			parts = append(parts, p.Text)
		}
	}

	return strings.Join(parts, "\n")
}

// Decode unmarshals the first part into v.
//
// Data parts are decoded directly. Text parts are decoded as JSON when they
// hold a JSON document; otherwise, if v is a *string, the raw text is
// assigned. Error envelopes and empty envelopes return an error.
func (e *Envelope) Decode(v any) error {
	if e.IsEmpty() {
		return errors.ErrNoContent
	}

	first := e.Parts[0]

	if e.IsError {
		return fmt.Errorf("error envelope: %s", e.String())
	}

	if first.Kind == PartData {
		if err := json.Unmarshal(first.Data, v); err != nil {
			return fmt.Errorf("decode data part: %w", err)
		}

		return nil
	}

	if s, ok := v.(*string); ok {
		*s = first.Text

		return nil
	}

	if err := json.Unmarshal([]byte(first.Text), v); err != nil {
		return fmt.Errorf("decode text part: %w", err)
	}

	return nil
}
