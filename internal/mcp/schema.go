package mcp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/shopspring/decimal"
)

// Tool metadata keys carried in _meta.
const (
	metaOrderKey      = "toolkit/order"
	metaParametersKey = "toolkit/parameters"
)

// formatDecimal marks a "number" property that holds a decimal value.
const formatDecimal = "decimal"

// ToSchema builds the JSON Schema of desc's input object.
func ToSchema(desc Descriptor) *jsonschema.Schema {
	properties := make(map[string]*jsonschema.Schema, len(desc.Parameters))
	required := make([]string, 0, len(desc.Parameters))

	for _, p := range desc.Parameters {
		prop := kindToSchema(p.Kind)
		prop.Description = p.Description

		if p.Required {
			required = append(required, p.Name)
		} else if raw, err := marshalDefault(p.Default); err == nil {
			prop.Default = raw
		}

		properties[p.Name] = prop
	}

	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

func kindToSchema(k Kind) *jsonschema.Schema {
	switch k {
	case KindInteger:
		return &jsonschema.Schema{Type: "integer"}
	case KindFloat:
		return &jsonschema.Schema{Type: "number"}
	case KindDecimal:
		return &jsonschema.Schema{Type: "number", Format: formatDecimal}
	case KindBoolean:
		return &jsonschema.Schema{Type: "boolean"}
	default:
		return &jsonschema.Schema{Type: "string"}
	}
}

func schemaToKind(s *jsonschema.Schema) Kind {
	if s == nil {
		return KindString
	}

	switch s.Type {
	case "integer":
		return KindInteger
	case "number":
		if s.Format == formatDecimal {
			return KindDecimal
		}

		return KindFloat
	case "boolean":
		return KindBoolean
	default:
		return KindString
	}
}

// ToTool converts desc into the MCP tool advertised at position order.
func ToTool(desc Descriptor, order int) *mcp.Tool {
	names := make([]string, 0, len(desc.Parameters))
	for _, p := range desc.Parameters {
		names = append(names, p.Name)
	}

	return &mcp.Tool{
		Name:        desc.Name,
		Description: desc.Description,
		InputSchema: ToSchema(desc),
		Annotations: desc.Annotations,
		Meta: mcp.Meta{
			metaOrderKey:      order,
			metaParametersKey: names,
		},
	}
}

// FromTool reconstructs a descriptor from an advertised MCP tool. It also
// returns the registration position carried in the tool metadata, or -1
// when the tool carries none.
func FromTool(tool *mcp.Tool) (Descriptor, int, error) {
	desc := Descriptor{
		Name:        tool.Name,
		Description: tool.Description,
		Annotations: tool.Annotations,
	}

	schema, err := asSchema(tool.InputSchema)
	if err != nil {
		return Descriptor{}, -1, fmt.Errorf("tool %q: %w", tool.Name, err)
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	for _, name := range parameterOrder(tool.Meta, schema) {
		prop, ok := schema.Properties[name]
		if !ok {
			continue
		}

		p := ParameterSpec{
			Name:        name,
			Kind:        schemaToKind(prop),
			Required:    required[name],
			Description: prop.Description,
		}

		if !p.Required && len(prop.Default) > 0 {
			p.Default = decodeDefault(p.Kind, prop.Default)
		}

		desc.Parameters = append(desc.Parameters, p)
	}

	return desc, metaOrder(tool.Meta), nil
}

func asSchema(v any) (*jsonschema.Schema, error) {
	if s, ok := v.(*jsonschema.Schema); ok && s != nil {
		return s, nil
	}

	if v == nil {
		return &jsonschema.Schema{Type: "object"}, nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode input schema: %w", err)
	}

	var s jsonschema.Schema
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode input schema: %w", err)
	}

	return &s, nil
}

// parameterOrder returns declared parameter names from metadata, falling
// back to sorted property names.
func parameterOrder(meta mcp.Meta, schema *jsonschema.Schema) []string {
	switch v := meta[metaParametersKey].(type) {
	case []string:
		return v
	case []any:
		names := make([]string, 0, len(v))
		for _, n := range v {
			if s, ok := n.(string); ok {
				names = append(names, s)
			}
		}

		return names
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

func metaOrder(meta mcp.Meta) int {
	switch v := meta[metaOrderKey].(type) {
	case int:
		return v
	case float64:
		return int(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i)
		}
	}

	return -1
}

// marshalDefault encodes a default value. Decimals are written as JSON
// numbers to match their "number" schema type.
func marshalDefault(v any) (json.RawMessage, error) {
	if d, ok := v.(decimal.Decimal); ok {
		return json.RawMessage(d.String()), nil
	}

	return json.Marshal(v)
}

func decodeDefault(kind Kind, raw json.RawMessage) any {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}

	coerced, err := Coerce(kind, v)
	if err != nil {
		return nil
	}

	return coerced
}
