package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wagiedev/toolkit-mcp-go"
)

var (
	dim       = lipgloss.NewStyle().Faint(true)
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")).Bold(true)
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#CC0000")).Bold(true)
	kindStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
)

// errToolFailed marks a call whose envelope was already printed as an error.
var errToolFailed = errors.New("tool reported an error")

// parseArgs turns key=value pairs into an argument bag. Values that parse as
// JSON keep their JSON type; anything else is a string.
func parseArgs(pairs []string) (map[string]any, error) {
	bag := make(map[string]any, len(pairs))

	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("argument %q: expected key=value", pair)
		}

		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			v = raw
		}

		bag[key] = v
	}

	return bag, nil
}

func renderTools(tools []toolkit.ToolDescriptor, verbose bool) string {
	width := 0
	for _, t := range tools {
		width = max(width, len(t.Name))
	}

	name := kindStyle.Width(width + 2)

	var b strings.Builder

	for _, t := range tools {
		b.WriteString(name.Render(t.Name))
		b.WriteString(dim.Render(t.Description))
		b.WriteByte('\n')

		if !verbose {
			continue
		}

		for _, p := range t.Parameters {
			fmt.Fprintf(&b, "  └ %s %s", p.Name, dim.Render(string(p.Kind)))

			if p.Required {
				b.WriteString(" " + okStyle.Render("required"))
			} else {
				b.WriteString(dim.Render(fmt.Sprintf(" = %v", p.Default)))
			}

			b.WriteByte('\n')
		}
	}

	return b.String()
}

func renderEnvelope(tool string, env *toolkit.Envelope, raw bool) (string, error) {
	if raw {
		data, err := json.MarshalIndent(env, "", "  ")
		if err != nil {
			return "", err
		}

		return string(data) + "\n", nil
	}

	icon, iconStyle, status := "✓", okStyle, "completed"
	if env.IsError {
		icon, iconStyle, status = "✗", errStyle, "failed"
	}

	var b strings.Builder

	b.WriteString(iconStyle.Render(icon+" ") + kindStyle.Render(tool) + " " + dim.Render(status) + "\n")

	for _, part := range env.Parts {
		body := part.Text
		if part.Kind == toolkit.PartData {
			body = indentJSON(part.Data)
		}

		for _, line := range strings.Split(body, "\n") {
			b.WriteString(dim.Render("  │ ") + line + "\n")
		}
	}

	return b.String(), nil
}

func renderStatus(s *toolkit.ServerStatus) string {
	return fmt.Sprintf("%s %s %s\n%s\n",
		kindStyle.Render(s.Server.Name),
		s.Server.Version,
		dim.Render("("+string(s.Type)+")"),
		dim.Render(fmt.Sprintf("%d tools", s.Tools)),
	)
}

func indentJSON(data []byte) string {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return string(data)
	}

	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return string(data)
	}

	return string(out)
}
