package text

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	internalmcp "github.com/wagiedev/toolkit-mcp-go/internal/mcp"
)

// Register adds the text tools to reg.
func Register(reg *internalmcp.Registry) error {
	pure := &mcp.ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true}
	textParam := internalmcp.Required("text", internalmcp.KindString, "Input text")

	tools := []internalmcp.Tool{
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "analyze_text",
				Description: "Count words, characters, lines, sentences and paragraphs",
				Parameters:  []internalmcp.ParameterSpec{textParam},
			},
			Handler: func(_ context.Context, args internalmcp.Args) (any, error) {
				return Analyze(args.String("text")), nil
			},
		},
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "convert_case",
				Description: "Convert text to upper, lower, title, sentence or toggle case",
				Parameters: []internalmcp.ParameterSpec{
					textParam,
					internalmcp.Required("mode", internalmcp.KindString, "upper, lower, title, sentence or toggle"),
				},
			},
			Handler: func(_ context.Context, args internalmcp.Args) (any, error) {
				return ConvertCase(args.String("text"), args.String("mode"))
			},
		},
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "reverse_text",
				Description: "Reverse text character by character",
				Parameters:  []internalmcp.ParameterSpec{textParam},
			},
			Handler: func(_ context.Context, args internalmcp.Args) (any, error) {
				return Reverse(args.String("text")), nil
			},
		},
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "remove_duplicate_lines",
				Description: "Remove repeated lines, keeping the first occurrence",
				Parameters: []internalmcp.ParameterSpec{
					textParam,
					internalmcp.Optional("case_sensitive", internalmcp.KindBoolean, true, "Compare lines case-sensitively"),
				},
			},
			Handler: func(_ context.Context, args internalmcp.Args) (any, error) {
				return RemoveDuplicateLines(args.String("text"), args.Bool("case_sensitive")), nil
			},
		},
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "extract_emails",
				Description: "Extract distinct email addresses",
				Parameters:  []internalmcp.ParameterSpec{textParam},
			},
			Handler: func(_ context.Context, args internalmcp.Args) (any, error) {
				return ExtractEmails(args.String("text")), nil
			},
		},
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "extract_urls",
				Description: "Extract distinct http and https URLs",
				Parameters:  []internalmcp.ParameterSpec{textParam},
			},
			Handler: func(_ context.Context, args internalmcp.Args) (any, error) {
				return ExtractURLs(args.String("text")), nil
			},
		},
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "slugify",
				Description: "Convert text to a URL slug",
				Parameters:  []internalmcp.ParameterSpec{textParam},
			},
			Handler: func(_ context.Context, args internalmcp.Args) (any, error) {
				return Slugify(args.String("text")), nil
			},
		},
		{
			Descriptor: internalmcp.Descriptor{
				Name:        "truncate_text",
				Description: "Shorten text to a maximum length",
				Parameters: []internalmcp.ParameterSpec{
					textParam,
					internalmcp.Required("max_length", internalmcp.KindInteger, "Maximum length in characters"),
					internalmcp.Optional("use_ellipsis", internalmcp.KindBoolean, true, "End shortened text with an ellipsis"),
				},
			},
			Handler: func(_ context.Context, args internalmcp.Args) (any, error) {
				return Truncate(args.String("text"), int(args.Int("max_length")), args.Bool("use_ellipsis"))
			},
		},
	}

	for _, t := range tools {
		t.Descriptor.Annotations = pure
		if err := reg.Register(t.Descriptor, t.Handler); err != nil {
			return err
		}
	}

	return nil
}
