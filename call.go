package toolkit

import (
	"context"
	"fmt"
	"strings"

	"github.com/wagiedev/toolkit-mcp-go/internal/errors"
	internalmcp "github.com/wagiedev/toolkit-mcp-go/internal/mcp"
)

// Call starts a client, invokes one tool and closes the client.
//
// Like Client.CallTool, tool faults are reported in the envelope. Use Decode
// to turn the envelope into a value or an error.
func Call(ctx context.Context, name string, args map[string]any, opts ...Option) (*Envelope, error) {
	var env *Envelope

	err := WithClient(ctx, func(c Client) error {
		var err error

		env, err = c.CallTool(ctx, name, args)

		return err
	}, opts...)
	if err != nil {
		return nil, err
	}

	return env, nil
}

// Decode converts the first part of env into a T.
//
// An error envelope yields a *ToolCallError carrying its text, wrapping
// ErrUnknownTool when the tool does not exist. An envelope without parts
// yields ErrNoContent.
//
//	env, err := client.CallTool(ctx, "get_current_weather", map[string]any{"location": "London"})
//	weather, err := toolkit.Decode[toolkit.WeatherInfo](env)
func Decode[T any](env *Envelope) (T, error) {
	var v T

	if env.IsEmpty() {
		return v, ErrNoContent
	}

	if env.IsError {
		text := env.String()

		callErr := &errors.ToolCallError{Message: text}
		if strings.HasPrefix(text, internalmcp.NotFoundPrefix) {
			callErr.Err = fmt.Errorf("%w: %s", ErrUnknownTool, strings.TrimPrefix(firstLine(text), internalmcp.NotFoundPrefix))
		}

		return v, callErr
	}

	if err := env.Decode(&v); err != nil {
		return v, err
	}

	return v, nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")

	return line
}
