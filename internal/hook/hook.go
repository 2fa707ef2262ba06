// Package hook provides callbacks that intercept tool calls on the server.
//
// Pre-call hooks run after arguments are bound and before the handler; one
// of them can block the call. Post-call hooks observe the outcome and cannot
// change it.
package hook

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Event represents the point in a tool call at which a hook runs.
type Event string

const (
	// EventPreToolCall is triggered before a tool handler runs.
	EventPreToolCall Event = "PreToolCall"
	// EventPostToolCall is triggered after a tool returns a result.
	EventPostToolCall Event = "PostToolCall"
	// EventPostToolCallFailure is triggered after a tool faults.
	EventPostToolCallFailure Event = "PostToolCallFailure"
)

// DefaultTimeout bounds a single callback when the matcher sets none.
const DefaultTimeout = 60 * time.Second

// Input is the interface for all hook input types.
type Input interface {
	GetHookEventName() Event
	GetToolName() string
}

// Compile-time verification that all hook input types implement Input.
var (
	_ Input = (*PreToolCallInput)(nil)
	_ Input = (*PostToolCallInput)(nil)
	_ Input = (*PostToolCallFailureInput)(nil)
)

// BaseInput contains the fields common to all hook inputs.
type BaseInput struct {
	ToolName string `json:"tool_name"`
	// Args holds the bound arguments, defaults included, keyed by parameter
	// name.
	Args map[string]any `json:"tool_input"`
}

// GetToolName implements Input.
func (b *BaseInput) GetToolName() string { return b.ToolName }

// PreToolCallInput is the input for PreToolCall hooks.
type PreToolCallInput struct {
	BaseInput
}

// GetHookEventName implements Input.
func (p *PreToolCallInput) GetHookEventName() Event { return EventPreToolCall }

// PostToolCallInput is the input for PostToolCall hooks.
type PostToolCallInput struct {
	BaseInput
	Result   any           `json:"tool_response"`
	Duration time.Duration `json:"duration"`
}

// GetHookEventName implements Input.
func (p *PostToolCallInput) GetHookEventName() Event { return EventPostToolCall }

// PostToolCallFailureInput is the input for PostToolCallFailure hooks.
type PostToolCallFailureInput struct {
	BaseInput
	Error    string        `json:"error"`
	Duration time.Duration `json:"duration"`
}

// GetHookEventName implements Input.
func (p *PostToolCallFailureInput) GetHookEventName() Event { return EventPostToolCallFailure }

// Decision is a pre-call hook's verdict.
type Decision string

const (
	// DecisionAllow lets the call proceed. It is the zero value.
	DecisionAllow Decision = ""
	// DecisionBlock stops the call; the client receives an error envelope.
	DecisionBlock Decision = "block"
)

// Output is what a callback returns. A nil Output allows the call.
type Output struct {
	Decision Decision `json:"decision,omitempty"`
	Reason   string   `json:"reason,omitempty"`
}

// Callback is the function signature for hook callbacks.
type Callback func(ctx context.Context, input Input) (*Output, error)

// Matcher configures which tools a hook applies to.
type Matcher struct {
	// Matcher is a tool name like "add" or a pipe-separated combination like
	// "create_todo|update_todo". When empty, the hook matches every tool.
	// This is NOT regex.
	Matcher string
	Hooks   []Callback
	Timeout time.Duration // per callback, default DefaultTimeout
}

// Matches reports whether the matcher applies to tool.
func (m *Matcher) Matches(tool string) bool {
	if m.Matcher == "" {
		return true
	}

	return slices.Contains(strings.Split(m.Matcher, "|"), tool)
}

// Runner runs the hooks configured for each event.
type Runner struct {
	hooks map[Event][]*Matcher
}

// NewRunner creates a Runner. It rejects unknown events and matchers
// without callbacks.
func NewRunner(hooks map[Event][]*Matcher) (*Runner, error) {
	for event, matchers := range hooks {
		switch event {
		case EventPreToolCall, EventPostToolCall, EventPostToolCallFailure:
		default:
			return nil, fmt.Errorf("unknown hook event %q", event)
		}

		for i, m := range matchers {
			if m == nil || len(m.Hooks) == 0 {
				return nil, fmt.Errorf("%s hook %d: no callbacks", event, i)
			}
		}
	}

	return &Runner{hooks: hooks}, nil
}

// Run calls every matching callback for input's event in order. It stops at
// the first callback that blocks or fails and returns its output or error.
func (r *Runner) Run(ctx context.Context, input Input) (*Output, error) {
	if r == nil {
		return nil, nil
	}

	event := input.GetHookEventName()

	for _, m := range r.hooks[event] {
		if !m.Matches(input.GetToolName()) {
			continue
		}

		timeout := m.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}

		for _, cb := range m.Hooks {
			out, err := call(ctx, cb, input, timeout)
			if err != nil {
				return nil, fmt.Errorf("%s hook for %s: %w", event, input.GetToolName(), err)
			}

			if out != nil && out.Decision == DecisionBlock {
				return out, nil
			}
		}
	}

	return nil, nil
}

// call runs cb under its own timeout. A panicking callback is reported as
// an error.
func call(ctx context.Context, cb Callback, input Input, timeout time.Duration) (out *Output, err error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()

	return cb(ctx, input)
}
