package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wagiedev/toolkit-mcp-go/internal/hook"
	"github.com/wagiedev/toolkit-mcp-go/internal/message"
	"github.com/wagiedev/toolkit-mcp-go/internal/observe"
)

// maxSuggestions caps the "did you mean" list of a not-found envelope.
const maxSuggestions = 3

// NotFoundPrefix starts the text of every unknown-tool envelope.
const NotFoundPrefix = "Tool not found: "

// Dispatcher turns (tool name, argument bag) requests into envelopes.
// Every call yields a well-formed envelope; faults never escape.
type Dispatcher struct {
	registry *Registry
	log      *slog.Logger
	metrics  *observe.Metrics
	hooks    *hook.Runner
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the dispatcher logger.
func WithLogger(log *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if log != nil {
			d.log = log
		}
	}
}

// WithMetrics records a counter and a latency histogram for every call.
func WithMetrics(m *observe.Metrics) DispatcherOption {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithHooks runs r around every resolved and bound call.
func WithHooks(r *hook.Runner) DispatcherOption {
	return func(d *Dispatcher) {
		d.hooks = r
	}
}

// NewDispatcher creates a dispatcher over reg.
func NewDispatcher(reg *Registry, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry: reg,
		log:      slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(d)
	}

	d.log = d.log.With("component", "dispatcher")

	return d
}

// Registry returns the registry the dispatcher resolves against.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// CallRaw decodes a JSON object argument bag and dispatches it. An empty or
// null document is an empty bag.
func (d *Dispatcher) CallRaw(ctx context.Context, name string, raw json.RawMessage) *message.Envelope {
	bag, err := decodeBag(raw)
	if err != nil {
		if _, ok := d.registry.Resolve(name); !ok {
			return d.Call(ctx, name, nil)
		}

		d.record(ctx, name, observe.StatusInvalid, 0)
		d.log.Debug("malformed arguments", "tool", name, "error", err)

		return message.Error("Invalid arguments: %v", &ValidationError{Tool: name, Reason: ReasonMalformed, Err: err})
	}

	return d.Call(ctx, name, bag)
}

// Call dispatches one request:
//
//  1. resolve the tool by exact name
//  2. coerce the declared parameters in order, substituting defaults
//  3. invoke the handler exactly once
//  4. convert faults and panics to an error envelope
//  5. wrap the result (string → text, nil → empty, other → data)
func (d *Dispatcher) Call(ctx context.Context, name string, bag map[string]any) (env *message.Envelope) {
	ctx, span := observe.StartSpan(ctx, "tool.call", trace.WithAttributes(attribute.String("tool", name)))
	defer span.End()

	tool, ok := d.registry.Resolve(name)
	if !ok {
		d.record(ctx, name, observe.StatusNotFound, 0)
		d.log.Debug("tool not found", "tool", name)
		span.SetStatus(codes.Error, "not found")

		return d.notFound(name)
	}

	args, err := Bind(tool.Descriptor, bag)
	if err != nil {
		d.record(ctx, name, observe.StatusInvalid, 0)
		d.log.Debug("invalid arguments", "tool", name, "error", err)
		span.SetStatus(codes.Error, err.Error())

		return message.Error("Invalid arguments: %v", err)
	}

	base := hook.BaseInput{ToolName: name, Args: args.Map()}

	if blocked := d.preHooks(ctx, base); blocked != nil {
		d.record(ctx, name, observe.StatusBlocked, 0)
		span.SetStatus(codes.Error, "blocked")

		return blocked
	}

	start := time.Now()

	defer func() {
		status := observe.StatusOK
		if env.IsError {
			status = observe.StatusError

			span.SetStatus(codes.Error, env.String())
		}

		d.record(ctx, name, status, time.Since(start))
	}()

	result, err := d.invoke(ctx, tool, args)
	if err == nil {
		env, err = wrap(result)
	}

	if err != nil {
		d.log.Warn("tool execution failed", "tool", name, "error", err)
		d.postHooks(ctx, &hook.PostToolCallFailureInput{BaseInput: base, Error: err.Error(), Duration: time.Since(start)})

		return message.Error("Tool execution failed: %v", err)
	}

	d.postHooks(ctx, &hook.PostToolCallInput{BaseInput: base, Result: result, Duration: time.Since(start)})

	return env
}

// preHooks returns an error envelope when a hook blocks the call or fails.
func (d *Dispatcher) preHooks(ctx context.Context, base hook.BaseInput) *message.Envelope {
	out, err := d.hooks.Run(ctx, &hook.PreToolCallInput{BaseInput: base})
	if err != nil {
		d.log.Warn("pre-call hook failed", "tool", base.ToolName, "error", err)

		return message.Error("Tool call blocked: %v", err)
	}

	if out == nil {
		return nil
	}

	d.log.Debug("tool call blocked", "tool", base.ToolName, "reason", out.Reason)

	if out.Reason == "" {
		return message.Error("Tool call blocked: %s", base.ToolName)
	}

	return message.Error("Tool call blocked: %s", out.Reason)
}

func (d *Dispatcher) postHooks(ctx context.Context, input hook.Input) {
	if _, err := d.hooks.Run(ctx, input); err != nil {
		d.log.Warn("post-call hook failed", "tool", input.GetToolName(), "error", err)
	}
}

// invoke runs the handler, converting a panic into an error.
func (d *Dispatcher) invoke(ctx context.Context, tool Tool, args Args) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("tool panicked", "tool", tool.Descriptor.Name, "panic", r)

			err = fmt.Errorf("panic: %v", r)
		}
	}()

	return tool.Handler(ctx, args)
}

func (d *Dispatcher) notFound(name string) *message.Envelope {
	msg := NotFoundPrefix + name

	matches := fuzzy.Find(name, d.registry.Names())
	if len(matches) > 0 {
		names := make([]string, 0, maxSuggestions)
		for _, m := range matches {
			if len(names) == maxSuggestions {
				break
			}

			names = append(names, m.Str)
		}

		msg += "\nDid you mean: " + strings.Join(names, ", ") + "?"
	}

	return message.Error("%s", msg)
}

func (d *Dispatcher) record(ctx context.Context, name, status string, elapsed time.Duration) {
	if d.metrics == nil {
		return
	}

	d.metrics.RecordToolCall(ctx, name, status, elapsed)
}

// Bind resolves bag against desc's declared parameters, in declared order.
// Keys that match no parameter are ignored. A null value counts as absent.
func Bind(desc Descriptor, bag map[string]any) (Args, error) {
	list := make([]Arg, 0, len(desc.Parameters))

	for _, p := range desc.Parameters {
		raw, present := bag[p.Name]
		if present && raw == nil {
			present = false
		}

		if !present {
			if p.Required {
				return Args{}, &ValidationError{Tool: desc.Name, Param: p.Name, Expected: p.Kind, Reason: ReasonMissing}
			}

			list = append(list, Arg{Name: p.Name, Kind: p.Kind, Value: p.Default})

			continue
		}

		v, err := Coerce(p.Kind, raw)
		if err != nil {
			return Args{}, &ValidationError{Tool: desc.Name, Param: p.Name, Expected: p.Kind, Reason: ReasonMismatch, Err: err}
		}

		list = append(list, Arg{Name: p.Name, Kind: p.Kind, Value: v, Supplied: true})
	}

	return Args{list: list}, nil
}

func decodeBag(raw json.RawMessage) (map[string]any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var bag map[string]any
	if err := dec.Decode(&bag); err != nil {
		return nil, fmt.Errorf("arguments must be a JSON object: %w", err)
	}

	if bag == nil {
		bag = map[string]any{}
	}

	return bag, nil
}

// wrap converts a handler result into an envelope.
func wrap(result any) (*message.Envelope, error) {
	switch v := result.(type) {
	case nil:
		return message.Empty(), nil
	case *message.Envelope:
		if v == nil {
			return message.Empty(), nil
		}

		return v, nil
	case string:
		return message.Text(v), nil
	}

	if isNilPointer(result) {
		return message.Empty(), nil
	}

	return message.Data(result)
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)

	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
