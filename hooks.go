package toolkit

import "github.com/wagiedev/toolkit-mcp-go/internal/hook"

// ===== Tool Call Hooks =====

// HookEvent is the point in a tool call at which a hook runs.
type HookEvent = hook.Event

const (
	// HookEventPreToolCall runs before the handler and may block the call.
	HookEventPreToolCall = hook.EventPreToolCall
	// HookEventPostToolCall runs after a successful call.
	HookEventPostToolCall = hook.EventPostToolCall
	// HookEventPostToolCallFailure runs after a call faults.
	HookEventPostToolCallFailure = hook.EventPostToolCallFailure
)

// HookInput is passed to every hook callback. Type-switch on the concrete
// input types to read event-specific fields.
type HookInput = hook.Input

// PreToolCallInput is the input for HookEventPreToolCall.
type PreToolCallInput = hook.PreToolCallInput

// PostToolCallInput is the input for HookEventPostToolCall.
type PostToolCallInput = hook.PostToolCallInput

// PostToolCallFailureInput is the input for HookEventPostToolCallFailure.
type PostToolCallFailureInput = hook.PostToolCallFailureInput

// HookOutput is a hook's verdict. A nil output allows the call.
type HookOutput = hook.Output

// HookDecision is the decision carried by HookOutput.
type HookDecision = hook.Decision

const (
	// HookDecisionAllow lets the call proceed.
	HookDecisionAllow = hook.DecisionAllow
	// HookDecisionBlock stops the call.
	HookDecisionBlock = hook.DecisionBlock
)

// HookCallback is the signature of a hook.
type HookCallback = hook.Callback

// HookMatcher selects the tools a group of hooks applies to.
type HookMatcher = hook.Matcher
