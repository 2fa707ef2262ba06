package hook

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func pre(tool string) *PreToolCallInput {
	return &PreToolCallInput{BaseInput: BaseInput{ToolName: tool}}
}

func TestMatcherMatches(t *testing.T) {
	tests := []struct {
		matcher string
		tool    string
		want    bool
	}{
		{"", "add", true},
		{"add", "add", true},
		{"add", "add_all", false},
		{"create_todo|update_todo", "update_todo", true},
		{"create_todo|update_todo", "delete_todo", false},
		{"a.*", "add", false},
	}

	for _, tt := range tests {
		t.Run(tt.matcher+"/"+tt.tool, func(t *testing.T) {
			require.Equal(t, tt.want, (&Matcher{Matcher: tt.matcher}).Matches(tt.tool))
		})
	}
}

func TestNewRunnerValidates(t *testing.T) {
	_, err := NewRunner(map[Event][]*Matcher{"Stop": {{Hooks: []Callback{nil}}}})
	require.Error(t, err)

	_, err = NewRunner(map[Event][]*Matcher{EventPreToolCall: {{Matcher: "add"}}})
	require.Error(t, err)
}

func TestRunnerRun(t *testing.T) {
	ctx := context.Background()

	var calls []string

	record := func(name string, out *Output, err error) Callback {
		return func(_ context.Context, input Input) (*Output, error) {
			calls = append(calls, name+":"+input.GetToolName())

			return out, err
		}
	}

	t.Run("nil runner allows", func(t *testing.T) {
		var r *Runner

		out, err := r.Run(ctx, pre("add"))
		require.NoError(t, err)
		require.Nil(t, out)
	})

	t.Run("first block wins", func(t *testing.T) {
		calls = nil

		r, err := NewRunner(map[Event][]*Matcher{
			EventPreToolCall: {
				{Matcher: "divide", Hooks: []Callback{record("other", nil, nil)}},
				{Hooks: []Callback{
					record("audit", &Output{}, nil),
					record("deny", &Output{Decision: DecisionBlock, Reason: "read only"}, nil),
					record("never", nil, nil),
				}},
			},
		})
		require.NoError(t, err)

		out, err := r.Run(ctx, pre("delete_todo"))
		require.NoError(t, err)
		require.Equal(t, DecisionBlock, out.Decision)
		require.Equal(t, "read only", out.Reason)
		require.Equal(t, []string{"audit:delete_todo", "deny:delete_todo"}, calls)
	})

	t.Run("events are separate", func(t *testing.T) {
		calls = nil

		r, err := NewRunner(map[Event][]*Matcher{
			EventPostToolCall: {{Hooks: []Callback{record("post", nil, nil)}}},
		})
		require.NoError(t, err)

		out, err := r.Run(ctx, pre("add"))
		require.NoError(t, err)
		require.Nil(t, out)
		require.Empty(t, calls)

		_, err = r.Run(ctx, &PostToolCallInput{BaseInput: BaseInput{ToolName: "add"}})
		require.NoError(t, err)
		require.Equal(t, []string{"post:add"}, calls)
	})

	t.Run("errors stop the chain", func(t *testing.T) {
		calls = nil
		boom := errors.New("boom")

		r, err := NewRunner(map[Event][]*Matcher{
			EventPreToolCall: {{Hooks: []Callback{record("fail", nil, boom), record("never", nil, nil)}}},
		})
		require.NoError(t, err)

		_, err = r.Run(ctx, pre("add"))
		require.ErrorIs(t, err, boom)
		require.Equal(t, []string{"fail:add"}, calls)
	})

	t.Run("panicking callback becomes an error", func(t *testing.T) {
		calls = nil

		r, err := NewRunner(map[Event][]*Matcher{
			EventPreToolCall: {{Hooks: []Callback{
				func(context.Context, Input) (*Output, error) { panic("boom") },
				record("never", nil, nil),
			}}},
		})
		require.NoError(t, err)

		var out *Output

		require.NotPanics(t, func() { out, err = r.Run(ctx, pre("add")) })
		require.Nil(t, out)
		require.ErrorContains(t, err, "panic: boom")
		require.Empty(t, calls)
	})

	t.Run("timeout applies per callback", func(t *testing.T) {
		r, err := NewRunner(map[Event][]*Matcher{
			EventPreToolCall: {{
				Timeout: 10 * time.Millisecond,
				Hooks: []Callback{func(ctx context.Context, _ Input) (*Output, error) {
					<-ctx.Done()

					return nil, ctx.Err()
				}},
			}},
		})
		require.NoError(t, err)

		_, err = r.Run(ctx, pre("add"))
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
