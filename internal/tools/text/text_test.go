package text

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	internalmcp "github.com/wagiedev/toolkit-mcp-go/internal/mcp"
	"github.com/wagiedev/toolkit-mcp-go/internal/models"
)

func TestAnalyze(t *testing.T) {
	got := Analyze("Hello world. How are you?!\n\nSecond paragraph here...\nStill second.")

	require.Equal(t, models.TextStats{
		Words:              10,
		Characters:         66,
		CharactersNoSpaces: 56,
		Lines:              4,
		Sentences:          4,
		Paragraphs:         2,
	}, got)

	require.Equal(t, models.TextStats{}, Analyze(""))
}

func TestConvertCase(t *testing.T) {
	tests := []struct {
		mode string
		in   string
		want string
	}{
		{mode: "upper", in: "Hello World", want: "HELLO WORLD"},
		{mode: "lower", in: "Hello World", want: "hello world"},
		{mode: "title", in: "hELLO  wORLD-wide web", want: "Hello  World-wide Web"},
		{mode: "sentence", in: "HELLO THERE. how ARE you? fine!  ok", want: "Hello there. How are you? Fine!  Ok"},
		{mode: "toggle", in: "Hello World 1", want: "hELLO wORLD 1"},
		{mode: "UPPER", in: "x", want: "X"},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			got, err := ConvertCase(tt.in, tt.mode)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := ConvertCase("x", "camel")
	require.Error(t, err)
}

func TestReverse(t *testing.T) {
	require.Equal(t, "olleh", Reverse("hello"))
	require.Equal(t, "ßaç", Reverse("çaß"))
	require.Empty(t, Reverse(""))
}

func TestRemoveDuplicateLines(t *testing.T) {
	in := "apple\nBanana\napple\nbanana\ncherry\nBanana"

	require.Equal(t, "apple\nBanana\nbanana\ncherry", RemoveDuplicateLines(in, true))
	require.Equal(t, "apple\nBanana\ncherry", RemoveDuplicateLines(in, false))

	t.Run("no repeats remain", func(t *testing.T) {
		out := strings.Split(RemoveDuplicateLines(in, false), "\n")
		seen := make(map[string]bool)

		for _, line := range out {
			key := strings.ToLower(line)
			require.False(t, seen[key])

			seen[key] = true
		}
	})
}

func TestExtractEmails(t *testing.T) {
	require.Equal(t, []string{"a@x.com", "b@y.io"}, ExtractEmails("Contact a@x.com, b@y.io"))
	require.Equal(t, []string{"a@x.com"}, ExtractEmails("a@x.com and again a@x.com"))
	require.Empty(t, ExtractEmails("nothing here"))
}

func TestExtractURLs(t *testing.T) {
	got := ExtractURLs("See https://example.com/docs. Also http://go.dev/doc?x=1, and https://example.com/docs again.")
	require.Equal(t, []string{"https://example.com/docs", "http://go.dev/doc?x=1"}, got)
}

func TestSlugify(t *testing.T) {
	require.Equal(t, "my-awesome-blog-post-title", Slugify("My Awesome Blog Post Title!"))
	require.Equal(t, "hello-world", Slugify("  --Hello -- World--  "))
	require.Equal(t, "go-124-release", Slugify("Go 1.24\tRelease"))

	inputs := []string{
		"My Awesome Blog Post Title!", "  --Hello -- World--  ", "a  b", "Ünïcödé text", "---", "", "x_y z",
	}

	for _, in := range inputs {
		once := Slugify(in)
		require.Equal(t, once, Slugify(once), "idempotent for %q", in)
	}
}

func TestTruncate(t *testing.T) {
	t.Run("short text is unchanged", func(t *testing.T) {
		got, err := Truncate("hello", 10, true)
		require.NoError(t, err)
		require.Equal(t, "hello", got)
	})

	t.Run("ellipsis yields exactly n characters", func(t *testing.T) {
		text := "Thequickbrownfoxjumpsoverthelazydog"

		for n := 3; n < utf8.RuneCountInString(text); n++ {
			got, err := Truncate(text, n, true)
			require.NoError(t, err)
			require.Equal(t, n, utf8.RuneCountInString(got), "n=%d", n)
			require.True(t, strings.HasSuffix(got, Ellipsis))
		}
	})

	t.Run("whitespace at the cut is trimmed", func(t *testing.T) {
		got, err := Truncate("hello world again", 9, true)
		require.NoError(t, err)
		require.Equal(t, "hello...", got)

		got, err = Truncate("hello world again", 10, true)
		require.NoError(t, err)
		require.Equal(t, "hello w...", got)
	})

	t.Run("without ellipsis", func(t *testing.T) {
		got, err := Truncate("abcdef", 4, false)
		require.NoError(t, err)
		require.Equal(t, "abcd", got)
	})

	t.Run("too short for ellipsis", func(t *testing.T) {
		got, err := Truncate("abcdef", 2, true)
		require.NoError(t, err)
		require.Equal(t, "ab", got)
	})

	t.Run("non-positive length", func(t *testing.T) {
		_, err := Truncate("abc", 0, true)
		require.Error(t, err)
	})
}

func TestRegister(t *testing.T) {
	reg := internalmcp.NewRegistry()
	require.NoError(t, Register(reg))

	d := internalmcp.NewDispatcher(reg)
	ctx := context.Background()

	require.Equal(t, "my-awesome-blog-post-title",
		d.Call(ctx, "slugify", map[string]any{"text": "My Awesome Blog Post Title!"}).String())

	var emails []string
	require.NoError(t, d.Call(ctx, "extract_emails", map[string]any{"text": "Contact a@x.com, b@y.io"}).Decode(&emails))
	require.Equal(t, []string{"a@x.com", "b@y.io"}, emails)

	require.Equal(t, "a\nA", d.Call(ctx, "remove_duplicate_lines", map[string]any{"text": "a\nA\na"}).String())
	require.Equal(t, "a", d.Call(ctx, "remove_duplicate_lines", map[string]any{"text": "a\nA\na", "case_sensitive": "false"}).String())

	env := d.Call(ctx, "convert_case", map[string]any{"text": "x", "mode": "shout"})
	require.True(t, env.IsError)
}
