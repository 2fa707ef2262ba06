// Package text provides stateless text utility tools.
package text

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/wagiedev/toolkit-mcp-go/internal/models"
)

// Case conversion modes.
const (
	CaseUpper    = "upper"
	CaseLower    = "lower"
	CaseTitle    = "title"
	CaseSentence = "sentence"
	CaseToggle   = "toggle"
)

// Ellipsis is appended by Truncate.
const Ellipsis = "..."

var (
	sentenceEnd    = regexp.MustCompile(`[.!?]+`)
	paragraphBreak = regexp.MustCompile(`\n[ \t\r]*\n`)
	emailPattern   = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	urlPattern     = regexp.MustCompile(`https?://[^\s<>"'()\[\]{}]+`)
	slugInvalid    = regexp.MustCompile(`[^a-z0-9-]+`)
	slugHyphens    = regexp.MustCompile(`-{2,}`)
)

// Analyze counts words, characters, lines, sentences and paragraphs.
//
// A sentence is a run of '.', '!' or '?'. Paragraphs are separated by one
// or more blank lines.
func Analyze(s string) models.TextStats {
	if s == "" {
		return models.TextStats{}
	}

	stats := models.TextStats{
		Words:      len(strings.Fields(s)),
		Characters: utf8.RuneCountInString(s),
		Lines:      strings.Count(s, "\n") + 1,
		Sentences:  len(sentenceEnd.FindAllStringIndex(s, -1)),
	}

	for _, r := range s {
		if !unicode.IsSpace(r) {
			stats.CharactersNoSpaces++
		}
	}

	for _, p := range paragraphBreak.Split(s, -1) {
		if strings.TrimSpace(p) != "" {
			stats.Paragraphs++
		}
	}

	return stats
}

// ConvertCase converts s according to mode.
func ConvertCase(s, mode string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case CaseUpper:
		return strings.ToUpper(s), nil
	case CaseLower:
		return strings.ToLower(s), nil
	case CaseTitle:
		return titleCase(s), nil
	case CaseSentence:
		return sentenceCase(s), nil
	case CaseToggle:
		return strings.Map(toggle, s), nil
	default:
		return "", fmt.Errorf("unknown case mode %q: use %s, %s, %s, %s or %s",
			mode, CaseUpper, CaseLower, CaseTitle, CaseSentence, CaseToggle)
	}
}

// titleCase upper-cases the first letter of each whitespace-delimited token
// and lower-cases the rest.
func titleCase(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	start := true

	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			start = true

			b.WriteRune(r)
		case start:
			start = false

			b.WriteRune(unicode.ToUpper(r))
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}

	return b.String()
}

// sentenceCase lower-cases everything, then upper-cases the first letter at
// the start of the text and after each '.', '!' or '?'.
func sentenceCase(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	capitalize := true

	for _, r := range strings.ToLower(s) {
		switch {
		case r == '.' || r == '!' || r == '?':
			capitalize = true

			b.WriteRune(r)
		case capitalize && unicode.IsLetter(r):
			capitalize = false

			b.WriteRune(unicode.ToUpper(r))
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

func toggle(r rune) rune {
	switch {
	case unicode.IsUpper(r):
		return unicode.ToLower(r)
	case unicode.IsLower(r):
		return unicode.ToUpper(r)
	default:
		return r
	}
}

// Reverse reverses s by character.
func Reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}

	return string(runes)
}

// RemoveDuplicateLines keeps the first occurrence of each line, in order.
func RemoveDuplicateLines(s string, caseSensitive bool) string {
	lines := strings.Split(s, "\n")
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		key := line
		if !caseSensitive {
			key = strings.ToLower(line)
		}

		if _, dup := seen[key]; dup {
			continue
		}

		seen[key] = struct{}{}
		out = append(out, line)
	}

	return strings.Join(out, "\n")
}

// ExtractEmails returns the distinct email addresses in s, in order of
// first occurrence.
func ExtractEmails(s string) []string {
	return distinct(emailPattern.FindAllString(s, -1), nil)
}

// ExtractURLs returns the distinct http and https URLs in s, in order of
// first occurrence. Trailing sentence punctuation is not part of a URL.
func ExtractURLs(s string) []string {
	return distinct(urlPattern.FindAllString(s, -1), func(u string) string {
		return strings.TrimRight(u, ".,;:!?")
	})
}

func distinct(matches []string, clean func(string) string) []string {
	out := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))

	for _, m := range matches {
		if clean != nil {
			m = clean(m)
		}

		if _, dup := seen[m]; dup {
			continue
		}

		seen[m] = struct{}{}
		out = append(out, m)
	}

	return out
}

// Slugify lower-cases s, turns whitespace into hyphens, drops everything
// outside [a-z0-9-], collapses hyphen runs and trims leading and trailing
// hyphens. Slugify(Slugify(s)) == Slugify(s).
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.Join(strings.FieldsFunc(s, unicode.IsSpace), "-")
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugHyphens.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}

// Truncate shortens s to at most maxLength characters. With ellipsis and
// maxLength >= 3, trailing whitespace at the cut is dropped before Ellipsis
// is appended, so the result is exactly maxLength long unless the cut falls
// on whitespace.
func Truncate(s string, maxLength int, ellipsis bool) (string, error) {
	if maxLength <= 0 {
		return "", fmt.Errorf("max_length must be positive, got %d", maxLength)
	}

	runes := []rune(s)
	if len(runes) <= maxLength {
		return s, nil
	}

	if !ellipsis || maxLength < len(Ellipsis) {
		return string(runes[:maxLength]), nil
	}

	head := strings.TrimRightFunc(string(runes[:maxLength-len(Ellipsis)]), unicode.IsSpace)

	return head + Ellipsis, nil
}
