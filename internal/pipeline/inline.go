package pipeline

import (
	"regexp"
	"slices"
	"strings"
)

// DefaultIconMarkers are the emoji shortcodes stripped from inline text.
var DefaultIconMarkers = []string{":bulb:", ":warning:"}

const boldDelimiter = "**"

// strongPattern matches a non-greedy **bold** run, across line breaks.
var strongPattern = regexp.MustCompile(`(?s)\*{2}.+?\*{2}`)

// Span is a contiguous run of inline text sharing one formatting attribute.
type Span struct {
	Text string
	Bold bool
}

// IsSpace reports whether the span holds only whitespace. Such spans are
// synthesized at formatting boundaries and must keep their spacing when
// rendered.
func (s Span) IsSpace() bool {
	return s.Text != "" && strings.TrimSpace(s.Text) == ""
}

// InlineFormatter splits block text into bold and plain spans.
type InlineFormatter struct {
	iconMarkers []string
}

// NewInlineFormatter creates a formatter that strips the given icon markers.
// A nil slice selects DefaultIconMarkers; an empty slice strips nothing.
func NewInlineFormatter(iconMarkers []string) *InlineFormatter {
	if iconMarkers == nil {
		iconMarkers = DefaultIconMarkers
	}
	return &InlineFormatter{iconMarkers: slices.Clone(iconMarkers)}
}

// Format converts text into an ordered sequence of spans.
// Unbalanced ** markers degrade to plain text; Format never fails.
func (f *InlineFormatter) Format(text string) []Span {
	text = f.stripIconMarkers(text)

	strong := strongTexts(text)
	spans := []Span{}

	for _, part := range strings.Split(text, boldDelimiter) {
		if part == "" {
			continue
		}
		if slices.Contains(strong, part) {
			spans = append(spans, Span{Text: part, Bold: true})
			continue
		}
		if strings.HasPrefix(part, " ") {
			spans = append(spans, Span{Text: " "})
		}
		spans = append(spans, Span{Text: part})
		if strings.HasSuffix(part, " ") {
			spans = append(spans, Span{Text: " "})
		}
	}

	return spans
}

func (f *InlineFormatter) stripIconMarkers(text string) string {
	for _, marker := range f.iconMarkers {
		if marker == "" {
			continue
		}
		text = strings.ReplaceAll(text, marker, "")
	}
	return strings.TrimSpace(text)
}

// strongTexts returns the contents of every **bold** run in text.
func strongTexts(text string) []string {
	matches := strongPattern.FindAllString(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, strings.Trim(m, "*"))
	}
	return out
}
