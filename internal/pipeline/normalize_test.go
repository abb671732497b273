package pipeline

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestSplitLines
// ---------------------------------------------------------------------------

func TestSplitLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"empty", "", []string{}},
		{"single line no terminator", "a", []string{"a"}},
		{"trailing LF not a line", "a\nb\n", []string{"a", "b"}},
		{"CRLF", "a\r\nb\r\n", []string{"a", "b"}},
		{"bare CR", "a\rb", []string{"a", "b"}},
		{"mixed endings", "a\r\nb\rc\nd", []string{"a", "b", "c", "d"}},
		{"blank lines kept", "a\n\n\nb", []string{"a", "", "", "b"}},
		{"only terminator", "\n", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := SplitLines(tt.content)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SplitLines(%q) mismatch (-want +got):\n%s", tt.content, diff)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestNormalize
// ---------------------------------------------------------------------------

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		tabWidth int
		raw      []string
		want     []string
	}{
		{
			name:     "whitespace-only lines become empty",
			tabWidth: 4,
			raw:      []string{"  ", "\t", " \t ", "x"},
			want:     []string{"", "", "", "x"},
		},
		{
			name:     "tabs expand to four spaces",
			tabWidth: 4,
			raw:      []string{"\tcode", "a\tb"},
			want:     []string{"    code", "a    b"},
		},
		{
			name:     "custom tab width",
			tabWidth: 2,
			raw:      []string{"\t\tx"},
			want:     []string{"    x"},
		},
		{
			name:     "non-positive width uses default",
			tabWidth: 0,
			raw:      []string{"\tx"},
			want:     []string{"    x"},
		},
		{
			name:     "unicode untouched",
			tabWidth: 4,
			raw:      []string{"これはサンプル", "  ✓ done  "},
			want:     []string{"これはサンプル", "  ✓ done  "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := NewNormalizer(tt.tabWidth).Normalize(tt.raw).Lines()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalize_NeverDropsLines(t *testing.T) {
	t.Parallel()

	inputs := [][]string{
		{},
		{""},
		{"", "", ""},
		{"a", "\t", "", "b\t"},
		strings.Split("# T\n\n- a\n\t\n```\n\tx\n```", "\n"),
	}

	for _, raw := range inputs {
		stream := NewNormalizer(DefaultTabWidth).Normalize(raw)
		if stream.Len() != len(raw) {
			t.Fatalf("Normalize(%q) len = %d, want %d", raw, stream.Len(), len(raw))
		}
		for _, line := range stream.Lines() {
			if strings.Contains(line, "\t") {
				t.Errorf("line %q still contains a tab", line)
			}
		}
	}
}

// ---------------------------------------------------------------------------
// TestLineStream
// ---------------------------------------------------------------------------

func TestLineStream_PeekDoesNotConsume(t *testing.T) {
	t.Parallel()

	s := NewLineStream([]string{"a", "b"})

	if got, ok := s.Peek(); !ok || got != "a" {
		t.Fatalf("Peek() = %q, %v; want \"a\", true", got, ok)
	}
	if got, ok := s.Next(); !ok || got != "a" {
		t.Fatalf("Next() = %q, %v; want \"a\", true", got, ok)
	}
	if got, ok := s.Peek(); !ok || got != "b" {
		t.Fatalf("Peek() = %q, %v; want \"b\", true", got, ok)
	}
	s.Next()
	if s.Remaining() {
		t.Error("Remaining() = true after consuming all lines")
	}
	if _, ok := s.Next(); ok {
		t.Error("Next() ok = true on exhausted stream")
	}
	if _, ok := s.Peek(); ok {
		t.Error("Peek() ok = true on exhausted stream")
	}
}

func TestLineStream_LinesIsACopy(t *testing.T) {
	t.Parallel()

	s := NewLineStream([]string{"a"})
	lines := s.Lines()
	lines[0] = "mutated"

	if got, _ := s.Next(); got != "a" {
		t.Errorf("stream changed through Lines() copy: got %q", got)
	}
}
