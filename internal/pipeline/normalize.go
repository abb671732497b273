package pipeline

import (
	"regexp"
	"strings"
)

// DefaultTabWidth is the number of spaces a tab expands to.
const DefaultTabWidth = 4

// crlfOrCR matches Windows and classic Mac line endings.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// SplitLines splits content into lines on \r\n, \r or \n.
// A trailing line terminator does not produce an extra empty line.
func SplitLines(content string) []string {
	if content == "" {
		return []string{}
	}
	content = crlfOrCR.ReplaceAllString(content, "\n")
	content = strings.TrimSuffix(content, "\n")
	return strings.Split(content, "\n")
}

// Normalizer canonicalizes raw source lines before parsing.
type Normalizer struct {
	tabWidth int
}

// NewNormalizer creates a Normalizer expanding tabs to tabWidth spaces.
// A non-positive width falls back to DefaultTabWidth.
func NewNormalizer(tabWidth int) *Normalizer {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	return &Normalizer{tabWidth: tabWidth}
}

// Normalize returns a LineStream over raw with whitespace-only lines replaced
// by "" and tabs expanded. Output length always equals input length.
func (n *Normalizer) Normalize(raw []string) *LineStream {
	tab := strings.Repeat(" ", n.tabWidth)
	lines := make([]string, len(raw))
	for i, line := range raw {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines[i] = strings.ReplaceAll(line, "\t", tab)
	}
	return &LineStream{lines: lines}
}

// LineStream is a forward-only cursor over an immutable slice of lines.
type LineStream struct {
	lines []string
	pos   int
}

// NewLineStream wraps already-normalized lines.
func NewLineStream(lines []string) *LineStream {
	return &LineStream{lines: lines}
}

// Next consumes and returns the next line.
// ok is false once the stream is exhausted.
func (s *LineStream) Next() (line string, ok bool) {
	if s.pos >= len(s.lines) {
		return "", false
	}
	line = s.lines[s.pos]
	s.pos++
	return line, true
}

// Peek returns the next line without consuming it.
func (s *LineStream) Peek() (line string, ok bool) {
	if s.pos >= len(s.lines) {
		return "", false
	}
	return s.lines[s.pos], true
}

// Remaining reports whether unconsumed lines are left.
func (s *LineStream) Remaining() bool {
	return s.pos < len(s.lines)
}

// Len returns the total number of lines, consumed or not.
func (s *LineStream) Len() int {
	return len(s.lines)
}

// Lines returns a copy of the underlying lines.
func (s *LineStream) Lines() []string {
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}
