// Package highlight colours code block lines with chroma.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "github"

// Token is a piece of a code line with its display attributes.
type Token struct {
	Text   string
	Color  string // RRGGBB, empty for the paragraph default
	Bold   bool
	Italic bool
}

// Highlighter splits code into per-line tokens.
// A nil *Highlighter is valid and produces uncoloured tokens.
type Highlighter struct {
	style *chroma.Style
}

// New creates a Highlighter using the named chroma style. Unknown names fall
// back to chroma's default style.
func New(style string) *Highlighter {
	if style == "" {
		style = DefaultStyle
	}
	return &Highlighter{style: styles.Get(style)}
}

// Lines tokenises code and returns one token slice per "\n"-separated line.
// The tokens of every returned line concatenate to exactly that line.
// Lines chroma cannot reproduce, and all lines of an unknown language, come
// back as a single uncoloured token.
func (h *Highlighter) Lines(language, code string) [][]Token {
	source := strings.Split(code, "\n")
	out := make([][]Token, len(source))
	for i, line := range source {
		out[i] = plain(line)
	}

	if h == nil || language == "" {
		return out
	}
	lexer := lexers.Get(language)
	if lexer == nil {
		return out
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return out
	}

	coloured := h.splitLines(it.Tokens())
	for i := range source {
		if i < len(coloured) && joined(coloured[i]) == source[i] {
			out[i] = coloured[i]
		}
	}
	return out
}

// splitLines distributes tokens over lines, cutting token values at "\n".
func (h *Highlighter) splitLines(tokens []chroma.Token) [][]Token {
	lines := [][]Token{{}}
	for _, tok := range tokens {
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, []Token{})
			}
			if part == "" {
				continue
			}
			last := len(lines) - 1
			lines[last] = append(lines[last], h.token(tok.Type, part))
		}
	}
	return lines
}

func (h *Highlighter) token(tt chroma.TokenType, text string) Token {
	entry := h.style.Get(tt)
	t := Token{
		Text:   text,
		Bold:   entry.Bold == chroma.Yes,
		Italic: entry.Italic == chroma.Yes,
	}
	if entry.Colour.IsSet() {
		t.Color = strings.ToUpper(strings.TrimPrefix(entry.Colour.String(), "#"))
	}
	return t
}

func plain(line string) []Token {
	if line == "" {
		return []Token{}
	}
	return []Token{{Text: line}}
}

func joined(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}
