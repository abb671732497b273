// Package audit reports Markdown constructs the converter does not render.
//
// The converter classifies source lines with a small set of rules; anything
// richer is passed through as literal text. Scan parses the same source with
// a full CommonMark + GFM parser and lists those constructs with their line
// numbers, so authors can see what will not survive conversion. Whether a
// document converts at all is decided by the converter's own parser, not here.
package audit

import (
	"bytes"
	"regexp"
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Kind names a construct category.
type Kind string

// Reported construct kinds.
const (
	KindTable         Kind = "table"
	KindNestedList    Kind = "nested list"
	KindLink          Kind = "link"
	KindAutoLink      Kind = "autolink"
	KindCodeSpan      Kind = "code span"
	KindHTML          Kind = "html"
	KindItalic        Kind = "italic"
	KindStrikethrough Kind = "strikethrough"
	KindTaskCheckBox  Kind = "task check box"
	KindThematicBreak Kind = "thematic break"
	KindIndentedCode  Kind = "indented code block"
	KindInlineImage   Kind = "inline image"
)

// Finding is one construct occurrence.
type Finding struct {
	Line int // 1-based
	Kind Kind
}

// Detail is a short human explanation of what happens to the construct.
func (f Finding) Detail() string {
	switch f.Kind {
	case KindNestedList:
		return "nested items are flattened to the first level"
	case KindIndentedCode:
		return "indented code is rendered as paragraphs; use a fenced block"
	case KindInlineImage:
		return "only images on a line of their own are embedded"
	case KindThematicBreak:
		return "rendered as an empty list item or header underline"
	default:
		return "rendered as plain text"
	}
}

var parser = goldmark.New(
	goldmark.WithExtensions(extension.Table, extension.Strikethrough, extension.TaskList),
).Parser()

// Scan parses src and returns findings ordered by line.
func Scan(src []byte) []Finding {
	doc := parser.Parse(text.NewReader(src))
	sc := &scanner{src: src, lines: newLineIndex(src)}

	seen := make(map[Finding]bool)
	var findings []Finding
	report := func(n ast.Node, kind Kind) {
		f := Finding{Line: sc.lines.lineOf(sc.offsetOf(n)), Kind: kind}
		if !seen[f] {
			seen[f] = true
			findings = append(findings, f)
		}
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *east.Table:
			report(n, KindTable)
			return ast.WalkSkipChildren, nil
		case *ast.List:
			if hasListItemAncestor(n) {
				report(n, KindNestedList)
			}
		case *ast.Link:
			report(n, KindLink)
		case *ast.AutoLink:
			report(n, KindAutoLink)
		case *ast.CodeSpan:
			report(n, KindCodeSpan)
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML, *ast.HTMLBlock:
			report(n, KindHTML)
		case *ast.Emphasis:
			if node.Level == 1 {
				report(n, KindItalic)
			}
		case *east.Strikethrough:
			report(n, KindStrikethrough)
		case *east.TaskCheckBox:
			report(n, KindTaskCheckBox)
		case *ast.ThematicBreak:
			report(n, KindThematicBreak)
		case *ast.CodeBlock:
			report(n, KindIndentedCode)
		case *ast.Image:
			if n.Parent() != nil && n.Parent().ChildCount() > 1 {
				report(n, KindInlineImage)
			}
		}
		return ast.WalkContinue, nil
	})

	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Line < findings[j].Line
	})
	return findings
}

func hasListItemAncestor(n ast.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Kind() == ast.KindListItem {
			return true
		}
	}
	return false
}

var (
	thematicBreakLine = regexp.MustCompile(`^ {0,3}(?:(?:-[ \t]*){3,}|(?:\*[ \t]*){3,}|(?:_[ \t]*){3,})$`)
	setextUnderline   = regexp.MustCompile(`^ {0,3}(?:=+|-+)[ \t]*$`)
)

type scanner struct {
	src   []byte
	lines lineIndex
}

// offsetOf returns a source offset inside n, searching n's subtree first and
// then its ancestors.
func (s *scanner) offsetOf(n ast.Node) int {
	for c := n; c != nil; c = c.Parent() {
		if pos, ok := s.startOf(c); ok {
			return pos
		}
	}
	return 0
}

func (s *scanner) startOf(n ast.Node) (int, bool) {
	switch t := n.(type) {
	case *ast.Text:
		return t.Segment.Start, true
	case *ast.ThematicBreak:
		return s.thematicBreakStart(t), true
	}
	// Lines panics on inline nodes.
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		return n.Lines().At(0).Start, true
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if pos, ok := s.startOf(c); ok {
			return pos, true
		}
	}
	return 0, false
}

// endOf returns an offset inside the last line n occupies.
func (s *scanner) endOf(n ast.Node) (int, bool) {
	switch t := n.(type) {
	case *ast.Text:
		return t.Segment.Start, true
	case *ast.ThematicBreak:
		return s.thematicBreakStart(t), true
	}
	for c := n.LastChild(); c != nil; c = c.PreviousSibling() {
		if pos, ok := s.endOf(c); ok {
			return pos, true
		}
	}
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		return n.Lines().At(n.Lines().Len() - 1).Start, true
	}
	return 0, false
}

// thematicBreakStart locates a thematic break, which carries no source
// position: it is the first break-shaped line after the previous sibling.
func (s *scanner) thematicBreakStart(n *ast.ThematicBreak) int {
	line := 0 // 0-based index into s.lines
	if prev := n.PreviousSibling(); prev != nil {
		if end, ok := s.endOf(prev); ok {
			line = s.lines.lineOf(end)
			if _, isHeading := prev.(*ast.Heading); isHeading && line < len(s.lines) &&
				setextUnderline.Match(s.lineBytes(line)) {
				line++
			}
		}
	} else if parent := n.Parent(); parent != nil && parent.Type() != ast.TypeDocument {
		if start, ok := s.startOf(parent); ok {
			line = s.lines.lineOf(start) - 1
		}
	}

	for ; line < len(s.lines); line++ {
		if thematicBreakLine.Match(s.lineBytes(line)) {
			return s.lines[line]
		}
	}
	return 0
}

// lineBytes returns 0-based line i without its terminator.
func (s *scanner) lineBytes(i int) []byte {
	start := s.lines[i]
	end := len(s.src)
	if i+1 < len(s.lines) {
		end = s.lines[i+1]
	}
	return bytes.TrimRight(s.src[start:end], "\r\n")
}

// lineIndex holds the start offset of every line.
type lineIndex []int

func newLineIndex(src []byte) lineIndex {
	starts := lineIndex{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// lineOf maps a byte offset to a 1-based line number.
func (idx lineIndex) lineOf(offset int) int {
	return sort.Search(len(idx), func(i int) bool { return idx[i] > offset })
}
