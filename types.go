package md2docx

import (
	"fmt"
	"strconv"
	"strings"
)

// Input contains conversion parameters.
type Input struct {
	Markdown     string // Markdown content
	Source       []byte // Raw source bytes, decoded with charset detection when Markdown is empty
	SourceDir    string // Base directory for relative image paths
	Template     string // Template name or .docx path (empty = built-in default)
	TemplateData []byte // Template package bytes, takes precedence over Template
	Name         string // Document name used in error messages (optional)
}

// ConvertResult contains the output of a conversion.
type ConvertResult struct {
	DOCX      []byte   // Finished .docx package
	Charset   string   // Charset the source was decoded from
	Blocks    int      // Block elements parsed
	Fragments int      // Fragments appended to the document
	Warnings  []string // Non-fatal problems, e.g. styles missing from the template
}

// QuotationMode selects how block quotes are handled.
type QuotationMode string

// Quotation modes.
const (
	QuotationError QuotationMode = "error" // fail with ErrUnsupportedElement
	QuotationSkip  QuotationMode = "skip"  // drop the block quote silently
)

// ParseQuotationMode converts a case-insensitive mode name.
// An empty string selects QuotationError.
func ParseQuotationMode(s string) (QuotationMode, error) {
	switch mode := QuotationMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case "":
		return QuotationError, nil
	case QuotationError, QuotationSkip:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %q (must be %s or %s)", ErrInvalidQuotationMode, s, QuotationError, QuotationSkip)
	}
}

// Styles maps document elements to paragraph style IDs of the template.
// Empty fields keep the default.
type Styles struct {
	Paragraph     string // default: "Normal"
	HeadingPrefix string // default: "Heading", the level is appended
	ListItem      string // default: "ListParagraph"
	Code          string // default: "Code"
	Figure        string // default: "Figure"
}

// DefaultStyles returns the style IDs defined by the built-in template.
func DefaultStyles() Styles {
	return Styles{
		Paragraph:     "Normal",
		HeadingPrefix: "Heading",
		ListItem:      "ListParagraph",
		Code:          "Code",
		Figure:        "Figure",
	}
}

// Heading returns the style ID for a header of the given level.
func (s Styles) Heading(level int) string {
	return s.HeadingPrefix + strconv.Itoa(level)
}

func (s Styles) withDefaults() Styles {
	d := DefaultStyles()
	if s.Paragraph == "" {
		s.Paragraph = d.Paragraph
	}
	if s.HeadingPrefix == "" {
		s.HeadingPrefix = d.HeadingPrefix
	}
	if s.ListItem == "" {
		s.ListItem = d.ListItem
	}
	if s.Code == "" {
		s.Code = d.Code
	}
	if s.Figure == "" {
		s.Figure = d.Figure
	}
	return s
}

// Numbering holds the template numbering definition IDs used for lists.
// Zero fields keep the default.
type Numbering struct {
	Bulleted int // default: 1
	Numbered int // default: 2
}

// DefaultNumbering returns the numbering IDs defined by the built-in template.
func DefaultNumbering() Numbering {
	return Numbering{Bulleted: 1, Numbered: 2}
}

func (n Numbering) withDefaults() Numbering {
	d := DefaultNumbering()
	if n.Bulleted <= 0 {
		n.Bulleted = d.Bulleted
	}
	if n.Numbered <= 0 {
		n.Numbered = d.Numbered
	}
	return n
}

// ID returns the numbering definition for kind.
func (n Numbering) ID(kind ListKind) int {
	if kind == Numbered {
		return n.Numbered
	}
	return n.Bulleted
}
