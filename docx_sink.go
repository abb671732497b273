package md2docx

import (
	"context"
	"fmt"
	"io"

	"github.com/alnah/go-md2docx/internal/docx"
	"github.com/alnah/go-md2docx/internal/geometry"
)

// DocxSink writes fragments into a .docx package built on a template.
type DocxSink struct {
	doc        *docx.Document
	fetcher    ImageFetcher
	defaultDPI float64
	styles     Styles
	numbering  Numbering

	warned   map[string]bool
	warnings []string
}

// NewDocxSink opens template and returns a sink that appends to its body.
// Paragraphs already in the template body are dropped; tables and the
// section properties are kept. A nil fetcher reads local files only.
func NewDocxSink(template []byte, fetcher ImageFetcher, styles Styles, numbering Numbering, defaultDPI float64) (*DocxSink, error) {
	doc, err := docx.Open(template)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateInvalid, err)
	}
	if fetcher == nil {
		fetcher = NewImageFetcher(nil)
	}
	return &DocxSink{
		doc:        doc,
		fetcher:    fetcher,
		defaultDPI: defaultDPI,
		styles:     styles.withDefaults(),
		numbering:  numbering.withDefaults(),
		warned:     make(map[string]bool),
	}, nil
}

// AddImage fetches and probes the image, then stores it in the package.
func (s *DocxSink) AddImage(ctx context.Context, path string) (ImageResource, error) {
	data, info, err := loadImage(ctx, s.fetcher, path, s.defaultDPI)
	if err != nil {
		return ImageResource{}, err
	}

	relID, err := s.doc.AddImage(info.Format.Extension, info.Format.ContentType, data)
	if err != nil {
		return ImageResource{}, fmt.Errorf("storing image %s: %w", path, err)
	}

	res := imageResource(path, info)
	res.ID = relID
	return res, nil
}

// PrintableWidth returns the body width of the template's page in EMUs.
func (s *DocxSink) PrintableWidth() int64 {
	l := s.doc.PageLayout()
	return geometry.PrintableWidth(l.Width, l.LeftMargin, l.RightMargin)
}

// Append renders f as WordprocessingML.
func (s *DocxSink) Append(f Fragment) error {
	switch f := f.(type) {
	case StyledParagraph:
		s.doc.AppendParagraph(s.style(f.Style), spanRuns(f.Spans))
	case ListItem:
		s.doc.AppendListItem(s.style(s.styles.ListItem), s.numbering.ID(f.Kind), spanRuns(f.Spans))
	case CodeLine:
		s.doc.AppendCodeLine(s.style(s.styles.Code), codeRuns(f))
	case Figure:
		if f.Resource.ID == "" {
			return fmt.Errorf("%w: figure %q was not added to this document", ErrImageLoad, f.Resource.Ref)
		}
		s.doc.AppendImage(docx.Drawing{
			RelID:       f.Resource.ID,
			Width:       f.Width,
			Height:      f.Height,
			Description: f.AltText,
			Style:       s.style(s.styles.Figure),
		})
	default:
		return fmt.Errorf("%w: fragment %T", ErrUnsupportedElement, f)
	}
	return nil
}

// Save writes the finished package.
func (s *DocxSink) Save(w io.Writer) error {
	if _, err := s.doc.WriteTo(w); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	return nil
}

// Warnings returns the problems noticed so far, in the order they occurred.
func (s *DocxSink) Warnings() []string {
	return append([]string(nil), s.warnings...)
}

// style returns id unchanged, noting once if the template lacks it.
func (s *DocxSink) style(id string) string {
	if !s.doc.HasStyle(id) && !s.warned[id] {
		s.warned[id] = true
		s.warnings = append(s.warnings, fmt.Sprintf("style %q is not defined in the template", id))
	}
	return id
}

func spanRuns(spans []Span) []docx.Run {
	runs := make([]docx.Run, 0, len(spans))
	for _, sp := range spans {
		runs = append(runs, docx.Run{Text: sp.Text, Bold: sp.Bold, Preserve: sp.IsSpace()})
	}
	return runs
}

func codeRuns(line CodeLine) []docx.Run {
	if len(line.Tokens) == 0 {
		if line.Text == "" {
			return nil
		}
		return []docx.Run{{Text: line.Text}}
	}
	runs := make([]docx.Run, 0, len(line.Tokens))
	for _, tok := range line.Tokens {
		runs = append(runs, docx.Run{Text: tok.Text, Bold: tok.Bold, Italic: tok.Italic, Color: tok.Color})
	}
	return runs
}

// Compile-time interface check.
var _ Sink = (*DocxSink)(nil)
