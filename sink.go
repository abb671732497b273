package md2docx

import (
	"context"
	"io"

	"github.com/alnah/go-md2docx/internal/highlight"
	"github.com/alnah/go-md2docx/internal/pipeline"
)

// Span is a run of inline text, bold or plain.
type Span = pipeline.Span

// CodeToken is a coloured piece of a code line.
type CodeToken = highlight.Token

// ImageResource is an image registered with a sink.
type ImageResource struct {
	ID          string // sink handle, the relationship ID for .docx output
	Ref         string // path or URL the image was loaded from
	Format      string // png, jpeg, gif, bmp, tiff
	PixelWidth  int
	PixelHeight int
	DPIX        float64
	DPIY        float64
}

// Sink receives document fragments in document order.
//
// Implementations are used by a single conversion at a time.
type Sink interface {
	// AddImage loads and registers the image at path and reports its
	// intrinsic size and resolution.
	AddImage(ctx context.Context, path string) (ImageResource, error)

	// PrintableWidth returns the width between the page margins in EMUs.
	PrintableWidth() int64

	// Append adds one fragment at the end of the document.
	Append(f Fragment) error

	// Save writes the finished document.
	Save(w io.Writer) error
}

// ListKind distinguishes bulleted from numbered list items.
type ListKind int

// List kinds.
const (
	Bulleted ListKind = iota
	Numbered
)

func (k ListKind) String() string {
	if k == Numbered {
		return "numbered"
	}
	return "bulleted"
}

// Fragment is one unit of document output. The set of implementations is
// closed: StyledParagraph, ListItem, CodeLine and Figure.
type Fragment interface {
	fragment()
}

// StyledParagraph is a paragraph of spans in a named paragraph style.
type StyledParagraph struct {
	Style string
	Spans []Span
}

// ListItem is a first-level list paragraph.
type ListItem struct {
	Kind  ListKind
	Spans []Span
}

// CodeLine is one physical line of a code block. Text is verbatim; Tokens,
// when present, concatenate to Text.
type CodeLine struct {
	Text   string
	Tokens []CodeToken
}

// Figure is an inline image with its render size in EMUs.
type Figure struct {
	Resource ImageResource
	Width    int64
	Height   int64
	AltText  string
}

func (StyledParagraph) fragment() {}
func (ListItem) fragment()        {}
func (CodeLine) fragment()        {}
func (Figure) fragment()          {}
