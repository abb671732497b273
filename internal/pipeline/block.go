package pipeline

// Block is one structurally classified unit of Markdown.
// The set of implementations is closed: Header, ListItem, NumberedListItem,
// Image, CodeBlock, Paragraph and Quotation.
type Block interface {
	block()
}

// Header is an ATX (# Title) or Setext (Title / =====) header.
type Header struct {
	Text  string
	Level int // 1 to 6
}

// ListItem is a bulleted list item.
type ListItem struct {
	Text string
}

// NumberedListItem is an ordered list item ("3. third").
type NumberedListItem struct {
	Text string
}

// Image is a standalone image reference line.
// Path is absolute (resolved against the source directory) unless it is a URL.
type Image struct {
	Path    string
	AltText string
}

// CodeBlock holds the verbatim lines of a fenced code block joined with "\n".
type CodeBlock struct {
	Text     string
	Language string // info string after the opening fence, may be empty
}

// Paragraph is a single line of free text.
type Paragraph struct {
	Text string
}

// Quotation is a block quote line. No renderer supports it yet.
type Quotation struct {
	Text string
}

func (Header) block()           {}
func (ListItem) block()         {}
func (NumberedListItem) block() {}
func (Image) block()            {}
func (CodeBlock) block()        {}
func (Paragraph) block()        {}
func (Quotation) block()        {}

// KindOf returns a short lowercase name for b, used in error messages.
func KindOf(b Block) string {
	switch b.(type) {
	case Header:
		return "header"
	case ListItem:
		return "list item"
	case NumberedListItem:
		return "numbered list item"
	case Image:
		return "image"
	case CodeBlock:
		return "code block"
	case Paragraph:
		return "paragraph"
	case Quotation:
		return "quotation"
	default:
		return "unknown"
	}
}
