package pipeline

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alnah/go-md2docx/internal/fileutil"
)

// ErrMalformedReference indicates an image line that matches the image syntax
// but carries no usable path.
var ErrMalformedReference = errors.New("malformed image reference")

// maxHeaderLevel is the deepest representable header level.
const maxHeaderLevel = 6

const codeFence = "```"

var (
	setextLevel1Pattern = regexp.MustCompile(`^\s*=+\s*$`)
	setextLevel2Pattern = regexp.MustCompile(`^\s*-+\s*$`)
	numberedItemPattern = regexp.MustCompile(`^[0-9]+\.\s(.*)$`)
	imagePattern        = regexp.MustCompile(`^\s*!\[(.*?)\]\((.*?)\)\s*$`)
)

// Parser turns a LineStream into Blocks, one per call to Next.
// A Parser advances a shared cursor and must not be shared between goroutines.
type Parser struct {
	lines   *LineStream
	baseDir string
	line    int // 1-based start of the last block returned by Next
}

// NewParser creates a Parser reading from lines. Relative image paths are
// resolved against baseDir.
func NewParser(lines *LineStream, baseDir string) *Parser {
	return &Parser{lines: lines, baseDir: baseDir}
}

// Next returns the next Block, or io.EOF when the input is exhausted.
func (p *Parser) Next() (Block, error) {
	line, ok := p.nextNonBlank()
	if !ok {
		return nil, io.EOF
	}
	p.line = p.lines.pos

	// The underline belongs to this header; leaving it would turn it into
	// a block of its own on the next call.
	if next, ok := p.lines.Peek(); ok {
		if level := setextLevel(next); level > 0 {
			p.lines.Next()
			return Header{Text: strings.TrimSpace(line), Level: level}, nil
		}
	}

	trimmed := strings.TrimSpace(line)

	switch {
	case strings.HasPrefix(trimmed, "#"):
		return atxHeader(trimmed), nil
	case isListItemLine(trimmed):
		return ListItem{Text: strings.TrimLeft(trimmed, " -+*")}, nil
	case numberedItemPattern.MatchString(line):
		m := numberedItemPattern.FindStringSubmatch(line)
		return NumberedListItem{Text: strings.TrimSpace(m[1])}, nil
	case imagePattern.MatchString(line):
		return p.image(line)
	case strings.HasPrefix(trimmed, codeFence):
		return p.codeBlock(trimmed), nil
	case strings.HasPrefix(trimmed, ">"):
		return Quotation{Text: strings.TrimSpace(strings.TrimLeft(trimmed, ">"))}, nil
	default:
		return Paragraph{Text: trimmed}, nil
	}
}

// Line returns the 1-based source line on which the block (or error) last
// returned by Next starts, or 0 before the first call.
func (p *Parser) Line() int {
	return p.line
}

// nextNonBlank consumes lines until one is not blank.
func (p *Parser) nextNonBlank() (string, bool) {
	for {
		line, ok := p.lines.Next()
		if !ok {
			return "", false
		}
		if strings.TrimSpace(line) != "" {
			return line, true
		}
	}
}

// setextLevel returns 1 or 2 when line is a Setext underline, 0 otherwise.
func setextLevel(line string) int {
	switch {
	case setextLevel1Pattern.MatchString(line):
		return 1
	case setextLevel2Pattern.MatchString(line):
		return 2
	}
	return 0
}

func atxHeader(trimmed string) Header {
	level := 0
	for level < len(trimmed) && level < maxHeaderLevel && trimmed[level] == '#' {
		level++
	}
	return Header{Text: strings.Trim(trimmed, "# "), Level: level}
}

func isListItemLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "-") ||
		strings.HasPrefix(trimmed, "*") ||
		strings.HasPrefix(trimmed, "+")
}

func (p *Parser) image(line string) (Block, error) {
	m := imagePattern.FindStringSubmatch(line)
	alt, ref := m[1], strings.TrimSpace(m[2])
	if ref == "" {
		return nil, fmt.Errorf("%w: %q", ErrMalformedReference, strings.TrimSpace(line))
	}
	return Image{Path: ResolveImagePath(p.baseDir, ref), AltText: alt}, nil
}

// ResolveImagePath joins a relative image reference onto baseDir.
// "./a.png", "/a.png" and "a.png" all resolve to baseDir/a.png;
// http:// and https:// references are returned unchanged.
func ResolveImagePath(baseDir, ref string) string {
	if fileutil.IsURL(ref) {
		return ref
	}
	return filepath.Join(baseDir, filepath.FromSlash(ref))
}

// codeBlock consumes lines verbatim up to the closing fence or end of input,
// so nothing inside the fence reaches the classifier.
func (p *Parser) codeBlock(opening string) CodeBlock {
	var body []string
	for {
		line, ok := p.lines.Next()
		if !ok || strings.HasPrefix(strings.TrimSpace(line), codeFence) {
			break
		}
		body = append(body, line)
	}

	return CodeBlock{
		Text:     strings.Join(body, "\n"),
		Language: strings.TrimSpace(strings.TrimPrefix(opening, codeFence)),
	}
}

// ParseAll drains a parser into a slice, stopping at the first error.
func ParseAll(p *Parser) ([]Block, error) {
	var blocks []Block
	for {
		b, err := p.Next()
		if errors.Is(err, io.EOF) {
			return blocks, nil
		}
		if err != nil {
			return blocks, err
		}
		blocks = append(blocks, b)
	}
}
