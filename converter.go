package md2docx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-md2docx/internal/geometry"
	"github.com/alnah/go-md2docx/internal/highlight"
	"github.com/alnah/go-md2docx/internal/pipeline"
	"github.com/alnah/go-md2docx/internal/textenc"
)

// Converter orchestrates the markdown-to-DOCX conversion pipeline.
// Create with NewConverter(), use Convert() or ConvertToSink(), and Close() when done.
// A Converter holds no per-document state and may be shared between goroutines.
type Converter struct {
	cfg         converterConfig
	loader      TemplateLoader
	fetcher     ImageFetcher
	normalizer  *pipeline.Normalizer
	inline      *pipeline.InlineFormatter
	highlighter *highlight.Highlighter // nil when highlighting is off
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTabWidth, WithTemplateLoader).
// Returns error if an option value is out of range or the asset path is invalid.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{cfg: defaultConverterConfig()}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.cfg.validate(); err != nil {
		return nil, err
	}

	if c.loader == nil {
		loader, err := NewTemplateLoader(c.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		c.loader = loader
	}

	if c.fetcher == nil {
		client := c.cfg.remoteClient
		if c.cfg.remoteImages && client == nil {
			client = defaultHTTPClient()
		}
		c.fetcher = NewImageFetcher(client)
	}

	c.normalizer = pipeline.NewNormalizer(c.cfg.tabWidth)
	c.inline = pipeline.NewInlineFormatter(c.cfg.iconMarkers)
	c.highlighter = c.newHighlighter()

	return c, nil
}

func (cfg converterConfig) validate() error {
	if cfg.tabWidth < 1 || cfg.tabWidth > MaxTabWidth {
		return fmt.Errorf("%w: %d (must be 1-%d)", ErrInvalidTabWidth, cfg.tabWidth, MaxTabWidth)
	}
	if _, err := ParseQuotationMode(string(cfg.quotations)); err != nil {
		return err
	}
	if cfg.defaultDPI <= 0 || cfg.defaultDPI > MaxDPI {
		return fmt.Errorf("%w: %g (must be above 0 and at most %d)", ErrInvalidDPI, cfg.defaultDPI, MaxDPI)
	}
	return nil
}

// Convert runs the full pipeline into the input's template and returns the
// finished document. The context is checked between blocks.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if input.Markdown == "" && len(input.Source) == 0 {
		return nil, ErrEmptyMarkdown
	}

	template := input.TemplateData
	if template == nil {
		template, err = resolveTemplate(c.loader, input.Template)
		if err != nil {
			return nil, fmt.Errorf("loading template: %w", err)
		}
	}

	sink, err := NewDocxSink(template, c.fetcher, c.cfg.styles, c.cfg.numbering, c.cfg.defaultDPI)
	if err != nil {
		return nil, err
	}

	stats, err := c.run(ctx, input, sink)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := sink.Save(&buf); err != nil {
		return nil, err
	}

	return &ConvertResult{
		DOCX:      buf.Bytes(),
		Charset:   stats.charset,
		Blocks:    stats.blocks,
		Fragments: stats.fragments,
		Warnings:  sink.Warnings(),
	}, nil
}

// ConvertToSink parses the input and appends its fragments to sink in
// document order. The sink is not saved. Input template fields are ignored.
func (c *Converter) ConvertToSink(ctx context.Context, input Input, sink Sink) error {
	if input.Markdown == "" && len(input.Source) == 0 {
		return ErrEmptyMarkdown
	}
	_, err := c.run(ctx, input, sink)
	return err
}

// LoadTemplate resolves a template argument the way Convert resolves
// Input.Template: empty selects DefaultTemplate, a .docx path is read from
// disk, anything else is looked up by name. Callers converting many
// documents can load once and pass the bytes as Input.TemplateData.
func (c *Converter) LoadTemplate(arg string) ([]byte, error) {
	return resolveTemplate(c.loader, arg)
}

// TemplateNames lists the templates available by name, or nil when the
// template loader cannot enumerate them.
func (c *Converter) TemplateNames() []string {
	if l, ok := c.loader.(TemplateLister); ok {
		return l.Names()
	}
	return nil
}

// Close releases resources. It exists for API symmetry and always returns nil.
func (c *Converter) Close() error {
	return nil
}

type runStats struct {
	charset   string
	blocks    int
	fragments int
}

func (c *Converter) run(ctx context.Context, input Input, sink Sink) (runStats, error) {
	parser, charset := c.newParser(input)
	stats := runStats{charset: charset}

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		block, err := parser.Next()
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		if err != nil {
			return stats, c.annotate(input, err)
		}
		stats.blocks++

		fragments, err := c.fragments(ctx, block, sink)
		if err != nil {
			return stats, c.annotate(input, err)
		}
		for _, f := range fragments {
			if err := sink.Append(f); err != nil {
				return stats, c.annotate(input, err)
			}
			stats.fragments++
		}
	}
}

// fragments renders one block. Quotations in skip mode render to nothing.
func (c *Converter) fragments(ctx context.Context, block pipeline.Block, sink Sink) ([]Fragment, error) {
	switch b := block.(type) {
	case pipeline.Header:
		return []Fragment{StyledParagraph{Style: c.cfg.styles.Heading(b.Level), Spans: c.inline.Format(b.Text)}}, nil

	case pipeline.ListItem:
		return []Fragment{ListItem{Kind: Bulleted, Spans: c.inline.Format(b.Text)}}, nil

	case pipeline.NumberedListItem:
		return []Fragment{ListItem{Kind: Numbered, Spans: c.inline.Format(b.Text)}}, nil

	case pipeline.Paragraph:
		return []Fragment{StyledParagraph{Style: c.cfg.styles.Paragraph, Spans: c.inline.Format(b.Text)}}, nil

	case pipeline.Image:
		res, err := sink.AddImage(ctx, b.Path)
		if err != nil {
			return nil, err
		}
		size := geometry.Resolve(geometry.Intrinsic{
			PixelWidth:  res.PixelWidth,
			PixelHeight: res.PixelHeight,
			DPIX:        res.DPIX,
			DPIY:        res.DPIY,
		}, sink.PrintableWidth())
		return []Fragment{Figure{Resource: res, Width: size.Width, Height: size.Height, AltText: b.AltText}}, nil

	case pipeline.CodeBlock:
		return c.codeLines(b), nil

	case pipeline.Quotation:
		if c.cfg.quotations == QuotationSkip {
			return nil, nil
		}
		return nil, &UnsupportedElementError{Kind: pipeline.KindOf(b), Text: b.Text}

	default:
		return nil, &UnsupportedElementError{Kind: pipeline.KindOf(block)}
	}
}

// codeLines emits one fragment per line of the block, verbatim.
func (c *Converter) codeLines(b pipeline.CodeBlock) []Fragment {
	lines := strings.Split(b.Text, "\n")
	var tokens [][]CodeToken
	if c.highlighter != nil {
		tokens = c.highlighter.Lines(b.Language, b.Text)
	}

	out := make([]Fragment, len(lines))
	for i, line := range lines {
		cl := CodeLine{Text: line}
		if i < len(tokens) {
			cl.Tokens = tokens[i]
		}
		out[i] = cl
	}
	return out
}

// newParser decodes the input and returns a parser over its normalized
// lines, along with the charset the source was read as.
func (c *Converter) newParser(input Input) (*pipeline.Parser, string) {
	text, charset := input.Markdown, "UTF-8"
	if text == "" {
		text, charset = textenc.Decode(input.Source)
	}
	lines := c.normalizer.Normalize(pipeline.SplitLines(text))
	return pipeline.NewParser(lines, input.SourceDir), charset
}

func (c *Converter) annotate(input Input, err error) error {
	if input.Name == "" {
		return err
	}
	return fmt.Errorf("%s: %w", input.Name, err)
}
