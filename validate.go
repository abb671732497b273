package md2docx

import (
	"context"
	"errors"
	"io"

	"github.com/alnah/go-md2docx/internal/docx"
	"github.com/alnah/go-md2docx/internal/geometry"
)

// Problem is a block that makes Convert fail.
type Problem struct {
	Line int // 1-based line where the block starts
	Err  error
}

// Validate parses input exactly as Convert does and returns every block that
// would make Convert fail, in document order. Images are fetched and
// identified but not stored, and no template is loaded.
//
// The error is non-nil only when validation cannot run: the input is empty
// or ctx is canceled.
func (c *Converter) Validate(ctx context.Context, input Input) ([]Problem, error) {
	if input.Markdown == "" && len(input.Source) == 0 {
		return nil, ErrEmptyMarkdown
	}

	parser, _ := c.newParser(input)
	sink := &validationSink{fetcher: c.fetcher, defaultDPI: c.cfg.defaultDPI}

	var problems []Problem
	for {
		if err := ctx.Err(); err != nil {
			return problems, err
		}

		block, err := parser.Next()
		if errors.Is(err, io.EOF) {
			return problems, nil
		}
		if err == nil {
			_, err = c.fragments(ctx, block, sink)
		}
		if err != nil {
			problems = append(problems, Problem{Line: parser.Line(), Err: err})
		}
	}
}

// validationSink loads images the way DocxSink does and discards everything.
type validationSink struct {
	fetcher    ImageFetcher
	defaultDPI float64
}

func (s *validationSink) AddImage(ctx context.Context, path string) (ImageResource, error) {
	_, info, err := loadImage(ctx, s.fetcher, path, s.defaultDPI)
	if err != nil {
		return ImageResource{}, err
	}
	return imageResource(path, info), nil
}

func (s *validationSink) PrintableWidth() int64 {
	l := docx.DefaultPageLayout()
	return geometry.PrintableWidth(l.Width, l.LeftMargin, l.RightMargin)
}

func (s *validationSink) Append(Fragment) error { return nil }

func (s *validationSink) Save(io.Writer) error { return nil }

var _ Sink = (*validationSink)(nil)
