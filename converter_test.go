package md2docx

// Notes:
// - ConvertToSink is tested against recordingSink, which captures the
//   fragment stream without touching the file system.
// - Expected spans are built with the pipeline's own InlineFormatter; its
//   splitting rules are covered in internal/pipeline.
// - Fragment mismatches are reported with a litter dump of the full stream.

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sanity-io/litter"

	"github.com/alnah/go-md2docx/internal/pipeline"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type recordingSink struct {
	images    map[string]ImageResource
	imageErr  error
	width     int64
	appendErr error

	added     []string
	fragments []Fragment
}

func newRecordingSink() *recordingSink {
	return &recordingSink{images: make(map[string]ImageResource), width: 6858000}
}

func (s *recordingSink) AddImage(_ context.Context, path string) (ImageResource, error) {
	s.added = append(s.added, path)
	if s.imageErr != nil {
		return ImageResource{}, s.imageErr
	}
	res, ok := s.images[path]
	if !ok {
		return ImageResource{}, ErrImageLoad
	}
	return res, nil
}

func (s *recordingSink) PrintableWidth() int64 { return s.width }

func (s *recordingSink) Append(f Fragment) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.fragments = append(s.fragments, f)
	return nil
}

func (s *recordingSink) Save(_ io.Writer) error { return nil }

func spans(text string) []Span {
	return pipeline.NewInlineFormatter(nil).Format(text)
}

func mustConverter(t *testing.T, opts ...Option) *Converter {
	t.Helper()
	c, err := NewConverter(opts...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	return c
}

func diffFragments(t *testing.T, want, got []Fragment) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fragments mismatch (-want +got):\n%s\ngot:\n%s", diff, litter.Sdump(got))
	}
}

var _ Sink = (*recordingSink)(nil)

// ---------------------------------------------------------------------------
// TestNewConverter - Option validation
// ---------------------------------------------------------------------------

func TestNewConverter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{name: "defaults"},
		{name: "all options", opts: []Option{
			WithTabWidth(2),
			WithIconMarkers(":memo:"),
			WithQuotationMode(QuotationSkip),
			WithStyles(Styles{Code: "SourceCode"}),
			WithNumbering(Numbering{Numbered: 7}),
			WithHighlighting("monokai"),
			WithDefaultDPI(300),
			WithRemoteImages(nil),
		}},
		{name: "tab width zero", opts: []Option{WithTabWidth(0)}, wantErr: ErrInvalidTabWidth},
		{name: "tab width too large", opts: []Option{WithTabWidth(MaxTabWidth + 1)}, wantErr: ErrInvalidTabWidth},
		{name: "unknown quotation mode", opts: []Option{WithQuotationMode("render")}, wantErr: ErrInvalidQuotationMode},
		{name: "zero dpi", opts: []Option{WithDefaultDPI(0)}, wantErr: ErrInvalidDPI},
		{name: "huge dpi", opts: []Option{WithDefaultDPI(MaxDPI + 1)}, wantErr: ErrInvalidDPI},
		{
			name:    "missing asset path",
			opts:    []Option{WithAssetPath(filepath.Join(t.TempDir(), "missing"))},
			wantErr: ErrInvalidAssetPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, err := NewConverter(tt.opts...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewConverter() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewConverter() error = %v", err)
			}
			if err := c.Close(); err != nil {
				t.Errorf("Close() = %v", err)
			}
		})
	}
}

func TestNewConverter_OptionsApplied(t *testing.T) {
	t.Parallel()

	c := mustConverter(t,
		WithStyles(Styles{Code: "SourceCode"}),
		WithNumbering(Numbering{Numbered: 7}),
	)
	if c.cfg.styles.Code != "SourceCode" || c.cfg.styles.Paragraph != "Normal" {
		t.Errorf("styles = %+v", c.cfg.styles)
	}
	if c.cfg.numbering != (Numbering{Bulleted: 1, Numbered: 7}) {
		t.Errorf("numbering = %+v", c.cfg.numbering)
	}
	if c.highlighter != nil {
		t.Error("highlighter should be nil without WithHighlighting")
	}
}

// ---------------------------------------------------------------------------
// TestConvertToSink - Fragment stream
// ---------------------------------------------------------------------------

func TestConvertToSink_Blocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		markdown string
		want     []Fragment
	}{
		{
			name:     "atx header",
			markdown: "### Title",
			want:     []Fragment{StyledParagraph{Style: "Heading3", Spans: spans("Title")}},
		},
		{
			name:     "setext headers",
			markdown: "Top\n=====\n\nSub\n-----",
			want: []Fragment{
				StyledParagraph{Style: "Heading1", Spans: spans("Top")},
				StyledParagraph{Style: "Heading2", Spans: spans("Sub")},
			},
		},
		{
			name:     "paragraph with bold",
			markdown: "a **b** c",
			want:     []Fragment{StyledParagraph{Style: "Normal", Spans: spans("a **b** c")}},
		},
		{
			name:     "list kinds",
			markdown: "- one\n* two\n+ three\n3. third\n1. - x",
			want: []Fragment{
				ListItem{Kind: Bulleted, Spans: spans("one")},
				ListItem{Kind: Bulleted, Spans: spans("two")},
				ListItem{Kind: Bulleted, Spans: spans("three")},
				ListItem{Kind: Numbered, Spans: spans("third")},
				ListItem{Kind: Numbered, Spans: spans("- x")},
			},
		},
		{
			name:     "code block one fragment per line",
			markdown: "```\n  line1\n\n\tline2 \n```",
			want: []Fragment{
				CodeLine{Text: "  line1"},
				CodeLine{Text: ""},
				CodeLine{Text: "    line2 "},
			},
		},
		{
			name:     "unterminated fence",
			markdown: "```\n# not a header\n- not a list",
			want: []Fragment{
				CodeLine{Text: "# not a header"},
				CodeLine{Text: "- not a list"},
			},
		},
		{
			name:     "icon markers stripped",
			markdown: ":bulb: Tip",
			want:     []Fragment{StyledParagraph{Style: "Normal", Spans: []Span{{Text: "Tip"}}}},
		},
		{
			name:     "blank only",
			markdown: "\n   \n\t\n",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sink := newRecordingSink()
			if err := mustConverter(t).ConvertToSink(context.Background(), Input{Markdown: tt.markdown}, sink); err != nil {
				t.Fatalf("ConvertToSink() error = %v", err)
			}
			diffFragments(t, tt.want, sink.fragments)
		})
	}
}

func TestConvertToSink_Image(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(string(filepath.Separator), "docs")
	path := filepath.Join(dir, "img.png")
	res := ImageResource{ID: "rId9", Ref: path, Format: "png", PixelWidth: 3000, PixelHeight: 2000, DPIX: 300, DPIY: 300}

	sink := newRecordingSink()
	sink.images[path] = res

	err := mustConverter(t).ConvertToSink(context.Background(), Input{
		Markdown:  "![alt](./img.png)",
		SourceDir: dir,
	}, sink)
	if err != nil {
		t.Fatalf("ConvertToSink() error = %v", err)
	}

	if diff := cmp.Diff([]string{path}, sink.added); diff != "" {
		t.Errorf("added images mismatch (-want +got):\n%s", diff)
	}
	want := []Fragment{Figure{Resource: res, Width: 6858000, Height: 4572000, AltText: "alt"}}
	diffFragments(t, want, sink.fragments)
}

func TestConvertToSink_SmallImageNotEnlarged(t *testing.T) {
	t.Parallel()

	sink := newRecordingSink()
	sink.images["https://x.test/y.png"] = ImageResource{ID: "rId1", PixelWidth: 96, PixelHeight: 48, DPIX: 96, DPIY: 96}

	err := mustConverter(t).ConvertToSink(context.Background(), Input{Markdown: "![](https://x.test/y.png)"}, sink)
	if err != nil {
		t.Fatalf("ConvertToSink() error = %v", err)
	}
	if len(sink.fragments) != 1 {
		t.Fatalf("got %d fragments, want 1", len(sink.fragments))
	}
	fig := sink.fragments[0].(Figure)
	if fig.Width != 914400 || fig.Height != 457200 {
		t.Errorf("size = %dx%d, want 914400x457200", fig.Width, fig.Height)
	}
}

func TestConvertToSink_Quotation(t *testing.T) {
	t.Parallel()

	md := "before\n> quoted\nafter"

	t.Run("error mode", func(t *testing.T) {
		t.Parallel()
		sink := newRecordingSink()
		err := mustConverter(t).ConvertToSink(context.Background(), Input{Markdown: md}, sink)
		if !errors.Is(err, ErrUnsupportedElement) {
			t.Fatalf("error = %v, want ErrUnsupportedElement", err)
		}
		var elemErr *UnsupportedElementError
		if !errors.As(err, &elemErr) {
			t.Fatalf("error = %T, want *UnsupportedElementError", err)
		}
		if diff := cmp.Diff(UnsupportedElementError{Kind: "quotation", Text: "quoted"}, *elemErr); diff != "" {
			t.Errorf("element error mismatch (-want +got):\n%s", diff)
		}
		diffFragments(t, []Fragment{StyledParagraph{Style: "Normal", Spans: spans("before")}}, sink.fragments)
	})

	t.Run("skip mode", func(t *testing.T) {
		t.Parallel()
		sink := newRecordingSink()
		err := mustConverter(t, WithQuotationMode(QuotationSkip)).ConvertToSink(context.Background(), Input{Markdown: md}, sink)
		if err != nil {
			t.Fatalf("ConvertToSink() error = %v", err)
		}
		diffFragments(t, []Fragment{
			StyledParagraph{Style: "Normal", Spans: spans("before")},
			StyledParagraph{Style: "Normal", Spans: spans("after")},
		}, sink.fragments)
	})
}

func TestConvertToSink_Errors(t *testing.T) {
	t.Parallel()

	appendFailure := errors.New("disk full")

	tests := []struct {
		name     string
		input    Input
		setup    func(*recordingSink)
		ctx      func() context.Context
		wantErr  error
		wantText string
	}{
		{name: "empty input", input: Input{}, wantErr: ErrEmptyMarkdown},
		{name: "malformed image", input: Input{Markdown: "![alt]()"}, wantErr: ErrMalformedReference},
		{
			name:    "unrecognized image",
			input:   Input{Markdown: "![alt](a.xyz)"},
			setup:   func(s *recordingSink) { s.imageErr = ErrUnrecognizedResourceType },
			wantErr: ErrUnrecognizedResourceType,
		},
		{
			name:    "append failure",
			input:   Input{Markdown: "text"},
			setup:   func(s *recordingSink) { s.appendErr = appendFailure },
			wantErr: appendFailure,
		},
		{
			name:  "cancelled context",
			input: Input{Markdown: "text"},
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
			wantErr: context.Canceled,
		},
		{
			name:     "name prefixes error",
			input:    Input{Markdown: "> q", Name: "notes.md"},
			wantErr:  ErrUnsupportedElement,
			wantText: "notes.md: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sink := newRecordingSink()
			if tt.setup != nil {
				tt.setup(sink)
			}
			ctx := context.Background()
			if tt.ctx != nil {
				ctx = tt.ctx()
			}
			err := mustConverter(t).ConvertToSink(ctx, tt.input, sink)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantText != "" && !strings.HasPrefix(err.Error(), tt.wantText) {
				t.Errorf("error %q should start with %q", err, tt.wantText)
			}
		})
	}
}

func TestConvertToSink_Options(t *testing.T) {
	t.Parallel()

	t.Run("tab width", func(t *testing.T) {
		t.Parallel()
		sink := newRecordingSink()
		md := "```\n\tx\n```"
		if err := mustConverter(t, WithTabWidth(2)).ConvertToSink(context.Background(), Input{Markdown: md}, sink); err != nil {
			t.Fatal(err)
		}
		diffFragments(t, []Fragment{CodeLine{Text: "  x"}}, sink.fragments)
	})

	t.Run("custom icon markers", func(t *testing.T) {
		t.Parallel()
		sink := newRecordingSink()
		md := ":memo: note :bulb:"
		if err := mustConverter(t, WithIconMarkers(":memo:")).ConvertToSink(context.Background(), Input{Markdown: md}, sink); err != nil {
			t.Fatal(err)
		}
		diffFragments(t, []Fragment{StyledParagraph{Style: "Normal", Spans: []Span{{Text: "note :bulb:"}}}}, sink.fragments)
	})

	t.Run("custom styles", func(t *testing.T) {
		t.Parallel()
		sink := newRecordingSink()
		c := mustConverter(t, WithStyles(Styles{Paragraph: "Body", HeadingPrefix: "Title"}))
		if err := c.ConvertToSink(context.Background(), Input{Markdown: "## H\ntext"}, sink); err != nil {
			t.Fatal(err)
		}
		diffFragments(t, []Fragment{
			StyledParagraph{Style: "Title2", Spans: spans("H")},
			StyledParagraph{Style: "Body", Spans: spans("text")},
		}, sink.fragments)
	})

	t.Run("highlighting", func(t *testing.T) {
		t.Parallel()
		sink := newRecordingSink()
		md := "```go\nx := 1\n\nreturn x\n```"
		if err := mustConverter(t, WithHighlighting("monokai")).ConvertToSink(context.Background(), Input{Markdown: md}, sink); err != nil {
			t.Fatal(err)
		}
		if len(sink.fragments) != 3 {
			t.Fatalf("got %d fragments, want 3\n%s", len(sink.fragments), litter.Sdump(sink.fragments))
		}
		for _, f := range sink.fragments {
			line := f.(CodeLine)
			var joined strings.Builder
			for _, tok := range line.Tokens {
				joined.WriteString(tok.Text)
			}
			if joined.String() != line.Text {
				t.Errorf("tokens %q do not reassemble line %q", joined.String(), line.Text)
			}
		}
		if first := sink.fragments[0].(CodeLine); len(first.Tokens) < 2 {
			t.Errorf("expected several tokens for %q, got %s", first.Text, litter.Sdump(first.Tokens))
		}
	})
}

func TestConvertToSink_SourceBytes(t *testing.T) {
	t.Parallel()

	sink := newRecordingSink()
	src := []byte("\xef\xbb\xbf# Caf\xc3\xa9\r\nbody\r\n")
	if err := mustConverter(t).ConvertToSink(context.Background(), Input{Source: src}, sink); err != nil {
		t.Fatalf("ConvertToSink() error = %v", err)
	}
	diffFragments(t, []Fragment{
		StyledParagraph{Style: "Heading1", Spans: spans("Café")},
		StyledParagraph{Style: "Normal", Spans: spans("body")},
	}, sink.fragments)
}

func TestConvertToSink_Deterministic(t *testing.T) {
	t.Parallel()

	md := "# T\n\nSome **bold** words\n- a\n1. b\n```sh\necho hi\n```\n"
	c := mustConverter(t, WithHighlighting(""))

	first, second := newRecordingSink(), newRecordingSink()
	if err := c.ConvertToSink(context.Background(), Input{Markdown: md}, first); err != nil {
		t.Fatal(err)
	}
	if err := c.ConvertToSink(context.Background(), Input{Markdown: md}, second); err != nil {
		t.Fatal(err)
	}
	diffFragments(t, first.fragments, second.fragments)
}
