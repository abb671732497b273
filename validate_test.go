package md2docx

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConverter_Validate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ok.png"), pngBytes(t, 4, 4))
	writeFile(t, filepath.Join(dir, "notes.xyz"), []byte("plain text"))

	tests := []struct {
		name      string
		markdown  string
		opts      []Option
		wantLines []int
		wantErrs  []error
	}{
		{
			name:     "convertible document",
			markdown: "# T\n\n- item\n\n![ok](ok.png)\n\n```\n> in code\n```\n",
		},
		{
			name:      "quotation",
			markdown:  "text\n\n> quoted\n",
			wantLines: []int{3},
			wantErrs:  []error{ErrUnsupportedElement},
		},
		{
			name:      "indented quotation",
			markdown:  "text\n\n    > quoted\n",
			wantLines: []int{3},
			wantErrs:  []error{ErrUnsupportedElement},
		},
		{
			name:     "quote marker in list item",
			markdown: "- > quoted\n",
		},
		{
			name:     "quotation skipped",
			markdown: "> quoted\n",
			opts:     []Option{WithQuotationMode(QuotationSkip)},
		},
		{
			name:      "every failing block is reported",
			markdown:  "![a]()\n\n![b](missing.png)\n\n![c](notes.xyz)\n\n![d](https://example.com/d.png)\n> q\n",
			wantLines: []int{1, 3, 5, 7, 8},
			wantErrs: []error{
				ErrMalformedReference,
				ErrImageLoad,
				ErrUnrecognizedResourceType,
				ErrRemoteImageDisabled,
				ErrUnsupportedElement,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			problems, err := mustConverter(t, tt.opts...).Validate(context.Background(), Input{Markdown: tt.markdown, SourceDir: dir})
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}

			var lines []int
			for _, p := range problems {
				lines = append(lines, p.Line)
			}
			if diff := cmp.Diff(tt.wantLines, lines); diff != "" {
				t.Fatalf("problem lines mismatch (-want +got):\n%s", diff)
			}
			for i, want := range tt.wantErrs {
				if !errors.Is(problems[i].Err, want) {
					t.Errorf("problem %d error = %v, want %v", i, problems[i].Err, want)
				}
			}
		})
	}
}

func TestConverter_Validate_MatchesConvert(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c := mustConverter(t)

	for _, md := range []string{
		"plain\n",
		"    > x\n",
		"- > x\n",
		"![alt]()\n",
		"![alt](nothing.png)\n",
		"Title\n> x\n",
	} {
		problems, err := c.Validate(context.Background(), Input{Markdown: md, SourceDir: dir})
		if err != nil {
			t.Fatalf("Validate(%q) error = %v", md, err)
		}
		_, convErr := c.Convert(context.Background(), Input{Markdown: md, SourceDir: dir})
		if (len(problems) > 0) != (convErr != nil) {
			t.Errorf("%q: Validate found %d problem(s), Convert error = %v", md, len(problems), convErr)
		}
	}
}

func TestConverter_Validate_Errors(t *testing.T) {
	t.Parallel()

	c := mustConverter(t)

	if _, err := c.Validate(context.Background(), Input{}); !errors.Is(err, ErrEmptyMarkdown) {
		t.Errorf("empty input error = %v, want ErrEmptyMarkdown", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Validate(ctx, Input{Markdown: "text"}); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled error = %v, want context.Canceled", err)
	}
}
