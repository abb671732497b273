package audit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []Finding
	}{
		{
			name: "supported constructs only",
			src:  "# Title\n\nSome **bold** text.\n\n- one\n- two\n\n1. first\n\n![alt](a.png)\n\n```go\nx := 1\n```\n",
			want: nil,
		},
		{"block quote content is scanned", "# T\n\n> see `x`\n", []Finding{{3, KindCodeSpan}}},
		{"table", "text\n\n| a | b |\n|---|---|\n| 1 | 2 |\n", []Finding{{3, KindTable}}},
		{"nested list", "- item\n  - nested\n", []Finding{{2, KindNestedList}}},
		{"link", "See [link](http://x) here\n", []Finding{{1, KindLink}}},
		{"autolink", "Visit <http://example.com> now\n", []Finding{{1, KindAutoLink}}},
		{"code span", "Use `code` now\n", []Finding{{1, KindCodeSpan}}},
		{"italic", "one\n\nAn *italic* word\n", []Finding{{3, KindItalic}}},
		{"strikethrough", "~~gone~~\n", []Finding{{1, KindStrikethrough}}},
		{"task check box", "- [ ] task\n", []Finding{{1, KindTaskCheckBox}}},
		{"indented code", "# T\n\n    indented\n", []Finding{{3, KindIndentedCode}}},
		{"html block", "<div>\nhi\n</div>\n", []Finding{{1, KindHTML}}},
		{"inline html deduplicated", "text <b>x</b>\n", []Finding{{1, KindHTML}}},
		{"inline image", "Look ![a](x.png) here\n", []Finding{{1, KindInlineImage}}},
		{"thematic break first", "***\n", []Finding{{1, KindThematicBreak}}},
		{"thematic break after paragraph", "para\n\n* * *\n", []Finding{{3, KindThematicBreak}}},
		{"consecutive thematic breaks", "***\n\n___\n", []Finding{{1, KindThematicBreak}, {3, KindThematicBreak}}},
		{
			name: "thematic break after setext heading",
			src:  "Title\n-----\n\n***\n",
			want: []Finding{{4, KindThematicBreak}},
		},
		{
			name: "ordered by line",
			src:  "plain\n\nsee `x` and [l](y)\n\nan *em* word\n",
			want: []Finding{{3, KindCodeSpan}, {3, KindLink}, {5, KindItalic}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Scan([]byte(tt.src))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Scan(%q) mismatch (-want +got):\n%s", tt.src, diff)
			}
		})
	}
}

func TestFinding_Detail(t *testing.T) {
	t.Parallel()

	for _, k := range []Kind{KindTable, KindNestedList, KindInlineImage, KindIndentedCode, KindThematicBreak} {
		if (Finding{Kind: k}).Detail() == "" {
			t.Errorf("Detail() empty for %s", k)
		}
	}
}

func TestLineIndex(t *testing.T) {
	t.Parallel()

	idx := newLineIndex([]byte("ab\ncd\n\nef"))
	tests := []struct {
		offset, want int
	}{
		{0, 1}, {2, 1}, {3, 2}, {5, 2}, {6, 3}, {7, 4}, {8, 4},
	}
	for _, tt := range tests {
		if got := idx.lineOf(tt.offset); got != tt.want {
			t.Errorf("lineOf(%d) = %d, want %d", tt.offset, got, tt.want)
		}
	}
}
