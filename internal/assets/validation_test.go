package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "default", false},
		{"hyphen", "my-template", false},
		{"underscore", "my_template", false},
		{"empty", "", true},
		{"slash", "a/b", true},
		{"backslash", `a\b`, true},
		{"dot", "a.docx", true},
		{"traversal", "..", true},
		{"too long", strings.Repeat("a", maxAssetNameLength+1), true},
		{"max length", strings.Repeat("a", maxAssetNameLength), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateAssetName(tt.input)
			if tt.wantErr && !errors.Is(err, ErrInvalidAssetName) {
				t.Errorf("ValidateAssetName(%q) error = %v, want ErrInvalidAssetName", tt.input, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateAssetName(%q) unexpected error: %v", tt.input, err)
			}
		})
	}
}
