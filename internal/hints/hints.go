// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// ForUnsupportedElement returns a hint for a construct the converter rejects.
func ForUnsupportedElement(kind string) string {
	switch kind {
	case "quotation", "blockquote":
		return format("rewrite block quotes as paragraphs, or use --quotes skip to drop them")
	case "":
		return format("run 'md2docx check' to list unsupported constructs")
	default:
		return format("remove the " + kind + " or run 'md2docx check' to list unsupported constructs")
	}
}

// ForUnrecognizedImage returns a hint listing the image formats that can be embedded.
func ForUnrecognizedImage() string {
	return format("supported formats: PNG, JPEG, GIF, BMP, TIFF")
}

// ForTemplateNotFound returns hints for missing templates.
func ForTemplateNotFound(available []string) string {
	hints := []string{"pass a .docx path with --template"}
	if len(available) > 0 {
		hints = append(hints, "available: "+strings.Join(available, ", "))
	}
	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-md2docx/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/go-md2docx/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForRemoteImage returns the hint shown when a remote image is refused.
func ForRemoteImage() string {
	return format("download the image next to the document, or use --allow-remote-images")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
