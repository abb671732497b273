package assets

import (
	"archive/zip"
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"time"
)

//go:embed templates
var templates embed.FS

// templateParts maps package part names to the embedded files holding them.
// Order is the order parts are written to the archive.
var templateParts = []struct {
	part string
	file string
}{
	{"[Content_Types].xml", "content_types.xml"},
	{"_rels/.rels", "package.rels"},
	{"word/document.xml", "document.xml"},
	{"word/_rels/document.xml.rels", "document.xml.rels"},
	{"word/styles.xml", "styles.xml"},
	{"word/numbering.xml", "numbering.xml"},
	{"word/settings.xml", "settings.xml"},
}

// packageEpoch is the modification time stamped on assembled parts.
var packageEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// EmbeddedLoader assembles templates from embedded XML parts.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadTemplate assembles the named template into a .docx package.
func (e *EmbeddedLoader) LoadTemplate(name string) ([]byte, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	dir := "templates/" + name
	if _, err := fs.Stat(templates, dir); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, tp := range templateParts {
		content, err := templates.ReadFile(dir + "/" + tp.file)
		if err != nil {
			return nil, fmt.Errorf("%w: %q missing %s: %v", ErrAssetRead, name, tp.file, err)
		}
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     tp.part,
			Method:   zip.Deflate,
			Modified: packageEpoch,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
		}
		if _, err := w.Write(content); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}

	return buf.Bytes(), nil
}

// Names lists the embedded templates.
func (e *EmbeddedLoader) Names() []string {
	entries, err := templates.ReadDir("templates")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
