package md2docx

import (
	"net/http"

	"github.com/alnah/go-md2docx/internal/highlight"
	"github.com/alnah/go-md2docx/internal/imageinfo"
	"github.com/alnah/go-md2docx/internal/pipeline"
)

// Limits checked by NewConverter.
const (
	MaxTabWidth = 16
	MaxDPI      = 2400
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	tabWidth       int
	iconMarkers    []string // nil = pipeline defaults
	quotations     QuotationMode
	styles         Styles
	numbering      Numbering
	highlight      bool
	highlightStyle string
	defaultDPI     float64
	assetPath      string
	remoteClient   *http.Client
	remoteImages   bool
}

func defaultConverterConfig() converterConfig {
	return converterConfig{
		tabWidth:   pipeline.DefaultTabWidth,
		quotations: QuotationError,
		styles:     DefaultStyles(),
		numbering:  DefaultNumbering(),
		defaultDPI: imageinfo.DefaultDPI,
	}
}

// WithTabWidth sets how many spaces a tab expands to (1 to MaxTabWidth).
func WithTabWidth(n int) Option {
	return func(c *Converter) {
		c.cfg.tabWidth = n
	}
}

// WithIconMarkers replaces the shortcodes stripped from inline text.
// Calling it with no markers disables stripping.
func WithIconMarkers(markers ...string) Option {
	return func(c *Converter) {
		c.cfg.iconMarkers = append([]string{}, markers...)
	}
}

// WithQuotationMode selects how block quotes are handled.
func WithQuotationMode(mode QuotationMode) Option {
	return func(c *Converter) {
		c.cfg.quotations = mode
	}
}

// WithStyles overrides paragraph style IDs. Empty fields keep the default.
func WithStyles(styles Styles) Option {
	return func(c *Converter) {
		c.cfg.styles = styles.withDefaults()
	}
}

// WithNumbering overrides list numbering IDs. Zero fields keep the default.
func WithNumbering(numbering Numbering) Option {
	return func(c *Converter) {
		c.cfg.numbering = numbering.withDefaults()
	}
}

// WithHighlighting colours fenced code blocks whose info string names a
// known language, using the named chroma style (empty = "github").
func WithHighlighting(style string) Option {
	return func(c *Converter) {
		c.cfg.highlight = true
		c.cfg.highlightStyle = style
	}
}

// WithDefaultDPI sets the resolution assumed for images that carry none.
func WithDefaultDPI(dpi float64) Option {
	return func(c *Converter) {
		c.cfg.defaultDPI = dpi
	}
}

// WithRemoteImages allows http and https image references, downloaded with
// client (nil = a client with a 15 second timeout). Ignored when
// WithImageFetcher is also given.
func WithRemoteImages(client *http.Client) Option {
	return func(c *Converter) {
		c.cfg.remoteImages = true
		c.cfg.remoteClient = client
	}
}

// WithImageFetcher replaces how image bytes are loaded.
func WithImageFetcher(f ImageFetcher) Option {
	return func(c *Converter) {
		c.fetcher = f
	}
}

// WithTemplateLoader sets a custom template loader.
// Takes precedence over WithAssetPath.
func WithTemplateLoader(l TemplateLoader) Option {
	return func(c *Converter) {
		c.loader = l
	}
}

// WithAssetPath loads named templates from {path}/templates/{name}.docx,
// falling back to the embedded default.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

func (c *Converter) newHighlighter() *highlight.Highlighter {
	if !c.cfg.highlight {
		return nil
	}
	return highlight.New(c.cfg.highlightStyle)
}
