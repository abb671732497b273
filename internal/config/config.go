package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2docx/internal/fileutil"
	"github.com/alnah/go-md2docx/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength         = 4096 // PATH_MAX on Linux
	MaxTemplateNameLength = 128  // Matches asset name validation
	MaxStyleIDLength      = 253  // Word style ID limit
	MaxIconMarkerLength   = 64   // ":white_check_mark:"
	MaxIconMarkers        = 32
	MaxHighlightStyleLen  = 64 // "github", "monokai"
)

// Range limits.
const (
	MinTabWidth = 1
	MaxTabWidth = 16
	MinDPI      = 1.0
	MaxDPI      = 2400.0
)

// Quotation handling modes.
const (
	QuotationsError = "error"
	QuotationsSkip  = "skip"
)

// Config holds all configuration for document generation.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Template  TemplateConfig  `yaml:"template"`
	Markdown  MarkdownConfig  `yaml:"markdown"`
	Styles    StylesConfig    `yaml:"styles"`
	Numbering NumberingConfig `yaml:"numbering"`
	Code      CodeConfig      `yaml:"code"`
	Images    ImagesConfig    `yaml:"images"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// TemplateConfig selects the reference document the output is built on.
type TemplateConfig struct {
	Name     string `yaml:"name"`     // Template name or path to a .docx (empty = built-in)
	BasePath string `yaml:"basePath"` // Directory holding templates/{name}.docx
}

// MarkdownConfig tunes how the source is read.
type MarkdownConfig struct {
	TabWidth    int      `yaml:"tabWidth"`    // Spaces per tab (default: 4)
	IconMarkers []string `yaml:"iconMarkers"` // Shortcodes stripped from text (nil = defaults)
	Quotations  string   `yaml:"quotations"`  // "error" or "skip" (default: "error")
}

// StylesConfig maps document elements to paragraph style IDs of the template.
type StylesConfig struct {
	Paragraph     string `yaml:"paragraph"`
	HeadingPrefix string `yaml:"headingPrefix"` // Level is appended: "Heading" -> "Heading2"
	ListItem      string `yaml:"listItem"`
	Code          string `yaml:"code"`
	Figure        string `yaml:"figure"`
}

// NumberingConfig holds the numbering definition IDs used for list items.
type NumberingConfig struct {
	Bulleted int `yaml:"bulleted"`
	Numbered int `yaml:"numbered"`
}

// CodeConfig controls syntax colouring of fenced code blocks.
type CodeConfig struct {
	Highlight bool   `yaml:"highlight"`
	Style     string `yaml:"style"` // Chroma style name (default: "github")
}

// ImagesConfig controls image loading.
type ImagesConfig struct {
	DefaultDPI  float64 `yaml:"defaultDPI"`  // Used when the file carries no resolution (default: 96)
	AllowRemote bool    `yaml:"allowRemote"` // Fetch http(s) images
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("template.basePath", c.Template.BasePath, MaxPathLength); err != nil {
		return err
	}
	templateLimit := MaxTemplateNameLength
	if fileutil.IsFilePath(c.Template.Name) {
		templateLimit = MaxPathLength
	}
	if err := validateFieldLength("template.name", c.Template.Name, templateLimit); err != nil {
		return err
	}

	// Markdown
	if c.Markdown.TabWidth != 0 && (c.Markdown.TabWidth < MinTabWidth || c.Markdown.TabWidth > MaxTabWidth) {
		return fmt.Errorf("%w: markdown.tabWidth %d (must be %d-%d)", ErrInvalidValue, c.Markdown.TabWidth, MinTabWidth, MaxTabWidth)
	}
	if len(c.Markdown.IconMarkers) > MaxIconMarkers {
		return fmt.Errorf("%w: markdown.iconMarkers has %d entries (max %d)", ErrInvalidValue, len(c.Markdown.IconMarkers), MaxIconMarkers)
	}
	for i, marker := range c.Markdown.IconMarkers {
		field := fmt.Sprintf("markdown.iconMarkers[%d]", i)
		if marker == "" {
			return fmt.Errorf("%w: %s is empty", ErrInvalidValue, field)
		}
		if err := validateFieldLength(field, marker, MaxIconMarkerLength); err != nil {
			return err
		}
	}
	switch strings.ToLower(c.Markdown.Quotations) {
	case "", QuotationsError, QuotationsSkip:
	default:
		return fmt.Errorf("%w: markdown.quotations %q (must be %s or %s)", ErrInvalidValue, c.Markdown.Quotations, QuotationsError, QuotationsSkip)
	}

	// Styles
	styles := []struct{ field, value string }{
		{"styles.paragraph", c.Styles.Paragraph},
		{"styles.headingPrefix", c.Styles.HeadingPrefix},
		{"styles.listItem", c.Styles.ListItem},
		{"styles.code", c.Styles.Code},
		{"styles.figure", c.Styles.Figure},
	}
	for _, s := range styles {
		if err := validateFieldLength(s.field, s.value, MaxStyleIDLength); err != nil {
			return err
		}
	}

	// Numbering
	if c.Numbering.Bulleted < 0 {
		return fmt.Errorf("%w: numbering.bulleted %d (must be positive)", ErrInvalidValue, c.Numbering.Bulleted)
	}
	if c.Numbering.Numbered < 0 {
		return fmt.Errorf("%w: numbering.numbered %d (must be positive)", ErrInvalidValue, c.Numbering.Numbered)
	}

	// Code
	if err := validateFieldLength("code.style", c.Code.Style, MaxHighlightStyleLen); err != nil {
		return err
	}

	// Images
	if c.Images.DefaultDPI != 0 && (c.Images.DefaultDPI < MinDPI || c.Images.DefaultDPI > MaxDPI) {
		return fmt.Errorf("%w: images.defaultDPI %g (must be %g-%g)", ErrInvalidValue, c.Images.DefaultDPI, MinDPI, MaxDPI)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no config file is given.
func DefaultConfig() *Config {
	return &Config{
		Markdown: MarkdownConfig{
			TabWidth:   4,
			Quotations: QuotationsError,
		},
		Styles: StylesConfig{
			Paragraph:     "Normal",
			HeadingPrefix: "Heading",
			ListItem:      "ListParagraph",
			Code:          "Code",
			Figure:        "Figure",
		},
		Numbering: NumberingConfig{Bulleted: 1, Numbered: 2},
		Code:      CodeConfig{Style: "github"},
		Images:    ImagesConfig{DefaultDPI: 96},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields the file leaves empty keep their DefaultConfig value.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	file, err := os.Open(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	defer func() { _ = file.Close() }()

	cfg := DefaultConfig()
	if err := yamlutil.DecodeStrict(file, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yamlutil.Marshal(c)
}

// SearchPaths lists the files LoadConfig tries for a config name, in order:
// ./name.yaml, ./name.yml, then the same names under the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-md2docx", name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
