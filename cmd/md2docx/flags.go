package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrInvalidFlag wraps flag parsing failures.
var ErrInvalidFlag = errors.New("invalid flag")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// templateFlags selects the reference document.
type templateFlags struct {
	template  string // Name or .docx path
	assetPath string // Override template directory
}

// markdownFlags tunes how sources are read.
type markdownFlags struct {
	tabWidth    int
	iconMarkers []string
	quotes      string
}

// codeFlags controls syntax colouring.
type codeFlags struct {
	highlight bool
	style     string
}

// imageFlags controls image loading.
type imageFlags struct {
	allowRemote bool
	defaultDPI  float64
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common   commonFlags
	output   string
	template templateFlags
	markdown markdownFlags
	code     codeFlags
	images   imageFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timing and warnings")
}

// addTemplateFlags adds template flags to a FlagSet.
func addTemplateFlags(fs *flag.FlagSet, f *templateFlags) {
	fs.StringVarP(&f.template, "template", "t", "", "template name or .docx path")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory holding templates/{name}.docx")
}

// addMarkdownFlags adds source reading flags to a FlagSet.
func addMarkdownFlags(fs *flag.FlagSet, f *markdownFlags) {
	fs.IntVar(&f.tabWidth, "tab-width", 0, "spaces per tab (1-16, default: 4)")
	fs.StringArrayVar(&f.iconMarkers, "icon-marker", nil, "shortcode stripped from text (repeatable)")
	fs.StringVar(&f.quotes, "quotes", "", "block quote handling: error, skip")
}

// addCodeFlags adds syntax colouring flags to a FlagSet.
func addCodeFlags(fs *flag.FlagSet, f *codeFlags) {
	fs.BoolVar(&f.highlight, "highlight", false, "colour fenced code blocks")
	fs.StringVar(&f.style, "highlight-style", "", "chroma style name (implies --highlight)")
}

// addImageFlags adds image flags to a FlagSet.
func addImageFlags(fs *flag.FlagSet, f *imageFlags) {
	fs.BoolVar(&f.allowRemote, "allow-remote-images", false, "fetch http(s) images")
	fs.Float64Var(&f.defaultDPI, "dpi", 0, "resolution for images without one (default: 96)")
}

// parseConvertFlags parses convert command flags and returns positional args.
// pflag.ErrHelp is returned unwrapped so callers can print usage.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")

	addCommonFlags(fs, &f.common)
	addTemplateFlags(fs, &f.template)
	addMarkdownFlags(fs, &f.markdown)
	addCodeFlags(fs, &f.code)
	addImageFlags(fs, &f.images)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFlag, err)
	}

	return f, fs.Args(), nil
}

// parseCommonFlags parses the flags shared by check and config.
func parseCommonFlags(name string, args []string) (*commonFlags, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	f := &commonFlags{}

	addCommonFlags(fs, f)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFlag, err)
	}

	return f, fs.Args(), nil
}
