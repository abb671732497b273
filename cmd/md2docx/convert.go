package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
	"github.com/alnah/go-md2docx/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput      = errors.New("no input specified")
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWriteDocx    = errors.New("failed to write DOCX file")
)

// hintedError attaches a hint that needs context only the failing call
// site has, such as the paths searched for a config.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string { return e.err.Error() }
func (e *hintedError) Unwrap() error { return e.err }

// runConvertCmd parses convert flags and runs the conversion.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printConvertUsage(env.Stdout)
		return nil
	}
	if err != nil {
		return err
	}
	return runConvert(ctx, positional, flags, env)
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr, env.Environ())
	}

	cfg, err := loadConfig(flags.common.config, loadEnvSettings(env.Getenv))
	if err != nil {
		return err
	}

	// Merge CLI flags into config (CLI wins)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		printConvertUsage(env.Stderr)
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, inputPath)
	}

	opts, err := converterOptions(cfg)
	if err != nil {
		return err
	}
	conv, err := md2docx.NewConverter(opts...)
	if err != nil {
		return err
	}
	defer conv.Close()

	// One template serves the whole batch.
	template, err := conv.LoadTemplate(cfg.Template.Name)
	if err != nil {
		if errors.Is(err, md2docx.ErrTemplateNotFound) {
			err = &hintedError{err: err, hint: hints.ForTemplateNotFound(conv.TemplateNames())}
		}
		return fmt.Errorf("loading template: %w", err)
	}

	results := convertFiles(ctx, conv, files, batchOptions{
		template: template,
		audit:    flags.common.verbose,
	}, env)

	if failed := printResults(results, flags.common.quiet, flags.common.verbose, env); failed > 0 {
		return newBatchError(results, failed)
	}
	return nil
}

// loadConfig loads the named config (flag first, then MD2DOCX_CONFIG) or the
// defaults, and fills empty fields from the environment.
func loadConfig(name string, env *envSettings) (*config.Config, error) {
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				err = &hintedError{err: err, hint: hints.ForConfigNotFound(config.SearchPaths(name))}
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvSettings(env, cfg)
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	// Template flags
	if flags.template.template != "" {
		cfg.Template.Name = flags.template.template
	}
	if flags.template.assetPath != "" {
		cfg.Template.BasePath = flags.template.assetPath
	}

	// Markdown flags
	if flags.markdown.tabWidth != 0 {
		cfg.Markdown.TabWidth = flags.markdown.tabWidth
	}
	if len(flags.markdown.iconMarkers) > 0 {
		cfg.Markdown.IconMarkers = flags.markdown.iconMarkers
	}
	if flags.markdown.quotes != "" {
		cfg.Markdown.Quotations = flags.markdown.quotes
	}

	// Code flags
	if flags.code.highlight {
		cfg.Code.Highlight = true
	}
	if flags.code.style != "" {
		cfg.Code.Highlight = true
		cfg.Code.Style = flags.code.style
	}

	// Image flags
	if flags.images.allowRemote {
		cfg.Images.AllowRemote = true
	}
	if flags.images.defaultDPI != 0 {
		cfg.Images.DefaultDPI = flags.images.defaultDPI
	}
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// converterOptions translates a validated config into converter options.
// Zero values leave the converter default in place.
func converterOptions(cfg *config.Config) ([]md2docx.Option, error) {
	quotes, err := md2docx.ParseQuotationMode(cfg.Markdown.Quotations)
	if err != nil {
		return nil, err
	}

	opts := []md2docx.Option{
		md2docx.WithQuotationMode(quotes),
		md2docx.WithAssetPath(cfg.Template.BasePath),
		md2docx.WithStyles(md2docx.Styles{
			Paragraph:     cfg.Styles.Paragraph,
			HeadingPrefix: cfg.Styles.HeadingPrefix,
			ListItem:      cfg.Styles.ListItem,
			Code:          cfg.Styles.Code,
			Figure:        cfg.Styles.Figure,
		}),
		md2docx.WithNumbering(md2docx.Numbering{
			Bulleted: cfg.Numbering.Bulleted,
			Numbered: cfg.Numbering.Numbered,
		}),
	}

	if cfg.Markdown.TabWidth != 0 {
		opts = append(opts, md2docx.WithTabWidth(cfg.Markdown.TabWidth))
	}
	if cfg.Markdown.IconMarkers != nil {
		opts = append(opts, md2docx.WithIconMarkers(cfg.Markdown.IconMarkers...))
	}
	if cfg.Code.Highlight {
		opts = append(opts, md2docx.WithHighlighting(cfg.Code.Style))
	}
	if cfg.Images.DefaultDPI != 0 {
		opts = append(opts, md2docx.WithDefaultDPI(cfg.Images.DefaultDPI))
	}
	if cfg.Images.AllowRemote {
		opts = append(opts, md2docx.WithRemoteImages(nil))
	}

	return opts, nil
}
