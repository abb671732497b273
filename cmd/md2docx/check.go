package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/audit"
)

// ErrUnsupportedContent is returned by check when a file would fail to convert.
var ErrUnsupportedContent = errors.New("unsupported markdown content")

// runCheck reports, per file, the blocks that make convert fail and the
// constructs convert renders as plain text.
func runCheck(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseCommonFlags(cmdCheck, args)
	if errors.Is(err, flag.ErrHelp) {
		printCheckUsage(env.Stdout)
		return nil
	}
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags.config, loadEnvSettings(env.Getenv))
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(positional) == 0 && cfg.Input.DefaultDir != "" {
		positional = []string{cfg.Input.DefaultDir}
	}
	if len(positional) == 0 {
		printCheckUsage(env.Stderr)
		return ErrNoInput
	}

	opts, err := converterOptions(cfg)
	if err != nil {
		return err
	}
	conv, err := md2docx.NewConverter(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	rejected := 0
	for _, arg := range positional {
		files, err := discoverFiles(arg, "")
		if err != nil {
			return fmt.Errorf("discovering files: %w", err)
		}
		for _, f := range files {
			n, err := checkFile(ctx, conv, f.InputPath, flags.quiet, env)
			if err != nil {
				return err
			}
			rejected += n
		}
	}

	if rejected > 0 {
		return fmt.Errorf("%w: %d construct(s) would fail conversion", ErrUnsupportedContent, rejected)
	}
	return nil
}

// checkFile prints the problems and findings for one file and returns how
// many problems it has. Problems go to stderr; findings go to stdout unless
// quiet.
func checkFile(ctx context.Context, conv *md2docx.Converter, path string, quiet bool, env *Environment) (int, error) {
	src, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	problems, err := conv.Validate(ctx, md2docx.Input{Source: src, SourceDir: filepath.Dir(path)})
	if errors.Is(err, md2docx.ErrEmptyMarkdown) {
		fmt.Fprintf(env.Stderr, "%s: error: %v\n", path, err)
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	for _, p := range problems {
		fmt.Fprintf(env.Stderr, "%s:%d: error: %v\n", path, p.Line, p.Err)
	}

	findings := audit.Scan(src)
	if !quiet {
		for _, f := range findings {
			fmt.Fprintf(env.Stdout, "%s:%d: %s: %s\n", path, f.Line, f.Kind, f.Detail())
		}
		if len(problems) == 0 && len(findings) == 0 {
			fmt.Fprintf(env.Stdout, "%s: ok\n", path)
		}
	}
	return len(problems), nil
}
