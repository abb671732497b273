package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/audit"
	"github.com/alnah/go-md2docx/internal/fileutil"
)

// filePermissions is rw-r--r--: documents are meant to be shared.
const filePermissions = 0o644

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input md2docx.Input) (*md2docx.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*md2docx.Converter)(nil)

// batchOptions holds settings shared by every file in a batch.
type batchOptions struct {
	template []byte // loaded once for the batch
	audit    bool   // list constructs rendered as plain text
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Charset    string
	Warnings   []string
	Findings   []audit.Finding
	Err        error
	Duration   time.Duration
}

// convertFiles converts files one at a time, stopping early when ctx is canceled.
// Files not reached are reported with the context error.
func convertFiles(ctx context.Context, conv CLIConverter, files []FileToConvert, opts batchOptions, env *Environment) []ConversionResult {
	results := make([]ConversionResult, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			results = append(results, ConversionResult{InputPath: f.InputPath, OutputPath: f.OutputPath, Err: err})
			continue
		}
		results = append(results, convertFile(ctx, conv, f, opts, env.Now))
	}
	return results
}

// convertFile processes a single file and returns the result.
// The output is written atomically, so a failed conversion leaves no file behind.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, opts batchOptions, now func() time.Time) ConversionResult {
	start := now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		result.Duration = now().Sub(start)
		return result
	}

	if opts.audit {
		result.Findings = audit.Scan(content)
	}

	convResult, err := conv.Convert(ctx, md2docx.Input{
		Source:       content,
		SourceDir:    filepath.Dir(f.InputPath),
		TemplateData: opts.template,
		Name:         filepath.Base(f.InputPath),
	})
	if err != nil {
		result.Err = err
		result.Duration = now().Sub(start)
		return result
	}
	result.Charset = convResult.Charset
	result.Warnings = convResult.Warnings

	if err := fileutil.WriteFileAtomic(f.OutputPath, convResult.DOCX, filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWriteDocx, err)
	}

	result.Duration = now().Sub(start)
	return result
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs conversion results and returns the failure count.
// Template warnings and audit findings are shown in verbose mode only.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err))
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v, %s)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond), r.Charset)
			for _, w := range r.Warnings {
				fmt.Fprintf(env.Stderr, "warning: %s: %s\n", r.InputPath, w)
			}
			for _, f := range r.Findings {
				fmt.Fprintf(env.Stderr, "warning: %s:%d: %s: %s\n", r.InputPath, f.Line, f.Kind, f.Detail())
			}
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}

// batchError reports failed conversions. It unwraps to the first failure so
// the exit code reflects its kind.
type batchError struct {
	failed int
	first  error
}

func newBatchError(results []ConversionResult, failed int) *batchError {
	e := &batchError{failed: failed}
	for _, r := range results {
		if r.Err != nil {
			e.first = r.Err
			break
		}
	}
	return e
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d conversion(s) failed", e.failed)
}

func (e *batchError) Unwrap() error { return e.first }
