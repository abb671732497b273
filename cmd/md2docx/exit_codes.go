package main

import (
	"errors"
	"os"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
	"github.com/alnah/go-md2docx/internal/fileutil"
)

// Exit codes for md2docx CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitContent = 4 // Markdown or template the converter cannot render
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Document content errors (exit 4)
	if errors.Is(err, md2docx.ErrUnsupportedElement) ||
		errors.Is(err, md2docx.ErrUnrecognizedResourceType) ||
		errors.Is(err, md2docx.ErrMalformedReference) ||
		errors.Is(err, md2docx.ErrImageLoad) ||
		errors.Is(err, md2docx.ErrRemoteImageDisabled) ||
		errors.Is(err, md2docx.ErrTemplateInvalid) ||
		errors.Is(err, ErrUnsupportedContent) {
		return ExitContent
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrInvalidFlag) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, fileutil.ErrNotMarkdown) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, md2docx.ErrEmptyMarkdown) ||
		errors.Is(err, md2docx.ErrInvalidTabWidth) ||
		errors.Is(err, md2docx.ErrInvalidQuotationMode) ||
		errors.Is(err, md2docx.ErrInvalidDPI) ||
		errors.Is(err, md2docx.ErrTemplateNotFound) ||
		errors.Is(err, md2docx.ErrInvalidAssetPath) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteDocx) {
		return ExitIO
	}

	return ExitGeneral
}
