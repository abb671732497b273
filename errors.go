package md2docx

import (
	"errors"
	"fmt"

	"github.com/alnah/go-md2docx/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")

	// Document content errors.
	ErrUnsupportedElement       = errors.New("unsupported element")
	ErrUnrecognizedResourceType = errors.New("unrecognized resource type")
	ErrMalformedReference       = pipeline.ErrMalformedReference
	ErrImageLoad                = errors.New("failed to load image")
	ErrRemoteImageDisabled      = errors.New("remote images are disabled")

	// Template errors.
	ErrTemplateNotFound = errors.New("template not found")
	ErrTemplateInvalid  = errors.New("invalid template")
	ErrInvalidAssetPath = errors.New("invalid asset path")

	// Option validation errors.
	ErrInvalidTabWidth      = errors.New("invalid tab width")
	ErrInvalidQuotationMode = errors.New("invalid quotation mode")
	ErrInvalidDPI           = errors.New("invalid default DPI")
)

// UnsupportedElementError reports a block the converter cannot render.
// It matches ErrUnsupportedElement with errors.Is.
type UnsupportedElementError struct {
	Kind string // block kind, e.g. "quotation"
	Text string // block text, may be empty
}

func (e *UnsupportedElementError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("%v: %s", ErrUnsupportedElement, e.Kind)
	}
	return fmt.Sprintf("%v: %s %q", ErrUnsupportedElement, e.Kind, e.Text)
}

func (e *UnsupportedElementError) Unwrap() error {
	return ErrUnsupportedElement
}
