package docx

import "errors"

var (
	// ErrInvalidTemplate indicates the template is not a usable .docx package.
	ErrInvalidTemplate = errors.New("invalid docx template")
	// ErrMissingPart indicates a package part required for editing is absent.
	ErrMissingPart = errors.New("missing package part")
)
