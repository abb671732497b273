package md2docx

import (
	"errors"

	"github.com/alnah/go-md2docx/internal/assets"
)

// DefaultTemplate is the name of the built-in template.
const DefaultTemplate = assets.DefaultTemplateName

// TemplateLoader defines the contract for loading .docx templates.
// Implementations may load from filesystem, embedded assets, S3, database, etc.
//
// The library provides NewTemplateLoader() for filesystem-based loading with
// fallback to the embedded default. Implement this interface for custom backends.
type TemplateLoader interface {
	// LoadTemplate loads a template package by name (without .docx extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) ([]byte, error)
}

// TemplateLister is implemented by loaders that can enumerate their templates.
// Loaders returned by NewTemplateLoader implement it.
type TemplateLister interface {
	Names() []string
}

// NewTemplateLoader creates a TemplateLoader for the given base path.
// If basePath is empty, returns a loader using only the embedded template.
// If basePath is set, templates/{name}.docx under it takes precedence with
// fallback to embedded.
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable directory.
func NewTemplateLoader(basePath string) (TemplateLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &templateLoaderAdapter{resolver: resolver}, nil
}

// templateLoaderAdapter wraps internal AssetResolver to return public errors.
type templateLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *templateLoaderAdapter) LoadTemplate(name string) ([]byte, error) {
	content, err := a.resolver.LoadTemplate(name)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return content, nil
}

// Names lists the embedded and custom template names.
func (a *templateLoaderAdapter) Names() []string {
	return a.resolver.Names()
}

// resolveTemplate loads a template argument: a path is read directly,
// anything else goes through loader. Empty selects DefaultTemplate.
func resolveTemplate(loader TemplateLoader, arg string) ([]byte, error) {
	switch {
	case arg == "":
		return loader.LoadTemplate(DefaultTemplate)
	case assets.IsTemplatePath(arg):
		content, err := assets.ReadTemplateFile(arg)
		if err != nil {
			return nil, convertAssetError(err)
		}
		return content, nil
	default:
		return loader.LoadTemplate(arg)
	}
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrTemplateNotFound):
		return wrapError(ErrTemplateNotFound, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrTemplateNotFound, err) // Invalid name means not found
	case errors.Is(err, assets.ErrTemplateTooLarge):
		return wrapError(ErrTemplateInvalid, err)
	case errors.Is(err, assets.ErrInvalidBasePath), errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	default:
		return err
	}
}

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error preserves the original message via Error() and supports
// errors.Is() matching against the public sentinel via Unwrap().
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
// Internal errors are not exposed since they're in internal/ packages.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
