package assets

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadTemplate loads a template by name using the default embedded loader.
// Returns ErrTemplateNotFound if the template does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadTemplate(name string) ([]byte, error) {
	return defaultLoader.LoadTemplate(name)
}

// DefaultTemplate returns the built-in template package.
func DefaultTemplate() ([]byte, error) {
	return defaultLoader.LoadTemplate(DefaultTemplateName)
}
