package assets

// AssetLoader defines the contract for loading document templates.
type AssetLoader interface {
	// LoadTemplate loads a .docx template by name (without .docx extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) ([]byte, error)

	// Names lists the templates the loader can provide, sorted.
	Names() []string
}

// DefaultTemplateName is the name of the built-in template.
const DefaultTemplateName = "default"

// MaxTemplateSize bounds the size of a template file read from disk.
const MaxTemplateSize = 32 << 20
