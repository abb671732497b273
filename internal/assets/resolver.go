package assets

import (
	"errors"
	"sort"
)

// AssetResolver looks templates up in a custom directory first and falls
// back to the embedded templates when a name is not found there.
type AssetResolver struct {
	custom   AssetLoader // nil without a custom base path
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver.
// An empty customBasePath selects the embedded templates only; a non-empty
// one must be a readable directory (ErrInvalidBasePath otherwise).
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if customBasePath == "" {
		return r, nil
	}

	fsLoader, err := NewFilesystemLoader(customBasePath)
	if err != nil {
		return nil, err
	}
	r.custom = fsLoader
	return r, nil
}

// LoadTemplate returns the custom template called name if there is one,
// the embedded one otherwise. Validation and read errors from the custom
// directory are returned as is rather than masked by the fallback.
func (r *AssetResolver) LoadTemplate(name string) ([]byte, error) {
	if r.custom != nil {
		content, err := r.custom.LoadTemplate(name)
		if err == nil || !errors.Is(err, ErrTemplateNotFound) {
			return content, err
		}
	}
	return r.embedded.LoadTemplate(name)
}

// Names lists every template name LoadTemplate accepts, sorted and without
// duplicates.
func (r *AssetResolver) Names() []string {
	seen := make(map[string]bool)
	var names []string
	loaders := []AssetLoader{r.embedded}
	if r.custom != nil {
		loaders = append(loaders, r.custom)
	}
	for _, l := range loaders {
		for _, n := range l.Names() {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
