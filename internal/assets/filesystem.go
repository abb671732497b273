package assets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FilesystemLoader loads templates from a directory on the filesystem.
// Implements AssetLoader interface.
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader creates a FilesystemLoader for the given base path.
// Returns ErrInvalidBasePath if the path is not a valid, readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	// Containment checks compare real paths, so the base must be real too.
	if realPath, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = realPath
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}
	if _, err := os.ReadDir(absPath); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{basePath: absPath}, nil
}

// LoadTemplate loads {basePath}/templates/{name}.docx.
func (f *FilesystemLoader) LoadTemplate(name string) ([]byte, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	filePath := filepath.Join(f.basePath, "templates", name+".docx")
	if err := f.verifyPathContainment(filePath); err != nil {
		return nil, err
	}

	content, err := readLimited(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
		}
		return nil, err
	}
	return content, nil
}

// Names lists the valid template names found in {basePath}/templates.
// An unreadable or missing templates directory yields no names.
func (f *FilesystemLoader) Names() []string {
	entries, err := os.ReadDir(filepath.Join(f.basePath, "templates"))
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		name, ok := strings.CutSuffix(entry.Name(), ".docx")
		if !ok || entry.IsDir() || ValidateAssetName(name) != nil {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// verifyPathContainment ensures the resolved file path is within basePath,
// following symlinks so a link cannot point outside it.
func (f *FilesystemLoader) verifyPathContainment(filePath string) error {
	absFilePath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}

	absFilePath = resolveExisting(absFilePath)

	// Trailing separator prevents /base/path matching /base/pathevil.
	if !strings.HasPrefix(absFilePath, f.basePath+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}

	return nil
}

// resolveExisting evaluates symlinks in the longest existing prefix of p.
// A missing file still resolves its directory, so it compares equal to a
// resolved basePath.
func resolveExisting(p string) string {
	if realPath, err := filepath.EvalSymlinks(p); err == nil {
		return realPath
	}
	parent := filepath.Dir(p)
	if parent == p {
		return p
	}
	return filepath.Join(resolveExisting(parent), filepath.Base(p))
}

// ReadTemplateFile reads a template given by path rather than by name.
// The file must carry a .docx extension.
func ReadTemplateFile(path string) ([]byte, error) {
	if !strings.EqualFold(filepath.Ext(path), ".docx") {
		return nil, fmt.Errorf("%w: %q is not a .docx file", ErrInvalidAssetName, path)
	}
	content, err := readLimited(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
		}
		return nil, err
	}
	return content, nil
}

// readLimited reads a file of at most MaxTemplateSize bytes.
// Not-exist errors are returned unwrapped for os.IsNotExist.
func readLimited(path string) ([]byte, error) {
	file, err := os.Open(path) // #nosec G304 -- path validated by caller
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(io.LimitReader(file, MaxTemplateSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	if len(content) > MaxTemplateSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTemplateTooLarge, path, MaxTemplateSize)
	}
	return content, nil
}

// IsTemplatePath reports whether a template argument names a file rather
// than a template: it contains a path separator or ends in .docx.
func IsTemplatePath(arg string) bool {
	return strings.ContainsAny(arg, `/\`) || strings.EqualFold(filepath.Ext(arg), ".docx")
}

// Compile-time interface check.
var _ AssetLoader = (*FilesystemLoader)(nil)
