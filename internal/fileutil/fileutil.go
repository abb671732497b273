// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DocxExtension is the extension of generated documents.
const DocxExtension = ".docx"

// Sentinel errors for file utility operations.
var (
	ErrEmptyPath    = errors.New("path cannot be empty")
	ErrNotMarkdown  = errors.New("file must have .md or .markdown extension")
	ErrDirectoryArg = errors.New("path is a directory")
)

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "corporate" -> false (name)
//   - "./letter.docx" -> true (relative path)
//   - "C:\templates\a.docx" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string looks like a URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// IsMarkdown reports whether path has a .md or .markdown extension.
func IsMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// OutputPathFor returns where the document generated from inputPath goes.
// With no outputDir it sits next to the input. An outputDir ending in .docx
// is used as is. When baseInputDir is set, the input's directory layout
// below it is mirrored under outputDir.
func OutputPathFor(inputPath, outputDir, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+DocxExtension)
	}

	if strings.EqualFold(filepath.Ext(outputDir), DocxExtension) {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil && !strings.HasPrefix(relPath, "..") {
			return filepath.Join(outputDir, filepath.Dir(relPath), base+DocxExtension)
		}
	}

	return filepath.Join(outputDir, base+DocxExtension)
}

// WriteFileAtomic writes data to a temporary file in the target directory
// and renames it over path. On failure the target is left untouched and the
// temporary file is removed.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	if path == "" {
		return ErrEmptyPath
	}
	if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
		return fmt.Errorf("%w: %s", ErrDirectoryArg, path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, writeErr := tmpFile.Write(data); writeErr != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("writing temp file: %w", writeErr)
	}
	if syncErr := tmpFile.Sync(); syncErr != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("syncing temp file: %w", syncErr)
	}
	if closeErr := tmpFile.Close(); closeErr != nil {
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if chmodErr := os.Chmod(tmpPath, perm); chmodErr != nil {
		return fmt.Errorf("setting permissions: %w", chmodErr)
	}
	if renameErr := os.Rename(tmpPath, path); renameErr != nil {
		return fmt.Errorf("replacing %s: %w", path, renameErr)
	}
	return nil
}
