// Package assets provides the .docx templates documents are generated from.
// Templates can be loaded from embedded parts or a custom filesystem path.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - assembles templates from go:embed XML parts
//	    ├── FilesystemLoader  - loads .docx files from a directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader builds the built-in "default" template: US Letter pages,
// heading styles Heading1 to Heading6, ListParagraph, Code and Figure
// paragraph styles, and two numbering definitions (1 for bullets, 2 for
// decimal numbers).
//
// FilesystemLoader allows users to provide their own templates, with path
// traversal protection and symlink resolution.
//
// # Directory Structure
//
//	{basePath}/
//	└── templates/
//	    └── {name}.docx
//
// # Security
//
// Template names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
// Template files larger than MaxTemplateSize are rejected.
package assets
