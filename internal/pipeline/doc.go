// Package pipeline implements the Markdown front end of the DOCX conversion.
//
// The stages run strictly in order and never read back from a later stage:
//   - line splitting and normalization (tab expansion, blank-line canonicalization)
//   - block classification with one line of lookahead (Setext headers)
//   - inline formatting of block text into bold and plain spans
//
// Rendering the resulting blocks into a document is handled by the root
// md2docx package, which owns the document sink and image geometry.
package pipeline
