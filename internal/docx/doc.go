// Package docx edits WordprocessingML packages.
//
// A Document is opened on a template .docx. Opening removes every top-level
// paragraph from the template body while keeping tables, section properties
// and every other part of the package (styles, numbering, headers, footers).
// New paragraphs, list items, code lines and inline pictures are then appended
// in order and the package is written back out with WriteTo.
//
// Output is deterministic: identical templates and identical sequences of
// calls produce byte-identical packages.
package docx
