// Package md2docx converts Markdown documents to Word (.docx) files.
//
// # Quick Start
//
// Create a converter, convert markdown, and close when done:
//
//	conv, err := md2docx.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, md2docx.Input{
//	    Markdown:  "# Hello\n\nWorld",
//	    SourceDir: "/path/to/markdown", // for relative image paths
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.docx", result.DOCX, 0644)
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Source decoding (BOM and charset detection) and line normalization
//  2. Block classification: headers, list items, images, code blocks, paragraphs
//  3. Inline formatting of block text into bold and plain spans
//  4. Image sizing from pixel dimensions and DPI, clamped to the page width
//  5. Fragments appended, in document order, to a Sink
//
// The built-in sink writes into a copy of a .docx template: paragraphs of the
// template body are replaced, while its styles, numbering, tables and page
// setup are kept.
//
// # Supported Markdown
//
// One block per line: ATX and Setext headers, "-", "*" and "+" list items,
// "1." numbered items, standalone "![alt](path)" images, fenced code blocks
// and paragraphs. Inline formatting is limited to **bold**. Block quotes fail
// with ErrUnsupportedElement unless WithQuotationMode(QuotationSkip) is set.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := md2docx.NewConverter(
//	    md2docx.WithTabWidth(2),
//	    md2docx.WithHighlighting("monokai"),
//	    md2docx.WithAssetPath("/path/to/custom/assets"),
//	)
//
// # Custom Sinks
//
// ConvertToSink drives any Sink implementation, which is how other document
// formats, or tests, observe the fragment stream:
//
//	err := conv.ConvertToSink(ctx, md2docx.Input{Markdown: md}, mySink)
//
// # Custom Templates
//
// Named templates are looked up as templates/{name}.docx under the asset
// path; Input.Template may also be a path to a .docx file. Templates must
// define the paragraph styles named by Styles and the list numbering named
// by Numbering; missing styles are reported in ConvertResult.Warnings.
package md2docx
