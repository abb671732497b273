package docx

import (
	"bytes"
	"encoding/xml"
	"strconv"
)

// Run is a span of text sharing one set of character properties.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	// Color is an RRGGBB hex value; empty keeps the style's color.
	Color string
	// Preserve keeps leading and trailing whitespace in Text.
	Preserve bool
}

// Drawing describes an inline picture.
type Drawing struct {
	RelID       string
	Width       int64 // EMU
	Height      int64 // EMU
	Name        string
	Description string
	Style       string
}

// AppendParagraph appends a paragraph with an optional paragraph style.
func (d *Document) AppendParagraph(style string, runs []Run) {
	d.openParagraph(style, 0, false)
	d.writeRuns(runs)
	d.closeParagraph()
}

// AppendListItem appends a first-level list paragraph bound to the numbering
// definition numID.
func (d *Document) AppendListItem(style string, numID int, runs []Run) {
	d.openParagraph(style, numID, true)
	d.writeRuns(runs)
	d.closeParagraph()
}

// AppendCodeLine appends one line of code. Every run keeps its whitespace.
func (d *Document) AppendCodeLine(style string, runs []Run) {
	d.openParagraph(style, 0, false)
	if len(runs) == 0 {
		runs = []Run{{}}
	}
	for _, r := range runs {
		r.Preserve = true
		d.writeRun(r)
	}
	d.closeParagraph()
}

// AppendImage appends a paragraph holding a single inline picture.
func (d *Document) AppendImage(img Drawing) {
	id := d.nextDocPrID
	d.nextDocPrID++

	name := img.Name
	if name == "" {
		name = "Picture " + strconv.Itoa(id)
	}
	cx := strconv.FormatInt(img.Width, 10)
	cy := strconv.FormatInt(img.Height, 10)

	d.openParagraph(img.Style, 0, false)
	b := &d.body
	b.WriteString(`<w:r><w:drawing>`)
	b.WriteString(`<wp:inline distT="0" distB="0" distL="0" distR="0" xmlns:wp="` + nsDrawingWP + `">`)
	b.WriteString(`<wp:extent cx="` + cx + `" cy="` + cy + `"/>`)
	b.WriteString(`<wp:effectExtent l="0" t="0" r="0" b="0"/>`)
	b.WriteString(`<wp:docPr id="` + strconv.Itoa(id) + `" name="` + escape(name) + `" descr="` + escape(img.Description) + `"/>`)
	b.WriteString(`<wp:cNvGraphicFramePr><a:graphicFrameLocks xmlns:a="` + nsDrawingML + `" noChangeAspect="1"/></wp:cNvGraphicFramePr>`)
	b.WriteString(`<a:graphic xmlns:a="` + nsDrawingML + `"><a:graphicData uri="` + nsPicture + `">`)
	b.WriteString(`<pic:pic xmlns:pic="` + nsPicture + `">`)
	b.WriteString(`<pic:nvPicPr><pic:cNvPr id="0" name="` + escape(name) + `"/><pic:cNvPicPr/></pic:nvPicPr>`)
	b.WriteString(`<pic:blipFill><a:blip xmlns:r="` + nsRelDoc + `" r:embed="` + escape(img.RelID) + `"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`)
	b.WriteString(`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="` + cx + `" cy="` + cy + `"/></a:xfrm>`)
	b.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`)
	b.WriteString(`</pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r>`)
	d.closeParagraph()
}

func (d *Document) openParagraph(style string, numID int, list bool) {
	b := &d.body
	b.WriteString("<w:p>")
	if style == "" && !list {
		return
	}
	b.WriteString("<w:pPr>")
	if style != "" {
		b.WriteString(`<w:pStyle w:val="` + escape(style) + `"/>`)
	}
	if list {
		b.WriteString(`<w:numPr><w:ilvl w:val="0"/><w:numId w:val="` + strconv.Itoa(numID) + `"/></w:numPr>`)
	}
	b.WriteString("</w:pPr>")
}

func (d *Document) closeParagraph() {
	d.body.WriteString("</w:p>")
	d.paragraphs++
}

func (d *Document) writeRuns(runs []Run) {
	for _, r := range runs {
		d.writeRun(r)
	}
}

func (d *Document) writeRun(r Run) {
	b := &d.body
	b.WriteString("<w:r>")
	if r.Bold || r.Italic || r.Color != "" {
		b.WriteString("<w:rPr>")
		if r.Bold {
			b.WriteString("<w:b/>")
		}
		if r.Italic {
			b.WriteString("<w:i/>")
		}
		if r.Color != "" {
			b.WriteString(`<w:color w:val="` + escape(r.Color) + `"/>`)
		}
		b.WriteString("</w:rPr>")
	}
	if r.Preserve {
		b.WriteString(`<w:t xml:space="preserve">`)
	} else {
		b.WriteString("<w:t>")
	}
	b.WriteString(escape(r.Text))
	b.WriteString("</w:t></w:r>")
}

// escape returns s with XML special characters replaced, suitable for both
// character data and attribute values.
func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
