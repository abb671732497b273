package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strconv"
	"time"
)

// zipEpoch is the modification time stamped on every written part.
var zipEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

var docPrIDPattern = regexp.MustCompile(`<wp:docPr\b[^>]*\bid="([0-9]+)"`)

// Document is an editable .docx package.
// A Document is not safe for concurrent use.
type Document struct {
	parts []*part

	documentPart string
	relsPart     string

	// document.xml split around the body content
	head   []byte
	kept   []byte
	sectPr []byte
	tail   []byte
	body   bytes.Buffer

	rels         *relationships
	relsChanged  bool
	types        *contentTypes
	typesChanged bool

	media       []*part
	nextDocPrID int
	paragraphs  int

	layout PageLayout
	styles map[string]bool
}

// Open parses a template package and empties its body of paragraphs.
func Open(template []byte) (*Document, error) {
	parts, err := readParts(template)
	if err != nil {
		return nil, err
	}

	d := &Document{parts: parts}

	ctPart := d.part(contentTypesPart)
	if ctPart == nil {
		return nil, fmt.Errorf("%w: %w: %s", ErrInvalidTemplate, ErrMissingPart, contentTypesPart)
	}
	if d.types, err = decodeContentTypes(ctPart.data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}

	d.documentPart = defaultDocumentPart
	if pkgRels := d.part(packageRelsPart); pkgRels != nil {
		rels, err := decodeRelationships(pkgRels.data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
		}
		if target, ok := rels.targetOf(relTypeOfficeDocument); ok {
			d.documentPart = resolveTarget("", target)
		}
	}

	docPart := d.part(d.documentPart)
	if docPart == nil {
		return nil, fmt.Errorf("%w: %w: %s", ErrInvalidTemplate, ErrMissingPart, d.documentPart)
	}
	if err := d.splitBody(docPart.data); err != nil {
		return nil, err
	}

	d.relsPart = relsPathFor(d.documentPart)
	if relsPart := d.part(d.relsPart); relsPart != nil {
		if d.rels, err = decodeRelationships(relsPart.data); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
		}
	} else {
		d.rels = &relationships{}
		d.relsChanged = true
	}

	d.layout = parsePageLayout(d.sectPr)
	d.nextDocPrID = highestDocPrID(d.kept) + 1

	if stylesTarget, ok := d.rels.targetOf(relTypeStyles); ok {
		if p := d.part(resolveTarget(d.documentPart, stylesTarget)); p != nil {
			d.styles = parseStyleIDs(p.data)
		}
	}

	return d, nil
}

func (d *Document) part(name string) *part {
	for _, p := range d.parts {
		if p.name == name {
			return p
		}
	}
	return nil
}

// splitBody locates the w:body element and sorts its children: paragraphs are
// dropped, the final w:sectPr is held back so appended content lands before
// it, and everything else is kept verbatim.
func (d *Document) splitBody(data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))

	bodyStart := int64(-1)
	var bodyName xml.Name
	for bodyStart < 0 {
		tok, err := dec.RawToken()
		if err != nil {
			return fmt.Errorf("%w: no document body: %v", ErrInvalidTemplate, err)
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "body" {
			bodyStart = dec.InputOffset()
			bodyName = se.Name
		}
	}

	var kept bytes.Buffer
	for {
		start := dec.InputOffset()
		tok, err := dec.RawToken()
		if err != nil {
			return fmt.Errorf("%w: unterminated document body: %v", ErrInvalidTemplate, err)
		}

		switch t := tok.(type) {
		case xml.EndElement:
			// the closing </w:body>
			d.head = append([]byte(nil), data[:bodyStart]...)
			d.kept = kept.Bytes()
			d.tail = append([]byte(nil), data[start:]...)
			if bytes.HasSuffix(d.head, []byte("/>")) {
				// <w:body/> has to be opened up to receive content.
				d.head = append(d.head[:len(d.head)-2], '>')
				d.tail = append([]byte("</"+qualified(bodyName)+">"), d.tail...)
			}
			return nil
		case xml.StartElement:
			if err := skipElement(dec); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
			}
			raw := data[start:dec.InputOffset()]
			switch t.Name.Local {
			case "p":
				// dropped
			case "sectPr":
				d.sectPr = append([]byte(nil), raw...)
			default:
				kept.Write(raw)
			}
		}
	}
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// skipElement consumes tokens up to the end of the element just started.
func skipElement(dec *xml.Decoder) error {
	depth := 1
	for depth > 0 {
		tok, err := dec.RawToken()
		if err != nil {
			return err
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return nil
}

func highestDocPrID(xmlData []byte) int {
	highest := 0
	for _, m := range docPrIDPattern.FindAllSubmatch(xmlData, -1) {
		if n, err := strconv.Atoi(string(m[1])); err == nil && n > highest {
			highest = n
		}
	}
	return highest
}

// PageLayout returns the page width and horizontal margins of the body
// section, in twips.
func (d *Document) PageLayout() PageLayout {
	return d.layout
}

// HasStyle reports whether the template's style part defines styleID.
// It returns true when the template carries no readable style part, since
// nothing can be said about it.
func (d *Document) HasStyle(styleID string) bool {
	if d.styles == nil {
		return true
	}
	return d.styles[styleID]
}

// Paragraphs returns the number of paragraphs appended so far.
func (d *Document) Paragraphs() int {
	return d.paragraphs
}

// AddImage stores an image in the package and returns the relationship ID
// that drawings use to reference it. ext is the file extension without the
// dot, used for both the part name and the content type default.
func (d *Document) AddImage(ext, contentType string, data []byte) (string, error) {
	if ext == "" || contentType == "" {
		return "", errors.New("image extension and content type are required")
	}

	name := d.nextMediaName(ext)
	d.media = append(d.media, &part{name: name, data: data})

	if d.types.ensureDefault(ext, contentType) {
		d.typesChanged = true
	}

	id := d.rels.nextID()
	target, err := relativeTo(d.documentPart, name)
	if err != nil {
		return "", err
	}
	d.rels.Items = append(d.rels.Items, relationship{ID: id, Type: relTypeImage, Target: target})
	d.relsChanged = true

	return id, nil
}

func (d *Document) nextMediaName(ext string) string {
	dir := path.Join(path.Dir(d.documentPart), "media")
	for n := len(d.media) + 1; ; n++ {
		name := fmt.Sprintf("%s/image%d.%s", dir, n, ext)
		if d.part(name) == nil && !d.hasMedia(name) {
			return name
		}
	}
}

func (d *Document) hasMedia(name string) bool {
	for _, m := range d.media {
		if m.name == name {
			return true
		}
	}
	return false
}

// relativeTo expresses target relative to the directory of source.
// Both are package part names; target is always below source's directory.
func relativeTo(source, target string) (string, error) {
	dir := path.Dir(source)
	if dir == "." {
		return target, nil
	}
	prefix := dir + "/"
	if len(target) <= len(prefix) || target[:len(prefix)] != prefix {
		return "", fmt.Errorf("part %s is outside %s", target, dir)
	}
	return target[len(prefix):], nil
}

// WriteTo writes the complete package to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)

	relsWritten := false
	for _, p := range d.parts {
		data := p.data
		switch p.name {
		case d.documentPart:
			data = d.documentXML()
		case contentTypesPart:
			if d.typesChanged {
				b, err := d.types.encode()
				if err != nil {
					return cw.n, err
				}
				data = b
			}
		case d.relsPart:
			relsWritten = true
			if d.relsChanged {
				b, err := d.rels.encode()
				if err != nil {
					return cw.n, err
				}
				data = b
			}
		}
		if err := writePart(zw, p.name, data); err != nil {
			return cw.n, err
		}
	}

	if !relsWritten && len(d.rels.Items) > 0 {
		b, err := d.rels.encode()
		if err != nil {
			return cw.n, err
		}
		if err := writePart(zw, d.relsPart, b); err != nil {
			return cw.n, err
		}
	}

	for _, m := range d.media {
		if err := writePart(zw, m.name, m.data); err != nil {
			return cw.n, err
		}
	}

	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("closing package: %w", err)
	}
	return cw.n, nil
}

func (d *Document) documentXML() []byte {
	var buf bytes.Buffer
	buf.Grow(len(d.head) + len(d.kept) + d.body.Len() + len(d.sectPr) + len(d.tail))
	buf.Write(d.head)
	buf.Write(d.kept)
	buf.Write(d.body.Bytes())
	buf.Write(d.sectPr)
	buf.Write(d.tail)
	return buf.Bytes()
}

func writePart(zw *zip.Writer, name string, data []byte) error {
	fw, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: zipEpoch,
	})
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
