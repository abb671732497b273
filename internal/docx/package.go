package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
)

// Namespaces used by the parts this package reads or writes.
const (
	nsWordprocessing = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsDrawingWP      = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsDrawingML      = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPicture        = "http://schemas.openxmlformats.org/drawingml/2006/picture"
	nsRelDoc         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	relTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeImage          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	relTypeStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
)

const (
	contentTypesPart    = "[Content_Types].xml"
	packageRelsPart     = "_rels/.rels"
	defaultDocumentPart = "word/document.xml"
	xmlHeader           = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
)

// relationship is one entry of a .rels part.
type relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

type relationships struct {
	XMLName xml.Name       `xml:"http://schemas.openxmlformats.org/package/2006/relationships Relationships"`
	Items   []relationship `xml:"Relationship"`
}

type contentTypeDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type contentTypeOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type contentTypes struct {
	XMLName   xml.Name              `xml:"http://schemas.openxmlformats.org/package/2006/content-types Types"`
	Defaults  []contentTypeDefault  `xml:"Default"`
	Overrides []contentTypeOverride `xml:"Override"`
}

// part is one file of the package, kept in archive order.
type part struct {
	name string
	data []byte
}

// readParts loads every file of a zip archive into memory.
func readParts(data []byte) ([]*part, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}

	parts := make([]*part, 0, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: opening %s: %v", ErrInvalidTemplate, f.Name, err)
		}
		b, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrInvalidTemplate, f.Name, err)
		}
		parts = append(parts, &part{name: f.Name, data: b})
	}
	return parts, nil
}

func decodeRelationships(data []byte) (*relationships, error) {
	var rels relationships
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, fmt.Errorf("decode relationships: %w", err)
	}
	return &rels, nil
}

func (r *relationships) encode() ([]byte, error) {
	out, err := xml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode relationships: %w", err)
	}
	return append([]byte(xmlHeader), out...), nil
}

// nextID returns "rId<n>" where n is one above the highest numeric rId.
// IDs that do not follow the rId<n> form are ignored.
func (r *relationships) nextID() string {
	highest := 0
	for _, rel := range r.Items {
		n, err := strconv.Atoi(strings.TrimPrefix(rel.ID, "rId"))
		if err == nil && strings.HasPrefix(rel.ID, "rId") && n > highest {
			highest = n
		}
	}
	return "rId" + strconv.Itoa(highest+1)
}

func (r *relationships) targetOf(relType string) (string, bool) {
	for _, rel := range r.Items {
		if rel.Type == relType {
			return rel.Target, true
		}
	}
	return "", false
}

func decodeContentTypes(data []byte) (*contentTypes, error) {
	var ct contentTypes
	if err := xml.Unmarshal(data, &ct); err != nil {
		return nil, fmt.Errorf("decode content types: %w", err)
	}
	return &ct, nil
}

func (c *contentTypes) encode() ([]byte, error) {
	out, err := xml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode content types: %w", err)
	}
	return append([]byte(xmlHeader), out...), nil
}

// ensureDefault registers contentType for ext unless an entry exists.
// It reports whether the set changed.
func (c *contentTypes) ensureDefault(ext, contentType string) bool {
	for _, d := range c.Defaults {
		if strings.EqualFold(d.Extension, ext) {
			return false
		}
	}
	c.Defaults = append(c.Defaults, contentTypeDefault{Extension: ext, ContentType: contentType})
	return true
}

// relsPathFor returns the .rels part name for a given part.
func relsPathFor(partName string) string {
	dir := path.Dir(partName)
	base := path.Base(partName)
	if dir == "." {
		return "_rels/" + base + ".rels"
	}
	return dir + "/_rels/" + base + ".rels"
}

// resolveTarget resolves a relationship target against the source part.
func resolveTarget(sourcePart, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(path.Dir(sourcePart), target)
}
