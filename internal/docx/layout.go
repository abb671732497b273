package docx

import (
	"bytes"
	"encoding/xml"
	"strconv"
)

// US Letter with one inch margins, in twips.
const (
	DefaultPageWidth = 12240
	DefaultMargin    = 1440
)

// PageLayout holds the horizontal page geometry of a section, in twips.
type PageLayout struct {
	Width       int64
	LeftMargin  int64
	RightMargin int64
}

// DefaultPageLayout returns US Letter with one inch margins.
func DefaultPageLayout() PageLayout {
	return PageLayout{
		Width:       DefaultPageWidth,
		LeftMargin:  DefaultMargin,
		RightMargin: DefaultMargin,
	}
}

// valid reports whether the margins are non-negative and leave room for text.
func (l PageLayout) valid() bool {
	return l.LeftMargin >= 0 && l.RightMargin >= 0 && l.Width-l.LeftMargin-l.RightMargin > 0
}

// parsePageLayout reads w:pgSz and w:pgMar from a w:sectPr element.
// Missing or unparsable values keep their defaults. A layout with negative
// margins or no room between them is replaced by DefaultPageLayout.
func parsePageLayout(sectPr []byte) PageLayout {
	layout := DefaultPageLayout()
	if len(sectPr) == 0 {
		return layout
	}

	dec := xml.NewDecoder(bytes.NewReader(sectPr))
	for {
		tok, err := dec.RawToken()
		if err != nil {
			if !layout.valid() {
				return DefaultPageLayout()
			}
			return layout
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "pgSz":
			setTwips(&layout.Width, se.Attr, "w")
		case "pgMar":
			setTwips(&layout.LeftMargin, se.Attr, "left")
			setTwips(&layout.RightMargin, se.Attr, "right")
		}
	}
}

func setTwips(dst *int64, attrs []xml.Attr, local string) {
	for _, a := range attrs {
		if a.Name.Local != local {
			continue
		}
		if v, err := strconv.ParseInt(a.Value, 10, 64); err == nil {
			*dst = v
		}
		return
	}
}

// parseStyleIDs collects the w:styleId of every w:style in a styles part.
func parseStyleIDs(stylesXML []byte) map[string]bool {
	ids := make(map[string]bool)
	dec := xml.NewDecoder(bytes.NewReader(stylesXML))
	for {
		tok, err := dec.RawToken()
		if err != nil {
			return ids
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "style" {
			continue
		}
		for _, a := range se.Attr {
			if a.Name.Local == "styleId" {
				ids[a.Value] = true
			}
		}
	}
}
