// Package imageinfo identifies image files and reads their pixel dimensions
// and resolution.
package imageinfo

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// DefaultDPI is assumed when an image carries no resolution.
const DefaultDPI = 96

var (
	// ErrUnrecognizedFormat indicates the image type is neither known from
	// its file extension nor detectable from its content.
	ErrUnrecognizedFormat = errors.New("unrecognized image format")
	// ErrDecode indicates the image header could not be read.
	ErrDecode = errors.New("cannot decode image")
)

// Format describes an image type the document package can embed.
type Format struct {
	Name        string // png, jpeg, gif, bmp, tiff
	Extension   string // file extension used for the stored part, without dot
	ContentType string
	decode      func(r *bytes.Reader) (image.Config, error)
}

var (
	formatPNG  = Format{"png", "png", "image/png", func(r *bytes.Reader) (image.Config, error) { return png.DecodeConfig(r) }}
	formatJPEG = Format{"jpeg", "jpeg", "image/jpeg", func(r *bytes.Reader) (image.Config, error) { return jpeg.DecodeConfig(r) }}
	formatGIF  = Format{"gif", "gif", "image/gif", func(r *bytes.Reader) (image.Config, error) { return gif.DecodeConfig(r) }}
	formatBMP  = Format{"bmp", "bmp", "image/bmp", func(r *bytes.Reader) (image.Config, error) { return bmp.DecodeConfig(r) }}
	formatTIFF = Format{"tiff", "tiff", "image/tiff", func(r *bytes.Reader) (image.Config, error) { return tiff.DecodeConfig(r) }}
)

var byExtension = map[string]Format{
	".png":  formatPNG,
	".jpg":  formatJPEG,
	".jpeg": formatJPEG,
	".gif":  formatGIF,
	".bmp":  formatBMP,
	".tif":  formatTIFF,
	".tiff": formatTIFF,
}

var byMIME = map[string]Format{
	"image/png":  formatPNG,
	"image/jpeg": formatJPEG,
	"image/gif":  formatGIF,
	"image/bmp":  formatBMP,
	"image/tiff": formatTIFF,
}

// Info is what the converter needs to know about an image.
type Info struct {
	Format Format
	Width  int // pixels
	Height int // pixels
	DPIX   float64
	DPIY   float64
}

// Probe identifies data, named by name (a path or URL), and reads its
// dimensions and resolution. defaultDPI is used when the file carries no
// resolution; a non-positive value selects DefaultDPI.
func Probe(name string, data []byte, defaultDPI float64) (*Info, error) {
	format, err := Detect(name, data)
	if err != nil {
		return nil, err
	}

	cfg, err := format.decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s as %s: %v", ErrDecode, name, format.Name, err)
	}

	if defaultDPI <= 0 {
		defaultDPI = DefaultDPI
	}
	dpiX, dpiY := resolution(format, data)
	if dpiX <= 0 || dpiY <= 0 {
		dpiX, dpiY = defaultDPI, defaultDPI
	}

	return &Info{
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
		DPIX:   dpiX,
		DPIY:   dpiY,
	}, nil
}

// Detect returns the format named by the extension of name, or failing that
// the format sniffed from data.
func Detect(name string, data []byte) (Format, error) {
	if f, ok := byExtension[extension(name)]; ok {
		return f, nil
	}

	mt := mimetype.Detect(data)
	for m := mt; m != nil; m = m.Parent() {
		if f, ok := byMIME[m.String()]; ok {
			return f, nil
		}
	}
	return Format{}, fmt.Errorf("%w: %s (detected %s)", ErrUnrecognizedFormat, name, mt.String())
}

// extension returns the lowercased extension of a path or URL, ignoring
// any query string or fragment.
func extension(name string) string {
	if i := strings.IndexAny(name, "?#"); i >= 0 && strings.Contains(name, "://") {
		name = name[:i]
	}
	return strings.ToLower(path.Ext(strings.ReplaceAll(name, `\`, "/")))
}
