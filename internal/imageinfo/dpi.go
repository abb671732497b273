package imageinfo

import (
	"bytes"
	"encoding/binary"
)

const (
	inchesPerMeter = 39.3701
	cmPerInch      = 2.54
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// resolution reads the horizontal and vertical resolution stored in the
// image header. Zero means the file does not say.
func resolution(f Format, data []byte) (x, y float64) {
	switch f.Name {
	case "png":
		return pngResolution(data)
	case "jpeg":
		return jfifResolution(data)
	case "bmp":
		return bmpResolution(data)
	}
	return 0, 0
}

// pngResolution reads the pHYs chunk, which precedes the image data.
func pngResolution(data []byte) (x, y float64) {
	if !bytes.HasPrefix(data, pngSignature) {
		return 0, 0
	}
	for pos := len(pngSignature); pos+8 <= len(data); {
		length := int(binary.BigEndian.Uint32(data[pos:]))
		kind := string(data[pos+4 : pos+8])
		body := pos + 8
		if length < 0 || body+length > len(data) {
			return 0, 0
		}
		switch kind {
		case "pHYs":
			if length < 9 || data[body+8] != 1 { // unit 1 is the metre
				return 0, 0
			}
			ppmX := binary.BigEndian.Uint32(data[body:])
			ppmY := binary.BigEndian.Uint32(data[body+4:])
			return float64(ppmX) / inchesPerMeter, float64(ppmY) / inchesPerMeter
		case "IDAT", "IEND":
			return 0, 0
		}
		pos = body + length + 4 // skip CRC
	}
	return 0, 0
}

// jfifResolution reads the density fields of a JFIF APP0 segment.
func jfifResolution(data []byte) (x, y float64) {
	if len(data) < 4 || data[0] != 0xFF || data[1] != 0xD8 {
		return 0, 0
	}
	for pos := 2; pos+4 <= len(data); {
		if data[pos] != 0xFF {
			return 0, 0
		}
		marker := data[pos+1]
		if marker == 0xDA { // start of scan
			return 0, 0
		}
		length := int(binary.BigEndian.Uint16(data[pos+2:]))
		if length < 2 {
			return 0, 0
		}
		seg := data[pos+4 : min(pos+2+length, len(data))]
		if marker == 0xE0 && len(seg) >= 12 && string(seg[:5]) == "JFIF\x00" {
			units := seg[7]
			dx := float64(binary.BigEndian.Uint16(seg[8:]))
			dy := float64(binary.BigEndian.Uint16(seg[10:]))
			switch units {
			case 1:
				return dx, dy
			case 2:
				return dx * cmPerInch, dy * cmPerInch
			}
			return 0, 0
		}
		pos += 2 + length
	}
	return 0, 0
}

// bmpResolution reads biXPelsPerMeter and biYPelsPerMeter.
func bmpResolution(data []byte) (x, y float64) {
	const (
		infoHeader = 14
		xOffset    = infoHeader + 24
		yOffset    = infoHeader + 28
	)
	if len(data) < yOffset+4 || data[0] != 'B' || data[1] != 'M' {
		return 0, 0
	}
	if binary.LittleEndian.Uint32(data[infoHeader:]) < 40 {
		return 0, 0
	}
	ppmX := int32(binary.LittleEndian.Uint32(data[xOffset:]))
	ppmY := int32(binary.LittleEndian.Uint32(data[yOffset:]))
	return float64(ppmX) / inchesPerMeter, float64(ppmY) / inchesPerMeter
}
