// Package textenc decodes Markdown sources of unknown encoding to UTF-8.
package textenc

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

const charsetUTF8 = "UTF-8"

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// detectorAliases maps chardet charset names that htmlindex does not know.
var detectorAliases = map[string]string{
	"GB-18030": "gb18030",
}

// Decode converts data to a UTF-8 string and reports the charset it was
// read as. Byte order marks are honoured and removed. Data that is already
// valid UTF-8 is returned unchanged; anything else is run through charset
// detection. When no candidate decodes cleanly the bytes are returned as is.
func Decode(data []byte) (text, charset string) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return string(data[len(bomUTF8):]), charsetUTF8
	case bytes.HasPrefix(data, bomUTF16LE):
		if s, ok := decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), data); ok {
			return s, "UTF-16LE"
		}
	case bytes.HasPrefix(data, bomUTF16BE):
		if s, ok := decodeWith(unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), data); ok {
			return s, "UTF-16BE"
		}
	}

	if utf8.Valid(data) {
		return string(data), charsetUTF8
	}

	results, err := chardet.NewTextDetector().DetectAll(data)
	if err == nil {
		for _, r := range results {
			enc := lookup(r.Charset)
			if enc == nil {
				continue
			}
			if s, ok := decodeWith(enc, data); ok {
				return s, r.Charset
			}
		}
	}

	return string(data), ""
}

func lookup(charset string) encoding.Encoding {
	if alias, ok := detectorAliases[charset]; ok {
		charset = alias
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil
	}
	return enc
}

// decodeWith decodes data and rejects results containing replacement runes.
func decodeWith(enc encoding.Encoding, data []byte) (string, bool) {
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", false
	}
	s := string(out)
	if strings.ContainsRune(s, utf8.RuneError) {
		return "", false
	}
	return s, true
}
