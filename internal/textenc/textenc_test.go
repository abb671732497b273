package textenc

import (
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	utf16le, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String("# Titre\n")
	if err != nil {
		t.Fatal(err)
	}
	utf16be, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder().String("# Titre\n")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		data        []byte
		want        string
		wantCharset string
	}{
		{"ascii", []byte("# Title\n"), "# Title\n", "UTF-8"},
		{"utf8 multibyte", []byte("# Café ✓\n"), "# Café ✓\n", "UTF-8"},
		{"utf8 bom stripped", append([]byte{0xEF, 0xBB, 0xBF}, "# Title"...), "# Title", "UTF-8"},
		{"utf16 little endian", []byte(utf16le), "# Titre\n", "UTF-16LE"},
		{"utf16 big endian", []byte(utf16be), "# Titre\n", "UTF-16BE"},
		{"empty", nil, "", "UTF-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, charset := Decode(tt.data)
			if got != tt.want {
				t.Errorf("Decode() = %q, want %q", got, tt.want)
			}
			if charset != tt.wantCharset {
				t.Errorf("charset = %q, want %q", charset, tt.wantCharset)
			}
		})
	}
}

func TestDecode_Latin1(t *testing.T) {
	t.Parallel()

	src := strings.Repeat("Le café est très réputé à Genève, déjà célèbre.\n", 8)
	data, err := charmap.ISO8859_1.NewEncoder().String(src)
	if err != nil {
		t.Fatal(err)
	}

	got, charset := Decode([]byte(data))
	if got != src {
		t.Errorf("Decode() = %q, want %q", got, src)
	}
	if charset == "" || charset == "UTF-8" {
		t.Errorf("charset = %q, want a detected single-byte charset", charset)
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"ISO-8859-1", "windows-1252", "Shift_JIS", "EUC-KR", "GB-18030", "UTF-16LE"} {
		if lookup(name) == nil {
			t.Errorf("lookup(%q) = nil", name)
		}
	}
	if lookup("no-such-charset") != nil {
		t.Error("lookup of unknown charset returned an encoding")
	}
}
