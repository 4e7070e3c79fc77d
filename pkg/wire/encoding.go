package wire

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultEncodingName is the encoding used when none is configured.
const DefaultEncodingName = "utf-8"

// Encoding is a named character encoding together with its sizing metadata.
type Encoding struct {
	// Name is the normalized encoding name.
	Name string

	// MaxBytesPerRune bounds the encoded size of any single character.
	MaxBytesPerRune int

	enc encoding.Encoding
}

// LookupEncoding resolves an encoding by name. The empty string selects
// UTF-8. Common names are matched directly; anything else is resolved
// through the IANA index.
func LookupEncoding(name string) (Encoding, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))

	switch normalized {
	case "", "utf-8", "utf8":
		return Encoding{Name: "utf-8", MaxBytesPerRune: utf8.UTFMax, enc: unicode.UTF8}, nil
	case "utf-16le":
		e := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
		return Encoding{Name: "utf-16le", MaxBytesPerRune: 4, enc: e}, nil
	case "utf-16be":
		e := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
		return Encoding{Name: "utf-16be", MaxBytesPerRune: 4, enc: e}, nil
	case "iso-8859-1", "latin-1", "latin1":
		return Encoding{Name: "iso-8859-1", MaxBytesPerRune: 1, enc: charmap.ISO8859_1}, nil
	case "windows-1252", "cp1252":
		return Encoding{Name: "windows-1252", MaxBytesPerRune: 1, enc: charmap.Windows1252}, nil
	}

	e, err := ianaindex.IANA.Encoding(normalized)
	if err != nil || e == nil {
		return Encoding{}, fmt.Errorf("unsupported encoding %q", name)
	}

	// Encodings outside the fast path are assumed multi-byte capable.
	return Encoding{Name: normalized, MaxBytesPerRune: utf8.UTFMax, enc: e}, nil
}

// MaxEncodedLen returns the buffer capacity needed to hold quoteLen
// characters in this encoding.
func (e Encoding) MaxEncodedLen(quoteLen int) int {
	return quoteLen * e.MaxBytesPerRune
}
