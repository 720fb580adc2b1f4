package importer

import (
	"bytes"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeToUTF8 converts arbitrary CSV input to UTF-8. Exported CSVs in
// the wild are a mess: BOM-prefixed UTF-8 and UTF-16 from spreadsheet
// apps, Latin-1 from older address books. BOMs win, then valid UTF-8 is
// passed through, then Latin-1 is the fallback (it can't fail: every
// byte is a codepoint).
func decodeToUTF8(data []byte) ([]byte, error) {
	if len(data) >= 3 && bytes.Equal(data[:3], []byte{0xEF, 0xBB, 0xBF}) {
		return data[3:], nil
	}
	if len(data) >= 2 && bytes.Equal(data[:2], []byte{0xFF, 0xFE}) {
		return decodeWith(data, unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM))
	}
	if len(data) >= 2 && bytes.Equal(data[:2], []byte{0xFE, 0xFF}) {
		return decodeWith(data, unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM))
	}
	if utf8.Valid(data) {
		return data, nil
	}
	return decodeWith(data, charmap.ISO8859_1)
}

func decodeWith(data []byte, enc encoding.Encoding) ([]byte, error) {
	return io.ReadAll(transform.NewReader(bytes.NewReader(data), enc.NewDecoder()))
}
