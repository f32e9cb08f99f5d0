package raw

import (
	"bytes"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
)

// TextString decodes a PDF text string. UTF-16BE strings are recognized by
// their byte order mark, UTF-8 (PDF 2.0) likewise; anything else is read as
// PDFDocEncoding, which agrees with Latin-1 for printable characters.
// A nil string decodes to "".
func TextString(s String) string {
	if s == nil {
		return ""
	}
	return DecodeText(s.Value())
}

// DecodeText is TextString for a bare byte slice.
func DecodeText(b []byte) string {
	switch {
	case bytes.HasPrefix(b, bomUTF16BE):
		dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
		if out, err := dec.Bytes(b); err == nil {
			return string(out)
		}
	case bytes.HasPrefix(b, bomUTF8):
		return string(b[len(bomUTF8):])
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}
