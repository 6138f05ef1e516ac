package parser

import (
	"io"

	"golang.org/x/net/html/charset"
)

// NewUTF8Reader converts an HTML body of any encoding to UTF-8 before it is handed
// to goquery. The Content-Type header wins when it names a charset; otherwise the
// encoding is sniffed from a BOM, a <meta> declaration, or the bytes themselves.
func NewUTF8Reader(body io.Reader, contentType string) (io.Reader, error) {
	return charset.NewReader(body, contentType)
}
