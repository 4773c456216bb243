package items

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// charRef matches hexadecimal character references such as "&#x01;".
// Some exporters emit references to characters XML does not allow, which
// the decoder rejects outright.
var charRef = regexp.MustCompile(`&#x[0-9A-Fa-f]+;`)

// Sanitize strips every hexadecimal character reference from raw. The
// referenced characters are dropped, not decoded. Text without such
// references is returned unchanged.
func Sanitize(raw string) string {
	return charRef.ReplaceAllLiteralString(raw, "")
}

// Decode converts raw file bytes to text. A leading UTF-8 byte order mark is
// removed; any other invalid UTF-8 is a malformed document.
func Decode(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: invalid UTF-8", ErrMalformedDocument)
	}
	text, err := unicode.UTF8BOM.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return string(text), nil
}
