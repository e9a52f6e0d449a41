// Package textenc turns raw input bytes into text before tokenizing.
package textenc

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/mcncl/parson/internal/errors"
)

// DefaultEncoding is used when no encoding is configured.
const DefaultEncoding = "utf-8"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode interprets b as text in the named encoding. UTF-8 input is
// validated strictly and a leading byte order mark is dropped. Any other
// name is looked up in the IANA registry.
func Decode(b []byte, name string) (string, error) {
	if IsUTF8(name) {
		return decodeUTF8(b)
	}

	enc, err := Lookup(name)
	if err != nil {
		return "", err
	}

	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", errors.NewDecodingError(
			fmt.Sprintf("input is not valid %s: %v", name, err),
			errors.NoOffset,
			errors.ErrInvalidEncoding,
		)
	}
	// A decoder may substitute U+FFFD for bytes it cannot map; the
	// result is still valid UTF-8 and is passed through as is.
	return strings.TrimPrefix(string(out), "\uFEFF"), nil
}

// IsUTF8 reports whether name selects the default UTF-8 path.
func IsUTF8(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return true
	}
	return false
}

// Lookup resolves an IANA encoding name.
func Lookup(name string) (encoding.Encoding, error) {
	if IsUTF8(name) {
		return unicode.UTF8, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, errors.NewDecodingError(
			fmt.Sprintf("unsupported encoding %q", name),
			errors.NoOffset,
			errors.ErrUnsupportedEncoding,
		)
	}
	return enc, nil
}

func decodeUTF8(b []byte) (string, error) {
	b = bytes.TrimPrefix(b, utf8BOM)
	if off := invalidUTF8Offset(b); off >= 0 {
		return "", errors.NewDecodingError(
			fmt.Sprintf("input is not valid UTF-8 at byte %d", off),
			off,
			errors.ErrInvalidEncoding,
		)
	}
	return string(b), nil
}

// invalidUTF8Offset returns the offset of the first byte that does not
// start a valid UTF-8 sequence, or -1.
func invalidUTF8Offset(b []byte) int {
	if utf8.Valid(b) {
		return -1
	}
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}
