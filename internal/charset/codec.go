package charset

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/eugenenazirov/replace-tokens/internal/input"
)

// ErrUnsupportedEncoding is returned for encodings that cannot be read or written directly.
var ErrUnsupportedEncoding = errors.New("unsupported encoding")

func textEncoding(enc input.FileEncoding) (encoding.Encoding, error) {
	switch enc {
	case input.EncodingUTF8:
		return encoding.Nop, nil
	case input.EncodingASCII:
		return charmap.ISO8859_1, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, enc)
	}
}

// Decode converts raw file bytes into text. Malformed UTF-8 and UTF-16 input
// is carried through so that Encode restores the original bytes.
func Decode(data []byte, enc input.FileEncoding) (string, error) {
	if enc == input.EncodingUTF16LE {
		return decodeUTF16LE(data), nil
	}
	e, err := textEncoding(enc)
	if err != nil {
		return "", err
	}
	out, err := e.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", enc, err)
	}
	return string(out), nil
}

// Encode converts text back into bytes. Characters the encoding cannot
// represent are written as its replacement byte.
func Encode(text string, enc input.FileEncoding) ([]byte, error) {
	if enc == input.EncodingUTF16LE {
		return encodeUTF16LE(text), nil
	}
	e, err := textEncoding(enc)
	if err != nil {
		return nil, err
	}
	out, err := encoding.ReplaceUnsupported(e.NewEncoder()).Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", enc, err)
	}
	return out, nil
}
