package charset

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/eugenenazirov/replace-tokens/internal/input"
)

// Split separates a trailing partial code unit from data. The tail is not
// text and must be appended unchanged after encoding.
func Split(data []byte, enc input.FileEncoding) (body, tail []byte) {
	if enc == input.EncodingUTF16LE && len(data)%2 == 1 {
		return data[:len(data)-1], data[len(data)-1:]
	}
	return data, nil
}

// decodeUTF16LE converts little-endian code units to UTF-8. An unpaired
// surrogate is kept as its generalized UTF-8 (WTF-8) byte sequence so that
// encodeUTF16LE can write it back unchanged.
func decodeUTF16LE(data []byte) string {
	out := make([]byte, 0, len(data))
	for i := 0; i+1 < len(data); i += 2 {
		u := rune(data[i]) | rune(data[i+1])<<8
		if utf16.IsSurrogate(u) && i+3 < len(data) {
			next := rune(data[i+2]) | rune(data[i+3])<<8
			if r := utf16.DecodeRune(u, next); r != utf8.RuneError {
				out = utf8.AppendRune(out, r)
				i += 2
				continue
			}
		}
		if utf16.IsSurrogate(u) {
			out = append(out, 0xE0|byte(u>>12), 0x80|byte(u>>6)&0x3F, 0x80|byte(u)&0x3F)
			continue
		}
		out = utf8.AppendRune(out, u)
	}
	return string(out)
}

// encodeUTF16LE is the inverse of decodeUTF16LE. Invalid UTF-8 that is not an
// encoded surrogate becomes U+FFFD.
func encodeUTF16LE(text string) []byte {
	out := make([]byte, 0, len(text)*2)
	put := func(u uint16) {
		out = append(out, byte(u), byte(u>>8))
	}

	for i := 0; i < len(text); {
		if u, ok := encodedSurrogate(text[i:]); ok {
			put(u)
			i += 3
			continue
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		i += size
		if r1, r2 := utf16.EncodeRune(r); r1 != utf8.RuneError {
			put(uint16(r1))
			put(uint16(r2))
			continue
		}
		put(uint16(r))
	}
	return out
}

// encodedSurrogate reports whether s starts with the three-byte sequence
// decodeUTF16LE emits for an unpaired surrogate.
func encodedSurrogate(s string) (uint16, bool) {
	if len(s) < 3 || s[0] != 0xED || s[1] < 0xA0 || s[1] > 0xBF || s[2] < 0x80 || s[2] > 0xBF {
		return 0, false
	}
	return 0xD000 | uint16(s[1]&0x3F)<<6 | uint16(s[2]&0x3F), true
}
