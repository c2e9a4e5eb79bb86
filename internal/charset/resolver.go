package charset

import (
	"strings"

	"github.com/eugenenazirov/replace-tokens/internal/input"
)

// DefaultEncoding is used whenever detection yields nothing usable.
const DefaultEncoding = input.EncodingASCII

// detected maps normalised charset names to the encodings files are rewritten with.
var detected = map[string]input.FileEncoding{
	"UTF8":    input.EncodingUTF8,
	"UTF16LE": input.EncodingUTF16LE,
}

// Resolver picks the concrete encoding for a file.
type Resolver struct {
	detector Detector
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithDetector overrides the content sniffer.
func WithDetector(d Detector) ResolverOption {
	return func(r *Resolver) {
		r.detector = d
	}
}

// NewResolver constructs a Resolver using the chardet text detector by default.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		detector: NewTextDetector(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns mode unchanged unless it is auto, in which case data, the
// file content already read by the caller, is sniffed.
func (r *Resolver) Resolve(data []byte, mode input.FileEncoding) input.FileEncoding {
	if mode != input.EncodingAuto {
		return mode
	}
	return FromCharset(r.detector.Detect(data))
}

// FromCharset maps a detected charset name to a supported encoding.
func FromCharset(name string) input.FileEncoding {
	if enc, ok := detected[normalizeName(name)]; ok {
		return enc
	}
	return DefaultEncoding
}

// normalizeName folds "UTF-16 LE", "utf-16le" and "UTF16LE" to one key.
func normalizeName(name string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' || r == '_' {
			return -1
		}
		return r
	}, strings.ToUpper(name))
}
