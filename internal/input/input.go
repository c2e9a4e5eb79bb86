package input

// Name identifies a raw configuration input.
type Name string

const (
	Target              Name = "target"
	Encoding            Name = "encoding"
	FollowSymbolicLinks Name = "follow-symbolic-links"
	TokenPrefix         Name = "token-prefix"
	TokenSuffix         Name = "token-suffix"
	Variables           Name = "variables"
	VariablesJSON       Name = "variables-json"
	VariablesSecretJSON Name = "variables-secret-json"
	Concurrency         Name = "concurrency"
	RateLimitFPS        Name = "rate-limit-fps"
	RateLimitBurst      Name = "rate-limit-burst"
)

// FileEncoding is the requested byte encoding of the target files.
type FileEncoding string

const (
	EncodingAuto    FileEncoding = "auto"
	EncodingASCII   FileEncoding = "ascii"
	EncodingUTF8    FileEncoding = "utf-8"
	EncodingUTF16LE FileEncoding = "utf-16le"
)

// ParseFileEncoding validates a raw encoding value.
func ParseFileEncoding(raw string) (FileEncoding, bool) {
	switch enc := FileEncoding(raw); enc {
	case EncodingAuto, EncodingASCII, EncodingUTF8, EncodingUTF16LE:
		return enc, true
	}
	return "", false
}
