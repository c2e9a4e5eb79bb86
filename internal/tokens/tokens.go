// Package tokens compiles delimiter-framed variable placeholders into matchers
// and applies them to text.
package tokens

import (
	"regexp"

	"github.com/eugenenazirov/replace-tokens/internal/variables"
)

// whitespace matches the same characters as an ECMAScript \s.
const whitespace = `[\t\n\v\f\r\p{Zs}\x{2028}\x{2029}\x{FEFF}]*`

// Token is a compiled placeholder pattern and the value that replaces it.
type Token struct {
	Name    string
	Pattern *regexp.Regexp
	Value   string
}

// Compile builds one Token per variable, in the Set's iteration order. Names and
// delimiters are matched literally, case-insensitively, and may be separated by
// any amount of whitespace.
func Compile(prefix, suffix string, vars *variables.Set) []Token {
	quotedPrefix := regexp.QuoteMeta(prefix)
	quotedSuffix := regexp.QuoteMeta(suffix)

	out := make([]Token, 0, vars.Len())
	for name, value := range vars.All() {
		expr := "(?i)" + quotedPrefix + whitespace + regexp.QuoteMeta(name) + whitespace + quotedSuffix
		out = append(out, Token{
			Name:    name,
			Pattern: regexp.MustCompile(expr),
			Value:   value,
		})
	}
	return out
}

// Apply replaces every occurrence of the token in text and reports how many were replaced.
func (t Token) Apply(text string) (string, int) {
	count := 0
	out := t.Pattern.ReplaceAllStringFunc(text, func(string) string {
		count++
		return t.Value
	})
	return out, count
}

// ApplyAll runs tokens in order. Each token sees the output of the previous ones,
// so a replacement value can itself contain a later token.
func ApplyAll(tokens []Token, text string) (string, int) {
	total := 0
	for _, t := range tokens {
		var n int
		text, n = t.Apply(text)
		total += n
	}
	return text, total
}
