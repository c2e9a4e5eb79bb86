package variables

import (
	"bytes"
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/eugenenazirov/replace-tokens/internal/input"
)

const (
	msgInvalidJSON = "JSON is invalid"
	msgNotAnObject = "JSON is valid, but value is not an object"
)

// emptyJSON lists raw values that mean "nothing provided".
var emptyJSON = []string{"", `""`, "''", "null"}

// ParseJSON parses a JSON object source into a Set, keeping document key order.
// Non-string values are converted to their textual form.
func ParseJSON(name input.Name, raw string) (*Set, error) {
	if slices.Contains(emptyJSON, raw) {
		return NewSet(), nil
	}

	data := []byte(raw)
	if !json.Valid(data) {
		return nil, input.NewError(name, msgInvalidJSON)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, input.NewError(name, msgInvalidJSON)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, input.NewError(name, msgNotAnObject)
	}

	set := NewSet()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, input.NewError(name, msgInvalidJSON)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, input.NewError(name, msgInvalidJSON)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, input.NewError(name, msgInvalidJSON)
		}
		set.Set(key, stringify(value))
	}

	return set, nil
}

// stringify renders a decoded JSON value the way a JavaScript String() call would.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		return formatNumber(val)
	case []any:
		parts := make([]string, len(val))
		for i, elem := range val {
			if elem == nil {
				continue
			}
			parts[i] = stringify(elem)
		}
		return strings.Join(parts, ",")
	case map[string]any:
		return "[object Object]"
	default:
		return ""
	}
}

// formatNumber prints n in shortest round-trip form, switching to exponent
// notation outside [1e-6, 1e21).
func formatNumber(n json.Number) string {
	f, err := n.Float64()
	if err != nil && !math.IsInf(f, 0) {
		return n.String()
	}

	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}
