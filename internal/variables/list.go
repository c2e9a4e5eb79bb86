package variables

import (
	"fmt"
	"slices"
	"strings"
)

// SkipReason explains why a line-list entry was dropped.
type SkipReason int

const (
	// NotSkipped marks an accepted entry.
	NotSkipped SkipReason = iota
	// SkipMalformed marks a line without the leading dash or without a colon.
	SkipMalformed
	// SkipEmptyKey marks a line whose key is blank after trimming.
	SkipEmptyKey
)

var (
	emptyValues        = []string{`""`, `''`}
	escapedEmptyValues = []string{`\"\"`, `\'\'`}
)

// Entry is the outcome of parsing one line of the line-list source.
type Entry struct {
	Index  int
	Line   string
	Key    string
	Value  string
	Reason SkipReason
}

// Skipped reports whether the entry was dropped.
func (e Entry) Skipped() bool {
	return e.Reason != NotSkipped
}

// Warning describes a dropped line-list entry.
type Warning struct {
	Index  int
	Line   string
	Reason SkipReason
}

func (w Warning) String() string {
	if w.Reason == SkipEmptyKey {
		return fmt.Sprintf("Invalid token key in variable '%s'", w.Line)
	}
	return fmt.Sprintf("Variable '%s' is not valid and will be skipped. Example: - VARIABLE%d: YOUR_VALUE", w.Line, w.Index)
}

// ParseLine parses a single "- key: value" line.
func ParseLine(index int, line string) Entry {
	entry := Entry{Index: index, Line: line}

	if !strings.HasPrefix(line, "-") || !strings.Contains(line, ":") {
		entry.Reason = SkipMalformed
		return entry
	}

	rawKey, rawValue, _ := strings.Cut(line[1:], ":")

	entry.Key = strings.TrimSpace(rawKey)
	if entry.Key == "" {
		entry.Reason = SkipEmptyKey
		return entry
	}

	entry.Value = normalizeValue(strings.TrimSpace(rawValue))
	return entry
}

func normalizeValue(value string) string {
	switch {
	case value == "" || slices.Contains(emptyValues, value):
		return ""
	case slices.Contains(escapedEmptyValues, value):
		return strings.ReplaceAll(value, `\`, "")
	default:
		return value
	}
}

// ParseList parses the line-list source. Malformed lines never fail the parse;
// each one produces a Warning instead.
func ParseList(lines []string) (*Set, []Warning) {
	set := NewSet()
	var warnings []Warning

	for i, line := range lines {
		entry := ParseLine(i, line)
		if entry.Skipped() {
			warnings = append(warnings, Warning{Index: i, Line: line, Reason: entry.Reason})
			continue
		}
		set.Set(entry.Key, entry.Value)
	}

	return set, warnings
}
