package dump

import (
	"strconv"
	"strings"
)

// Null is the COPY text-format sentinel for an absent value.
const Null = `\N`

// Fields splits a data line into its positional field values. The tab is
// the sole separator; COPY text format has no quoting.
func Fields(line string) []string {
	return strings.Split(line, "\t")
}

// Value returns the field at position i. ok is false when the field is
// missing, empty, or the null sentinel.
func Value(fields []string, i int) (string, bool) {
	if i >= len(fields) {
		return "", false
	}
	v := fields[i]
	if v == "" || v == Null {
		return "", false
	}
	return v, true
}

// Int parses the field at position i as an integer. Anything that isn't a
// plain integer counts as absent.
func Int(fields []string, i int) (int, bool) {
	s, ok := Value(fields, i)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Bool reads the single-character boolean token at position i. The literal
// "t" is true, anything else false; a field past the end of the row
// defaults to true, matching the source tables' column defaults.
func Bool(fields []string, i int) bool {
	if i >= len(fields) {
		return true
	}
	return fields[i] == "t"
}
