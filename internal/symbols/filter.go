package symbols

import (
	"strings"
	"unicode"
)

// Valid reports whether s can label a dial face.
func Valid(s string) bool {
	if s == "" {
		return false
	}
	return !strings.ContainsFunc(s, unicode.IsSpace)
}

// Split parses a comma separated symbol list, as given on the command line.
func Split(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
