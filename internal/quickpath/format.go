// File path: internal/quickpath/format.go
package quickpath

import (
	"strings"
	"unicode/utf8"
)

// FormatBullets splits a free-text block into bullet points: one per
// non-blank line, with a single leading marker (•, - or *) and surrounding
// whitespace stripped.
func FormatBullets(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if r, size := utf8.DecodeRuneInString(line); r == '•' || r == '-' || r == '*' {
			line = strings.TrimSpace(line[size:])
		}
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
