package extract

import "strings"

// Normalize canonicalizes extracted text. Page separators (horizontal
// rules, "Page N" headers) collapse to a single "#" marker, runs of
// adjacent separators coalesce into one, and empty lines are dropped.
// Content lines pass through untouched. Idempotent: the "#" markers it
// emits are plain content on a second pass.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var out []string
	inSeparator := false
	for _, line := range strings.Split(s, "\n") {
		stripped := strings.TrimSpace(line)
		switch {
		case strings.Contains(stripped, "---") || strings.HasPrefix(stripped, "Page "):
			if !inSeparator {
				out = append(out, "#")
				inSeparator = true
			}
		case stripped != "":
			out = append(out, line)
			inSeparator = false
		}
	}
	return strings.Join(out, "\n")
}
