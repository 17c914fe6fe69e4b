package export

import (
	"fmt"
	"strings"
)

const maxEntryNameLen = 100

// SanitizeName reduces a chapter name to a filesystem-safe form: only
// letters, digits, space, underscore and dash survive, whitespace runs
// collapse to a single underscore, and the result is capped at 100 runes.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '_' || r == '-':
			b.WriteRune(r)
		}
	}
	s := strings.Join(strings.Fields(b.String()), "_")
	s = strings.Trim(s, "_")
	if runes := []rune(s); len(runes) > maxEntryNameLen {
		s = string(runes[:maxEntryNameLen])
	}
	return s
}

// entryName yields a unique ZIP entry name for the chapter at row idx.
// Names that sanitize to nothing fall back to a positional name, and
// duplicates get a numeric suffix.
func entryName(used map[string]bool, name string, idx int) string {
	base := SanitizeName(name)
	if base == "" {
		base = fmt.Sprintf("chapter_%02d", idx+1)
	}
	candidate := base
	for n := 2; used[candidate]; n++ {
		candidate = fmt.Sprintf("%s_%d", base, n)
	}
	used[candidate] = true
	return candidate + ".pdf"
}
