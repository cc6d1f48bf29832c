package llm

import (
	"strings"
	"unicode"

	"github.com/joseph-ayodele/pdf-renamer/constants"
)

// SanitizeFilename turns a raw completion into a filename stem. Wrapping
// quotes are dropped. Whitespace, path separators, characters reserved on
// common filesystems and control characters become underscores. A trailing
// .pdf is removed. The result may be empty.
func SanitizeFilename(raw string) string {
	s := strings.TrimSpace(raw)
	s = stripWrapping(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == ' ', r == '/', r == '\\':
			b.WriteRune('_')
		case strings.ContainsRune(`:*?"<>|`, r):
			b.WriteRune('_')
		case unicode.IsControl(r), unicode.IsSpace(r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	s = constants.TrimPDFExt(b.String())
	if strings.Trim(s, "_.") == "" {
		return ""
	}
	return s
}

func stripWrapping(s string) string {
	for len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'' || first == '`') {
			s = strings.TrimSpace(s[1 : len(s)-1])
			continue
		}
		break
	}
	return s
}
