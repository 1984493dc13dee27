package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const defaultFileStem = "resume"

var asciiFold = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// SafeFileStem folds s to an ASCII stem that is safe inside a Content-Disposition
// filename. Path separators, quotes and control characters become underscores.
// An empty result falls back to "resume".
func SafeFileStem(s string) string {
	folded, _, err := transform.String(asciiFold, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	for _, r := range strings.TrimSpace(folded) {
		switch {
		case r > unicode.MaxASCII || r < 0x20 || r == 0x7f:
			continue
		case r == '/' || r == '\\' || r == '"' || r == ';':
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	out := strings.Trim(strings.TrimSpace(b.String()), ".")
	if out == "" {
		return defaultFileStem
	}
	return out
}
