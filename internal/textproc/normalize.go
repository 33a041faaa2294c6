package textproc

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var wsRe = regexp.MustCompile(`\s+`)

// Normalize cleans raw OCR text: NFC normalization, zero-width and control
// character removal, literal \r / \n escape-sequence removal, whitespace
// collapsing and trimming. The function is total and idempotent:
// Normalize(Normalize(s)) == Normalize(s) for every input.
func Normalize(s string) string {
	if s == "" {
		return s
	}

	s = norm.NFC.String(s)
	s = removeZeroWidth(s)
	s = removeControlRunes(s)
	s = removeEscapeSequences(s)
	s = wsRe.ReplaceAllString(s, " ")

	return strings.TrimSpace(s)
}

// removeControlRunes strips C0 and C1 control characters. Whitespace controls
// (tab, newline, carriage return, etc.) are kept so the whitespace collapse
// can turn them into single spaces.
func removeControlRunes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// removeEscapeSequences removes literal two-character "\r" and "\n" sequences
// that OCR engines sometimes emit verbatim. Removal runs to a fixed point so
// that sequences reassembled by a previous removal are caught as well.
func removeEscapeSequences(s string) string {
	for {
		next := strings.ReplaceAll(s, `\r`, "")
		next = strings.ReplaceAll(next, `\n`, "")
		if next == s {
			return next
		}
		s = next
	}
}

// removeZeroWidth removes common zero-width characters found in OCR noise.
func removeZeroWidth(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\u200B', // ZERO WIDTH SPACE
			'\u200C', // ZERO WIDTH NON-JOINER
			'\u200D', // ZERO WIDTH JOINER
			'\uFEFF': // ZERO WIDTH NO-BREAK SPACE (BOM)
			// skip
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
