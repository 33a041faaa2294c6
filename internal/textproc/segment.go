package textproc

import "strings"

// terminal reports whether r ends a sentence. Covers ASCII and fullwidth
// forms of the full stop, exclamation and question mark.
func terminal(r rune) bool {
	switch r {
	case '.', '!', '?', '。', '．', '！', '？':
		return true
	}
	return false
}

// Segment splits text into sentence units on terminal punctuation. The
// terminal mark stays attached to the preceding segment, each segment is
// trimmed and empty segments are dropped. Pure function of its input.
func Segment(text string) []string {
	var segments []string
	var b strings.Builder

	flush := func() {
		if s := strings.TrimSpace(b.String()); s != "" {
			segments = append(segments, s)
		}
		b.Reset()
	}

	for _, r := range text {
		b.WriteRune(r)
		if terminal(r) {
			flush()
		}
	}
	flush()

	return segments
}

// SegmentLines assembles paragraphs from a sequence of text lines. Lines are
// concatenated until a terminal mark closes the running paragraph, matching
// how scanned pages break sentences across physical lines.
func SegmentLines(lines []string) []string {
	var paragraphs []string
	var current strings.Builder

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, r := range line {
			current.WriteRune(r)
			if terminal(r) {
				if p := strings.TrimSpace(current.String()); p != "" {
					paragraphs = append(paragraphs, p)
				}
				current.Reset()
			}
		}
	}
	if p := strings.TrimSpace(current.String()); p != "" {
		paragraphs = append(paragraphs, p)
	}

	return paragraphs
}
