// Package processor runs the per-line text post-processing pipeline:
// normalize, correct against the layered dictionary, and optionally segment.
package processor

import (
	"strings"

	"github.com/ocrtools/textpost/internal/dict"
	"github.com/ocrtools/textpost/internal/textproc"
)

// Processor applies the text pipeline to OCR lines. The dictionary is shared;
// each processing call works on a snapshot of it, so concurrent dictionary
// mutations never affect a pass in flight.
type Processor struct {
	dict *dict.Dictionary
}

// New creates a Processor consulting the given dictionary.
func New(d *dict.Dictionary) *Processor {
	return &Processor{dict: d}
}

// Process normalizes and corrects one line. Box and confidence pass through
// unchanged; the pipeline functions are total, so Process cannot fail.
func (p *Processor) Process(line OCRLine) ProcessedLine {
	snap := p.dict.Snapshot()
	return p.processWith(line, snap)
}

// ProcessMany processes lines independently, preserving input order. One
// dictionary snapshot covers the whole call.
func (p *Processor) ProcessMany(lines []OCRLine) []ProcessedLine {
	if len(lines) == 0 {
		return nil
	}
	snap := p.dict.Snapshot()
	out := make([]ProcessedLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, p.processWith(line, snap))
	}
	return out
}

func (p *Processor) processWith(line OCRLine, snap dict.Snapshot) ProcessedLine {
	normalized := textproc.Normalize(line.Text)
	defaults, user := snap.EffectiveLayers()
	corrected := textproc.Correct(normalized, defaults, user)

	var box []Point
	if line.Box != nil {
		box = append(box, line.Box...)
	}

	return ProcessedLine{
		Box:            box,
		OriginalText:   line.Text,
		NormalizedText: normalized,
		CorrectedText:  corrected,
		Confidence:     line.Confidence,
	}
}

// Segments splits a processed line's corrected text into sentence units.
func (l ProcessedLine) Segments() []string {
	return textproc.Segment(l.CorrectedText)
}

// FullText joins the selected text variant of each line with newlines,
// trimming the surrounding whitespace of the result.
func FullText(lines []ProcessedLine, kind TextKind) string {
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		switch kind {
		case TextOriginal:
			b.WriteString(l.OriginalText)
		case TextNormalized:
			b.WriteString(l.NormalizedText)
		default:
			b.WriteString(l.CorrectedText)
		}
	}
	return strings.TrimSpace(b.String())
}
