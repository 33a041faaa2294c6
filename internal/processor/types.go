package processor

// Point is one vertex of a text region's bounding polygon, in image
// coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// OCRLine is one detected text region as produced by the OCR engine:
// bounding polygon, recognized text and recognition confidence in [0,1].
// Lines are immutable once handed to the pipeline.
type OCRLine struct {
	Box        []Point `json:"box"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// ProcessedLine is the post-processing result for exactly one OCRLine. The
// original text is kept alongside the normalized and corrected forms so
// callers can compare them; box and confidence pass through unchanged.
type ProcessedLine struct {
	Box            []Point `json:"box"`
	OriginalText   string  `json:"original_text"`
	NormalizedText string  `json:"normalized_text"`
	CorrectedText  string  `json:"corrected_text"`
	Confidence     float64 `json:"confidence"`
}

// TextKind selects which text variant to extract from processed lines.
type TextKind string

const (
	TextOriginal   TextKind = "original"
	TextNormalized TextKind = "normalized"
	TextCorrected  TextKind = "corrected"
)
