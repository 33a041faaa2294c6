package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"github.com/ocrtools/textpost/internal/processor"
)

// Tesseract is an Engine backed by the gosseract client. One client is held
// for the engine's lifetime; Recognize calls are serialized because the
// underlying tesseract API is not safe for concurrent use.
type Tesseract struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// NewTesseract creates a Tesseract engine for the given languages (tesseract
// language codes, e.g. "eng", "chi_sim"). With no languages the engine uses
// the tesseract default.
func NewTesseract(languages ...string) (*Tesseract, error) {
	client := gosseract.NewClient()
	if len(languages) > 0 {
		if err := client.SetLanguage(languages...); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("set languages %v: %w", languages, err)
		}
	}
	return &Tesseract{client: client}, nil
}

// Recognize runs OCR over the image at source and maps every detected text
// line to an OCRLine with a rectangular bounding polygon and a confidence
// scaled to [0,1].
func (t *Tesseract) Recognize(ctx context.Context, source string) ([]processor.OCRLine, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := t.client.SetImage(source); err != nil {
		return nil, fmt.Errorf("set image %s: %w", source, err)
	}

	boxes, err := t.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("recognize %s: %w", source, err)
	}

	lines := make([]processor.OCRLine, 0, len(boxes))
	for _, b := range boxes {
		r := b.Box
		lines = append(lines, processor.OCRLine{
			Box: []processor.Point{
				{X: float64(r.Min.X), Y: float64(r.Min.Y)},
				{X: float64(r.Max.X), Y: float64(r.Min.Y)},
				{X: float64(r.Max.X), Y: float64(r.Max.Y)},
				{X: float64(r.Min.X), Y: float64(r.Max.Y)},
			},
			Text:       b.Word,
			Confidence: b.Confidence / 100.0,
		})
	}
	return lines, nil
}

// Close releases the tesseract client.
func (t *Tesseract) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.client.Close()
}
