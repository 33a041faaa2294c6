// Package engine defines the OCR engine boundary. The pipeline consumes
// recognized lines through the Engine interface and treats every engine
// failure as an item-level error, never a fatal one.
package engine

import (
	"context"

	"github.com/ocrtools/textpost/internal/processor"
)

// Engine turns an image source (typically a file path) into OCR lines.
type Engine interface {
	// Recognize runs OCR over the given source. It may fail with an
	// engine-specific error: model not loaded, unsupported image, decode
	// failure.
	Recognize(ctx context.Context, source string) ([]processor.OCRLine, error)

	// Close releases engine resources.
	Close() error
}

// RecognizeFunc adapts a plain function to the Engine interface.
type RecognizeFunc func(ctx context.Context, source string) ([]processor.OCRLine, error)

func (f RecognizeFunc) Recognize(ctx context.Context, source string) ([]processor.OCRLine, error) {
	return f(ctx, source)
}

func (f RecognizeFunc) Close() error { return nil }
