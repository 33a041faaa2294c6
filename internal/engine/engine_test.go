package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocrtools/textpost/internal/processor"
)

func TestRecognizeFunc(t *testing.T) {
	want := []processor.OCRLine{{Text: "hello", Confidence: 0.9}}
	var eng Engine = RecognizeFunc(func(ctx context.Context, source string) ([]processor.OCRLine, error) {
		assert.Equal(t, "page.png", source)
		return want, nil
	})

	got, err := eng.Recognize(context.Background(), "page.png")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.NoError(t, eng.Close())
}

func TestRecognizeFuncError(t *testing.T) {
	sentinel := errors.New("decode failure")
	var eng Engine = RecognizeFunc(func(ctx context.Context, source string) ([]processor.OCRLine, error) {
		return nil, sentinel
	})

	_, err := eng.Recognize(context.Background(), "broken.png")
	assert.ErrorIs(t, err, sentinel)
}
