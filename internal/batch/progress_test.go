package batch

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConsoleProgressCallback(t *testing.T) {
	var buf bytes.Buffer
	cb := NewConsoleProgressCallback(&buf, "Processing: ")

	cb.OnStart(2)
	cb.OnProgress(1, 2, "a.png")
	cb.OnItemError("b.png", errors.New("boom"))
	cb.OnProgress(2, 2, "b.png")
	cb.OnComplete(&Result{State: StateCompleted, Succeeded: 1, Failed: 1, Duration: time.Second})

	out := buf.String()
	assert.Contains(t, out, "0/2 (0.0%)")
	assert.Contains(t, out, "1/2 (50.0%)")
	assert.Contains(t, out, "Error on b.png: boom")
	assert.Contains(t, out, "completed in 1s (1 ok, 1 failed)")
}

func TestLogProgressCallback(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	cb := NewLogProgressCallback(logger, slog.LevelInfo)

	cb.OnStart(1)
	cb.OnProgress(1, 1, "a.png")
	cb.OnItemError("a.png", errors.New("boom"))
	cb.OnComplete(&Result{RunID: "r", State: StateCompleted, Total: 1})

	out := buf.String()
	assert.Contains(t, out, "batch started")
	assert.Contains(t, out, "batch progress")
	assert.Contains(t, out, "batch item failed")
	assert.Contains(t, out, "batch complete")
}

func TestMultiProgressCallback(t *testing.T) {
	a := &recordingCallback{}
	b := &recordingCallback{}
	multi := NewMultiProgressCallback(a)
	multi.Add(b)

	multi.OnStart(3)
	multi.OnProgress(1, 3, "x")
	multi.OnComplete(&Result{})

	for _, cb := range []*recordingCallback{a, b} {
		assert.Equal(t, []int{3}, cb.started)
		assert.Len(t, cb.progress, 1)
		assert.Len(t, cb.completed, 1)
	}
}
