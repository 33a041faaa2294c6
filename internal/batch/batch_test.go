package batch

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessBatch(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.png", "b.png", "c.png")

	eng := stubEngine(map[string]error{
		filepath.Join(dir, "b.png"): errors.New("engine error"),
	})

	result, err := ProcessBatch(context.Background(), []string{dir}, eng, newTestProcessor(t), &Config{Quiet: true})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, StateCompleted, result.State)
}

func TestProcessBatchNoFiles(t *testing.T) {
	_, err := ProcessBatch(context.Background(), []string{t.TempDir()}, stubEngine(nil), newTestProcessor(t), &Config{})
	assert.Error(t, err)
}
