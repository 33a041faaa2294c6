package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictCommandLifecycle(t *testing.T) {
	dictPath := tempDictPath(t)

	// Empty list
	output, err := executeCommandAndCaptureOutput(t,
		[]string{"dict", "list", "--dict-path", dictPath})
	require.NoError(t, err)
	assert.Contains(t, output, "No user corrections")

	// Add an entry
	output, err = executeCommandAndCaptureOutput(t,
		[]string{"dict", "add", "恢复", "回复", "--dict-path", dictPath})
	require.NoError(t, err)
	assert.Contains(t, output, "Added: 恢复 -> 回复")

	// List shows it
	output, err = executeCommandAndCaptureOutput(t,
		[]string{"dict", "list", "--dict-path", dictPath})
	require.NoError(t, err)
	assert.Contains(t, output, "恢复 -> 回复")

	// The entry affects text processing
	output, err = executeCommandAndCaptureOutput(t,
		[]string{"text", "请恢复我。", "--dict-path", dictPath})
	require.NoError(t, err)
	assert.Equal(t, "请回复我。", output)

	// Remove it again
	output, err = executeCommandAndCaptureOutput(t,
		[]string{"dict", "remove", "恢复", "--dict-path", dictPath})
	require.NoError(t, err)
	assert.Contains(t, output, "Removed: 恢复")

	output, err = executeCommandAndCaptureOutput(t,
		[]string{"dict", "list", "--dict-path", dictPath})
	require.NoError(t, err)
	assert.Contains(t, output, "No user corrections")
}

func TestDictCommandAddInvalid(t *testing.T) {
	_, err := executeCommandAndCaptureOutput(t,
		[]string{"dict", "add", "", "x", "--dict-path", tempDictPath(t)})
	require.Error(t, err)
}

func TestDictCommandListAll(t *testing.T) {
	output, err := executeCommandAndCaptureOutput(t,
		[]string{"dict", "list", "--all", "--dict-path", tempDictPath(t)})
	require.NoError(t, err)
	assert.Contains(t, output, "Default layer")
	assert.Contains(t, output, "青晰 -> 清晰")
	assert.Contains(t, output, "User layer (0 entries)")
}
