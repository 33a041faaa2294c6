package support

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ocrtools/textpost/internal/dict"
	"github.com/ocrtools/textpost/internal/processor"
)

// TestContext holds the state for integration tests.
type TestContext struct {
	// Test environment
	TempDir  string
	DictPath string

	// Pipeline under test
	Dict      *dict.Dictionary
	Processor *processor.Processor

	// Last processing result
	LastCorrected string
	LastSegments  []string
}

// NewTestContext creates a new test context with an isolated dictionary.
func NewTestContext() (*TestContext, error) {
	tempDir, err := os.MkdirTemp("", "textpost-test-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	ctx := &TestContext{
		TempDir:  tempDir,
		DictPath: filepath.Join(tempDir, "corrections.json"),
	}
	ctx.ReloadDictionary()

	return ctx, nil
}

// ReloadDictionary reopens the dictionary from its storage path, simulating a
// process restart.
func (testCtx *TestContext) ReloadDictionary() {
	testCtx.Dict = dict.New(testCtx.DictPath, slog.Default())
	testCtx.Processor = processor.New(testCtx.Dict)
}

// Cleanup removes all temporary files created during the scenario.
func (testCtx *TestContext) Cleanup() error {
	if err := os.RemoveAll(testCtx.TempDir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove temp directory %s: %w", testCtx.TempDir, err)
	}
	return nil
}

// GetTempFile returns a path to a temporary file.
func (testCtx *TestContext) GetTempFile(suffix string) string {
	return filepath.Join(testCtx.TempDir, fmt.Sprintf("test-%d%s", time.Now().UnixNano(), suffix))
}
