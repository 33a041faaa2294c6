package support

import (
	"fmt"
	"os"

	"github.com/cucumber/godog"
	"github.com/ocrtools/textpost/internal/processor"
)

// RegisterTextSteps registers step definitions for text processing scenarios.
func (testCtx *TestContext) RegisterTextSteps(sc *godog.ScenarioContext) {
	sc.Step(`^an empty user dictionary$`, testCtx.anEmptyUserDictionary)
	sc.Step(`^I process the text "([^"]*)"$`, testCtx.iProcessTheText)
	sc.Step(`^the corrected text should be "([^"]*)"$`, testCtx.theCorrectedTextShouldBe)
	sc.Step(`^the segments should be:$`, testCtx.theSegmentsShouldBe)
}

func (testCtx *TestContext) anEmptyUserDictionary() error {
	if err := os.RemoveAll(testCtx.DictPath); err != nil {
		return err
	}
	testCtx.ReloadDictionary()
	return nil
}

func (testCtx *TestContext) iProcessTheText(text string) error {
	line := testCtx.Processor.Process(processor.OCRLine{Text: text, Confidence: 1.0})
	testCtx.LastCorrected = line.CorrectedText
	testCtx.LastSegments = line.Segments()
	return nil
}

func (testCtx *TestContext) theCorrectedTextShouldBe(expected string) error {
	if testCtx.LastCorrected != expected {
		return fmt.Errorf("expected corrected text %q, got %q", expected, testCtx.LastCorrected)
	}
	return nil
}

func (testCtx *TestContext) theSegmentsShouldBe(table *godog.Table) error {
	expected := make([]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		expected = append(expected, row.Cells[0].Value)
	}

	if len(testCtx.LastSegments) != len(expected) {
		return fmt.Errorf("expected %d segments, got %d: %v", len(expected), len(testCtx.LastSegments), testCtx.LastSegments)
	}
	for i, seg := range expected {
		if testCtx.LastSegments[i] != seg {
			return fmt.Errorf("segment %d: expected %q, got %q", i, seg, testCtx.LastSegments[i])
		}
	}
	return nil
}
