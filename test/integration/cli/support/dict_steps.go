package support

import (
	"fmt"
	"os"

	"github.com/cucumber/godog"
)

// RegisterDictSteps registers step definitions for dictionary scenarios.
func (testCtx *TestContext) RegisterDictSteps(sc *godog.ScenarioContext) {
	sc.Step(`^I add the correction "([^"]*)" to "([^"]*)"$`, testCtx.iAddTheCorrection)
	sc.Step(`^I remove the correction "([^"]*)"$`, testCtx.iRemoveTheCorrection)
	sc.Step(`^I reload the dictionary$`, testCtx.iReloadTheDictionary)
	sc.Step(`^the user dictionary should contain "([^"]*)" -> "([^"]*)"$`, testCtx.theUserDictionaryShouldContain)
	sc.Step(`^the user dictionary should be empty$`, testCtx.theUserDictionaryShouldBeEmpty)
	sc.Step(`^the dictionary file should exist$`, testCtx.theDictionaryFileShouldExist)
}

func (testCtx *TestContext) iAddTheCorrection(errText, correct string) error {
	return testCtx.Dict.Add(errText, correct)
}

func (testCtx *TestContext) iRemoveTheCorrection(errText string) error {
	return testCtx.Dict.Remove(errText)
}

func (testCtx *TestContext) iReloadTheDictionary() error {
	testCtx.ReloadDictionary()
	return nil
}

func (testCtx *TestContext) theUserDictionaryShouldContain(errText, correct string) error {
	snap := testCtx.Dict.Snapshot()
	got, ok := snap.User[errText]
	if !ok {
		return fmt.Errorf("user dictionary has no entry for %q", errText)
	}
	if got != correct {
		return fmt.Errorf("expected %q -> %q, got %q", errText, correct, got)
	}
	return nil
}

func (testCtx *TestContext) theUserDictionaryShouldBeEmpty() error {
	snap := testCtx.Dict.Snapshot()
	if len(snap.User) != 0 {
		return fmt.Errorf("expected empty user dictionary, got %d entries", len(snap.User))
	}
	return nil
}

func (testCtx *TestContext) theDictionaryFileShouldExist() error {
	if _, err := os.Stat(testCtx.DictPath); err != nil {
		return fmt.Errorf("dictionary file missing: %w", err)
	}
	return nil
}
