package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ocrtools/textpost/internal/engine"
	"github.com/ocrtools/textpost/internal/processor"
)

// Config holds configuration for one batch invocation.
type Config struct {
	// File discovery settings
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string

	// Output settings
	Format     string
	OutputFile string

	// Progress settings
	ShowProgress bool
	Quiet        bool
	ShowStats    bool
}

// ProcessBatch discovers image sources under the given arguments, runs the
// full recognize-and-post-process pipeline over them and blocks until the
// run finishes.
func ProcessBatch(ctx context.Context, args []string, eng engine.Engine, proc *processor.Processor, config *Config) (*Result, error) {
	sources, err := DiscoverSources(args, config.Recursive, config.IncludePatterns, config.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to discover image files: %w", err)
	}
	if len(sources) == 0 {
		return nil, errors.New("no image files found")
	}

	var callback ProgressCallback
	if config.ShowProgress && !config.Quiet {
		callback = NewConsoleProgressCallback(os.Stdout, "Processing: ")
	}

	orch := NewOrchestrator(proc, callback)
	if err := orch.Start(ctx, sources, eng); err != nil {
		return nil, err
	}
	return orch.Wait(), nil
}

// SaveResult writes the formatted result to a file, or stdout when no file
// is configured.
func SaveResult(result *Result, format, outputFile string, quiet bool) error {
	output, err := FormatResult(result, format)
	if err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(output), 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if !quiet {
			_, _ = fmt.Fprintf(os.Stdout, "Results written to %s\n", outputFile)
		}
	} else {
		_, _ = fmt.Fprint(os.Stdout, output)
	}

	return nil
}

// PrintStats prints aggregate run statistics to stdout.
func PrintStats(result *Result, quiet bool) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(os.Stdout, "\nProcessing Statistics:\n")
	_, _ = fmt.Fprintf(os.Stdout, "  Run ID: %s\n", result.RunID)
	_, _ = fmt.Fprintf(os.Stdout, "  State: %s\n", result.State)
	_, _ = fmt.Fprintf(os.Stdout, "  Total: %d\n", result.Total)
	_, _ = fmt.Fprintf(os.Stdout, "  Succeeded: %d\n", result.Succeeded)
	_, _ = fmt.Fprintf(os.Stdout, "  Failed: %d\n", result.Failed)
	_, _ = fmt.Fprintf(os.Stdout, "  Duration: %v\n", result.Duration.Round(time.Millisecond))
}
