package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ocrtools/textpost/internal/batch"
	"github.com/ocrtools/textpost/internal/config"
	"github.com/ocrtools/textpost/internal/dict"
	"github.com/ocrtools/textpost/internal/engine"
	"github.com/ocrtools/textpost/internal/processor"
	"github.com/spf13/cobra"
)

// batchCmd represents the batch command for processing image directories.
var batchCmd = &cobra.Command{
	Use:   "batch [files...]",
	Short: "Recognize and post-process multiple images",
	Long: `Process multiple image files: run OCR on each image, then normalize,
correct and segment the recognized text.

Supported formats: JPEG, PNG, BMP, TIFF

Examples:
  textpost batch *.jpg *.png
  textpost batch images/ --recursive
  textpost batch images/ --format csv --output results.csv
  textpost batch images/ --languages chi_sim,eng`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runBatchCommand,
}

// configToBatchConfig maps centralized configuration to batch.Config.
// CLI flags override config file values through Viper's precedence system.
func configToBatchConfig(cfg *config.Config, cmd *cobra.Command) *batch.Config {
	batchConfig := &batch.Config{}

	batchConfig.Recursive = cfg.Batch.Recursive
	if cmd.Flags().Changed("recursive") {
		batchConfig.Recursive, _ = cmd.Flags().GetBool("recursive")
	}

	batchConfig.IncludePatterns = cfg.Batch.IncludePatterns
	if cmd.Flags().Changed("include") {
		batchConfig.IncludePatterns, _ = cmd.Flags().GetStringSlice("include")
	}
	if len(batchConfig.IncludePatterns) == 0 {
		batchConfig.IncludePatterns = batch.DefaultIncludePatterns
	}

	batchConfig.ExcludePatterns = cfg.Batch.ExcludePatterns
	if cmd.Flags().Changed("exclude") {
		batchConfig.ExcludePatterns, _ = cmd.Flags().GetStringSlice("exclude")
	}

	batchConfig.Format = cfg.Output.Format
	if cmd.Flags().Changed("format") {
		batchConfig.Format, _ = cmd.Flags().GetString("format")
	}

	batchConfig.OutputFile = cfg.Output.File
	if cmd.Flags().Changed("output") {
		batchConfig.OutputFile, _ = cmd.Flags().GetString("output")
	}

	batchConfig.ShowProgress = cfg.Batch.ShowProgress
	if cmd.Flags().Changed("progress") {
		batchConfig.ShowProgress, _ = cmd.Flags().GetBool("progress")
	}

	batchConfig.Quiet, _ = cmd.Flags().GetBool("quiet")
	batchConfig.ShowStats, _ = cmd.Flags().GetBool("stats")

	return batchConfig
}

func runBatchCommand(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	batchConfig := configToBatchConfig(cfg, cmd)

	languages := cfg.Engine.Languages
	if cmd.Flags().Changed("languages") {
		languages, _ = cmd.Flags().GetStringSlice("languages")
	}

	eng, err := engine.NewTesseract(languages...)
	if err != nil {
		return err
	}
	defer func() { _ = eng.Close() }()

	d := dict.New(cfg.Dictionary.Path, slog.Default())
	proc := processor.New(d)

	// Cancel the run on interrupt instead of killing it mid-item.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	result, err := batch.ProcessBatch(ctx, args, eng, proc, batchConfig)
	if err != nil {
		return err
	}

	if err := batch.SaveResult(result, batchConfig.Format, batchConfig.OutputFile, batchConfig.Quiet); err != nil {
		return err
	}

	if batchConfig.ShowStats {
		batch.PrintStats(result, batchConfig.Quiet)
	}

	if result.State == batch.StateCancelled {
		slog.Warn("batch run cancelled", "completed", result.Succeeded+result.Failed, "total", result.Total)
	}

	_ = os.Stdout.Sync()
	return nil
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().BoolP("recursive", "r", false, "recursively search directories for images")
	batchCmd.Flags().StringSlice("include", nil, "glob patterns for files to include")
	batchCmd.Flags().StringSlice("exclude", nil, "glob patterns for files to exclude")
	batchCmd.Flags().StringP("format", "f", "text", "output format (text, json, csv)")
	batchCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	batchCmd.Flags().Bool("progress", true, "show progress bar")
	batchCmd.Flags().BoolP("quiet", "q", false, "suppress non-result output")
	batchCmd.Flags().Bool("stats", false, "print processing statistics")
	batchCmd.Flags().StringSlice("languages", nil, "OCR languages (e.g. chi_sim,eng)")
}
