package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ocrtools/textpost/internal/dict"
	"github.com/ocrtools/textpost/internal/textproc"
	"github.com/spf13/cobra"
)

// textCmd represents the text command for processing raw OCR text.
var textCmd = &cobra.Command{
	Use:   "text [text...]",
	Short: "Normalize, correct and segment OCR text",
	Long: `Clean up raw OCR text by applying Unicode normalization, the layered
correction dictionary and sentence segmentation.

Reads text from the arguments, or from stdin when no arguments are given.

Examples:
  textpost text "今天天气很好。明天呢？"
  cat ocr-output.txt | textpost text
  textpost text "青晰度很高。" --format json`,
	SilenceUsage: true,
	RunE:         runTextCommand,
}

// textResult is the JSON output of the text command.
type textResult struct {
	Original   string   `json:"original"`
	Normalized string   `json:"normalized"`
	Corrected  string   `json:"corrected"`
	Segments   []string `json:"segments"`
}

func runTextCommand(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	input := strings.Join(args, " ")
	if input == "" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		input = string(data)
	}
	if input == "" {
		return fmt.Errorf("no text provided")
	}

	format := cfg.Output.Format
	if cmd.Flags().Changed("format") {
		format, _ = cmd.Flags().GetString("format")
	}

	d := dict.New(cfg.Dictionary.Path, slog.Default())
	defaults, user := d.Snapshot().EffectiveLayers()

	normalized := textproc.Normalize(input)
	corrected := textproc.Correct(normalized, defaults, user)
	segments := textproc.Segment(corrected)

	out := cmd.OutOrStdout()

	switch format {
	case "json":
		result := textResult{
			Original:   input,
			Normalized: normalized,
			Corrected:  corrected,
			Segments:   segments,
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	default:
		segmentsOnly, _ := cmd.Flags().GetBool("segments")
		if segmentsOnly {
			for _, seg := range segments {
				fmt.Fprintln(out, seg)
			}
			return nil
		}
		fmt.Fprintln(out, corrected)
		return nil
	}
}

func init() {
	rootCmd.AddCommand(textCmd)
	textCmd.Flags().StringP("format", "f", "text", "output format (text, json)")
	textCmd.Flags().Bool("segments", false, "print one sentence per line")
}
