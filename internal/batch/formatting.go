package batch

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ocrtools/textpost/internal/processor"
)

// FormatResult renders a batch result in the given format: "json", "csv" or
// "text" (the default).
func FormatResult(result *Result, format string) (string, error) {
	switch format {
	case "json":
		return formatJSON(result)
	case "csv":
		return formatCSV(result)
	default:
		return formatText(result), nil
	}
}

// formatJSON marshals the result with per-item statuses and counts.
func formatJSON(result *Result) (string, error) {
	out := struct {
		*Result
		State string `json:"state"`
	}{Result: result, State: result.State.String()}

	bts, err := json.MarshalIndent(out, "", "  ")
	return string(bts), err
}

// formatCSV emits one row per recognized text line: file, corrected text,
// confidence, status. Failed items get a single row carrying the error.
func formatCSV(result *Result) (string, error) {
	var output strings.Builder
	writer := csv.NewWriter(&output)

	if err := writer.Write([]string{"file", "text", "confidence", "status"}); err != nil {
		return "", err
	}

	for _, item := range result.Items {
		switch item.Status {
		case StatusSuccess:
			if len(item.Lines) == 0 {
				if err := writer.Write([]string{item.SourceID, "", "0.000", string(item.Status)}); err != nil {
					return "", err
				}
				continue
			}
			for _, line := range item.Lines {
				row := []string{
					item.SourceID,
					line.CorrectedText,
					fmt.Sprintf("%.3f", line.Confidence),
					string(item.Status),
				}
				if err := writer.Write(row); err != nil {
					return "", err
				}
			}
		default:
			if err := writer.Write([]string{item.SourceID, item.Error, "0.000", string(item.Status)}); err != nil {
				return "", err
			}
		}
	}

	writer.Flush()
	return output.String(), writer.Error()
}

// formatText emits a block per item with the corrected full text.
func formatText(result *Result) string {
	var output strings.Builder
	for i, item := range result.Items {
		if i > 0 {
			output.WriteString("\n")
		}
		fmt.Fprintf(&output, "# %s [%s]\n", item.SourceID, item.Status)
		switch item.Status {
		case StatusSuccess:
			if text := processor.FullText(item.Lines, processor.TextCorrected); text != "" {
				output.WriteString(text)
				output.WriteString("\n")
			}
		case StatusFailed:
			fmt.Fprintf(&output, "error: %s\n", item.Error)
		}
	}
	return output.String()
}
