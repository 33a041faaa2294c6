package cmd

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/ocrtools/textpost/internal/dict"
	"github.com/spf13/cobra"
)

// dictCmd groups correction dictionary management subcommands.
var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Manage the correction dictionary",
	Long: `Manage the layered correction dictionary.

Corrections come in two layers: a built-in default layer of common OCR
confusions and a persistent user layer that overrides the defaults.

Examples:
  textpost dict list
  textpost dict add 青晰 清晰
  textpost dict remove 青晰`,
}

var dictListCmd = &cobra.Command{
	Use:          "list",
	Short:        "List the user correction entries",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := openDictionary()
		out := cmd.OutOrStdout()

		all, _ := cmd.Flags().GetBool("all")
		if all {
			snap := d.Snapshot()
			fmt.Fprintf(out, "Default layer (%d entries):\n", len(snap.Default))
			for _, e := range sortedEntries(snap.Default) {
				fmt.Fprintf(out, "  %s -> %s\n", e.Error, e.Correct)
			}
			fmt.Fprintf(out, "User layer (%d entries):\n", len(snap.User))
			for _, e := range sortedEntries(snap.User) {
				fmt.Fprintf(out, "  %s -> %s\n", e.Error, e.Correct)
			}
			return nil
		}

		entries := d.UserEntries()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No user corrections defined.")
			return nil
		}
		for _, e := range entries {
			fmt.Fprintf(out, "%s -> %s\n", e.Error, e.Correct)
		}
		return nil
	},
}

var dictAddCmd = &cobra.Command{
	Use:          "add <error> <correct>",
	Short:        "Add a correction to the user layer",
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := openDictionary()
		if err := d.Add(args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added: %s -> %s\n", args[0], args[1])
		return nil
	},
}

var dictRemoveCmd = &cobra.Command{
	Use:          "remove <error>",
	Short:        "Remove a correction from the user layer",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := openDictionary()
		if err := d.Remove(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed: %s\n", args[0])
		return nil
	},
}

func openDictionary() *dict.Dictionary {
	cfg := GetConfig()
	return dict.New(cfg.Dictionary.Path, slog.Default())
}

func sortedEntries(layer map[string]string) []dict.Entry {
	entries := make([]dict.Entry, 0, len(layer))
	for k, v := range layer {
		entries = append(entries, dict.Entry{Error: k, Correct: v})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Error < entries[j].Error })
	return entries
}

func init() {
	rootCmd.AddCommand(dictCmd)
	dictCmd.AddCommand(dictListCmd)
	dictCmd.AddCommand(dictAddCmd)
	dictCmd.AddCommand(dictRemoveCmd)
	dictListCmd.Flags().Bool("all", false, "include the built-in default layer")
}
