package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"mercator-hq/callisto/pkg/cli"
	"mercator-hq/callisto/pkg/export"
)

var formatsFlags struct {
	output string
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported export formats",
	Long: `List the export formats this build supports.

The built-in formats are json, csv, and yaml. Programs embedding the
export library can register additional formats at runtime; this command
shows only the built-ins.

Examples:
  # Human-readable list
  callisto formats

  # Machine-readable list
  callisto formats --output json`,
	RunE: runFormats,
}

func init() {
	rootCmd.AddCommand(formatsCmd)

	formatsCmd.Flags().StringVarP(&formatsFlags.output, "output", "o", "text", "output format: text, json")
}

func runFormats(cmd *cobra.Command, args []string) error {
	exporter := export.New(nil)
	formats := exporter.ListSupportedFormats()

	if formatsFlags.output == "json" {
		formatter := cli.NewFormatter(cli.FormatJSON)
		return formatter.FormatTo(os.Stdout, map[string]any{
			"formats": formats,
			"count":   len(formats),
		})
	}

	fmt.Printf("Supported formats (%d):\n", len(formats))
	for _, format := range formats {
		fmt.Printf("  %s\n", format)
	}
	return nil
}
