package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"mercator-hq/callisto/pkg/cli"
	"mercator-hq/callisto/pkg/dataset"
)

var inspectFlags struct {
	output string
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <input-file>",
	Short: "Describe the shape of a dataset",
	Long: `Inspect a JSON or YAML dataset without exporting it.

The report covers whether the dataset is a single record or a sequence,
the record count, a coarse value-type tag, whether any record carries
nested structures, and the estimated serialized size.

Examples:
  # Human-readable report
  callisto inspect data.json

  # Machine-readable report
  callisto inspect data.yaml --output json`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVarP(&inspectFlags.output, "output", "o", "text", "output format: text, json")
}

func runInspect(cmd *cobra.Command, args []string) error {
	input := args[0]

	data, err := dataset.Load(input)
	if err != nil {
		return fmt.Errorf("failed to load dataset %q: %w", input, err)
	}

	info := dataset.Describe(data)

	if inspectFlags.output == "json" {
		formatter := cli.NewFormatter(cli.FormatJSON)
		return formatter.FormatTo(os.Stdout, info)
	}

	fmt.Printf("Dataset: %s\n", input)
	fmt.Println()
	fmt.Printf("Shape:           %s\n", shapeLabel(info))
	fmt.Printf("Records:         %d\n", info.RecordCount)
	fmt.Printf("Value type:      %s\n", info.ValueType)
	fmt.Printf("Nested values:   %v\n", info.HasNested)
	fmt.Printf("Estimated size:  %d bytes\n", info.EstimatedBytes)

	if info.HasNested {
		fmt.Println()
		fmt.Println("Nested mappings flatten into dotted columns in CSV output.")
		fmt.Println("Use --no-flatten or --max-depth on export to control this.")
	}

	return nil
}

func shapeLabel(info *dataset.Info) string {
	if info.IsSequence {
		return "sequence"
	}
	return "single value"
}
