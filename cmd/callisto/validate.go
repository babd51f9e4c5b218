package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"mercator-hq/callisto/pkg/dataset"
	"mercator-hq/callisto/pkg/export"
)

var validateFlags struct {
	formats []string
}

var validateCmd = &cobra.Command{
	Use:   "validate <input-file>",
	Short: "Validate a dataset against a format",
	Long: `Check whether a dataset satisfies a format's constraints without
transforming or serializing it.

JSON and YAML accept any value their encoder can represent. CSV requires
a record or a sequence of records; bare scalars and sequences of scalars
are rejected.

The command exits non-zero when any requested format rejects the dataset.

Examples:
  # Validate against CSV constraints
  callisto validate data.json --format csv

  # Validate against several formats at once
  callisto validate data.json -f json -f csv -f yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringSliceVarP(&validateFlags.formats, "format", "f", []string{"json"}, "format to validate against (repeatable)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	input := args[0]

	data, err := dataset.Load(input)
	if err != nil {
		return fmt.Errorf("failed to load dataset %q: %w", input, err)
	}

	exporter := export.New(nil)

	failed := 0
	for _, formatID := range validateFlags.formats {
		if err := exporter.Validate(data, formatID); err != nil {
			failed++
			fmt.Printf("✗ %s: %s\n", formatID, validationMessage(err))
			continue
		}
		fmt.Printf("✓ %s\n", formatID)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d formats rejected the dataset", failed, len(validateFlags.formats))
	}
	return nil
}

// validationMessage strips the error down to its human-readable core for
// terminal output. Unknown formats and validation failures carry their
// own context already.
func validationMessage(err error) string {
	var validationErr *export.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Reason
	}
	return err.Error()
}
