/*
Package cli provides command-line interface utilities for Callisto.

The cli package includes output formatters, progress reporters, and common CLI
helpers used by the callisto command.

Output Formatting:

The cli package supports multiple output formats (text, JSON, CSV) for
displaying command results such as export summaries and history records:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, records); err != nil {
		return err
	}

CSV output accepts [][]string rows directly or []map[string]string rows
ordered by the formatter's Headers.

Progress Reporting:

For multi-format exports, use the progress reporter:

	progress := cli.NewProgressReporter(os.Stdout)
	progress.Start(int64(len(formats)))
	for i, format := range formats {
		// Export one format
		progress.Update(int64(i + 1))
	}
	progress.Finish()

Signal Handling:

For graceful shutdown of the run daemon on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Use ctx for the scheduler and watcher so they stop on shutdown
*/
package cli
