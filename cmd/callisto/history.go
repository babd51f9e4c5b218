package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"mercator-hq/callisto/pkg/cli"
	"mercator-hq/callisto/pkg/config"
	"mercator-hq/callisto/pkg/history"
)

var historyFlags struct {
	backend string
	limit   int
	offset  int
	output  string
	id      string
	days    int
	yes     bool
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded export jobs",
	Long: `Inspect and prune the export job history.

Every export run with history recording enabled leaves one job record:
format, delivery mode, destination, record and byte counts, status, and
duration. The history store backend (memory or SQLite) comes from the
config file; memory histories do not survive the process, so this
command is mostly useful with the SQLite backend.

Subcommands:
  list   - Show recorded export jobs, newest first
  show   - Show one job record by ID
  prune  - Delete job records older than a retention window

Examples:
  # Last 20 jobs
  callisto history list

  # Full detail for one job
  callisto history show 1b4e28ba-2fa1-11d2-883f-0016d3cca427

  # Drop everything older than a week
  callisto history prune --days 7`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded export jobs",
	Long: `List recorded export jobs, newest first.

Examples:
  # Last 20 jobs as a table
  callisto history list

  # Page through older jobs
  callisto history list --limit 50 --offset 50

  # Machine-readable output
  callisto history list --output json
  callisto history list --output csv`,
	RunE: runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <job-id>",
	Short: "Show one job record",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old job records",
	Long: `Delete job records older than a retention window.

The window defaults to the history.retention_days config value. A
window of 0 days deletes nothing.

Examples:
  # Prune with the configured retention
  callisto history prune

  # Prune everything older than a week, no confirmation prompt
  callisto history prune --days 7 --yes`,
	RunE: runHistoryPrune,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyPruneCmd)

	historyCmd.PersistentFlags().StringVar(&historyFlags.backend, "backend", "", "history backend: memory, sqlite (uses config if not specified)")

	historyListCmd.Flags().IntVar(&historyFlags.limit, "limit", 20, "max job records to show (0 for all)")
	historyListCmd.Flags().IntVar(&historyFlags.offset, "offset", 0, "pagination offset")
	historyListCmd.Flags().StringVarP(&historyFlags.output, "output", "o", "text", "output format: text, json, csv")

	historyShowCmd.Flags().StringVarP(&historyFlags.output, "output", "o", "text", "output format: text, json")

	historyPruneCmd.Flags().IntVar(&historyFlags.days, "days", 0, "retention window in days (0 uses config)")
	historyPruneCmd.Flags().BoolVarP(&historyFlags.yes, "yes", "y", false, "skip the confirmation prompt")
}

// openHistoryStore opens the configured history backend. An explicit
// backend overrides the config file.
func openHistoryStore(cfg *config.Config, backend string) (history.Store, error) {
	if backend == "" {
		backend = cfg.History.Backend
	}

	switch backend {
	case "sqlite", "":
		if err := os.MkdirAll(filepath.Dir(cfg.History.SQLite.Path), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
		store, err := history.NewSQLiteStore(&history.SQLiteConfig{
			Path:         cfg.History.SQLite.Path,
			MaxOpenConns: cfg.History.SQLite.MaxOpenConns,
			MaxIdleConns: cfg.History.SQLite.MaxIdleConns,
			WALMode:      cfg.History.SQLite.WALMode,
			BusyTimeout:  cfg.History.SQLite.BusyTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite history store: %w", err)
		}
		return store, nil
	case "memory":
		return history.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported history backend: %s (supported: sqlite, memory)", backend)
	}
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openHistoryStore(cfg, historyFlags.backend)
	if err != nil {
		return cli.NewCommandError("history", err)
	}
	defer store.Close()

	ctx := context.Background()
	jobs, err := store.List(ctx, historyFlags.limit, historyFlags.offset)
	if err != nil {
		return cli.NewCommandError("history", fmt.Errorf("list failed: %w", err))
	}

	total, err := store.Count(ctx)
	if err != nil {
		return cli.NewCommandError("history", fmt.Errorf("count failed: %w", err))
	}

	switch historyFlags.output {
	case "json":
		formatter := cli.NewFormatter(cli.FormatJSON)
		return formatter.FormatTo(os.Stdout, map[string]any{
			"total_jobs": total,
			"jobs":       jobs,
		})
	case "csv":
		formatter := &cli.CSVFormatter{
			Headers: []string{"id", "format", "mode", "status", "records", "bytes", "path", "started_at", "duration_ms"},
		}
		return formatter.FormatTo(os.Stdout, jobRows(jobs))
	default:
		printJobTable(jobs, total)
		return nil
	}
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openHistoryStore(cfg, historyFlags.backend)
	if err != nil {
		return cli.NewCommandError("history", err)
	}
	defer store.Close()

	job, err := store.Get(context.Background(), args[0])
	if err != nil {
		return cli.NewCommandError("history", err)
	}

	if historyFlags.output == "json" {
		formatter := cli.NewFormatter(cli.FormatJSON)
		return formatter.FormatTo(os.Stdout, job)
	}

	printJob(job)
	return nil
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	days := historyFlags.days
	if days <= 0 {
		days = cfg.History.RetentionDays
	}
	if days <= 0 {
		fmt.Println("Retention window is 0 days; nothing to prune.")
		return nil
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	if !historyFlags.yes {
		fmt.Printf("Delete job records started before %s? [y/N] ", cutoff.Format(time.RFC3339))
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	store, err := openHistoryStore(cfg, historyFlags.backend)
	if err != nil {
		return cli.NewCommandError("history", err)
	}
	defer store.Close()

	deleted, err := store.Prune(context.Background(), cutoff)
	if err != nil {
		return cli.NewCommandError("history", fmt.Errorf("prune failed: %w", err))
	}

	fmt.Printf("✓ Pruned %d job records older than %d days\n", deleted, days)
	return nil
}

// printJobTable renders jobs as a fixed-width terminal table.
func printJobTable(jobs []*history.JobRecord, total int64) {
	if len(jobs) == 0 {
		fmt.Println("No export jobs recorded.")
		return
	}

	fmt.Printf("%-36s  %-6s  %-7s  %-7s  %8s  %10s  %-20s\n",
		"ID", "FORMAT", "MODE", "STATUS", "RECORDS", "BYTES", "STARTED")
	for _, job := range jobs {
		fmt.Printf("%-36s  %-6s  %-7s  %-7s  %8d  %10d  %-20s\n",
			job.ID, job.Format, job.Mode, job.Status,
			job.RecordCount, job.Bytes,
			job.StartedAt.Format("2006-01-02 15:04:05"))
	}

	if int64(len(jobs)) < total {
		fmt.Printf("\nShowing %d of %d jobs. Use --limit and --offset for more.\n", len(jobs), total)
	}
}

// printJob renders one job record in full.
func printJob(job *history.JobRecord) {
	fmt.Printf("Job ID:    %s\n", job.ID)
	fmt.Printf("Format:    %s\n", job.Format)
	fmt.Printf("Mode:      %s\n", job.Mode)
	fmt.Printf("Status:    %s\n", job.Status)
	if job.Path != "" {
		fmt.Printf("Path:      %s\n", job.Path)
	}
	fmt.Printf("Records:   %d\n", job.RecordCount)
	fmt.Printf("Bytes:     %d\n", job.Bytes)
	fmt.Printf("Started:   %s\n", job.StartedAt.Format(time.RFC3339))
	fmt.Printf("Duration:  %s\n", job.Duration)
	if job.Error != "" {
		fmt.Printf("Error:     %s\n", job.Error)
	}
}

// jobRows converts job records to CSV formatter rows.
func jobRows(jobs []*history.JobRecord) [][]string {
	rows := make([][]string, 0, len(jobs))
	for _, job := range jobs {
		rows = append(rows, []string{
			job.ID,
			job.Format,
			job.Mode,
			job.Status,
			strconv.Itoa(job.RecordCount),
			strconv.Itoa(job.Bytes),
			job.Path,
			job.StartedAt.Format(time.RFC3339),
			strconv.FormatInt(job.Duration.Milliseconds(), 10),
		})
	}
	return rows
}
