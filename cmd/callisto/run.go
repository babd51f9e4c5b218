package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"mercator-hq/callisto/pkg/cli"
	"mercator-hq/callisto/pkg/config"
	"mercator-hq/callisto/pkg/export"
	"mercator-hq/callisto/pkg/history"
	"mercator-hq/callisto/pkg/schedule"
	"mercator-hq/callisto/pkg/telemetry/logging"
	"mercator-hq/callisto/pkg/telemetry/metrics"
	"mercator-hq/callisto/pkg/watch"
)

// shutdownTimeout bounds the graceful stop of the metrics server.
const shutdownTimeout = 10 * time.Second

var runFlags struct {
	logLevel string
	dryRun   bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Callisto export daemon",
	Long: `Start the export daemon with the specified configuration.

The daemon runs the subsystems the config file enables: scheduled
exports on cron expressions, watch-mode re-export of changed dataset
files, and a Prometheus metrics endpoint. At least one subsystem must
be enabled.

Examples:
  # Start with the default config file
  callisto run

  # Start with a custom config
  callisto run --config /etc/callisto/config.yaml

  # Validate config and show the schedule without starting
  callisto run --dry-run`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting the daemon")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	// The daemon is driven entirely by configuration, so a missing or
	// invalid config file is a hard error here.
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	if runFlags.logLevel != "" {
		cfg.Logging.Level = runFlags.logLevel
	}

	logger, err := logging.New(logging.FromConfig(cfg.Logging))
	if err != nil {
		return cli.NewConfigError("logging", err.Error())
	}
	slog.SetDefault(logger.Slog())

	if !cfg.Schedule.Enabled && !cfg.Watch.Enabled && !cfg.Metrics.Enabled {
		return cli.NewConfigError("", "nothing to run: enable schedule, watch, or metrics in the config file")
	}

	if runFlags.dryRun {
		return dryRunReport(cfg)
	}

	fmt.Printf("Callisto v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Metrics first so every other subsystem can feed it.
	var collector *metrics.Collector
	var metricsSrv *http.Server
	errChan := make(chan error, 2)

	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(&cfg.Metrics, nil)

		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, collector.Handler())
		metricsSrv = &http.Server{
			Addr:              cfg.Metrics.Address,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			slog.Info("starting metrics server", "address", cfg.Metrics.Address, "path", cfg.Metrics.Path)
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- fmt.Errorf("metrics server error: %w", err)
			}
		}()

		fmt.Printf("✓ Metrics endpoint: http://%s%s\n", cfg.Metrics.Address, cfg.Metrics.Path)
	}

	// Export job history, shared by scheduled and watch-mode exports.
	var store history.Store
	if cfg.History.Enabled {
		store, err = openHistoryStore(cfg, "")
		if err != nil {
			return cli.NewCommandError("run", err)
		}
		defer store.Close()
		fmt.Printf("✓ History store initialized (%s)\n", cfg.History.Backend)
	}

	exporterCfg := &export.Config{
		Defaults: export.OptionsFromConfig(cfg.Export),
		History:  store,
	}
	if collector != nil {
		exporterCfg.Metrics = collector
	}
	exporter := export.New(exporterCfg)

	// Scheduled exports.
	var scheduler *schedule.Scheduler
	if cfg.Schedule.Enabled {
		if err := os.MkdirAll(filepath.Dir(cfg.Schedule.StatePath), 0o750); err != nil {
			return fmt.Errorf("failed to create schedule state directory: %w", err)
		}

		stateStore, err := schedule.NewStateStore(cfg.Schedule.StatePath)
		if err != nil {
			return cli.NewCommandError("run", fmt.Errorf("failed to open schedule state store: %w", err))
		}
		defer stateStore.Close()

		runnerCfg := &schedule.RunnerConfig{
			Exporter: exporter,
			Store:    stateStore,
			Logger:   logger,
		}
		if collector != nil {
			runnerCfg.Metrics = collector
		}
		runner, err := schedule.NewRunner(runnerCfg)
		if err != nil {
			return cli.NewCommandError("run", err)
		}

		scheduler = schedule.NewScheduler(runner, cfg.Schedule.Jobs)
		if err := scheduler.Start(ctx); err != nil {
			return cli.NewCommandError("run", fmt.Errorf("failed to start scheduler: %w", err))
		}
		defer scheduler.Stop()

		fmt.Printf("✓ Scheduler started (%d jobs)\n", len(cfg.Schedule.Jobs))
	}

	// Watch-mode re-export.
	var watcher *watch.Watcher
	if cfg.Watch.Enabled {
		watchCfg := &watch.Config{
			Paths:      cfg.Watch.Paths,
			Debounce:   cfg.Watch.Debounce,
			Extensions: cfg.Watch.Extensions,
			SkipHidden: true,
			Logger:     logger,
		}
		if collector != nil {
			watchCfg.Metrics = collector
		}
		watcher, err = watch.NewWatcher(watchCfg)
		if err != nil {
			return cli.NewCommandError("run", fmt.Errorf("failed to create watcher: %w", err))
		}

		handler := watch.ExportHandler(exporter, cfg.Watch.Formats, export.OptionsFromConfig(cfg.Watch.Options), logger)
		go func() {
			if err := watcher.Watch(ctx, handler); err != nil {
				errChan <- fmt.Errorf("watcher error: %w", err)
			}
		}()

		fmt.Printf("✓ Watching %d paths (formats: %v)\n", len(cfg.Watch.Paths), cfg.Watch.Formats)
	}

	fmt.Println("\nPress Ctrl+C to stop")

	sigChan := cli.WaitForShutdown()

	select {
	case err := <-errChan:
		return cli.NewCommandError("run", err)
	case sig := <-sigChan:
		fmt.Printf("\nReceived signal %s, shutting down gracefully...\n", sig)
		cancel()

		if watcher != nil {
			if err := watcher.Stop(); err != nil {
				slog.Warn("watcher shutdown failed", "error", err)
			}
		}
		if scheduler != nil {
			scheduler.Stop()
		}
		if metricsSrv != nil {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer shutdownCancel()
			if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
				slog.Error("metrics server shutdown failed", "error", err)
				return cli.NewCommandError("run", err)
			}
		}

		fmt.Println("✓ Daemon stopped")
		return nil
	}
}

// dryRunReport validates the daemon configuration and previews the
// schedule without starting anything.
func dryRunReport(cfg *config.Config) error {
	fmt.Println("✓ Configuration valid")
	fmt.Println()

	fmt.Println("Subsystems:")
	fmt.Printf("  schedule: %s\n", enabledLabel(cfg.Schedule.Enabled))
	fmt.Printf("  watch:    %s\n", enabledLabel(cfg.Watch.Enabled))
	fmt.Printf("  metrics:  %s\n", enabledLabel(cfg.Metrics.Enabled))
	fmt.Printf("  history:  %s\n", enabledLabel(cfg.History.Enabled))

	if cfg.Schedule.Enabled && len(cfg.Schedule.Jobs) > 0 {
		fmt.Println()
		fmt.Printf("Scheduled jobs (%d):\n", len(cfg.Schedule.Jobs))
		for _, job := range cfg.Schedule.Jobs {
			if _, err := cron.ParseStandard(job.Schedule); err != nil {
				fmt.Printf("  ✗ %s: invalid schedule %q: %v\n", job.Name, job.Schedule, err)
				return fmt.Errorf("invalid cron schedule for job %q", job.Name)
			}
			fmt.Printf("  ✓ %s: %q → %s in %v\n", job.Name, job.Schedule, job.Input, job.Formats)
		}
	}

	if cfg.Watch.Enabled {
		fmt.Println()
		fmt.Printf("Watched paths (%d):\n", len(cfg.Watch.Paths))
		for _, path := range cfg.Watch.Paths {
			fmt.Printf("  %s\n", path)
		}
	}

	return nil
}

func enabledLabel(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
