// Package watch re-exports dataset files when they change on disk.
//
// # Watching
//
// A Watcher observes configured files and directories through fsnotify
// and calls a ChangeHandler once per settled change. Rapid event bursts
// for one file (editors typically write, truncate, and rename in quick
// succession) collapse into a single trigger after a quiet period, and
// each file debounces independently so edits to different datasets
// never coalesce.
//
// Events are filtered before they reach the debouncer:
//
//   - Chmod-only events are skipped (no content change)
//   - Only configured extensions are watched (.json, .yaml, .yml)
//   - Hidden files and directories are skipped when configured
//
// # Basic Usage
//
//	watcher, err := watch.NewWatcher(&watch.Config{
//	    Paths:    []string{"datasets/"},
//	    Debounce: 500 * time.Millisecond,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer watcher.Stop()
//
//	handler := watch.ExportHandler(exporter, []string{"json", "csv"}, opts, nil)
//	if err := watcher.Watch(ctx, handler); err != nil {
//	    log.Fatal(err)
//	}
//
// ExportHandler reloads the changed file and exports every configured
// format through the shared exporter, isolating per-format failures the
// same way ExportMany does.
package watch
