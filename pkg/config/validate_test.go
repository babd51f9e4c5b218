package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := MinimalConfig()

	err := Validate(cfg)
	if err != nil {
		t.Errorf("expected valid config to pass validation, got error: %v", err)
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := &Config{
		Logging: LoggingConfig{
			Level:  "loud",
			Format: "json",
		},
		History: HistoryConfig{
			Enabled: true,
			Backend: "redis",
		},
	}

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	validationErr, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}

	if len(validationErr.Errors) < 2 {
		t.Errorf("expected multiple errors, got %d", len(validationErr.Errors))
	}

	// Verify error message includes multiple errors
	errMsg := validationErr.Error()
	if !strings.Contains(errMsg, "validation failed with") {
		t.Errorf("error message should mention multiple errors: %s", errMsg)
	}
}

func TestFieldError_Message(t *testing.T) {
	err := FieldError{Field: "history.backend", Message: "backend is required"}
	want := "history.backend: backend is required"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestValidationError_SingleError(t *testing.T) {
	err := ValidationError{Errors: []FieldError{
		{Field: "logging.level", Message: "logging level is required"},
	}}
	if !strings.Contains(err.Error(), "logging.level: logging level is required") {
		t.Errorf("unexpected single-error message: %s", err.Error())
	}
	if strings.Contains(err.Error(), "errors:") {
		t.Errorf("single error should not use the multi-error format: %s", err.Error())
	}
}

func TestValidate_Logging(t *testing.T) {
	tests := []struct {
		name       string
		logging    LoggingConfig
		wantError  bool
		errorField string
	}{
		{
			name:      "valid logging config",
			logging:   LoggingConfig{Level: "info", Format: "json"},
			wantError: false,
		},
		{
			name:      "text format",
			logging:   LoggingConfig{Level: "debug", Format: "text"},
			wantError: false,
		},
		{
			name:       "empty level",
			logging:    LoggingConfig{Format: "json"},
			wantError:  true,
			errorField: "logging.level",
		},
		{
			name:       "invalid level",
			logging:    LoggingConfig{Level: "loud", Format: "json"},
			wantError:  true,
			errorField: "logging.level",
		},
		{
			name:       "invalid format",
			logging:    LoggingConfig{Level: "info", Format: "xml"},
			wantError:  true,
			errorField: "logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validateLogging(&tt.logging)
			checkFieldErrors(t, errs, tt.wantError, tt.errorField)
		})
	}
}

func TestValidate_Export(t *testing.T) {
	badDepth := 0
	goodDepth := 3

	tests := []struct {
		name       string
		export     ExportConfig
		wantError  bool
		errorField string
	}{
		{
			name:      "empty export config",
			export:    ExportConfig{},
			wantError: false,
		},
		{
			name:      "utf-8 encoding",
			export:    ExportConfig{Encoding: "UTF-8"},
			wantError: false,
		},
		{
			name:      "utf8 alias",
			export:    ExportConfig{Encoding: "utf8"},
			wantError: false,
		},
		{
			name:       "unsupported encoding",
			export:     ExportConfig{Encoding: "latin-1"},
			wantError:  true,
			errorField: "export.encoding",
		},
		{
			name:      "valid max depth",
			export:    ExportConfig{MaxDepth: &goodDepth},
			wantError: false,
		},
		{
			name:       "zero max depth",
			export:     ExportConfig{MaxDepth: &badDepth},
			wantError:  true,
			errorField: "export.maxDepth",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validateExport("export", &tt.export)
			checkFieldErrors(t, errs, tt.wantError, tt.errorField)
		})
	}
}

func TestValidate_History(t *testing.T) {
	tests := []struct {
		name       string
		history    HistoryConfig
		wantError  bool
		errorField string
	}{
		{
			name:      "disabled history skips validation",
			history:   HistoryConfig{Enabled: false, Backend: "redis"},
			wantError: false,
		},
		{
			name: "valid sqlite backend",
			history: HistoryConfig{
				Enabled: true,
				Backend: "sqlite",
				SQLite:  SQLiteConfig{Path: "data/history.db", BusyTimeout: 5 * time.Second},
			},
			wantError: false,
		},
		{
			name:      "valid memory backend",
			history:   HistoryConfig{Enabled: true, Backend: "memory"},
			wantError: false,
		},
		{
			name:       "empty backend",
			history:    HistoryConfig{Enabled: true},
			wantError:  true,
			errorField: "history.backend",
		},
		{
			name:       "invalid backend",
			history:    HistoryConfig{Enabled: true, Backend: "redis"},
			wantError:  true,
			errorField: "history.backend",
		},
		{
			name:       "sqlite backend without path",
			history:    HistoryConfig{Enabled: true, Backend: "sqlite"},
			wantError:  true,
			errorField: "history.sqlite.path",
		},
		{
			name: "negative max open conns",
			history: HistoryConfig{
				Enabled: true,
				Backend: "sqlite",
				SQLite:  SQLiteConfig{Path: "data/history.db", MaxOpenConns: -1},
			},
			wantError:  true,
			errorField: "history.sqlite.max_open_conns",
		},
		{
			name: "negative retention days",
			history: HistoryConfig{
				Enabled:       true,
				Backend:       "memory",
				RetentionDays: -1,
			},
			wantError:  true,
			errorField: "history.retention_days",
		},
		{
			name: "excessive retention days",
			history: HistoryConfig{
				Enabled:       true,
				Backend:       "memory",
				RetentionDays: 4000,
			},
			wantError:  true,
			errorField: "history.retention_days",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validateHistory(&tt.history)
			checkFieldErrors(t, errs, tt.wantError, tt.errorField)
		})
	}
}

func TestValidate_Schedule(t *testing.T) {
	validJob := JobConfig{
		Name:     "nightly",
		Schedule: "0 2 * * *",
		Input:    "data/orders.json",
		Formats:  []string{"json"},
	}

	tests := []struct {
		name       string
		schedule   ScheduleConfig
		wantError  bool
		errorField string
	}{
		{
			name:      "disabled scheduler skips validation",
			schedule:  ScheduleConfig{Enabled: false},
			wantError: false,
		},
		{
			name: "valid schedule",
			schedule: ScheduleConfig{
				Enabled:   true,
				StatePath: "data/schedule.db",
				Jobs:      []JobConfig{validJob},
			},
			wantError: false,
		},
		{
			name: "missing state path",
			schedule: ScheduleConfig{
				Enabled: true,
				Jobs:    []JobConfig{validJob},
			},
			wantError:  true,
			errorField: "schedule.state_path",
		},
		{
			name: "job without name",
			schedule: ScheduleConfig{
				Enabled:   true,
				StatePath: "data/schedule.db",
				Jobs: []JobConfig{{
					Schedule: "0 2 * * *",
					Input:    "data/orders.json",
					Formats:  []string{"json"},
				}},
			},
			wantError:  true,
			errorField: "schedule.jobs[0].name",
		},
		{
			name: "job without cron expression",
			schedule: ScheduleConfig{
				Enabled:   true,
				StatePath: "data/schedule.db",
				Jobs: []JobConfig{{
					Name:    "nightly",
					Input:   "data/orders.json",
					Formats: []string{"json"},
				}},
			},
			wantError:  true,
			errorField: "schedule.jobs[0].schedule",
		},
		{
			name: "job without input",
			schedule: ScheduleConfig{
				Enabled:   true,
				StatePath: "data/schedule.db",
				Jobs: []JobConfig{{
					Name:     "nightly",
					Schedule: "0 2 * * *",
					Formats:  []string{"json"},
				}},
			},
			wantError:  true,
			errorField: "schedule.jobs[0].input",
		},
		{
			name: "job without formats",
			schedule: ScheduleConfig{
				Enabled:   true,
				StatePath: "data/schedule.db",
				Jobs: []JobConfig{{
					Name:     "nightly",
					Schedule: "0 2 * * *",
					Input:    "data/orders.json",
				}},
			},
			wantError:  true,
			errorField: "schedule.jobs[0].formats",
		},
		{
			name: "second job reported with its index",
			schedule: ScheduleConfig{
				Enabled:   true,
				StatePath: "data/schedule.db",
				Jobs: []JobConfig{validJob, {
					Schedule: "0 3 * * *",
					Input:    "data/users.json",
					Formats:  []string{"csv"},
				}},
			},
			wantError:  true,
			errorField: "schedule.jobs[1].name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validateSchedule(&tt.schedule)
			checkFieldErrors(t, errs, tt.wantError, tt.errorField)
		})
	}
}

func TestValidate_Watch(t *testing.T) {
	tests := []struct {
		name       string
		watch      WatchConfig
		wantError  bool
		errorField string
	}{
		{
			name:      "disabled watch skips validation",
			watch:     WatchConfig{Enabled: false},
			wantError: false,
		},
		{
			name: "valid watch config",
			watch: WatchConfig{
				Enabled:  true,
				Paths:    []string{"data/"},
				Debounce: DefaultWatchDebounce,
				Formats:  []string{"json"},
			},
			wantError: false,
		},
		{
			name: "enabled without paths",
			watch: WatchConfig{
				Enabled:  true,
				Debounce: DefaultWatchDebounce,
				Formats:  []string{"json"},
			},
			wantError:  true,
			errorField: "watch.paths",
		},
		{
			name: "negative debounce",
			watch: WatchConfig{
				Enabled:  true,
				Paths:    []string{"data/"},
				Debounce: -time.Second,
				Formats:  []string{"json"},
			},
			wantError:  true,
			errorField: "watch.debounce",
		},
		{
			name: "enabled without formats",
			watch: WatchConfig{
				Enabled:  true,
				Paths:    []string{"data/"},
				Debounce: DefaultWatchDebounce,
			},
			wantError:  true,
			errorField: "watch.formats",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validateWatch(&tt.watch)
			checkFieldErrors(t, errs, tt.wantError, tt.errorField)
		})
	}
}

func TestValidate_Metrics(t *testing.T) {
	tests := []struct {
		name       string
		metrics    MetricsConfig
		wantError  bool
		errorField string
	}{
		{
			name:      "disabled metrics skips validation",
			metrics:   MetricsConfig{Enabled: false},
			wantError: false,
		},
		{
			name: "valid metrics config",
			metrics: MetricsConfig{
				Enabled: true,
				Address: "127.0.0.1:9090",
				Path:    "/metrics",
			},
			wantError: false,
		},
		{
			name: "enabled without address",
			metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
			wantError:  true,
			errorField: "metrics.address",
		},
		{
			name: "enabled without path",
			metrics: MetricsConfig{
				Enabled: true,
				Address: "127.0.0.1:9090",
			},
			wantError:  true,
			errorField: "metrics.path",
		},
		{
			name: "path without leading slash",
			metrics: MetricsConfig{
				Enabled: true,
				Address: "127.0.0.1:9090",
				Path:    "metrics",
			},
			wantError:  true,
			errorField: "metrics.path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validateMetrics(&tt.metrics)
			checkFieldErrors(t, errs, tt.wantError, tt.errorField)
		})
	}
}

// checkFieldErrors asserts the presence or absence of a field error.
func checkFieldErrors(t *testing.T, errs []FieldError, wantError bool, errorField string) {
	t.Helper()

	if wantError && len(errs) == 0 {
		t.Error("expected validation error, got none")
	}
	if !wantError && len(errs) > 0 {
		t.Errorf("expected no validation error, got: %v", errs)
	}
	if wantError && len(errs) > 0 {
		found := false
		for _, err := range errs {
			if err.Field == errorField {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected error for field %q, got errors: %v", errorField, errs)
		}
	}
}
