// Package config provides configuration management for Callisto.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides. It provides a type-safe
// configuration system with comprehensive validation and sensible defaults.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("config.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention CALLISTO_SECTION_FIELD.
// For example:
//
//   - CALLISTO_LOGGING_LEVEL overrides logging.level
//   - CALLISTO_HISTORY_BACKEND overrides history.backend
//   - CALLISTO_EXPORT_OUTPUT_DIR overrides export.outputDir
//
// Environment variables always take precedence over file-based configuration.
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// The export section is an exception: unset option fields there stay unset
// so that per-format strategy defaults can fill them in at export time.
//
// # Singleton Pattern
//
// For application-wide configuration access, use the singleton pattern:
//
//	// At application startup
//	if err := config.Initialize("config.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Anywhere in the application
//	cfg := config.GetConfig()
//	fmt.Println(cfg.History.Backend)
//
// For testing, prefer dependency injection with explicit Config instances
// rather than the global singleton.
//
// # Validation
//
// All configuration is validated automatically during loading. Validation includes:
//
//   - Required field checks (e.g., watch paths when watch mode is enabled)
//   - Range validation (e.g., retention days must be non-negative)
//   - Enum validation (e.g., history backend must be "memory" or "sqlite")
//
// Validation errors include field paths and helpful messages:
//
//	configuration validation failed with 2 errors:
//	  - history.backend: invalid backend "redis": must be 'memory' or 'sqlite'
//	  - watch.paths: at least one watch path is required when watch mode is enabled
//
// # Example Configuration
//
// Here is a minimal configuration file:
//
//	logging:
//	  level: "info"
//	  format: "json"
//
//	export:
//	  outputDir: "exports"
//	  prettify: true
//
//	history:
//	  enabled: true
//	  backend: "sqlite"
//	  sqlite:
//	    path: "data/history.db"
//
//	schedule:
//	  enabled: true
//	  jobs:
//	    - name: "hourly-orders"
//	      schedule: "0 * * * *"
//	      input: "data/orders.json"
//	      formats: ["json", "csv"]
//
// # Thread Safety
//
// All configuration access is thread-safe. The singleton pattern uses read-write
// locks to allow concurrent reads while protecting against concurrent writes during
// reload operations.
package config
