package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a dataset from a JSON or YAML file. The format is chosen by
// file extension: .json for JSON, .yaml or .yml for YAML.
func Load(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file %q: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadBytes(data, "json")
	case ".yaml", ".yml":
		return LoadBytes(data, "yaml")
	default:
		return nil, fmt.Errorf("unsupported dataset file extension %q (expected .json, .yaml, or .yml)", filepath.Ext(path))
	}
}

// LoadBytes parses raw dataset bytes in the named format ("json" or
// "yaml").
func LoadBytes(data []byte, format string) (any, error) {
	var dataset any

	switch strings.ToLower(format) {
	case "json":
		if err := json.Unmarshal(data, &dataset); err != nil {
			return nil, fmt.Errorf("failed to parse JSON dataset: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &dataset); err != nil {
			return nil, fmt.Errorf("failed to parse YAML dataset: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", format)
	}

	return dataset, nil
}
