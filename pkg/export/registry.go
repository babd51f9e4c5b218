package export

import (
	"sort"
	"strings"
	"sync"
)

// Registry maps format identifiers to strategy factories. Identifiers
// are case-insensitive; registering an existing identifier silently
// replaces it. The registry is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a registry with the built-in formats (json, csv,
// yaml) pre-registered.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.factories["json"] = func() Strategy { return NewJSONStrategy() }
	r.factories["csv"] = func() Strategy { return NewCSVStrategy() }
	r.factories["yaml"] = func() Strategy { return NewYAMLStrategy() }
	return r
}

// Register stores a strategy factory under a case-insensitive
// identifier. The factory is probed once: it must produce a non-nil
// strategy that reports a name and a file extension.
func (r *Registry) Register(formatID string, factory Factory) error {
	id := normalizeFormatID(formatID)
	if id == "" {
		return NewConfigurationError("format", "format identifier must not be empty")
	}
	if factory == nil {
		return NewConfigurationError("factory", "strategy factory must not be nil")
	}

	probe := factory()
	if probe == nil {
		return NewConfigurationError("factory", "strategy factory produced a nil strategy")
	}
	if probe.Name() == "" || probe.Extension() == "" {
		return NewConfigurationError("factory", "strategy must report a name and a file extension")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[id] = factory
	return nil
}

// Resolve returns a fresh strategy instance for the identifier.
func (r *Registry) Resolve(formatID string) (Strategy, error) {
	id := normalizeFormatID(formatID)

	r.mu.RLock()
	factory, ok := r.factories[id]
	r.mu.RUnlock()

	if !ok {
		return nil, NewUnsupportedFormatError(formatID, r.ListFormats())
	}
	return factory(), nil
}

// ListFormats returns all registered identifiers in sorted order.
func (r *Registry) ListFormats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]string, 0, len(r.factories))
	for id := range r.factories {
		formats = append(formats, id)
	}
	sort.Strings(formats)
	return formats
}

// Count returns the number of registered formats.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.factories)
}

// normalizeFormatID canonicalizes a format identifier for lookup.
func normalizeFormatID(formatID string) string {
	return strings.ToLower(strings.TrimSpace(formatID))
}
