// Package convert exposes the serializable target converters behind a
// uniform name-keyed registry, so callers and the CLI can select a target at
// runtime.
package convert

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-recordconv/pkg/record"
)

// Request carries the per-call conversion options shared by the registered
// targets. Fields a target does not understand are ignored.
type Request struct {
	Context   any
	Mode      record.Mode
	Include   []string
	Exclude   []string
	Namespace string
	TableName string
	Nullable  bool
}

// Converter turns a record type into one serializable target document.
type Converter interface {
	Name() string
	Convert(typ *record.Type, req Request) (any, error)
}

// Registry stores converters by name.
type Registry struct {
	mu         sync.RWMutex
	converters map[string]Converter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{converters: make(map[string]Converter)}
}

// Register adds a converter by its Name(). Duplicate names return an error.
func (r *Registry) Register(c Converter) error {
	if c == nil {
		return fmt.Errorf("convert: converter is required")
	}
	name := normalizeName(c.Name())
	if name == "" {
		return fmt.Errorf("convert: converter name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.converters[name]; exists {
		return fmt.Errorf("convert: converter %q already registered", name)
	}
	r.converters[name] = c
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(c Converter) {
	if err := r.Register(c); err != nil {
		panic(err)
	}
}

// Get retrieves a converter by name.
func (r *Registry) Get(name string) (Converter, error) {
	key := normalizeName(name)
	if key == "" {
		return nil, fmt.Errorf("convert: converter name is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.converters[key]
	if !ok {
		return nil, fmt.Errorf("convert: converter %q not found", key)
	}
	return c, nil
}

// Names returns the registered converter names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.converters))
	for name := range r.converters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

var defaultRegistry = func() *Registry {
	r := NewRegistry()
	r.MustRegister(avroConverter{})
	r.MustRegister(esMappingConverter{})
	r.MustRegister(jsonSchemaConverter{})
	r.MustRegister(sqlTableConverter{})
	return r
}()

// Default returns the registry pre-populated with the serializable targets.
func Default() *Registry {
	return defaultRegistry
}
