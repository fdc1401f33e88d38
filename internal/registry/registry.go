package registry

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ContainerDefinition describes a container element type and the internal
// column slots its children are placed in.
type ContainerDefinition struct {
	Type    string `yaml:"type"`
	Label   string `yaml:"label"`
	Columns []int  `yaml:"columns"`
}

type fileFormat struct {
	Containers []ContainerDefinition `yaml:"containers"`
}

// Registry knows which element types are containers. It is safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]ContainerDefinition
}

// New creates a registry holding defs.
func New(defs ...ContainerDefinition) *Registry {
	r := &Registry{definitions: make(map[string]ContainerDefinition, len(defs))}
	for _, def := range defs {
		r.Register(def)
	}
	return r
}

// FromList creates a registry from a comma-separated list of type tags.
// Blank items are ignored.
func FromList(csv string) *Registry {
	r := New()
	for _, item := range strings.Split(csv, ",") {
		if tag := strings.TrimSpace(item); tag != "" {
			r.Register(ContainerDefinition{Type: tag})
		}
	}
	return r
}

// LoadFile reads container definitions from a YAML file of the form
//
//	containers:
//	  - type: container_2col
//	    label: Two columns
//	    columns: [200, 201]
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read container registry: %w", err)
	}
	defs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse container registry %s: %w", path, err)
	}
	return New(defs...), nil
}

// Parse decodes YAML container definitions.
func Parse(data []byte) ([]ContainerDefinition, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	for i := range f.Containers {
		f.Containers[i].Type = strings.TrimSpace(f.Containers[i].Type)
		if f.Containers[i].Type == "" {
			return nil, fmt.Errorf("container %d: type is required", i)
		}
	}
	return f.Containers, nil
}

// Register adds or replaces a definition. Empty type tags are ignored.
func (r *Registry) Register(def ContainerDefinition) {
	def.Type = strings.TrimSpace(def.Type)
	if def.Type == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.definitions[def.Type] = def
}

// Merge registers every definition of other.
func (r *Registry) Merge(other *Registry) {
	if other == nil || other == r {
		return
	}
	for _, def := range other.Definitions() {
		r.Register(def)
	}
}

// IsContainer reports whether typeTag names a registered container type.
func (r *Registry) IsContainer(typeTag string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.definitions[typeTag]
	return ok
}

// Lookup returns the definition registered for typeTag.
func (r *Registry) Lookup(typeTag string) (ContainerDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[typeTag]
	return def, ok
}

// Types returns the registered type tags in lexical order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.definitions))
	for t := range r.definitions {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// Definitions returns all definitions ordered by type tag.
func (r *Registry) Definitions() []ContainerDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]ContainerDefinition, 0, len(r.definitions))
	for _, def := range r.definitions {
		defs = append(defs, def)
	}
	slices.SortFunc(defs, func(a, b ContainerDefinition) int {
		return strings.Compare(a.Type, b.Type)
	})
	return defs
}
