package catalog

import (
	"embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry holds the catalog of standard section types, loaded once from the
// embedded YAML file. Read-only after construction.
type Registry struct {
	types map[string]SectionType
}

// NewRegistry creates a new section type registry from the embedded catalog
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/section_types.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read section type catalog: %w", err)
	}

	var file sectionTypeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal section type catalog: %w", err)
	}

	types := make(map[string]SectionType, len(file.Types))
	for id, st := range file.Types {
		st.ID = id
		types[id] = st
	}

	return &Registry{types: types}, nil
}

// Get returns the catalog entry for a type id
func (r *Registry) Get(id string) (SectionType, bool) {
	st, ok := r.types[id]
	return st, ok
}

// List returns all section types ordered by their suggested position
func (r *Registry) List() []SectionType {
	types := make([]SectionType, 0, len(r.types))
	for _, st := range r.types {
		types = append(types, st)
	}

	sort.Slice(types, func(i, j int) bool {
		if types[i].DefaultOrder != types[j].DefaultOrder {
			return types[i].DefaultOrder < types[j].DefaultOrder
		}
		return types[i].ID < types[j].ID
	})

	return types
}
