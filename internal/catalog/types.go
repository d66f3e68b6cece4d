package catalog

// SectionType describes one standard section kind a proposal editor can
// offer. Types are advisory: the write path accepts any free-form label,
// the catalog only drives pickers and seeded defaults.
type SectionType struct {
	// Type identifier (set during YAML unmarshaling, from the map key)
	ID string `yaml:"-" json:"id"`

	DisplayName    string `yaml:"display_name" json:"display_name"`
	Description    string `yaml:"description" json:"description"`
	DefaultHeading string `yaml:"default_heading" json:"default_heading"`

	// DefaultOrder is the position editors suggest for a new section of
	// this type. Duplicate and gapped order indices remain legal.
	DefaultOrder int `yaml:"default_order" json:"default_order"`
}

// sectionTypeFile is the on-disk shape of the embedded catalog
type sectionTypeFile struct {
	Types map[string]SectionType `yaml:"types"`
}
