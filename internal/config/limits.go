package config

const (
	// MaxTitleLength is the maximum length for proposal titles.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (titles should be short and descriptive).
	MaxTitleLength = 255
)
