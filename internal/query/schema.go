package query

// File represents the root of a YAML query file.
type File struct {
	// Version of the query schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Packages are go/packages patterns to load, e.g. "./village".
	Packages []string `yaml:"packages"`

	// Queries is the list of types to inspect.
	Queries []Query `yaml:"queries"`
}

// Query selects what to report for one type.
type Query struct {
	// Type identifier (e.g., "village.Villager", full path or bare name).
	Type string `yaml:"type"`

	// Markers are struct tag keys whose fields are reported.
	Markers StringOrArray `yaml:"markers,omitempty"`

	// Methods requests the declared method names.
	Methods *bool `yaml:"methods,omitempty"`

	// Constructors requests the constructor list.
	Constructors bool `yaml:"constructors,omitempty"`
}

// WantMethods reports whether method names were requested.
func (q *Query) WantMethods() bool {
	return q.Methods != nil && *q.Methods
}
