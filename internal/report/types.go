package report

// Report is the rendered result of a query file.
type Report struct {
	Version string       `yaml:"version"`
	Types   []TypeReport `yaml:"types"`
}

// TypeReport holds what was requested for one type.
type TypeReport struct {
	// Type is the fully qualified type id, e.g. "class-inspector/village.Villager".
	Type string `yaml:"type"`
	Kind string `yaml:"kind"`

	// Fields maps each requested marker to the sorted names of fields carrying it.
	Fields map[string][]string `yaml:"fields,omitempty"`

	Methods      []string      `yaml:"methods,omitempty"`
	Constructors []Constructor `yaml:"constructors,omitempty"`
}

// Constructor describes one constructor of a type.
type Constructor struct {
	Name      string   `yaml:"name"`
	Access    string   `yaml:"access"`
	Params    []string `yaml:"params,flow"`
	Signature string   `yaml:"signature,omitempty"`
}
