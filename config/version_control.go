package config

// Version system:
// vMAJOR.MINOR.PATCH

// Centralized version control
const (
	// Executable
	MainVersion = "v0.3.0"

	// Modular tools
	Benchmark    = "v1.0.0"
	Weave        = "v0.2.0"
	Disorder     = "v0.2.0"
	CRISPR       = "v0.1.1"
	Codon        = "v0.1.0"
	Primers      = "v0.2.0"
	Restriction  = "v0.1.0"
	Motifs       = "v0.1.0"
	Interactions = "v0.1.0"
	Dashboard    = "v0.3.0"
)

// ToolVersion is one row of the version menu.
type ToolVersion struct {
	Name    string
	Version string
}

// Tools lists the modular tools in menu order.
func Tools() []ToolVersion {
	return []ToolVersion{
		{"Weave Report", Weave},
		{"Disorder Segmenter", Disorder},
		{"CRISPR Guide Designer", CRISPR},
		{"Codon Optimizer", Codon},
		{"Primer Designer", Primers},
		{"Restriction Scanner", Restriction},
		{"JASPAR Motifs", Motifs},
		{"STRING Interactions", Interactions},
		{"Dashboard", Dashboard},
		{"Benchmark", Benchmark},
	}
}
