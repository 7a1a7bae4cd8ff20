package types

// ParseConfig holds settings for the extraction stage.
// Per prd001-normalization R3.1, prd002-classification R5.1.
type ParseConfig struct {
	// LexiconPath is an optional YAML file overriding the built-in
	// morphological lexicon (suffix lists, place allow-list, role
	// keywords, abbreviation table). Empty selects the built-in lexicon.
	LexiconPath string `json:"lexicon_path,omitempty" yaml:"lexicon_path,omitempty"`
}

// ExportConfig holds settings and document metadata for the export stage.
// Per prd007-export R2.1-R2.4.
type ExportConfig struct {
	// Title is the document title placed in export metadata.
	Title string `json:"title" yaml:"title"`

	// Description is the document description placed in export metadata.
	Description string `json:"description" yaml:"description"`

	// Manuscript is the holding-institution shelfmark for the source.
	Manuscript string `json:"manuscript" yaml:"manuscript"`

	// JSONPath is the output path for the JSON document (default "tbeti_data.json").
	JSONPath string `json:"json_path" yaml:"json_path"`

	// JSPath is the output path for the JS artifact (default "tbeti_data.js").
	JSPath string `json:"js_path" yaml:"js_path"`
}

// DefaultExportConfig returns the export metadata for the Ṭbeti register.
func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		Title:       "Ṭbetis sulta maṭiane",
		Description: "Complete Synodal Records from Ṭbeti - Prosopographical Database",
		Manuscript:  "St. Petersburg, Russian National Library, P10/P13",
		JSONPath:    "tbeti_data.json",
		JSPath:      "tbeti_data.js",
	}
}

// RegisterConfig holds settings for the register store stage.
// Per prd008-register R1.2, R3.3.
type RegisterConfig struct {
	// RegisterDir is the directory holding the register database file.
	RegisterDir string `json:"register_dir" yaml:"register_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Parse    ParseConfig    `json:"parse" yaml:"parse"`
	Export   ExportConfig   `json:"export" yaml:"export"`
	Register RegisterConfig `json:"register" yaml:"register"`
}
