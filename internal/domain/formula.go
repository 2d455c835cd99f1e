package domain

// FormulaEntry is one formula shown on a topic page.
type FormulaEntry struct {
	Name        string `json:"name" yaml:"name"`
	Formula     string `json:"formula" yaml:"formula"`
	Description string `json:"description" yaml:"description"`
}
