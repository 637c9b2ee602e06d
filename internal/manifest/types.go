package manifest

import "time"

// FormatVersion is the manifest format written by this build.
const FormatVersion = "1.0.0"

// Manifest describes one completed subsample run.
type Manifest struct {
	FormatVersion string  `yaml:"format_version" json:"format_version"`
	RunID         string  `yaml:"run_id" json:"run_id"`
	CreatedAt     string  `yaml:"created_at" json:"created_at"`
	Source        string  `yaml:"source" json:"source"`
	Dest          string  `yaml:"dest" json:"dest"`
	Fraction      float64 `yaml:"fraction" json:"fraction"`
	Seed          int64   `yaml:"seed" json:"seed"`
	Files         int     `yaml:"files" json:"files"`
	Bytes         int64   `yaml:"bytes" json:"bytes"`
	Classes       []Class `yaml:"classes" json:"classes"`
}

// Class is the per-class selection of a run.
type Class struct {
	Name     string   `yaml:"name" json:"name"`
	Total    int      `yaml:"total" json:"total"`
	Selected []string `yaml:"selected" json:"selected"`
}

// Created parses CreatedAt.
func (m *Manifest) Created() (time.Time, error) {
	return time.Parse(time.RFC3339, m.CreatedAt)
}

// ClassByName returns the class entry with the given name.
func (m *Manifest) ClassByName(name string) (*Class, bool) {
	for i := range m.Classes {
		if m.Classes[i].Name == name {
			return &m.Classes[i], true
		}
	}
	return nil, false
}
