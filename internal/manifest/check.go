package manifest

import (
	"fmt"

	"github.com/imgprep/subsample/internal/sampler"
)

// Check reports inconsistencies inside the manifest itself: selection sizes
// that do not match floor(total*fraction), duplicate or repeated names, and
// totals that disagree with the class entries. It does not touch the disk.
func (m *Manifest) Check() []ValidationIssue {
	var issues []ValidationIssue

	seenClass := make(map[string]bool, len(m.Classes))
	files := 0
	for i, c := range m.Classes {
		path := fmt.Sprintf("/classes/%d", i)
		if seenClass[c.Name] {
			issues = append(issues, ValidationIssue{
				Path:    path + "/name",
				Message: fmt.Sprintf("class %q listed more than once", c.Name),
				Keyword: "duplicate",
			})
		}
		seenClass[c.Name] = true

		if want := sampler.Count(c.Total, m.Fraction); len(c.Selected) != want {
			issues = append(issues, ValidationIssue{
				Path:    path + "/selected",
				Message: fmt.Sprintf("class %q selects %d of %d files, expected %d", c.Name, len(c.Selected), c.Total, want),
				Keyword: "count",
			})
		}

		seen := make(map[string]bool, len(c.Selected))
		for j, name := range c.Selected {
			if seen[name] {
				issues = append(issues, ValidationIssue{
					Path:    fmt.Sprintf("%s/selected/%d", path, j),
					Message: fmt.Sprintf("file %q selected more than once in class %q", name, c.Name),
					Keyword: "duplicate",
				})
			}
			seen[name] = true
		}
		files += len(c.Selected)
	}

	if files != m.Files {
		issues = append(issues, ValidationIssue{
			Path:    "/files",
			Message: fmt.Sprintf("files is %d but classes select %d", m.Files, files),
			Keyword: "count",
		})
	}
	return issues
}
