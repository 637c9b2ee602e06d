package dataset

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Default directory names under the dataset root.
const (
	DefaultSource = "train"
	DefaultDest   = "subsample_train"

	manifestSuffix = ".manifest.yaml"
)

// Layout locates the source and destination trees of a dataset.
type Layout struct {
	Root   string // dataset root
	Source string // source directory name under Root, e.g. "train"
	Dest   string // destination directory name under Root, e.g. "subsample_train"
}

// NewLayout returns a Layout with the default source and destination names.
func NewLayout(root string) Layout {
	return Layout{Root: root, Source: DefaultSource, Dest: DefaultDest}
}

// SourcePath returns <root>/<source>.
func (l Layout) SourcePath() string {
	return filepath.Join(l.Root, l.Source)
}

// DestPath returns <root>/<dest>.
func (l Layout) DestPath() string {
	return filepath.Join(l.Root, l.Dest)
}

// ManifestPath returns the run manifest location, a sibling of the
// destination tree so the tree itself holds only sampled files.
func (l Layout) ManifestPath() string {
	return filepath.Join(l.Root, l.Dest+manifestSuffix)
}

// SourceClassPath returns <root>/<source>/<class>.
func (l Layout) SourceClassPath(class string) string {
	return filepath.Join(l.SourcePath(), class)
}

// DestClassPath returns <root>/<dest>/<class>.
func (l Layout) DestClassPath(class string) string {
	return filepath.Join(l.DestPath(), class)
}

// Validate checks that Source and Dest are distinct single path elements.
// Dest is removed recursively on every run, so anything that could resolve
// to Root or Source is rejected.
func (l Layout) Validate() error {
	if l.Root == "" {
		return fmt.Errorf("dataset root must not be empty")
	}
	if err := validateName("source", l.Source); err != nil {
		return err
	}
	if err := validateName("dest", l.Dest); err != nil {
		return err
	}
	if l.Source == l.Dest {
		return fmt.Errorf("source and dest must differ, both are %q", l.Source)
	}
	return nil
}

func validateName(field, name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%s directory name must not be empty", field)
	case name == "." || name == "..":
		return fmt.Errorf("%s directory name %q is not allowed", field, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%s directory name %q must not contain path separators", field, name)
	}
	return nil
}
