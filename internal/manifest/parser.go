package manifest

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"
)

// New returns a manifest stamped with the current format version, a fresh
// run ID, and the current time.
func New(source, dest string, fraction float64, seed int64) *Manifest {
	return &Manifest{
		FormatVersion: FormatVersion,
		RunID:         uuid.NewString(),
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
		Source:        source,
		Dest:          dest,
		Fraction:      fraction,
		Seed:          seed,
		Classes:       []Class{},
	}
}

// Parse decodes manifest YAML.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}

// Load reads and decodes the manifest at path. It does not validate it.
func Load(fs afero.Fs, path string) (*Manifest, error) {
	data, err := readFile(fs, path)
	if err != nil {
		return nil, err
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Write encodes m as YAML and writes it to path, replacing any existing file.
func Write(fs afero.Fs, path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}

// Remove deletes the manifest at path. A missing file is not an error.
func Remove(fs afero.Fs, path string) error {
	if err := fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing manifest %s: %w", path, err)
	}
	return nil
}

func readFile(fs afero.Fs, path string) ([]byte, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
