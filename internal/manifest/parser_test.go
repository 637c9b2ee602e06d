package manifest

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

const testdataDir = "testdata"

func testPath(name string) string {
	return filepath.Join(testdataDir, name)
}

func TestLoadValid(t *testing.T) {
	m, err := Load(afero.NewOsFs(), testPath("valid.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if m.Seed != 42 {
		t.Errorf("Seed = %d, want 42", m.Seed)
	}
	if m.Fraction != 0.05 {
		t.Errorf("Fraction = %v, want 0.05", m.Fraction)
	}
	if len(m.Classes) != 3 {
		t.Fatalf("len(Classes) = %d, want 3", len(m.Classes))
	}

	dog, ok := m.ClassByName("dog")
	if !ok {
		t.Fatal("dog class not found")
	}
	if dog.Total != 7 || len(dog.Selected) != 0 {
		t.Errorf("dog = %+v, want total 7 and no selection", dog)
	}
	if _, ok := m.ClassByName("horse"); ok {
		t.Error("unexpected class horse")
	}

	created, err := m.Created()
	if err != nil {
		t.Fatalf("Created: %v", err)
	}
	if created.Year() != 2026 {
		t.Errorf("Created year = %d, want 2026", created.Year())
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(afero.NewMemMapFs(), "/nope.yaml"); err == nil {
		t.Fatal("expected error for missing manifest")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	if _, err := Load(afero.NewOsFs(), testPath("invalid-not-yaml.yaml")); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestWriteThenLoad(t *testing.T) {
	fs := afero.NewMemMapFs()

	m := New("train", "subsample_train", 0.05, 42)
	m.Classes = append(m.Classes,
		Class{Name: "cat", Total: 20, Selected: []string{"k.jpg"}},
		Class{Name: "dog", Total: 7, Selected: []string{}},
	)
	m.Files = 1
	m.Bytes = 512

	if err := Write(fs, "/ds/subsample_train.manifest.yaml", m); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Load(fs, "/ds/subsample_train.manifest.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(m, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("manifest changed on disk (-wrote +read):\n%s", diff)
	}

	result, err := ValidateFile(fs, "/ds/subsample_train.manifest.yaml")
	if err != nil {
		t.Fatalf("ValidateFile: %v", err)
	}
	if !result.Valid {
		t.Errorf("written manifest invalid: %v", result.Issues)
	}
}

func TestNewStampsIdentity(t *testing.T) {
	m := New("train", "out", 0.1, 7)

	if m.FormatVersion != FormatVersion {
		t.Errorf("FormatVersion = %q, want %q", m.FormatVersion, FormatVersion)
	}
	if _, err := uuid.Parse(m.RunID); err != nil {
		t.Errorf("RunID %q is not a UUID: %v", m.RunID, err)
	}
	if _, err := m.Created(); err != nil {
		t.Errorf("CreatedAt %q not RFC3339: %v", m.CreatedAt, err)
	}
	if New("train", "out", 0.1, 7).RunID == m.RunID {
		t.Error("two manifests share a run ID")
	}
}

func TestRemove(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/m.yaml", []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Remove(fs, "/m.yaml"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if exists, _ := afero.Exists(fs, "/m.yaml"); exists {
		t.Error("manifest should be removed")
	}
	if err := Remove(fs, "/m.yaml"); err != nil {
		t.Errorf("Remove(missing) = %v, want nil", err)
	}
}
