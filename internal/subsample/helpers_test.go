package subsample

import (
	"fmt"
	"path/filepath"
	"sort"
	"testing"

	"github.com/imgprep/subsample/internal/dataset"
	"github.com/spf13/afero"
)

const root = "/data/water"

// makeClass writes n files named a.jpg, b.jpg, ... (then img_NNN.jpg past 26)
// into <root>/train/<class>.
func makeClass(t *testing.T, fs afero.Fs, class string, n int) []string {
	t.Helper()
	dir := filepath.Join(root, "train", class)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	var names []string
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("img_%03d.jpg", i)
		if n <= 26 {
			name = fmt.Sprintf("%c.jpg", 'a'+i)
		}
		content := []byte(fmt.Sprintf("%s/%s", class, name))
		if err := afero.WriteFile(fs, filepath.Join(dir, name), content, 0644); err != nil {
			t.Fatal(err)
		}
		names = append(names, name)
	}
	return names
}

func defaultOptions() Options {
	return Options{
		Layout:        dataset.NewLayout(root),
		Fraction:      0.05,
		Seed:          42,
		WriteManifest: true,
	}
}

// destFiles returns the sorted file names in <root>/subsample_train/<class>.
func destFiles(t *testing.T, fs afero.Fs, class string) []string {
	t.Helper()
	entries, err := afero.ReadDir(fs, filepath.Join(root, "subsample_train", class))
	if err != nil {
		t.Fatalf("reading destination class %s: %v", class, err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
