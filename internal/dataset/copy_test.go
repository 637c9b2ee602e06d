package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func TestResetDirCreatesMissing(t *testing.T) {
	fs := afero.NewMemMapFs()

	if err := ResetDir(fs, "/ds/subsample_train"); err != nil {
		t.Fatalf("ResetDir: %v", err)
	}

	info, err := fs.Stat("/ds/subsample_train")
	if err != nil {
		t.Fatalf("destination not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("destination should be a directory")
	}
}

func TestResetDirClearsStaleContent(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs,
		"/ds/subsample_train/cat/old.jpg",
		"/ds/subsample_train/stale.txt",
	)

	if err := ResetDir(fs, "/ds/subsample_train"); err != nil {
		t.Fatalf("ResetDir: %v", err)
	}

	entries, err := afero.ReadDir(fs, "/ds/subsample_train")
	if err != nil {
		t.Fatalf("reading destination: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("destination has %d entries after reset, want 0", len(entries))
	}
}

func TestCopyFileVerbatim(t *testing.T) {
	fs := afero.NewMemMapFs()
	payload := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
	if err := afero.WriteFile(fs, "/src/a.jpg", payload, 0640); err != nil {
		t.Fatal(err)
	}
	mtime := time.Date(2023, 6, 1, 8, 30, 0, 0, time.UTC)
	if err := fs.Chtimes("/src/a.jpg", mtime, mtime); err != nil {
		t.Fatal(err)
	}
	if err := EnsureDir(fs, "/dst"); err != nil {
		t.Fatal(err)
	}

	n, err := CopyFile(fs, "/src/a.jpg", "/dst/a.jpg")
	if err != nil {
		t.Fatalf("CopyFile: %v", err)
	}
	if n != int64(len(payload)) {
		t.Errorf("CopyFile wrote %d bytes, want %d", n, len(payload))
	}

	got, err := afero.ReadFile(fs, "/dst/a.jpg")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(payload) {
		t.Errorf("copied bytes = %x, want %x", got, payload)
	}

	info, err := fs.Stat("/dst/a.jpg")
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(mtime) {
		t.Errorf("mtime = %v, want %v", info.ModTime(), mtime)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0640 {
		t.Errorf("permissions = %o, want %o", info.Mode().Perm(), 0640)
	}
}

func TestCopyFileOverwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/src/a.jpg", []byte("new"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, "/dst/a.jpg", []byte("much longer old content"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := CopyFile(fs, "/src/a.jpg", "/dst/a.jpg"); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}

	got, err := afero.ReadFile(fs, "/dst/a.jpg")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Errorf("destination = %q, want %q", got, "new")
	}
}

func TestCopyFileRejectsDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/src/nested", 0755); err != nil {
		t.Fatal(err)
	}

	_, err := CopyFile(fs, "/src/nested", "/dst/nested")
	if !errors.Is(err, ErrIsDirectory) {
		t.Fatalf("CopyFile(dir) error = %v, want ErrIsDirectory", err)
	}
}

func TestCopyFileMissingSource(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := CopyFile(fs, "/src/gone.jpg", "/dst/gone.jpg")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("CopyFile(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestCopyFileReadOnlyDestination(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("permission checks do not apply")
	}

	tmp := t.TempDir()
	fs := afero.NewOsFs()
	src := filepath.Join(tmp, "a.jpg")
	if err := os.WriteFile(src, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	locked := filepath.Join(tmp, "locked")
	if err := os.Mkdir(locked, 0555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	if _, err := CopyFile(fs, src, filepath.Join(locked, "a.jpg")); err == nil {
		t.Fatal("expected error copying into read-only directory")
	}
}
