package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// ErrNotDirectory is returned when a path expected to be a directory is not.
var ErrNotDirectory = errors.New("not a directory")

// ListClasses returns the names of the immediate subdirectories of dir,
// sorted lexicographically. Plain files are skipped. Symlinks are followed;
// a link whose target no longer exists counts as a plain file.
func ListClasses(fs afero.Fs, dir string) ([]string, error) {
	entries, err := readDir(fs, dir)
	if err != nil {
		return nil, err
	}

	var classes []string
	for _, entry := range entries {
		isDir := entry.IsDir()
		if entry.Mode()&os.ModeSymlink != 0 {
			target, err := fs.Stat(filepath.Join(dir, entry.Name()))
			if os.IsNotExist(err) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("resolving %s: %w", filepath.Join(dir, entry.Name()), err)
			}
			isDir = target.IsDir()
		}
		if isDir {
			classes = append(classes, entry.Name())
		}
	}

	sort.Strings(classes)
	return classes, nil
}

// ListFiles returns the names of every immediate entry of dir, sorted
// lexicographically so that sampling does not depend on listing order.
func ListFiles(fs afero.Fs, dir string) ([]string, error) {
	entries, err := readDir(fs, dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	sort.Strings(names)
	return names, nil
}

func readDir(fs afero.Fs, dir string) ([]os.FileInfo, error) {
	info, err := fs.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("reading directory %s: %w", dir, ErrNotDirectory)
	}

	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	return entries, nil
}
