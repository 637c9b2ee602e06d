package platform

import (
	"os"
	"runtime"
	"time"

	"github.com/spf13/afero"
)

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(fs afero.Fs, path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return fs.Chmod(path, mode)
}

// PreserveMetadata copies the permission bits and modification time described
// by info onto path.
func PreserveMetadata(fs afero.Fs, path string, info os.FileInfo) error {
	if err := Chmod(fs, path, info.Mode().Perm()); err != nil {
		return err
	}
	mtime := info.ModTime()
	return fs.Chtimes(path, time.Now(), mtime)
}
