package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/imgprep/subsample/internal/platform"
	"github.com/spf13/afero"
)

// ErrIsDirectory is returned when CopyFile is handed a directory.
var ErrIsDirectory = errors.New("is a directory")

const dirPerm os.FileMode = 0755

// ResetDir removes dir and everything below it, then recreates it empty.
// Parent directories are created as needed.
func ResetDir(fs afero.Fs, dir string) error {
	if err := fs.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing %s: %w", dir, err)
	}
	if err := fs.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}

// EnsureDir creates dir (and parents) if it does not exist.
func EnsureDir(fs afero.Fs, dir string) error {
	if err := fs.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}

// CopyFile copies the bytes of src to dst verbatim, overwriting dst if it
// exists, and carries over the permission bits and modification time.
// It returns the number of bytes written.
func CopyFile(fs afero.Fs, src, dst string) (int64, error) {
	srcInfo, err := fs.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("copying %s: %w", src, err)
	}
	if srcInfo.IsDir() {
		return 0, fmt.Errorf("copying %s: %w", src, ErrIsDirectory)
	}

	in, err := fs.Open(src)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", dst, err)
	}

	n, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		return n, fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return n, fmt.Errorf("closing %s: %w", dst, err)
	}

	if err := platform.PreserveMetadata(fs, dst, srcInfo); err != nil {
		return n, fmt.Errorf("setting metadata on %s: %w", dst, err)
	}
	return n, nil
}
