package organize

import (
	"io"
	"os"
	"path/filepath"
	"runtime"

	"flatcopy/internal/errors"
	"flatcopy/pkg/types"
)

// Replaceable so tests can simulate read and rename failures.
var (
	openFunc   = os.Open
	renameFunc = os.Rename
)

// EnsureDestination creates dir and any missing parents. Failure is fatal
// for the run.
func EnsureDestination(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.NewFileError("cannot create destination directory", dir, errors.DestinationUnavailable, err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return errors.NewFileError("cannot access destination directory", dir, errors.DestinationUnavailable, err)
	}
	if !info.IsDir() {
		return errors.NewFileError("destination is not a directory", dir, errors.DestinationUnavailable, nil)
	}
	return nil
}

// Copier writes one file's bytes to its reserved destination.
type Copier struct{}

// Copy streams task.Source into a temporary file next to task.Dest and
// renames it into place, replacing whatever was there. The destination
// therefore never holds a partial file. Returns the number of bytes copied.
func (c *Copier) Copy(task types.CopyTask) (int64, error) {
	src, err := openFunc(task.Source)
	if err != nil {
		return 0, errors.NewCopyError("cannot read source", task.Source, task.Dest, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return 0, errors.NewCopyError("cannot stat source", task.Source, task.Dest, err)
	}

	dir := filepath.Dir(task.Dest)
	tmp, err := os.CreateTemp(dir, ".flatcopy-*.tmp")
	if err != nil {
		return 0, errors.NewCopyError("cannot create temporary file", task.Source, task.Dest, err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	n, err := io.Copy(tmp, src)
	if err != nil {
		return 0, errors.NewCopyError("copy failed", task.Source, task.Dest, err)
	}
	if runtime.GOOS != "windows" {
		if err := tmp.Chmod(info.Mode().Perm()); err != nil {
			return 0, errors.NewCopyError("cannot set permissions", task.Source, task.Dest, err)
		}
	}
	if err := tmp.Sync(); err != nil {
		return 0, errors.NewCopyError("cannot flush destination", task.Source, task.Dest, err)
	}
	if err := tmp.Close(); err != nil {
		return 0, errors.NewCopyError("cannot close destination", task.Source, task.Dest, err)
	}
	if err := renameFunc(tmpName, task.Dest); err != nil {
		return 0, errors.NewCopyError("cannot move file into place", task.Source, task.Dest, err)
	}
	return n, nil
}
