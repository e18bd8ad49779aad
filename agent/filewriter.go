package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// LockFile is created in the output directory while files are written.
const LockFile = ".codeprompt.lock"

// A SimpleFileWriter writes generated files below an output directory.
type SimpleFileWriter struct {
	logger *slog.Logger
	dir    string
}

// NewSimpleFileWriter creates a SimpleFileWriter writing below dir.
func NewSimpleFileWriter(logger *slog.Logger, dir string) *SimpleFileWriter {
	return &SimpleFileWriter{logger: logger, dir: dir}
}

// Lock takes an exclusive lock on the output directory, creating it if
// needed, so that concurrent runs do not interleave their writes. The
// returned func releases the lock.
func (fw *SimpleFileWriter) Lock(ctx context.Context) (func() error, error) {
	if err := os.MkdirAll(fw.dir, 0755); err != nil {
		return nil, err
	}
	path := filepath.Join(fw.dir, LockFile)
	l := flock.New(path)

	locked, err := l.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("locking output directory: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("output directory is locked: %q", fw.dir)
	}
	fw.logger.Debug("locked output directory", "dir", fw.dir)

	return func() error {
		err := l.Unlock()
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
		return err
	}, nil
}

// WriteFile writes the specified content to the path specified.
// Intermediate directories for path are created if they don't already exist.
// The file is replaced atomically so a failed write leaves any previous
// version in place.
// It errors if path is not local or if there is an IO error.
func (fw *SimpleFileWriter) WriteFile(path, content string) error {
	fw.logger.Info("writing file", "path", path)
	if !filepath.IsLocal(path) {
		return fmt.Errorf("path is not a local path: %q", path)
	}
	f := filepath.Join(fw.dir, path)
	if err := os.MkdirAll(filepath.Dir(f), 0755); err != nil {
		return err
	}
	return writeFileAtomic(f, []byte(content), 0644)
}

// writeFileAtomic writes data to a temporary file next to path, syncs it and
// renames it over path.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	cleanup := func(err error) error {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}
