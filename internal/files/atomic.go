package files

import (
	"os"
	"path/filepath"

	verrors "github.com/jturbide/vhost/internal/errors"
)

// WriteAtomic replaces the content of path in a single step: the data goes to
// a temporary file in the same directory which is then renamed over path.
// Readers see either the old or the new content, never a partial write. An
// existing file keeps its permission bits.
func WriteAtomic(path string, data []byte) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return verrors.IO(path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return verrors.IO(path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return verrors.IO(path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return verrors.IO(path, err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		cleanup()
		return verrors.IO(path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return verrors.IO(path, err)
	}
	return nil
}
