package files

import (
	"os"
	"time"

	verrors "github.com/jturbide/vhost/internal/errors"
)

// BackupLayout is the timestamp format appended to backup file names.
const BackupLayout = "20060102150405"

// Backuper copies a file aside before it is mutated.
type Backuper interface {
	Backup(path string) (string, error)
}

// Backups creates timestamped copies of files. Backups are never rotated or
// deleted. Two backups of the same file within one second share a name and
// the second overwrites the first.
type Backups struct {
	now func() time.Time
}

// NewBackups creates a backup manager using the wall clock.
func NewBackups() *Backups {
	return &Backups{now: time.Now}
}

// NewBackupsWithClock creates a backup manager with a custom clock (for testing)
func NewBackupsWithClock(now func() time.Time) *Backups {
	return &Backups{now: now}
}

// PathFor returns the backup name of path at time t.
func PathFor(path string, t time.Time) string {
	return path + ".bak-" + t.Format(BackupLayout)
}

// Backup copies the current bytes of path to <path>.bak-<YYYYMMDDHHMMSS>.
func (b *Backups) Backup(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", verrors.WrapPath(verrors.ErrCodeIO, path, "failed to read file for backup", err)
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dest := PathFor(path, b.now())
	if err := os.WriteFile(dest, data, mode); err != nil {
		return "", verrors.WrapPath(verrors.ErrCodeIO, dest, "failed to write backup", err)
	}
	return dest, nil
}
