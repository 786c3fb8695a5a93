package block

import (
	"os"

	verrors "github.com/jturbide/vhost/internal/errors"
	"github.com/jturbide/vhost/internal/files"
)

// Options controls a single Sync call.
type Options struct {
	Force  bool
	Backup bool
	// CreateMissing starts from empty content when the file does not exist.
	// Main config files require it to be false, hosts files set it.
	CreateMissing bool
}

// Result describes the effect of Sync on one file.
type Result struct {
	Action Action
	Backup string
}

// Applied reports whether the file was rewritten.
func (r Result) Applied() bool {
	return r.Action.Changed()
}

// Syncer applies Merge to files on disk.
type Syncer struct {
	Backups files.Backuper
}

// NewSyncer creates a Syncer using b for backups.
func NewSyncer(b files.Backuper) *Syncer {
	return &Syncer{Backups: b}
}

// Sync reads path, merges payload into the block bounded by m and writes the
// result back in a single atomic replace. Unchanged and blocked merges do not
// touch the file and create no backup. When a backup is requested and fails,
// the file is left as is.
func (s *Syncer) Sync(path string, m Markers, payload string, opts Options) (Result, error) {
	data, err := os.ReadFile(path)
	exists := err == nil
	switch {
	case os.IsNotExist(err) && opts.CreateMissing:
		data = nil
	case os.IsNotExist(err):
		return Result{}, verrors.WrapPath(verrors.ErrCodeIO, path, "file does not exist", err)
	case err != nil:
		return Result{}, verrors.IO(path, err)
	}

	updated, action := Merge(string(data), m, payload, opts.Force)
	if !action.Changed() {
		return Result{Action: action}, nil
	}

	res := Result{Action: action}
	if exists && opts.Backup && s.Backups != nil {
		backup, err := s.Backups.Backup(path)
		if err != nil {
			return Result{}, err
		}
		res.Backup = backup
	}

	if err := files.WriteAtomic(path, []byte(updated)); err != nil {
		return Result{}, err
	}
	return res, nil
}
