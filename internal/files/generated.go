package files

import (
	"bytes"
	"os"

	verrors "github.com/jturbide/vhost/internal/errors"
)

// WriteAction is what WriteGenerated did to its target.
type WriteAction int

const (
	// WriteCreated means the file did not exist and was written.
	WriteCreated WriteAction = iota
	// WriteReplaced means the file existed with other content and was overwritten.
	WriteReplaced
	// WriteUnchanged means the file already held the exact content.
	WriteUnchanged
	// WriteBlocked means the file held other content and force was off.
	WriteBlocked
)

// String returns a short description of the action.
func (a WriteAction) String() string {
	switch a {
	case WriteCreated:
		return "created"
	case WriteReplaced:
		return "overwritten"
	case WriteUnchanged:
		return "unchanged"
	case WriteBlocked:
		return "exists, use --force to overwrite"
	default:
		return "unknown"
	}
}

// Changed reports whether the file on disk was modified.
func (a WriteAction) Changed() bool {
	return a == WriteCreated || a == WriteReplaced
}

// Policy governs how generated files are overwritten.
type Policy struct {
	Force  bool
	Backup bool
}

// WriteResult describes the effect of WriteGenerated.
type WriteResult struct {
	Action WriteAction
	Backup string
}

// Writer writes generated files that are owned entirely by the tool.
type Writer struct {
	Backups Backuper
}

// NewWriter creates a Writer using b for backups.
func NewWriter(b Backuper) *Writer {
	return &Writer{Backups: b}
}

// WriteGenerated writes content to path under the full-overwrite policy: a
// missing file is created, an identical file is left alone, a different file
// is only replaced when policy.Force is set, after a backup when policy.Backup
// is set. A failed backup aborts the write.
func (w *Writer) WriteGenerated(path string, content []byte, policy Policy) (WriteResult, error) {
	current, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if err := WriteAtomic(path, content); err != nil {
			return WriteResult{}, err
		}
		return WriteResult{Action: WriteCreated}, nil
	case err != nil:
		return WriteResult{}, verrors.IO(path, err)
	}

	if bytes.Equal(current, content) {
		return WriteResult{Action: WriteUnchanged}, nil
	}
	if !policy.Force {
		return WriteResult{Action: WriteBlocked}, nil
	}

	var res WriteResult
	if policy.Backup && w.Backups != nil {
		backup, err := w.Backups.Backup(path)
		if err != nil {
			return WriteResult{}, err
		}
		res.Backup = backup
	}

	if err := WriteAtomic(path, content); err != nil {
		return WriteResult{}, err
	}
	res.Action = WriteReplaced
	return res, nil
}
