package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"eventkernel/internal/eventmodel"
	"eventkernel/internal/workflowerr"
)

// Lease represents a held file lock scoping one load→mutate→save cycle for a
// single tenant's document. Callers must call Release exactly once.
type Lease struct {
	documentPath string
	lockPath     string
	flock        *flock.Flock
}

// DocumentPath returns the JSON document path this lease guards.
func (l *Lease) DocumentPath() string {
	if l == nil {
		return ""
	}
	return l.documentPath
}

// Release drops the sibling lock file. Safe to call on a nil lease.
func (l *Lease) Release() error {
	if l == nil || l.flock == nil {
		return nil
	}
	return l.flock.Unlock()
}

// Load reads the tenant document, returning the default empty shape when no
// document exists yet, and backfills every event to the current schema
// (original_source's ensure_event_defaults, spec §4.7).
func (l *Lease) Load() (*eventmodel.Database, error) {
	data, err := os.ReadFile(l.documentPath)
	if errors.Is(err, fs.ErrNotExist) {
		return eventmodel.NewDatabase(), nil
	}
	if err != nil {
		return nil, workflowerr.Wrap(workflowerr.ErrExternal, 0, "store.load", "read document", err)
	}

	db := eventmodel.NewDatabase()
	if len(data) > 0 {
		if err := json.Unmarshal(data, db); err != nil {
			return nil, workflowerr.Wrap(workflowerr.ErrExternal, 0, "store.load", "parse document", err)
		}
	}
	db.Backfill()
	return db, nil
}

// Save persists the document atomically: write to a temp file in the same
// directory, fsync, then rename over the target so a crash mid-write can
// never leave a torn document on disk (spec §4.7).
func (l *Lease) Save(db *eventmodel.Database) error {
	if db == nil {
		return nil
	}

	payload, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return workflowerr.Wrap(workflowerr.ErrExternal, 0, "store.save", "marshal document", err)
	}

	dir := filepath.Dir(l.documentPath)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(l.documentPath)+".*.tmp")
	if err != nil {
		return workflowerr.Wrap(workflowerr.ErrExternal, 0, "store.save", "create temp file", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return workflowerr.Wrap(workflowerr.ErrExternal, 0, "store.save", "write temp file", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return workflowerr.Wrap(workflowerr.ErrExternal, 0, "store.save", "fsync temp file", err)
	}
	if err := tmp.Close(); err != nil {
		return workflowerr.Wrap(workflowerr.ErrExternal, 0, "store.save", "close temp file", err)
	}
	if err := os.Rename(tmpPath, l.documentPath); err != nil {
		return workflowerr.Wrap(workflowerr.ErrExternal, 0, "store.save", "rename temp file", err)
	}
	return nil
}
