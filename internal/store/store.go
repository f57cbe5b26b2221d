package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"eventkernel/internal/config"
	"eventkernel/internal/eventmodel"
	"eventkernel/internal/workflowerr"
)

const (
	defaultLockTimeout  = 5 * time.Second
	defaultPollInterval = 100 * time.Millisecond
)

// Store resolves per-tenant document paths and guards them with sibling
// lock files (spec §4.7).
type Store struct {
	dataDir      string
	lockTimeout  time.Duration
	pollInterval time.Duration
}

// New builds a Store from application configuration.
func New(cfg *config.Config) *Store {
	s := &Store{
		dataDir:      "./data",
		lockTimeout:  defaultLockTimeout,
		pollInterval: defaultPollInterval,
	}
	if cfg == nil {
		return s
	}
	if cfg.DataDir != "" {
		s.dataDir = cfg.DataDir
	}
	if cfg.LockTimeoutSeconds > 0 {
		s.lockTimeout = time.Duration(cfg.LockTimeoutSeconds) * time.Second
	}
	if cfg.LockPollIntervalMs > 0 {
		s.pollInterval = time.Duration(cfg.LockPollIntervalMs) * time.Millisecond
	}
	return s
}

// DocumentPath returns the JSON document path the Store would use for a tenant.
func (s *Store) DocumentPath(tenantID string) string {
	return DocumentPath(s.dataDir, tenantID)
}

// Acquire blocks (with bounded backoff) until the tenant's sibling lock file
// can be created, or returns a retryable lock_timeout error.
func (s *Store) Acquire(ctx context.Context, tenantID string) (*Lease, error) {
	documentPath := s.DocumentPath(tenantID)
	if err := os.MkdirAll(filepath.Dir(documentPath), 0o755); err != nil {
		return nil, workflowerr.Wrap(workflowerr.ErrExternal, 0, "store.acquire", "create data directory", err)
	}

	lockPath := LockPath(documentPath)
	fl := flock.New(lockPath)

	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	ok, err := fl.TryLockContext(lockCtx, s.pollInterval)
	if err != nil {
		return nil, workflowerr.Wrap(workflowerr.ErrLockTimeout, 0, "store.acquire",
			fmt.Sprintf("acquire lock %s", lockPath), err)
	}
	if !ok {
		return nil, workflowerr.Wrap(workflowerr.ErrLockTimeout, 0, "store.acquire",
			fmt.Sprintf("timed out acquiring lock %s", lockPath), nil)
	}

	return &Lease{documentPath: documentPath, lockPath: lockPath, flock: fl}, nil
}

// WithLock acquires the tenant's lease, loads the document, invokes fn, and
// saves the (possibly mutated) document before releasing the lock when fn
// reports a change. It reproduces spec §4.1's "acquire → load → mutate →
// persist if requested → release" turn boundary in one call.
func (s *Store) WithLock(ctx context.Context, tenantID string, fn func(*eventmodel.Database) (persist bool, err error)) error {
	lease, err := s.Acquire(ctx, tenantID)
	if err != nil {
		return err
	}
	defer lease.Release()

	doc, err := lease.Load()
	if err != nil {
		return err
	}

	persist, err := fn(doc)
	if err != nil {
		return err
	}
	if !persist {
		return nil
	}
	return lease.Save(doc)
}
