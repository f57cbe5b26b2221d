package store_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"eventkernel/internal/config"
	"eventkernel/internal/eventmodel"
	"eventkernel/internal/store"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.LockTimeoutSeconds = 1
	cfg.LockPollIntervalMs = 10
	return &cfg
}

func TestDocumentPathRouting(t *testing.T) {
	if got := store.DocumentPath("/data", ""); got != filepath.Join("/data", "events_database.json") {
		t.Fatalf("unexpected default path: %s", got)
	}
	if got := store.DocumentPath("/data", "acme"); got != filepath.Join("/data", "events_acme.json") {
		t.Fatalf("unexpected tenant path: %s", got)
	}
}

func TestLockPathIsDotfileSibling(t *testing.T) {
	got := store.LockPath(filepath.Join("/data", "events_acme.json"))
	want := filepath.Join("/data", ".events_acme.json.lock")
	if got != want {
		t.Fatalf("lock path = %s, want %s", got, want)
	}
}

func TestLoadMissingDocumentReturnsDefault(t *testing.T) {
	s := store.New(testConfig(t))
	lease, err := s.Acquire(context.Background(), "acme")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer lease.Release()

	db, err := lease.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if db == nil || db.Events == nil || db.Clients == nil || db.Tasks == nil {
		t.Fatalf("expected default document shape, got %#v", db)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	cfg := testConfig(t)
	s := store.New(cfg)
	ctx := context.Background()

	if err := s.WithLock(ctx, "acme", func(db *eventmodel.Database) (bool, error) {
		db.CreateEventEntry("client@example.com", "thread-1", time.Now())
		return true, nil
	}); err != nil {
		t.Fatalf("WithLock save: %v", err)
	}

	var reloaded eventmodel.Database
	if err := s.WithLock(ctx, "acme", func(db *eventmodel.Database) (bool, error) {
		reloaded = *db
		return false, nil
	}); err != nil {
		t.Fatalf("WithLock load: %v", err)
	}

	if len(reloaded.Events) != 1 {
		t.Fatalf("expected 1 event after round trip, got %d", len(reloaded.Events))
	}
	if reloaded.Events[0].ClientEmail != "client@example.com" {
		t.Fatalf("unexpected client email: %q", reloaded.Events[0].ClientEmail)
	}
}

func TestSaveIsAtomicNoTempFileSurvives(t *testing.T) {
	cfg := testConfig(t)
	s := store.New(cfg)
	ctx := context.Background()

	if err := s.WithLock(ctx, "acme", func(db *eventmodel.Database) (bool, error) {
		db.CreateEventEntry("client@example.com", "thread-1", time.Now())
		return true, nil
	}); err != nil {
		t.Fatalf("WithLock: %v", err)
	}

	entries, err := os.ReadDir(cfg.DataDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) == ".tmp" {
			t.Fatalf("leftover temp file: %s", entry.Name())
		}
	}

	raw, err := os.ReadFile(store.DocumentPath(cfg.DataDir, "acme"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var doc eventmodel.Database
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal persisted document: %v", err)
	}
	if len(doc.Events) != 1 {
		t.Fatalf("expected 1 persisted event, got %d", len(doc.Events))
	}
}

func TestBackfillRunsOnLoad(t *testing.T) {
	cfg := testConfig(t)
	docPath := store.DocumentPath(cfg.DataDir, "")
	if err := os.MkdirAll(filepath.Dir(docPath), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	legacy := `{"events":[{"event_id":"ev-1"}],"clients":{},"tasks":[]}`
	if err := os.WriteFile(docPath, []byte(legacy), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s := store.New(cfg)
	lease, err := s.Acquire(context.Background(), "")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer lease.Release()

	db, err := lease.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if db.Events[0].Status == "" || db.Events[0].ThreadState == "" {
		t.Fatalf("expected backfilled defaults, got %#v", db.Events[0])
	}
}

func TestAcquireTimesOutWhenLockHeld(t *testing.T) {
	cfg := testConfig(t)
	s := store.New(cfg)
	ctx := context.Background()

	lease, err := s.Acquire(ctx, "acme")
	if err != nil {
		t.Fatalf("first Acquire: %v", err)
	}
	defer lease.Release()

	_, err = s.Acquire(ctx, "acme")
	if err == nil {
		t.Fatal("expected second Acquire to time out while lock is held")
	}
}
