package eventapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventkernel/internal/adapters"
	"eventkernel/internal/catalog"
	"eventkernel/internal/classify"
	"eventkernel/internal/config"
	"eventkernel/internal/eventapi"
	"eventkernel/internal/steps"
	"eventkernel/internal/store"
	"eventkernel/internal/turn"
)

func fixedNow() time.Time { return time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC) }

func newTestServer(t *testing.T) (*eventapi.Server, *config.Config) {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.LockTimeoutSeconds = 1
	cfg.LockPollIntervalMs = 10

	deps := steps.Dependencies{
		Catalog:    catalog.New(adapters.DefaultStaticCatalog()),
		Calendar:   adapters.NewInMemoryCalendar(),
		Verbalizer: adapters.DefaultTemplateVerbalizer(),
		Classifier: classify.New(nil, 0.5),
		Now:        fixedNow,
	}
	st := store.New(&cfg)
	runner := turn.New(st, deps, 6)
	return eventapi.New(&cfg, st, runner, nil), &cfg
}

func TestHealthIsUnauthenticatedEvenWithAuthEnabled(t *testing.T) {
	srv, cfg := newTestServer(t)
	cfg.AuthEnabled = true
	cfg.AuthMode = "bearer"
	cfg.APIKey = "secret"

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /health without credentials, got %d", rec.Code)
	}
}

func TestStartConversationRequiresAuthWhenEnabled(t *testing.T) {
	srv, cfg := newTestServer(t)
	cfg.AuthEnabled = true
	cfg.AuthMode = "bearer"
	cfg.APIKey = "secret"

	body, _ := json.Marshal(map[string]string{"email_body": "hi", "from_email": "a@b.com"})
	req := httptest.NewRequest(http.MethodPost, "/api/start-conversation", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without bearer token, got %d", rec.Code)
	}
}

func TestStartConversationCreatesEvent(t *testing.T) {
	srv, _ := newTestServer(t)

	body, _ := json.Marshal(map[string]string{
		"email_body": "Hello, we'd like to book a room for 20 guests.",
		"from_email": "client@example.com",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/start-conversation", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["event_id"] == "" || payload["event_id"] == nil {
		t.Fatal("expected a populated event_id")
	}
}

func TestPendingTasksReturnsEmptyListInitially(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/pending", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
