package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"eventkernel/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("AUTH_ENABLED", "")
	t.Setenv("API_KEY", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "eventkernel", "data")
	if cfg.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.DataDir, wantData)
	}
	if cfg.APIBind != "127.0.0.1:8787" {
		t.Fatalf("unexpected api bind: %q", cfg.APIBind)
	}
	if cfg.NonsenseThreshold != 0.5 {
		t.Fatalf("expected default nonsense threshold 0.5, got %v", cfg.NonsenseThreshold)
	}
	if cfg.CounterProposalLimit != 3 {
		t.Fatalf("expected default counter proposal limit 3, got %d", cfg.CounterProposalLimit)
	}
	if len(cfg.SiteVisitWeekdays) != 5 {
		t.Fatalf("expected 5 default site visit weekdays, got %d", len(cfg.SiteVisitWeekdays))
	}
}

func TestLoadRespectsEnvOverrides(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("AUTH_ENABLED", "1")
	t.Setenv("API_KEY", "secret")
	t.Setenv("AUTH_MODE", "api-key")
	t.Setenv("TENANT_HEADER_ENABLED", "1")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !cfg.AuthEnabled {
		t.Fatal("expected auth enabled from env")
	}
	if cfg.APIKey != "secret" {
		t.Fatalf("unexpected api key: %q", cfg.APIKey)
	}
	if !cfg.TenantHeaderEnabled {
		t.Fatal("expected tenant header routing enabled from env")
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("expected 2 allowed origins, got %d", len(cfg.AllowedOrigins))
	}
}

func TestValidateRejectsMissingAPIKeyWhenAuthEnabled(t *testing.T) {
	cfg := config.Default()
	cfg.AuthEnabled = true
	cfg.APIKey = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for missing api key")
	}
}

func TestValidateRejectsBadNonsenseThreshold(t *testing.T) {
	cfg := config.Default()
	cfg.NonsenseThreshold = 1.5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for out-of-range nonsense threshold")
	}
}

func TestDefaultConfigPathUnderHome(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	path, err := config.DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath returned error: %v", err)
	}
	if !filepath.IsAbs(path) {
		t.Fatalf("expected absolute path, got %q", path)
	}
	if want := filepath.Join(tempHome, ".config", "eventkernel", "config.toml"); path != want {
		t.Fatalf("expected default config path under HOME: got %q want %q", path, want)
	}
	if _, err := os.Stat(filepath.Dir(tempHome)); err != nil {
		t.Fatalf("temp home unexpectedly missing: %v", err)
	}
}
