package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config encapsulates all configuration values for the event workflow kernel.
type Config struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`

	LogFormat string `toml:"log_format"`
	LogLevel  string `toml:"log_level"`

	APIBind string `toml:"api_bind"`
	Debug   bool   `toml:"debug"`

	AuthEnabled         bool     `toml:"auth_enabled"`
	AuthMode            string   `toml:"auth_mode"`
	APIKey              string   `toml:"api_key"`
	TenantHeaderEnabled bool     `toml:"tenant_header_enabled"`
	AllowedOrigins      []string `toml:"allowed_origins"`

	DefaultTenantID string `toml:"default_tenant_id"`

	LockTimeoutSeconds    int `toml:"lock_timeout_seconds"`
	LockPollIntervalMs    int `toml:"lock_poll_interval_ms"`
	TurnMaxStepIterations int `toml:"turn_max_step_iterations"`

	NonsenseThreshold     float64  `toml:"nonsense_threshold"`
	CounterProposalLimit  int      `toml:"counter_proposal_limit"`
	DateProposalAttempts  int      `toml:"date_proposal_attempts"`
	SiteVisitWeekdays     []string `toml:"site_visit_weekdays"`
	SiteVisitHours        []int    `toml:"site_visit_hours"`
	DefaultOfferLanguage  string   `toml:"default_offer_language"`
	HILCleanupIntervalSec int      `toml:"hil_cleanup_interval_seconds"`
}

const (
	defaultDataDirName   = "~/.local/share/eventkernel/data"
	defaultLogDirName    = "~/.local/share/eventkernel/logs"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultAPIBind       = "127.0.0.1:8787"
	defaultAuthMode      = "bearer"
	defaultTenantID      = "default"
	defaultLockTimeout   = 5
	defaultLockPollMs    = 100
	defaultMaxIterations = 6
	defaultNonsenseGate  = 0.5
	defaultCounterLimit  = 3
	defaultDateAttempts  = 3
	defaultCleanupSecs   = 300
	defaultOfferLanguage = "en"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		DataDir:               defaultDataDirName,
		LogDir:                defaultLogDirName,
		LogFormat:             defaultLogFormat,
		LogLevel:              defaultLogLevel,
		APIBind:               defaultAPIBind,
		AuthMode:              defaultAuthMode,
		DefaultTenantID:       defaultTenantID,
		LockTimeoutSeconds:    defaultLockTimeout,
		LockPollIntervalMs:    defaultLockPollMs,
		TurnMaxStepIterations: defaultMaxIterations,
		NonsenseThreshold:     defaultNonsenseGate,
		CounterProposalLimit:  defaultCounterLimit,
		DateProposalAttempts:  defaultDateAttempts,
		SiteVisitWeekdays:     []string{"Mon", "Tue", "Wed", "Thu", "Fri"},
		SiteVisitHours:        []int{10, 14, 16},
		DefaultOfferLanguage:  defaultOfferLanguage,
		HILCleanupIntervalSec: defaultCleanupSecs,
	}
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/eventkernel/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// applyEnvOverrides layers recognized environment variables over file/default values,
// matching the env-var surface the HTTP layer documents for operators.
func (c *Config) applyEnvOverrides() {
	if v, ok := os.LookupEnv("AUTH_ENABLED"); ok {
		c.AuthEnabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v, ok := os.LookupEnv("AUTH_MODE"); ok && v != "" {
		c.AuthMode = v
	}
	if v, ok := os.LookupEnv("API_KEY"); ok && v != "" {
		c.APIKey = v
	}
	if v, ok := os.LookupEnv("TENANT_HEADER_ENABLED"); ok {
		c.TenantHeaderEnabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v, ok := os.LookupEnv("ALLOWED_ORIGINS"); ok && v != "" {
		c.AllowedOrigins = strings.Split(v, ",")
	}
	if v, ok := os.LookupEnv("OE_DEBUG"); ok {
		c.Debug = v == "1" || strings.EqualFold(v, "true")
	}
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/eventkernel/config.toml")
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("eventkernel.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the configuration references.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.DataDir, c.LogDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
