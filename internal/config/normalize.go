package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	var err error
	if c.DataDir, err = expandPath(c.DataDir); err != nil {
		return fmt.Errorf("data_dir: %w", err)
	}
	if c.LogDir, err = expandPath(c.LogDir); err != nil {
		return fmt.Errorf("log_dir: %w", err)
	}
	if strings.TrimSpace(c.LogFormat) == "" {
		c.LogFormat = defaultLogFormat
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = defaultLogLevel
	}
	if strings.TrimSpace(c.APIBind) == "" {
		c.APIBind = defaultAPIBind
	}
	if strings.TrimSpace(c.AuthMode) == "" {
		c.AuthMode = defaultAuthMode
	}
	if strings.TrimSpace(c.DefaultTenantID) == "" {
		c.DefaultTenantID = defaultTenantID
	}
	if c.LockTimeoutSeconds <= 0 {
		c.LockTimeoutSeconds = defaultLockTimeout
	}
	if c.LockPollIntervalMs <= 0 {
		c.LockPollIntervalMs = defaultLockPollMs
	}
	if c.TurnMaxStepIterations <= 0 {
		c.TurnMaxStepIterations = defaultMaxIterations
	}
	if c.NonsenseThreshold <= 0 {
		c.NonsenseThreshold = defaultNonsenseGate
	}
	if c.CounterProposalLimit <= 0 {
		c.CounterProposalLimit = defaultCounterLimit
	}
	if c.DateProposalAttempts <= 0 {
		c.DateProposalAttempts = defaultDateAttempts
	}
	if len(c.SiteVisitWeekdays) == 0 {
		c.SiteVisitWeekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri"}
	}
	if len(c.SiteVisitHours) == 0 {
		c.SiteVisitHours = []int{10, 14, 16}
	}
	if strings.TrimSpace(c.DefaultOfferLanguage) == "" {
		c.DefaultOfferLanguage = defaultOfferLanguage
	}
	if c.HILCleanupIntervalSec <= 0 {
		c.HILCleanupIntervalSec = defaultCleanupSecs
	}
	return nil
}
