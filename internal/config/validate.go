package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAuth(); err != nil {
		return err
	}
	if err := c.validateThresholds(); err != nil {
		return err
	}
	if err := c.validateSiteVisit(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAuth() error {
	if !c.AuthEnabled {
		return nil
	}
	switch c.AuthMode {
	case "bearer", "api-key", "api_key":
	default:
		return fmt.Errorf("auth_mode %q is not recognized; expected bearer, api-key or api_key", c.AuthMode)
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return errors.New("api_key is required when auth_enabled is true")
	}
	return nil
}

func (c *Config) validateThresholds() error {
	if c.NonsenseThreshold < 0 || c.NonsenseThreshold > 1 {
		return errors.New("nonsense_threshold must be between 0 and 1")
	}
	if c.CounterProposalLimit < 1 {
		return errors.New("counter_proposal_limit must be at least 1")
	}
	if c.LockTimeoutSeconds < 1 {
		return errors.New("lock_timeout_seconds must be at least 1")
	}
	if c.TurnMaxStepIterations < 1 {
		return errors.New("turn_max_step_iterations must be at least 1")
	}
	return nil
}

func (c *Config) validateSiteVisit() error {
	for _, day := range c.SiteVisitWeekdays {
		switch day {
		case "Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun":
		default:
			return fmt.Errorf("site_visit_weekdays contains unrecognized weekday %q", day)
		}
	}
	for _, hour := range c.SiteVisitHours {
		if hour < 0 || hour > 23 {
			return fmt.Errorf("site_visit_hours contains out-of-range hour %d", hour)
		}
	}
	return nil
}
