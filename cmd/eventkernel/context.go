package main

import (
	"strings"
	"sync"

	"eventkernel/internal/config"
	"eventkernel/internal/store"
)

type commandContext struct {
	configFlag *string
	tenantFlag *string
	jsonOutput *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	storeOnce sync.Once
	st        *store.Store
}

func newCommandContext(configFlag, tenantFlag *string, jsonOutput *bool) *commandContext {
	return &commandContext{configFlag: configFlag, tenantFlag: tenantFlag, jsonOutput: jsonOutput}
}

// JSONMode returns true when the user passed --json.
func (c *commandContext) JSONMode() bool {
	return c != nil && c.jsonOutput != nil && *c.jsonOutput
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

func (c *commandContext) tenantID() string {
	if c.tenantFlag != nil && strings.TrimSpace(*c.tenantFlag) != "" {
		return strings.TrimSpace(*c.tenantFlag)
	}
	if cfg := c.configValue(); cfg != nil && cfg.DefaultTenantID != "" {
		return cfg.DefaultTenantID
	}
	return "default"
}

func (c *commandContext) storeValue() *store.Store {
	c.storeOnce.Do(func() {
		c.st = store.New(c.configValue())
	})
	return c.st
}
