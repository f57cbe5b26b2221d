// Package config loads, normalizes, and validates event workflow kernel
// configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honors environment overrides such as
// AUTH_ENABLED and API_KEY. The Config type centralizes every knob the
// daemon and CLI need: where per-tenant state documents live, HTTP auth
// policy, and the tenant-configurable workflow thresholds (nonsense gate,
// counter-proposal limit, site-visit slots) that spec.md's open questions
// leave to operators.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
