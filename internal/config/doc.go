// Package config loads, normalizes, and validates Shifttrack configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SHIFTTRACK_API_TOKEN and NTFY_TOPIC. The Config type centralizes every knob
// the daemon and CLI need, from the database location to wage defaults and
// paystub audit settings.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
