// Package config loads, normalizes, and validates hzcli configuration data.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours environment fallbacks such as OPENAI_API_KEY,
// optionally sourced from a .env file in the working directory. The Config
// type centralizes every knob the CLI needs so the data directory, content
// generator connection, and quiz defaults are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
