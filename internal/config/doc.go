// Package config loads, normalizes, and validates clipscout configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// DATABASE_URL, also read from a .env file in the working directory. The Config
// type centralizes every knob the CLI and API server need, so data and asset
// directories, the storage driver, and fetch-tool settings are discovered in one
// pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
