package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateFetcher(); err != nil {
		return err
	}
	if err := c.validatePresentation(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateStorage() error {
	switch c.Storage.Driver {
	case DriverSQLite:
		return nil
	case DriverPostgres:
		if c.Storage.DSN == "" {
			return errors.New("storage.dsn is required for the postgres driver (or set DATABASE_URL)")
		}
		return nil
	default:
		return fmt.Errorf("storage.driver: unsupported value %q (use %q or %q)", c.Storage.Driver, DriverSQLite, DriverPostgres)
	}
}

func (c *Config) validateFetcher() error {
	if len(c.Fetcher.BinaryCandidates) == 0 {
		return errors.New("fetcher.binary_candidates must list at least one location")
	}
	if c.Fetcher.DownloadTimeout < 0 {
		return errors.New("fetcher.download_timeout must be >= 0")
	}
	return nil
}

func (c *Config) validatePresentation() error {
	if _, err := LoadLocation(c.Presentation.Timezone); err != nil {
		return fmt.Errorf("presentation.timezone: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
