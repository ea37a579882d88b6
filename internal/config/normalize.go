package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize(env envLookup) error {
	if err := c.normalizePaths(env); err != nil {
		return err
	}
	c.normalizeStorage(env)
	c.normalizeFetcher()
	c.normalizeAssets()
	c.normalizeLogging()
	c.Presentation.Timezone = strings.TrimSpace(c.Presentation.Timezone)
	if c.Presentation.Timezone == "" {
		c.Presentation.Timezone = defaultTimezone
	}
	return nil
}

func (c *Config) normalizePaths(env envLookup) error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.AssetsDir) == "" {
		c.Paths.AssetsDir = defaultAssetsDir
	}
	if c.Paths.AssetsDir, err = expandPath(c.Paths.AssetsDir); err != nil {
		return fmt.Errorf("paths.assets_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	if c.Paths.APIToken == "" {
		if value, ok := env.first("CLIPSCOUT_API_TOKEN"); ok {
			c.Paths.APIToken = value
		}
	}
	c.Paths.APIToken = strings.TrimSpace(c.Paths.APIToken)
	return nil
}

func (c *Config) normalizeStorage(env envLookup) {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case "":
		c.Storage.Driver = defaultStorageDriver
	case "sqlite3":
		c.Storage.Driver = DriverSQLite
	case "postgresql", "pgx":
		c.Storage.Driver = DriverPostgres
	}
	c.Storage.DSN = strings.TrimSpace(c.Storage.DSN)
	if c.Storage.Driver == DriverPostgres && c.Storage.DSN == "" {
		if value, ok := env.first("CLIPSCOUT_DATABASE_URL", "DATABASE_URL"); ok {
			c.Storage.DSN = value
		}
	}
}

func (c *Config) normalizeFetcher() {
	candidates := make([]string, 0, len(c.Fetcher.BinaryCandidates))
	seen := make(map[string]struct{}, len(c.Fetcher.BinaryCandidates))
	for _, candidate := range c.Fetcher.BinaryCandidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		if strings.HasPrefix(candidate, "~") {
			if expanded, err := expandPath(candidate); err == nil {
				candidate = expanded
			}
		}
		if _, ok := seen[candidate]; ok {
			continue
		}
		seen[candidate] = struct{}{}
		candidates = append(candidates, candidate)
	}
	if len(candidates) == 0 {
		candidates = DefaultBinaryCandidates()
	}
	c.Fetcher.BinaryCandidates = candidates

	c.Fetcher.Format = strings.TrimSpace(c.Fetcher.Format)
	if c.Fetcher.Format == "" {
		c.Fetcher.Format = defaultFetchFormat
	}
	if c.Fetcher.VersionTimeout <= 0 {
		c.Fetcher.VersionTimeout = defaultVersionTimeout
	}
	c.Fetcher.UsernamePlaceholder = strings.TrimSpace(c.Fetcher.UsernamePlaceholder)
	if c.Fetcher.UsernamePlaceholder == "" {
		c.Fetcher.UsernamePlaceholder = defaultUsernamePlaceholder
	}
}

func (c *Config) normalizeAssets() {
	prefix := strings.TrimSpace(c.Assets.URLPrefix)
	if prefix == "" {
		prefix = defaultAssetURLPrefix
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if len(prefix) > 1 {
		prefix = strings.TrimRight(prefix, "/")
	}
	c.Assets.URLPrefix = prefix

	platforms := c.Assets.RemotePlatforms[:0]
	for _, platform := range c.Assets.RemotePlatforms {
		platform = strings.ToLower(strings.TrimSpace(platform))
		if platform != "" {
			platforms = append(platforms, platform)
		}
	}
	c.Assets.RemotePlatforms = platforms
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
