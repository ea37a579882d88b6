package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and bind address configuration.
type Paths struct {
	DataDir   string `toml:"data_dir"`
	AssetsDir string `toml:"assets_dir"`
	LogDir    string `toml:"log_dir"`
	APIBind   string `toml:"api_bind"`
	APIToken  string `toml:"api_token"`
}

// Storage selects the candidate repository backend.
type Storage struct {
	Driver string `toml:"driver"`
	DSN    string `toml:"dsn"`
}

// Fetcher contains configuration for the external media-fetch tool.
type Fetcher struct {
	BinaryCandidates    []string `toml:"binary_candidates"`
	Format              string   `toml:"format"`
	VersionTimeout      int      `toml:"version_timeout"`
	DownloadTimeout     int      `toml:"download_timeout"`
	UsernamePlaceholder string   `toml:"username_placeholder"`
}

// Assets controls how acquired media is addressed.
type Assets struct {
	URLPrefix       string   `toml:"url_prefix"`
	RemotePlatforms []string `toml:"remote_platforms"`
}

// Presentation carries switches the presentation layer reads. Core packages
// never inspect the environment for these.
type Presentation struct {
	Hosted   bool   `toml:"hosted"`
	Timezone string `toml:"timezone"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for clipscout.
//
// Configuration sections by subsystem:
//   - Paths: data, asset and log directories plus the API bind address
//   - Storage: candidate repository driver (sqlite or postgres)
//   - Fetcher: yt-dlp lookup locations, format selector, timeouts
//   - Assets: URL prefix and platforms that skip local download
//   - Presentation: hosted flag and statistics timezone
//   - Logging: log format and level
type Config struct {
	Paths        Paths        `toml:"paths"`
	Storage      Storage      `toml:"storage"`
	Fetcher      Fetcher      `toml:"fetcher"`
	Assets       Assets       `toml:"assets"`
	Presentation Presentation `toml:"presentation"`
	Logging      Logging      `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
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

	if err := cfg.normalize(newEnvLookup()); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
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

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("clipscout.toml")
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

// EnsureDirectories creates the data, log and asset directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir, c.VideosDir(), c.IconsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// VideosDir returns the directory acquired videos are written into.
func (c *Config) VideosDir() string {
	return filepath.Join(c.Paths.AssetsDir, "videos")
}

// IconsDir returns the directory acquired thumbnails are written into.
func (c *Config) IconsDir() string {
	return filepath.Join(c.Paths.AssetsDir, "icons")
}

// DatabasePath returns the SQLite database location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "candidates.db")
}

// LockPath returns the API server's single-instance lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "clipscout.lock")
}

// LogPath returns the log file the CLI and server append to.
func (c *Config) LogPath() string {
	return filepath.Join(c.Paths.LogDir, "clipscout.log")
}

// VersionTimeout returns the fetch-tool version probe timeout.
func (c *Config) VersionTimeout() time.Duration {
	return time.Duration(c.Fetcher.VersionTimeout) * time.Second
}

// DownloadTimeout returns the per-invocation fetch-tool timeout (0 disables it).
func (c *Config) DownloadTimeout() time.Duration {
	return time.Duration(c.Fetcher.DownloadTimeout) * time.Second
}

// Location resolves the statistics timezone.
func (c *Config) Location() *time.Location {
	loc, err := LoadLocation(c.Presentation.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// LoadLocation resolves a timezone name, treating blank and "Local" as the host zone.
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

// RemotePlatform reports whether platforms, an assets.remote_platforms list,
// names platform. Matching ignores case and surrounding space.
func RemotePlatform(platforms []string, platform string) bool {
	for _, p := range platforms {
		if strings.EqualFold(strings.TrimSpace(p), platform) {
			return true
		}
	}
	return false
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

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
