package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"clipscout/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	chdir(t, t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "clipscout")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.VideosDir() != filepath.Join(wantData, "assets", "videos") {
		t.Fatalf("unexpected videos dir: %q", cfg.VideosDir())
	}
	if cfg.Paths.APIBind != "127.0.0.1:7488" {
		t.Fatalf("unexpected api bind: %q", cfg.Paths.APIBind)
	}
	if cfg.Storage.Driver != config.DriverSQLite {
		t.Fatalf("unexpected storage driver: %q", cfg.Storage.Driver)
	}
	if cfg.Fetcher.Format != "bv*+ba/b" {
		t.Fatalf("unexpected format: %q", cfg.Fetcher.Format)
	}
	if got := cfg.Fetcher.BinaryCandidates; len(got) != 3 || got[0] != "yt-dlp" {
		t.Fatalf("unexpected binary candidates: %v", got)
	}
	if cfg.Fetcher.UsernamePlaceholder != "unknown" {
		t.Fatalf("unexpected placeholder: %q", cfg.Fetcher.UsernamePlaceholder)
	}
	if !config.RemotePlatform(cfg.Assets.RemotePlatforms, "YouTube") || config.RemotePlatform(cfg.Assets.RemotePlatforms, "tiktok") {
		t.Fatalf("unexpected remote platforms: %v", cfg.Assets.RemotePlatforms)
	}
	if cfg.Presentation.Hosted {
		t.Fatal("expected hosted disabled by default")
	}
}

func TestLoadCustomConfigFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("CLIPSCOUT_API_TOKEN", "secret")

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[paths]
data_dir = "~/scout"
api_bind = " 0.0.0.0:9000 "

[fetcher]
binary_candidates = ["  ", "/custom/yt-dlp", "/custom/yt-dlp"]
format = ""

[assets]
url_prefix = "media/"
remote_platforms = [" YouTube ", ""]

[presentation]
hosted = true
timezone = "UTC"

[logging]
format = "JSON"
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.Paths.DataDir != filepath.Join(tempHome, "scout") {
		t.Fatalf("unexpected data dir: %q", cfg.Paths.DataDir)
	}
	if cfg.Paths.APIBind != "0.0.0.0:9000" {
		t.Fatalf("unexpected api bind: %q", cfg.Paths.APIBind)
	}
	if cfg.Paths.APIToken != "secret" {
		t.Fatalf("expected token from env, got %q", cfg.Paths.APIToken)
	}
	if got := cfg.Fetcher.BinaryCandidates; len(got) != 1 || got[0] != "/custom/yt-dlp" {
		t.Fatalf("unexpected binary candidates: %v", got)
	}
	if cfg.Fetcher.Format != "bv*+ba/b" {
		t.Fatalf("expected default format, got %q", cfg.Fetcher.Format)
	}
	if cfg.Assets.URLPrefix != "/media" {
		t.Fatalf("unexpected url prefix: %q", cfg.Assets.URLPrefix)
	}
	if len(cfg.Assets.RemotePlatforms) != 1 || cfg.Assets.RemotePlatforms[0] != "youtube" {
		t.Fatalf("unexpected remote platforms: %v", cfg.Assets.RemotePlatforms)
	}
	if !cfg.Presentation.Hosted {
		t.Fatal("expected hosted flag")
	}
	if cfg.Location().String() != "UTC" {
		t.Fatalf("unexpected location: %v", cfg.Location())
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestPostgresDriverReadsDatabaseURL(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())
	t.Setenv("DATABASE_URL", "postgres://scout@localhost/clipscout")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[storage]\ndriver = \"postgresql\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Storage.Driver != config.DriverPostgres {
		t.Fatalf("unexpected driver: %q", cfg.Storage.Driver)
	}
	if cfg.Storage.DSN != "postgres://scout@localhost/clipscout" {
		t.Fatalf("unexpected dsn: %q", cfg.Storage.DSN)
	}
}

func TestPostgresDriverReadsDotEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DATABASE_URL", "")
	t.Setenv("CLIPSCOUT_DATABASE_URL", "")
	workdir := t.TempDir()
	chdir(t, workdir)
	if err := os.WriteFile(filepath.Join(workdir, ".env"), []byte("DATABASE_URL=postgres://dotenv/db\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	path := filepath.Join(workdir, "config.toml")
	if err := os.WriteFile(path, []byte("[storage]\ndriver = \"postgres\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Storage.DSN != "postgres://dotenv/db" {
		t.Fatalf("expected dsn from .env, got %q", cfg.Storage.DSN)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"driver", func(c *config.Config) { c.Storage.Driver = "mysql" }, "storage.driver"},
		{"postgres without dsn", func(c *config.Config) { c.Storage.Driver = config.DriverPostgres }, "storage.dsn"},
		{"candidates", func(c *config.Config) { c.Fetcher.BinaryCandidates = nil }, "binary_candidates"},
		{"timeout", func(c *config.Config) { c.Fetcher.DownloadTimeout = -1 }, "download_timeout"},
		{"timezone", func(c *config.Config) { c.Presentation.Timezone = "Mars/Olympus" }, "presentation.timezone"},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"log level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestEnsureDirectoriesCreatesAssetTree(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.AssetsDir = filepath.Join(base, "assets")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir, cfg.VideosDir(), cfg.IconsDir()} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q: %v", dir, err)
		}
	}
}

func TestSampleConfigParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var cfg config.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	if cfg.Storage.Driver != "sqlite" {
		t.Fatalf("unexpected sample driver: %q", cfg.Storage.Driver)
	}
	if cfg.Fetcher.Format != "bv*+ba/b" {
		t.Fatalf("unexpected sample format: %q", cfg.Fetcher.Format)
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore cwd: %v", err)
		}
	})
}
