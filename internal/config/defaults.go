package config

const (
	defaultConfigPath          = "~/.config/clipscout/config.toml"
	defaultDataDir             = "~/.local/share/clipscout"
	defaultAssetsDir           = "~/.local/share/clipscout/assets"
	defaultLogDir              = "~/.local/share/clipscout/logs"
	defaultAPIBind             = "127.0.0.1:7488"
	defaultStorageDriver       = "sqlite"
	defaultFetchFormat         = "bv*+ba/b"
	defaultVersionTimeout      = 10
	defaultDownloadTimeout     = 600
	defaultUsernamePlaceholder = "unknown"
	defaultAssetURLPrefix      = "/assets"
	defaultTimezone            = "Local"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Storage drivers understood by the store package.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DefaultBinaryCandidates is the ordered list of places yt-dlp is probed.
func DefaultBinaryCandidates() []string {
	return []string{
		"yt-dlp",
		"/opt/homebrew/bin/yt-dlp",
		"/usr/local/bin/yt-dlp",
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			AssetsDir: defaultAssetsDir,
			LogDir:    defaultLogDir,
			APIBind:   defaultAPIBind,
		},
		Storage: Storage{
			Driver: defaultStorageDriver,
		},
		Fetcher: Fetcher{
			BinaryCandidates:    DefaultBinaryCandidates(),
			Format:              defaultFetchFormat,
			VersionTimeout:      defaultVersionTimeout,
			DownloadTimeout:     defaultDownloadTimeout,
			UsernamePlaceholder: defaultUsernamePlaceholder,
		},
		Assets: Assets{
			URLPrefix:       defaultAssetURLPrefix,
			RemotePlatforms: []string{"youtube"},
		},
		Presentation: Presentation{
			Timezone: defaultTimezone,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
