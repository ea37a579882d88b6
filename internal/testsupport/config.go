package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"clipscout/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.AssetsDir = filepath.Join(base, "assets")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.APIBind = "127.0.0.1:0"
	cfgVal.Presentation.Timezone = "UTC"
	cfgVal.Fetcher.BinaryCandidates = []string{filepath.Join(base, "bin", "missing-yt-dlp")}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithHosted marks the config as a hosted deployment.
func WithHosted() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Presentation.Hosted = true
	}
}

// WithAPIToken sets the bearer token the API server requires.
func WithAPIToken(token string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.APIToken = token
	}
}

// stubFetchTool mimics the yt-dlp invocations clipscout makes: it answers
// --version, prints canned JSON for --dump-json, and writes placeholder files
// for video and thumbnail downloads. URLs containing "unavailable" or
// "forbidden" fail the way the real tool does.
const stubFetchTool = `#!/bin/sh
out=""
mode="video"
url=""
while [ $# -gt 0 ]; do
  case "$1" in
    --version) echo "2025.01.01"; exit 0 ;;
    -o) shift; out="$1" ;;
    --write-thumbnail) mode="thumbnail" ;;
    --dump-json) mode="json" ;;
    -*) ;;
    *) url="$1" ;;
  esac
  shift
done
case "$url" in
  *unavailable*) echo "ERROR: [TikTok] 1: Video unavailable" >&2; exit 1 ;;
  *forbidden*) echo "ERROR: HTTP Error 403: Forbidden" >&2; exit 1 ;;
esac
case "$mode" in
  json) echo '{"id":"1","uploader":"stubuser"}' ;;
  thumbnail) printf 'img' > "$out.webp" ;;
  *) printf 'video' > "$out" ;;
esac
`

// WithStubbedFetchTool writes a fake yt-dlp into the temp tree and makes it
// the only binary candidate.
func WithStubbedFetchTool() ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		target := filepath.Join(binDir, "yt-dlp")
		if err := os.WriteFile(target, []byte(stubFetchTool), 0o755); err != nil {
			b.t.Fatalf("write stub yt-dlp: %v", err)
		}
		b.cfg.Fetcher.BinaryCandidates = []string{target}
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
