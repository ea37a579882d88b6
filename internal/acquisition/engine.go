package acquisition

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"clipscout/internal/config"
	"clipscout/internal/deps"
	"clipscout/internal/fileutil"
	"clipscout/internal/logging"
	"clipscout/internal/services"
	"clipscout/internal/services/ytdlp"
	"clipscout/internal/source"
)

// Assets are the addressable results of one acquisition.
type Assets struct {
	VideoPath string
	IconPath  string
	Username  string
}

// Locator resolves the fetch tool binary.
type Locator interface {
	Locate(ctx context.Context) (deps.Binary, error)
}

// FetcherFactory builds a fetcher for a located binary.
type FetcherFactory func(binary string) (ytdlp.Fetcher, error)

// Options configures where assets land and how they are addressed.
type Options struct {
	VideosDir           string
	IconsDir            string
	URLPrefix           string
	Format              string
	UsernamePlaceholder string
	RemotePlatforms     []string

	// DownloadTimeout bounds each fetch tool invocation; zero means no limit.
	DownloadTimeout time.Duration
}

// OptionsFromConfig derives engine options from application config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		VideosDir:           cfg.VideosDir(),
		IconsDir:            cfg.IconsDir(),
		URLPrefix:           cfg.Assets.URLPrefix,
		Format:              cfg.Fetcher.Format,
		UsernamePlaceholder: cfg.Fetcher.UsernamePlaceholder,
		RemotePlatforms:     append([]string(nil), cfg.Assets.RemotePlatforms...),
		DownloadTimeout:     cfg.DownloadTimeout(),
	}
}

// EngineOption customizes an Engine.
type EngineOption func(*Engine)

// WithFetcherFactory replaces the subprocess fetcher (primarily for tests).
func WithFetcherFactory(factory FetcherFactory) EngineOption {
	return func(e *Engine) {
		if factory != nil {
			e.newFetcher = factory
		}
	}
}

// WithClock overrides the stamp clock.
func WithClock(clock func() time.Time) EngineOption {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// Engine drives the fetch tool for one submission at a time; concurrent
// calls are safe and never share a filename.
type Engine struct {
	locator    Locator
	newFetcher FetcherFactory
	opts       Options
	clock      func() time.Time
	lastStamp  atomic.Int64
	logger     *slog.Logger
}

// NewEngine constructs an acquisition engine.
func NewEngine(locator Locator, opts Options, logger *slog.Logger, extra ...EngineOption) *Engine {
	if strings.TrimSpace(opts.URLPrefix) == "" {
		opts.URLPrefix = "/assets"
	}
	if strings.TrimSpace(opts.Format) == "" {
		opts.Format = ytdlp.DefaultFormat
	}
	if strings.TrimSpace(opts.UsernamePlaceholder) == "" {
		opts.UsernamePlaceholder = "unknown"
	}
	componentLogger := logging.NewComponentLogger(logger, "acquisition")
	e := &Engine{
		locator: locator,
		newFetcher: func(binary string) (ytdlp.Fetcher, error) {
			return ytdlp.New(binary,
				ytdlp.WithTimeout(opts.DownloadTimeout),
				ytdlp.WithLogger(componentLogger),
			)
		},
		opts:   opts,
		clock:  time.Now,
		logger: componentLogger,
	}
	for _, opt := range extra {
		opt(e)
	}
	return e
}

// Acquire retrieves the video, username and thumbnail for target.
func (e *Engine) Acquire(ctx context.Context, target source.Target) (Assets, error) {
	if e.locator == nil {
		return Assets{}, ToolNotInstalled(errors.New("no locator configured"))
	}
	binary, err := e.locator.Locate(services.WithStage(ctx, "locate"))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Assets{}, ctxErr
		}
		return Assets{}, ToolNotInstalled(err)
	}
	fetcher, err := e.newFetcher(binary.Path)
	if err != nil {
		return Assets{}, services.Wrap(services.ErrConfiguration, "acquire", "build fetcher", binary.Path, err)
	}

	logger := logging.WithContext(ctx, e.logger).With(
		logging.Args(logging.TargetAttrs(string(target.Platform), string(target.Granularity))...)...,
	)
	logger.Debug("fetch tool located", logging.String("binary", binary.Path), logging.String("version", binary.Version))

	stamp := e.nextStamp()
	var assets Assets

	if e.isRemote(target.Platform) {
		assets.VideoPath = target.URL
		assets.IconPath = target.ThumbnailURL()
	} else {
		videoPath, err := e.fetchVideo(services.WithStage(ctx, "video"), fetcher, target, stamp)
		if err != nil {
			return Assets{}, err
		}
		assets.VideoPath = videoPath
		logger.Info("video downloaded", logging.String("video_path", videoPath))
	}

	assets.Username = e.resolveUsername(services.WithStage(ctx, "username"), fetcher, target)
	if err := ctx.Err(); err != nil {
		return Assets{}, err
	}

	if assets.IconPath == "" {
		assets.IconPath = e.fetchThumbnail(services.WithStage(ctx, "thumbnail"), fetcher, target, stamp)
		if err := ctx.Err(); err != nil {
			return Assets{}, err
		}
	}
	return assets, nil
}

func (e *Engine) fetchVideo(ctx context.Context, fetcher ytdlp.Fetcher, target source.Target, stamp int64) (string, error) {
	if err := os.MkdirAll(e.opts.VideosDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrConfiguration, "video", "create videos dir", e.opts.VideosDir, err)
	}
	name := "video_" + strconv.FormatInt(stamp, 10) + ".mp4"
	dest := filepath.Join(e.opts.VideosDir, name)
	err := fetcher.DownloadVideo(ctx, target.URL, dest, ytdlp.VideoOptions{
		Format:     e.opts.Format,
		LatestOnly: target.IsProfile(),
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		classified := Classify(ytdlp.Output(err), target.IsProfile(), err)
		logging.WithContext(ctx, e.logger).Error("video download failed",
			logging.String(logging.FieldEventType, "acquisition_failed"),
			logging.String("category", string(classified.Category)),
			logging.String("detail", classified.Detail),
		)
		return "", classified
	}
	return e.assetURL("videos", name), nil
}

func (e *Engine) resolveUsername(ctx context.Context, fetcher ytdlp.Fetcher, target source.Target) string {
	meta, err := fetcher.DumpMetadata(ctx, target.URL)
	if err == nil {
		if identity := meta.Identity(); identity != "" {
			return identity
		}
	} else if ctx.Err() == nil {
		logging.WarnWithContext(logging.WithContext(ctx, e.logger), "username lookup failed", "username_lookup_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check yt-dlp can read metadata for this URL"),
			logging.String(logging.FieldImpact, "username falls back to the URL handle or placeholder"),
		)
	}
	if target.Handle != "" {
		return target.Handle
	}
	return e.opts.UsernamePlaceholder
}

func (e *Engine) fetchThumbnail(ctx context.Context, fetcher ytdlp.Fetcher, target source.Target, stamp int64) string {
	logger := logging.WithContext(ctx, e.logger)
	warn := func(msg, hint string, attrs ...logging.Attr) {
		attrs = append(attrs,
			logging.String(logging.FieldErrorHint, hint),
			logging.String(logging.FieldImpact, "candidate is stored without an icon"),
		)
		logging.WarnWithContext(logger, msg, "thumbnail_missing", attrs...)
	}

	if err := os.MkdirAll(e.opts.IconsDir, 0o755); err != nil {
		warn("thumbnail directory unavailable", "check assets_dir permissions", logging.Error(err))
		return ""
	}
	prefix := "icon_" + strconv.FormatInt(stamp, 10)
	if err := fetcher.DownloadThumbnail(ctx, target.URL, filepath.Join(e.opts.IconsDir, prefix)); err != nil {
		if ctx.Err() == nil {
			warn("thumbnail download failed", "retry later or check the URL", logging.Error(err))
		}
		return ""
	}

	found, err := findPrefixed(e.opts.IconsDir, prefix)
	if err != nil {
		warn("thumbnail scan failed", "check assets_dir permissions", logging.Error(err))
		return ""
	}
	if found == "" {
		warn("thumbnail not written", "the platform may not expose a thumbnail for this URL")
		return ""
	}

	final := prefix + normalizeExt(filepath.Ext(strings.TrimPrefix(found, prefix)))
	if found != final {
		if err := fileutil.MoveFile(filepath.Join(e.opts.IconsDir, found), filepath.Join(e.opts.IconsDir, final)); err != nil {
			warn("thumbnail rename failed", "check assets_dir permissions", logging.Error(err))
			return ""
		}
	}
	return e.assetURL("icons", final)
}

// findPrefixed returns the first entry named prefix or prefix plus an extension.
func findPrefixed(dir, prefix string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if name == prefix || strings.HasPrefix(name, prefix+".") {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", nil
	}
	sort.Strings(names)
	return names[0], nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	switch ext {
	case "", ".":
		return ".jpg"
	case ".jpeg":
		return ".jpg"
	default:
		return ext
	}
}

func (e *Engine) assetURL(kind, name string) string {
	return path.Join(e.opts.URLPrefix, kind, name)
}

func (e *Engine) isRemote(platform source.Platform) bool {
	return config.RemotePlatform(e.opts.RemotePlatforms, string(platform))
}

func (e *Engine) nextStamp() int64 {
	now := e.clock().UnixMilli()
	for {
		last := e.lastStamp.Load()
		next := now
		if next <= last {
			next = last + 1
		}
		if e.lastStamp.CompareAndSwap(last, next) {
			return next
		}
	}
}
