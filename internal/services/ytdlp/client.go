package ytdlp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// VideoOptions controls a single video download.
type VideoOptions struct {
	// Format is the yt-dlp format selector, e.g. "bv*+ba/b".
	Format string
	// LatestOnly restricts a listing URL to its most recent item. When false,
	// playlist expansion is disabled.
	LatestOnly bool
}

// Metadata is the subset of --dump-json output clipscout reads.
type Metadata struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Uploader   string `json:"uploader"`
	Channel    string `json:"channel"`
	UploaderID string `json:"uploader_id"`
	Creator    string `json:"creator"`
	Extractor  string `json:"extractor_key"`
	Thumbnail  string `json:"thumbnail"`
}

// Identity returns the first non-empty of uploader, channel, uploader_id and creator.
func (m Metadata) Identity() string {
	for _, value := range []string{m.Uploader, m.Channel, m.UploaderID, m.Creator} {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// Fetcher defines the yt-dlp operations the acquisition engine relies on.
type Fetcher interface {
	Version(ctx context.Context) (string, error)
	DownloadVideo(ctx context.Context, url, dest string, opts VideoOptions) error
	DumpMetadata(ctx context.Context, url string) (Metadata, error)
	DownloadThumbnail(ctx context.Context, url, outputPrefix string) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithTimeout bounds every invocation except the version probe.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger routes download progress lines to logger at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// Client wraps yt-dlp CLI interactions.
type Client struct {
	binary  string
	timeout time.Duration
	exec    Executor
	logger  *slog.Logger
}

var _ Fetcher = (*Client)(nil)

// New constructs a yt-dlp client for the given binary.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("yt-dlp binary required")
	}
	client := &Client{
		binary: binary,
		exec:   commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Version runs --version and returns the first line of output.
func (c *Client) Version(ctx context.Context) (string, error) {
	var version string
	err := c.exec.Run(ctx, c.binary, []string{"--version"}, func(line string) {
		if version == "" {
			version = strings.TrimSpace(line)
		}
	})
	if err != nil {
		return "", fmt.Errorf("yt-dlp version: %w", err)
	}
	if version == "" {
		return "", errors.New("yt-dlp version: empty output")
	}
	return version, nil
}

// DownloadVideo writes the selected stream for url to dest.
func (c *Client) DownloadVideo(ctx context.Context, url, dest string, opts VideoOptions) error {
	if strings.TrimSpace(dest) == "" {
		return errors.New("destination path required")
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if err := c.exec.Run(ctx, c.binary, VideoArgs(url, dest, opts), c.progressSink("video")); err != nil {
		return fmt.Errorf("yt-dlp download video: %w", err)
	}
	return nil
}

// DumpMetadata reads the JSON description of url without downloading media.
func (c *Client) DumpMetadata(ctx context.Context, url string) (Metadata, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var first string
	err := c.exec.Run(ctx, c.binary, MetadataArgs(url), func(line string) {
		if first == "" && strings.HasPrefix(strings.TrimSpace(line), "{") {
			first = line
		}
	})
	if err != nil {
		return Metadata{}, fmt.Errorf("yt-dlp dump metadata: %w", err)
	}
	if first == "" {
		return Metadata{}, errors.New("yt-dlp dump metadata: no JSON output")
	}
	var meta Metadata
	if err := json.Unmarshal([]byte(first), &meta); err != nil {
		return Metadata{}, fmt.Errorf("decode metadata: %w", err)
	}
	return meta, nil
}

// DownloadThumbnail writes only the thumbnail for url. yt-dlp appends the
// image extension to outputPrefix.
func (c *Client) DownloadThumbnail(ctx context.Context, url, outputPrefix string) error {
	if strings.TrimSpace(outputPrefix) == "" {
		return errors.New("output prefix required")
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if err := c.exec.Run(ctx, c.binary, ThumbnailArgs(url, outputPrefix), c.progressSink("thumbnail")); err != nil {
		return fmt.Errorf("yt-dlp download thumbnail: %w", err)
	}
	return nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}

func (c *Client) progressSink(kind string) func(string) {
	if c.logger == nil {
		return nil
	}
	return func(line string) {
		if line = strings.TrimSpace(line); line != "" {
			c.logger.Debug("yt-dlp output", slog.String("kind", kind), slog.String("line", line))
		}
	}
}

// VideoArgs builds the argument list for a video download.
func VideoArgs(url, dest string, opts VideoOptions) []string {
	format := strings.TrimSpace(opts.Format)
	if format == "" {
		format = DefaultFormat
	}
	args := []string{"-f", format, "-o", dest, "--no-warnings"}
	if opts.LatestOnly {
		args = append(args, "--playlist-end", "1")
	} else {
		args = append(args, "--no-playlist")
	}
	return append(args, url)
}

// MetadataArgs builds the argument list for a metadata dump.
func MetadataArgs(url string) []string {
	return []string{"--dump-json", "--no-playlist", "--no-warnings", url}
}

// ThumbnailArgs builds the argument list for a thumbnail-only download.
func ThumbnailArgs(url, outputPrefix string) []string {
	return []string{"--write-thumbnail", "--skip-download", "-o", outputPrefix, "--no-warnings", url}
}

// DefaultFormat selects the best video+audio pair, falling back to the best single stream.
const DefaultFormat = "bv*+ba/b"
