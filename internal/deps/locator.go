package deps

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clipscout/internal/services/ytdlp"
)

// ErrToolNotFound reports that no candidate location answered the version probe.
var ErrToolNotFound = errors.New("fetch tool not found")

// ProbeFunc runs a version check against binary and returns the reported version.
type ProbeFunc func(ctx context.Context, binary string) (string, error)

// Binary is a located fetch tool.
type Binary struct {
	Path    string
	Version string
}

// Locator finds the first working fetch tool in an ordered candidate list.
type Locator struct {
	Candidates []string
	Timeout    time.Duration
	Probe      ProbeFunc
}

// NewLocator constructs a locator that probes candidates with yt-dlp --version.
func NewLocator(candidates []string, timeout time.Duration) *Locator {
	return &Locator{
		Candidates: append([]string(nil), candidates...),
		Timeout:    timeout,
		Probe:      versionProbe,
	}
}

// Locate probes each candidate in order and returns the first that responds.
func (l *Locator) Locate(ctx context.Context) (Binary, error) {
	probe := l.Probe
	if probe == nil {
		probe = versionProbe
	}
	var failures []string
	for _, candidate := range l.Candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return Binary{}, err
		}
		probeCtx, cancel := ctx, context.CancelFunc(func() {})
		if l.Timeout > 0 {
			probeCtx, cancel = context.WithTimeout(ctx, l.Timeout)
		}
		version, err := probe(probeCtx, candidate)
		cancel()
		if err == nil {
			return Binary{Path: candidate, Version: version}, nil
		}
		failures = append(failures, candidate)
	}
	if err := ctx.Err(); err != nil {
		return Binary{}, err
	}
	if len(failures) == 0 {
		return Binary{}, fmt.Errorf("%w: no install locations configured", ErrToolNotFound)
	}
	return Binary{}, fmt.Errorf("%w: tried %s", ErrToolNotFound, strings.Join(failures, ", "))
}

// CheckFetchTool reports fetch-tool availability for status output.
func CheckFetchTool(ctx context.Context, locator *Locator) Status {
	status := Status{
		Name:        "yt-dlp",
		Description: "Downloads videos, thumbnails and metadata",
	}
	if locator == nil {
		status.Detail = "locator not configured"
		return status
	}
	binary, err := locator.Locate(ctx)
	if err != nil {
		status.Detail = err.Error()
		return status
	}
	status.Command = binary.Path
	status.Available = true
	status.Detail = binary.Version
	return status
}

func versionProbe(ctx context.Context, binary string) (string, error) {
	client, err := ytdlp.New(binary)
	if err != nil {
		return "", err
	}
	return client.Version(ctx)
}
