package source

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

// Platform identifies the video platform a URL belongs to.
type Platform string

const (
	PlatformTikTok  Platform = "tiktok"
	PlatformYouTube Platform = "youtube"
)

// Granularity distinguishes a single post from an account listing.
type Granularity string

const (
	GranularityItem    Granularity = "item"
	GranularityProfile Granularity = "profile"
)

// Target is a classified submission.
type Target struct {
	URL         string
	Platform    Platform
	Granularity Granularity
	// Handle is the account handle without the leading "@", when present.
	Handle string
	// VideoID is the platform item id, when the URL names one.
	VideoID string
}

// IsProfile reports whether the target names an account rather than an item.
func (t Target) IsProfile() bool {
	return t.Granularity == GranularityProfile
}

var (
	handlePattern       = regexp.MustCompile(`@([^/?#\s]+)`)
	tiktokItemPattern   = regexp.MustCompile(`^/@[^/]+/(?:video|photo)/(\d+)`)
	tiktokShortPattern  = regexp.MustCompile(`^/t/([A-Za-z0-9_-]+)`)
	youtubeIDPattern    = regexp.MustCompile(`^[A-Za-z0-9_-]{6,}$`)
	youtubeShortsPrefix = "/shorts/"
)

// Classify inspects raw and returns its platform and granularity.
func Classify(raw string) Target {
	trimmed := strings.TrimSpace(raw)
	target := Target{
		URL:         trimmed,
		Platform:    PlatformTikTok,
		Granularity: GranularityItem,
		Handle:      ExtractHandle(trimmed),
	}

	parsed, ok := parse(trimmed)
	if !ok {
		return target
	}
	host := normalizeHost(parsed.Host)

	if id, ok := youtubeVideoID(host, parsed); ok {
		target.Platform = PlatformYouTube
		target.VideoID = id
		return target
	}

	switch host {
	case "vm.tiktok.com", "vt.tiktok.com":
		return target
	}
	path := parsed.EscapedPath()
	if decoded, err := url.PathUnescape(path); err == nil {
		path = width.Narrow.String(decoded)
	}
	if m := tiktokItemPattern.FindStringSubmatch(path); m != nil {
		target.VideoID = m[1]
		return target
	}
	if tiktokShortPattern.MatchString(path) {
		return target
	}
	if strings.HasPrefix(path, "/@") {
		target.Granularity = GranularityProfile
	}
	return target
}

// ExtractHandle returns the first @handle token in raw, folding full-width
// characters to their narrow forms first.
func ExtractHandle(raw string) string {
	folded := width.Narrow.String(raw)
	m := handlePattern.FindStringSubmatch(folded)
	if m == nil {
		return ""
	}
	handle, err := url.PathUnescape(m[1])
	if err != nil {
		return m[1]
	}
	return handle
}

// ThumbnailURL returns the platform-hosted thumbnail for remote-only targets.
func (t Target) ThumbnailURL() string {
	if t.Platform == PlatformYouTube && t.VideoID != "" {
		return "https://i.ytimg.com/vi/" + t.VideoID + "/hqdefault.jpg"
	}
	return ""
}

func parse(raw string) (*url.URL, bool) {
	candidate := width.Narrow.String(raw)
	if candidate == "" {
		return nil, false
	}
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}
	parsed, err := url.Parse(candidate)
	if err != nil || parsed.Host == "" {
		return nil, false
	}
	return parsed, true
}

func normalizeHost(host string) string {
	host = strings.ToLower(host)
	if i := strings.LastIndex(host, ":"); i > 0 && !strings.Contains(host[i:], "]") {
		host = host[:i]
	}
	return host
}

func youtubeVideoID(host string, parsed *url.URL) (string, bool) {
	switch host {
	case "youtu.be":
		id := strings.Trim(parsed.Path, "/")
		if i := strings.Index(id, "/"); i >= 0 {
			id = id[:i]
		}
		return id, youtubeIDPattern.MatchString(id)
	case "youtube.com", "www.youtube.com", "m.youtube.com", "music.youtube.com":
		if parsed.Path == "/watch" {
			id := parsed.Query().Get("v")
			return id, youtubeIDPattern.MatchString(id)
		}
		if strings.HasPrefix(parsed.Path, youtubeShortsPrefix) {
			id := strings.TrimPrefix(parsed.Path, youtubeShortsPrefix)
			if i := strings.Index(id, "/"); i >= 0 {
				id = id[:i]
			}
			return id, youtubeIDPattern.MatchString(id)
		}
	}
	return "", false
}
