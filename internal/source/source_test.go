package source_test

import (
	"testing"

	"clipscout/internal/source"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		platform    source.Platform
		granularity source.Granularity
		handle      string
		videoID     string
	}{
		{"tiktok video", "https://www.tiktok.com/@alice/video/1234567890", source.PlatformTikTok, source.GranularityItem, "alice", "1234567890"},
		{"tiktok photo", "https://www.tiktok.com/@alice/photo/42?lang=en", source.PlatformTikTok, source.GranularityItem, "alice", "42"},
		{"tiktok profile", "https://www.tiktok.com/@alice", source.PlatformTikTok, source.GranularityProfile, "alice", ""},
		{"tiktok profile query", "https://www.tiktok.com/@alice?is_from_webapp=1", source.PlatformTikTok, source.GranularityProfile, "alice", ""},
		{"tiktok short link", "https://vm.tiktok.com/ZMabc123/", source.PlatformTikTok, source.GranularityItem, "", ""},
		{"tiktok t link", "https://www.tiktok.com/t/ZTabc/", source.PlatformTikTok, source.GranularityItem, "", ""},
		{"no scheme", "  www.tiktok.com/@bob  ", source.PlatformTikTok, source.GranularityProfile, "bob", ""},
		{"full width at", "https://www.tiktok.com/＠carol", source.PlatformTikTok, source.GranularityProfile, "carol", ""},
		{"youtube watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", source.PlatformYouTube, source.GranularityItem, "", "dQw4w9WgXcQ"},
		{"youtube shorts", "https://youtube.com/shorts/abcDEF12345?feature=share", source.PlatformYouTube, source.GranularityItem, "", "abcDEF12345"},
		{"youtube mobile", "https://m.youtube.com/watch?v=abcdefghijk", source.PlatformYouTube, source.GranularityItem, "", "abcdefghijk"},
		{"youtu.be", "https://youtu.be/abcdefghijk", source.PlatformYouTube, source.GranularityItem, "", "abcdefghijk"},
		{"unknown host falls back to tiktok rules", "https://www.youtube.com/@someone", source.PlatformTikTok, source.GranularityProfile, "someone", ""},
		{"garbage", "not a url", source.PlatformTikTok, source.GranularityItem, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := source.Classify(tt.raw)
			if got.Platform != tt.platform {
				t.Fatalf("platform: got %q want %q", got.Platform, tt.platform)
			}
			if got.Granularity != tt.granularity {
				t.Fatalf("granularity: got %q want %q", got.Granularity, tt.granularity)
			}
			if got.Handle != tt.handle {
				t.Fatalf("handle: got %q want %q", got.Handle, tt.handle)
			}
			if got.VideoID != tt.videoID {
				t.Fatalf("video id: got %q want %q", got.VideoID, tt.videoID)
			}
		})
	}
}

func TestClassifyTrimsURL(t *testing.T) {
	got := source.Classify("  https://www.tiktok.com/@a/video/1 \n")
	if got.URL != "https://www.tiktok.com/@a/video/1" {
		t.Fatalf("unexpected url: %q", got.URL)
	}
}

func TestThumbnailURL(t *testing.T) {
	yt := source.Classify("https://youtu.be/abcdefghijk")
	if yt.ThumbnailURL() != "https://i.ytimg.com/vi/abcdefghijk/hqdefault.jpg" {
		t.Fatalf("unexpected thumbnail: %q", yt.ThumbnailURL())
	}
	if tt := source.Classify("https://www.tiktok.com/@a/video/1"); tt.ThumbnailURL() != "" {
		t.Fatalf("expected no thumbnail for tiktok, got %q", tt.ThumbnailURL())
	}
}
