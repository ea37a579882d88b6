package main

import (
	"strings"
	"testing"

	"clipscout/internal/deps"
	"clipscout/internal/preflight"
)

func TestRenderDependencyLinesAddsHintsForMissingTools(t *testing.T) {
	lines := renderDependencyLines([]deps.Status{
		{Name: "yt-dlp", Description: "Downloads videos", Detail: "fetch tool not found: tried yt-dlp"},
		{Name: "FFmpeg", Command: "/usr/bin/ffmpeg", Description: "Merges streams", Optional: true, Available: true},
	}, false)

	if len(lines) != 3 {
		t.Fatalf("expected status, hint and ffmpeg lines, got %q", lines)
	}
	requireContains(t, lines[0], "[ERROR] fetch tool not found")
	requireContains(t, lines[1], "binary_candidates")
	requireContains(t, lines[2], "[OK] /usr/bin/ffmpeg (Merges streams)")
}

func TestRenderDependencyLinesWarnsForOptionalTools(t *testing.T) {
	lines := renderDependencyLines([]deps.Status{
		{Name: "FFmpeg", Description: "Merges streams", Optional: true, Detail: `binary "ffmpeg" not found`},
	}, false)
	if len(lines) != 2 {
		t.Fatalf("expected status and hint, got %q", lines)
	}
	requireContains(t, lines[0], "[WARN]")
	requireContains(t, lines[1], "single-stream")
}

func TestRenderStatusLineColorizes(t *testing.T) {
	plain := renderStatusLine("Driver", statusInfo, "sqlite", false)
	if strings.Contains(plain, "\x1b[") {
		t.Fatalf("unexpected escape codes in %q", plain)
	}
	requireContains(t, plain, "Driver:")
	requireContains(t, plain, "[INFO] sqlite")

	colored := renderStatusLine("Driver", statusError, "", true)
	if !strings.HasPrefix(colored, ansiRed) || !strings.HasSuffix(colored, ansiReset) {
		t.Fatalf("expected red line, got %q", colored)
	}

	checks := renderPreflightLines([]preflight.Result{{Name: "Data directory", Passed: true, Detail: "/tmp (read/write ok)"}}, false)
	requireContains(t, checks[0], "[OK] /tmp (read/write ok)")
}
