package ytdlp_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"
	"time"

	"clipscout/internal/services/ytdlp"
)

type stubExecutor struct {
	lines []string
	err   error
	calls int
	args  [][]string
}

func (s *stubExecutor) Run(ctx context.Context, binary string, args []string, onStdout func(string)) error {
	s.calls++
	s.args = append(s.args, append([]string(nil), args...))
	if onStdout != nil {
		for _, line := range s.lines {
			onStdout(line)
		}
	}
	return s.err
}

func TestNewRequiresBinary(t *testing.T) {
	if _, err := ytdlp.New("  "); err == nil {
		t.Fatal("expected error for empty binary")
	}
}

func TestVersionReturnsFirstLine(t *testing.T) {
	exec := &stubExecutor{lines: []string{"2025.01.15", "extra"}}
	client, err := ytdlp.New("yt-dlp", ytdlp.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	version, err := client.Version(context.Background())
	if err != nil {
		t.Fatalf("Version returned error: %v", err)
	}
	if version != "2025.01.15" {
		t.Fatalf("unexpected version: %q", version)
	}
	if !reflect.DeepEqual(exec.args[0], []string{"--version"}) {
		t.Fatalf("unexpected args: %v", exec.args[0])
	}
}

func TestDownloadVideoArgs(t *testing.T) {
	exec := &stubExecutor{}
	client, _ := ytdlp.New("yt-dlp", ytdlp.WithExecutor(exec))

	if err := client.DownloadVideo(context.Background(), "https://www.tiktok.com/@a", "/tmp/v.mp4", ytdlp.VideoOptions{LatestOnly: true}); err != nil {
		t.Fatalf("DownloadVideo returned error: %v", err)
	}
	if err := client.DownloadVideo(context.Background(), "https://www.tiktok.com/@a/video/1", "/tmp/w.mp4", ytdlp.VideoOptions{Format: "b"}); err != nil {
		t.Fatalf("DownloadVideo returned error: %v", err)
	}

	want := [][]string{
		{"-f", "bv*+ba/b", "-o", "/tmp/v.mp4", "--no-warnings", "--playlist-end", "1", "https://www.tiktok.com/@a"},
		{"-f", "b", "-o", "/tmp/w.mp4", "--no-warnings", "--no-playlist", "https://www.tiktok.com/@a/video/1"},
	}
	if !reflect.DeepEqual(exec.args, want) {
		t.Fatalf("unexpected args:\n got %v\nwant %v", exec.args, want)
	}
}

func TestDumpMetadataDecodesIdentity(t *testing.T) {
	exec := &stubExecutor{lines: []string{
		"[debug] noise",
		`{"id":"123","uploader":"","channel":"chan","uploader_id":"uid"}`,
	}}
	client, _ := ytdlp.New("yt-dlp", ytdlp.WithExecutor(exec))
	meta, err := client.DumpMetadata(context.Background(), "https://youtu.be/abc")
	if err != nil {
		t.Fatalf("DumpMetadata returned error: %v", err)
	}
	if meta.ID != "123" || meta.Identity() != "chan" {
		t.Fatalf("unexpected metadata: %+v identity=%q", meta, meta.Identity())
	}
	if !reflect.DeepEqual(exec.args[0], []string{"--dump-json", "--no-playlist", "--no-warnings", "https://youtu.be/abc"}) {
		t.Fatalf("unexpected args: %v", exec.args[0])
	}
}

func TestDumpMetadataWithoutJSONFails(t *testing.T) {
	client, _ := ytdlp.New("yt-dlp", ytdlp.WithExecutor(&stubExecutor{lines: []string{"nothing"}}))
	if _, err := client.DumpMetadata(context.Background(), "u"); err == nil {
		t.Fatal("expected error without JSON output")
	}
}

func TestDownloadThumbnailArgs(t *testing.T) {
	exec := &stubExecutor{}
	client, _ := ytdlp.New("yt-dlp", ytdlp.WithExecutor(exec))
	if err := client.DownloadThumbnail(context.Background(), "u", "/icons/icon_1"); err != nil {
		t.Fatalf("DownloadThumbnail returned error: %v", err)
	}
	want := []string{"--write-thumbnail", "--skip-download", "-o", "/icons/icon_1", "--no-warnings", "u"}
	if !reflect.DeepEqual(exec.args[0], want) {
		t.Fatalf("unexpected args: %v", exec.args[0])
	}
}

func TestExecutorErrorPropagates(t *testing.T) {
	boom := &ytdlp.ExecError{Binary: "yt-dlp", Stderr: "ERROR: HTTP Error 403: Forbidden", Err: errors.New("exit status 1")}
	client, _ := ytdlp.New("yt-dlp", ytdlp.WithExecutor(&stubExecutor{err: boom}))
	err := client.DownloadVideo(context.Background(), "u", "/tmp/x.mp4", ytdlp.VideoOptions{})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := ytdlp.Output(err); !strings.Contains(got, "403") {
		t.Fatalf("expected stderr in output, got %q", got)
	}
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stubs require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "yt-dlp")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestCommandExecutorCapturesStderr(t *testing.T) {
	binary := writeScript(t, "echo 'ERROR: [TikTok] 1: Video unavailable' >&2\nexit 1\n")
	client, _ := ytdlp.New(binary)
	err := client.DownloadVideo(context.Background(), "u", filepath.Join(t.TempDir(), "v.mp4"), ytdlp.VideoOptions{})
	var execErr *ytdlp.ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected ExecError, got %T %v", err, err)
	}
	if !strings.Contains(execErr.Stderr, "Video unavailable") {
		t.Fatalf("unexpected stderr: %q", execErr.Stderr)
	}
}

func TestCommandExecutorVersion(t *testing.T) {
	binary := writeScript(t, "echo 2024.12.06\n")
	client, _ := ytdlp.New(binary)
	version, err := client.Version(context.Background())
	if err != nil {
		t.Fatalf("Version returned error: %v", err)
	}
	if version != "2024.12.06" {
		t.Fatalf("unexpected version: %q", version)
	}
}

func TestCommandExecutorHonoursCancellation(t *testing.T) {
	binary := writeScript(t, "exec sleep 5\n")
	client, _ := ytdlp.New(binary)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	err := client.DownloadThumbnail(ctx, "u", filepath.Join(t.TempDir(), "icon_1"))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
