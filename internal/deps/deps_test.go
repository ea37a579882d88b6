package deps

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"
)

func TestCheckBinaries(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stubs require a POSIX shell")
	}
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	if err := os.WriteFile(present, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available || results[0].Detail != "" {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[1].Available || results[1].Detail == "" {
		t.Fatalf("expected missing binary to be unavailable with detail, got %#v", results[1])
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}
	if results[2].Detail != "command not configured" {
		t.Fatalf("unexpected detail for blank command: %q", results[2].Detail)
	}
}

func TestLocatorReturnsFirstResponder(t *testing.T) {
	var probed []string
	locator := &Locator{
		Candidates: []string{"yt-dlp", "", "/opt/homebrew/bin/yt-dlp", "/usr/local/bin/yt-dlp"},
		Probe: func(_ context.Context, binary string) (string, error) {
			probed = append(probed, binary)
			if binary == "/opt/homebrew/bin/yt-dlp" {
				return "2025.01.15", nil
			}
			return "", errors.New("not found")
		},
	}
	binary, err := locator.Locate(context.Background())
	if err != nil {
		t.Fatalf("Locate returned error: %v", err)
	}
	if binary.Path != "/opt/homebrew/bin/yt-dlp" || binary.Version != "2025.01.15" {
		t.Fatalf("unexpected binary: %+v", binary)
	}
	if !reflect.DeepEqual(probed, []string{"yt-dlp", "/opt/homebrew/bin/yt-dlp"}) {
		t.Fatalf("unexpected probe order: %v", probed)
	}
}

func TestLocatorReportsNotFound(t *testing.T) {
	locator := &Locator{
		Candidates: []string{"a", "b"},
		Probe: func(context.Context, string) (string, error) {
			return "", errors.New("missing")
		},
	}
	_, err := locator.Locate(context.Background())
	if !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "a, b") {
		t.Fatalf("expected tried list in error, got %v", err)
	}
}

func TestLocatorWithRealProbe(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stubs require a POSIX shell")
	}
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken")
	working := filepath.Join(dir, "working")
	if err := os.WriteFile(broken, []byte("#!/bin/sh\nexit 3\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	if err := os.WriteFile(working, []byte("#!/bin/sh\necho 2024.12.06\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	locator := NewLocator([]string{filepath.Join(dir, "absent"), broken, working}, 0)
	binary, err := locator.Locate(context.Background())
	if err != nil {
		t.Fatalf("Locate returned error: %v", err)
	}
	if binary.Path != working || binary.Version != "2024.12.06" {
		t.Fatalf("unexpected binary: %+v", binary)
	}

	status := CheckFetchTool(context.Background(), locator)
	if !status.Available || status.Command != working {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestCheckFetchToolUnavailable(t *testing.T) {
	status := CheckFetchTool(context.Background(), &Locator{})
	if status.Available || !strings.Contains(status.Detail, "no install locations") {
		t.Fatalf("unexpected status: %+v", status)
	}
}
