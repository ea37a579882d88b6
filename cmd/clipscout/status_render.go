package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"clipscout/internal/deps"
	"clipscout/internal/preflight"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
)

var statusStyles = map[statusKind]struct{ label, color string }{
	statusInfo:  {"INFO", ansiCyan},
	statusOK:    {"OK", ansiGreen},
	statusWarn:  {"WARN", ansiYellow},
	statusError: {"ERROR", ansiRed},
}

const (
	statusLabelWidth = 18
	statusIndent     = "  "
	hintIndent       = statusIndent + "  -> "
)

// dependencyHints tells the operator how to fix a missing tool, keyed by
// deps.Status.Name.
var dependencyHints = map[string]string{
	"yt-dlp": "install yt-dlp or list its path under [fetcher] binary_candidates",
	"FFmpeg": "install ffmpeg; without it yt-dlp falls back to single-stream formats",
}

func fetchToolHint() string {
	return dependencyHints["yt-dlp"]
}

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	style := statusStyles[kind]
	text := "[" + style.label + "]"
	if message != "" {
		text += " " + message
	}
	line := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", text)
	if colorize && style.color != "" {
		return style.color + line + ansiReset
	}
	return line
}

// renderCheckLine renders a pass/fail check. Failures of optional checks are
// warnings.
func renderCheckLine(label string, passed, optional bool, detail string, colorize bool) string {
	kind := statusOK
	if !passed {
		kind = statusError
		if optional {
			kind = statusWarn
		}
	}
	return renderStatusLine(label, kind, detail, colorize)
}

func renderPreflightLines(results []preflight.Result, colorize bool) []string {
	lines := make([]string, 0, len(results))
	for _, result := range results {
		lines = append(lines, renderCheckLine(result.Name, result.Passed, false, result.Detail, colorize))
	}
	return lines
}

// renderDependencyLines prints one line per tool. Unavailable tools get the
// reported detail and, when known, a remediation hint underneath.
func renderDependencyLines(statuses []deps.Status, colorize bool) []string {
	var lines []string
	for _, dep := range statuses {
		detail := dep.Description
		if dep.Available && dep.Command != "" {
			detail = fmt.Sprintf("%s (%s)", dep.Command, dep.Description)
		}
		if !dep.Available && dep.Detail != "" {
			detail = dep.Detail
		}
		lines = append(lines, renderCheckLine(dep.Name, dep.Available, dep.Optional, detail, colorize))
		if hint, ok := dependencyHints[dep.Name]; ok && !dep.Available {
			lines = append(lines, hintIndent+hint)
		}
	}
	return lines
}

func renderSectionHeader(title string, colorize bool) []string {
	line := strings.ToUpper(strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiCyan + line + ansiReset
		rule = ansiCyan + rule + ansiReset
	}
	return []string{line, rule}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
