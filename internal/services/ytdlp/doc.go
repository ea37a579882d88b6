// Package ytdlp mediates access to the yt-dlp CLI used during acquisition.
//
// It builds the argument lists for the four invocations clipscout needs
// (version probe, video download, metadata dump, thumbnail-only download),
// captures stderr so callers can classify failures, and exposes the Fetcher
// interface so the acquisition engine is testable without the real binary.
//
// Prefer this package over ad-hoc exec.Command usage when interacting with
// yt-dlp so timeout handling and error capture stay consistent.
package ytdlp
