// Package services defines shared utilities consumed by the acquisition
// pipeline, the lifecycle controller, and the outer surfaces.
//
// Key responsibilities:
//   - Context helpers that stamp candidate IDs, pipeline stage names, and
//     correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper so callers can classify
//     failures (validation vs external tool vs configuration) with errors.Is.
//
// External tool clients live in subpackages (see services/ytdlp).
package services
