// Package daemon runs the long-lived clipscout HTTP API.
//
// It wires configuration, the candidate store and the candidate service into
// a gin router with flock-based locking so two servers never share one data
// directory. The router serves the JSON API under /api and the acquired media
// read-only under the configured asset prefix.
//
// Keep orchestration here: candidate rules live in lifecycle and ranking while
// the daemon focuses on startup, shutdown and HTTP translation.
package daemon
