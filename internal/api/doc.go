// Package api defines wire-format types and converters for the HTTP API and
// the CLI's JSON output. It translates candidate models into transport-friendly
// DTOs so presentation layers can render them without coupling to internal
// types.
//
// # Key Types
//
// Candidate: transport representation of a candidate with its derived display
// number and human-readable status labels.
//
// ErrorResponse: failure payload carrying a kind, an optional acquisition
// category and, for duplicate submissions, the conflicting record.
//
// StatusResponse: runtime information including storage location and
// dependency availability.
//
// # Converters
//
// FromCandidate: ranking.Numbered -> Candidate.
//
// UpdateRequest.Patch: request body -> candidate.Patch, keeping "field absent"
// distinct from "field set to null".
//
// # Design Notes
//
// DTOs use camelCase JSON tags. Optional enums (gender, contactStatus) encode
// as null when unset. Timestamps use RFC3339 with milliseconds in UTC.
//
// CandidateService joins the lifecycle controller with the ranking engine so
// every read carries numbers computed from the full current snapshot.
package api
