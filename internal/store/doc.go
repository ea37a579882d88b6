// Package store persists candidates in SQLite (default) or PostgreSQL.
//
// Both backends share one schema and one set of queries; PostgreSQL
// placeholders are rebound from "?" at execution time. Reads return nil
// without error when a row is missing, mirroring the repository contract the
// lifecycle controller expects. The url column is indexed but deliberately not
// unique: duplicate detection happens before insert and near-simultaneous
// submissions of one URL may both succeed.
package store
