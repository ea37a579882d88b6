// Package ranking derives display numbers and dashboard statistics from a
// snapshot of candidates. Nothing here is persisted; every function is a pure
// projection of its input and is recomputed on each read.
package ranking
