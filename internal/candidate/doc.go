// Package candidate defines the tracked candidate entity, its review enums,
// the patch type applied by status and memo updates, and the snake_case
// record mapping used at the storage boundary.
package candidate
