package preflight

import (
	"context"

	"clipscout/internal/config"
	"clipscout/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Pinger is satisfied by the candidate store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RunAll executes every preflight check for cfg. db may be nil when storage
// has not been opened yet.
func RunAll(ctx context.Context, cfg *config.Config, locator *deps.Locator, db Pinger) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Videos directory", cfg.VideosDir()),
		CheckDirectoryAccess("Icons directory", cfg.IconsDir()),
	}
	if db != nil {
		results = append(results, CheckStorage(ctx, cfg.Storage.Driver, db))
	}
	results = append(results, CheckFetchTool(ctx, locator))
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}
