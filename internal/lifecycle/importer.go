package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"clipscout/internal/candidate"
	"clipscout/internal/logging"
)

// DefaultImportBatchSize matches the batch size of the legacy migration.
const DefaultImportBatchSize = 100

// Restorer stores pre-existing candidates with their ids and timestamps.
type Restorer interface {
	GetByURL(ctx context.Context, url string) (*candidate.Candidate, error)
	RestoreBatch(ctx context.Context, cs []candidate.Candidate) error
}

// ImportResult summarizes a legacy import.
type ImportResult struct {
	Read     int      `json:"read"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Invalid  []string `json:"invalid"`
	// FailedBatches lists 1-based batch numbers that were rolled back.
	FailedBatches []int `json:"failedBatches"`
}

// ImportLegacy restores entries in batches. Entries whose URL is already
// stored, or repeated earlier in entries, are skipped. Entries without an id
// get a fresh one. A failing batch is rolled back and the import continues.
func ImportLegacy(ctx context.Context, repo Restorer, entries []candidate.Legacy, batchSize int, logger *slog.Logger) (ImportResult, error) {
	if batchSize <= 0 {
		batchSize = DefaultImportBatchSize
	}
	logger = logging.NewComponentLogger(logger, "import")
	result := ImportResult{Read: len(entries), Invalid: []string{}, FailedBatches: []int{}}

	seen := make(map[string]struct{}, len(entries))
	pending := make([]candidate.Candidate, 0, len(entries))
	for i, entry := range entries {
		c, err := entry.Record().Candidate()
		if err != nil {
			result.Invalid = append(result.Invalid, fmt.Sprintf("entry %d: %v", i+1, err))
			continue
		}
		if c.URL == "" {
			result.Invalid = append(result.Invalid, fmt.Sprintf("entry %d: url is required", i+1))
			continue
		}
		if _, dup := seen[c.URL]; dup {
			result.Skipped++
			continue
		}
		seen[c.URL] = struct{}{}

		existing, err := repo.GetByURL(ctx, c.URL)
		if err != nil {
			return result, fmt.Errorf("duplicate check: %w", err)
		}
		if existing != nil {
			result.Skipped++
			continue
		}
		if strings.TrimSpace(c.ID) == "" {
			c.ID = uuid.NewString()
		}
		pending = append(pending, c)
	}

	for start := 0; start < len(pending); start += batchSize {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		end := min(start+batchSize, len(pending))
		batch := pending[start:end]
		number := start/batchSize + 1
		if err := repo.RestoreBatch(ctx, batch); err != nil {
			result.FailedBatches = append(result.FailedBatches, number)
			logging.WarnWithContext(logger, "import batch failed", "import_batch_failed",
				logging.Int("batch", number),
				logging.Int("size", len(batch)),
				logging.Error(err),
				logging.String(logging.FieldImpact, "batch rolled back; rerun the import to retry it"),
			)
			continue
		}
		result.Imported += len(batch)
		logger.Info("import batch stored", logging.Int("batch", number), logging.Int("size", len(batch)))
	}
	return result, nil
}
