package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"clipscout/internal/acquisition"
	"clipscout/internal/candidate"
	"clipscout/internal/logging"
	"clipscout/internal/services"
	"clipscout/internal/source"
)

// Repository is the persistence contract the controller needs.
type Repository interface {
	List(ctx context.Context) ([]candidate.Candidate, error)
	ListByStatus(ctx context.Context, status candidate.Status) ([]candidate.Candidate, error)
	GetByID(ctx context.Context, id string) (*candidate.Candidate, error)
	GetByURL(ctx context.Context, url string) (*candidate.Candidate, error)
	Insert(ctx context.Context, fields candidate.NewCandidate) (*candidate.Candidate, error)
	Update(ctx context.Context, id string, patch candidate.Patch) (*candidate.Candidate, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Acquirer retrieves media assets for a classified target.
type Acquirer interface {
	Acquire(ctx context.Context, target source.Target) (acquisition.Assets, error)
}

// SubmitRequest carries the operator input for a new candidate.
type SubmitRequest struct {
	URL          string
	Gender       string
	HasReferrer  bool
	ReferrerName string
	ReferrerMemo string
	Memo         string
}

// BatchFailure records an id that could not be deleted.
type BatchFailure struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// BatchResult summarizes a multi-id deletion.
type BatchResult struct {
	Deleted []string       `json:"deleted"`
	Failed  []BatchFailure `json:"failed"`
}

// Controller applies workflow rules on top of a Repository.
type Controller struct {
	repo     Repository
	acquirer Acquirer
	logger   *slog.Logger
}

// NewController wires a controller. acquirer may be nil for read/update-only
// callers; Submit then fails with a configuration error.
func NewController(repo Repository, acquirer Acquirer, logger *slog.Logger) *Controller {
	return &Controller{
		repo:     repo,
		acquirer: acquirer,
		logger:   logging.NewComponentLogger(logger, "lifecycle"),
	}
}

// Submit registers a new candidate after acquiring its media. A URL that is
// already stored returns *DuplicateError and performs no acquisition.
func (c *Controller) Submit(ctx context.Context, req SubmitRequest) (*candidate.Candidate, error) {
	url := strings.TrimSpace(req.URL)
	if url == "" {
		return nil, services.Wrap(services.ErrValidation, "submit", "validate", "url is required", nil)
	}
	gender, err := candidate.ParseGender(req.Gender)
	if err != nil {
		return nil, err
	}
	logger := logging.WithContext(ctx, c.logger)

	existing, err := c.repo.GetByURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("duplicate check: %w", err)
	}
	if existing != nil {
		logger.Info("duplicate submission rejected",
			logging.String("url", url),
			logging.String(logging.FieldCandidateID, existing.ID),
			logging.String(logging.FieldStatus, string(existing.Status)),
		)
		return nil, &DuplicateError{URL: url, Existing: *existing}
	}

	if c.acquirer == nil {
		return nil, services.Wrap(services.ErrConfiguration, "submit", "acquire", "no acquisition engine configured", nil)
	}
	target := source.Classify(url)
	assets, err := c.acquirer.Acquire(ctx, target)
	if err != nil {
		return nil, err
	}

	created, err := c.repo.Insert(ctx, candidate.NewCandidate{
		URL:          url,
		Username:     assets.Username,
		VideoPath:    assets.VideoPath,
		IconPath:     assets.IconPath,
		Memo:         req.Memo,
		Gender:       gender,
		HasReferrer:  req.HasReferrer,
		ReferrerName: strings.TrimSpace(req.ReferrerName),
		ReferrerMemo: req.ReferrerMemo,
	})
	if err != nil {
		return nil, err
	}
	attrs := append([]logging.Attr{
		logging.String(logging.FieldCandidateID, created.ID),
		logging.String("username", created.Username),
	}, logging.TargetAttrs(string(target.Platform), string(target.Granularity))...)
	logger.Info("candidate registered", logging.Args(attrs...)...)
	return created, nil
}

// Judge moves a candidate to contact, stay or pass, optionally replacing its
// memo in the same update.
func (c *Controller) Judge(ctx context.Context, id string, status candidate.Status, memo *string) (*candidate.Candidate, error) {
	parsed, err := candidate.ParseStatus(string(status))
	if err != nil {
		return nil, err
	}
	if parsed == candidate.StatusUnreviewed {
		return nil, services.Wrap(services.ErrValidation, "judge", "validate", "judgement must be contact, stay or pass", nil)
	}
	return c.Update(ctx, id, candidate.Patch{Status: &parsed, Memo: memo})
}

// SetContactStatus records the contact sub-status. The candidate must be in
// the contact status.
func (c *Controller) SetContactStatus(ctx context.Context, id string, cs candidate.ContactStatus) (*candidate.Candidate, error) {
	parsed, err := candidate.ParseContactStatus(string(cs))
	if err != nil {
		return nil, err
	}
	return c.Update(ctx, id, candidate.Patch{ContactStatus: &parsed})
}

// SetMemo replaces the memo.
func (c *Controller) SetMemo(ctx context.Context, id, memo string) (*candidate.Candidate, error) {
	return c.Update(ctx, id, candidate.Patch{Memo: &memo})
}

// Update applies a validated patch. Any status may be set directly.
func (c *Controller) Update(ctx context.Context, id string, patch candidate.Patch) (*candidate.Candidate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, services.Wrap(services.ErrValidation, "update", "validate", "id is required", nil)
	}
	if patch.IsEmpty() {
		return nil, services.Wrap(services.ErrValidation, "update", "validate", "nothing to update", nil)
	}
	updated, err := c.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, notFound(id)
	}
	c.logger.Debug("candidate updated",
		logging.Args(logging.ReviewAttrs(id, string(updated.Status), string(updated.ContactStatus))...)...,
	)
	return updated, nil
}

// Delete removes one candidate.
func (c *Controller) Delete(ctx context.Context, id string) error {
	removed, err := c.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if !removed {
		return notFound(id)
	}
	c.logger.Info("candidate deleted", logging.String(logging.FieldCandidateID, id))
	return nil
}

// DeleteMany deletes each id independently. Earlier successes are kept when a
// later id fails.
func (c *Controller) DeleteMany(ctx context.Context, ids []string) BatchResult {
	result := BatchResult{Deleted: make([]string, 0, len(ids)), Failed: []BatchFailure{}}
	for _, id := range ids {
		if err := c.Delete(ctx, id); err != nil {
			result.Failed = append(result.Failed, BatchFailure{ID: id, Error: err.Error()})
			continue
		}
		result.Deleted = append(result.Deleted, id)
	}
	if len(result.Failed) > 0 {
		logging.WarnWithContext(c.logger, "batch delete partially failed", "batch_delete_partial",
			logging.Int("deleted", len(result.Deleted)),
			logging.Int("failed", len(result.Failed)),
			logging.String(logging.FieldImpact, "failed ids remain stored"),
		)
	}
	return result
}

// List returns candidates in creation order, optionally filtered by status.
// An empty status lists everything.
func (c *Controller) List(ctx context.Context, status candidate.Status) ([]candidate.Candidate, error) {
	if status == "" {
		return c.repo.List(ctx)
	}
	parsed, err := candidate.ParseStatus(string(status))
	if err != nil {
		return nil, err
	}
	return c.repo.ListByStatus(ctx, parsed)
}

// All returns the full snapshot regardless of status.
func (c *Controller) All(ctx context.Context) ([]candidate.Candidate, error) {
	return c.repo.List(ctx)
}

// Get fetches one candidate.
func (c *Controller) Get(ctx context.Context, id string) (*candidate.Candidate, error) {
	found, err := c.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, notFound(id)
	}
	return found, nil
}

func notFound(id string) error {
	return services.Wrap(services.ErrNotFound, "candidate", "lookup", fmt.Sprintf("no candidate with id %q", id), nil)
}
