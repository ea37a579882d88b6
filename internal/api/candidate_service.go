package api

import (
	"context"
	"strings"
	"time"

	"clipscout/internal/candidate"
	"clipscout/internal/config"
	"clipscout/internal/lifecycle"
	"clipscout/internal/ranking"
	"clipscout/internal/services"
)

// CandidateService exposes candidate operations returning API DTOs. Every
// read numbers candidates against the full current snapshot.
type CandidateService struct {
	ctrl     *lifecycle.Controller
	location *time.Location
}

// NewCandidateService constructs a service around ctrl. loc sets the day
// boundary for statistics; nil means time.Local.
func NewCandidateService(ctrl *lifecycle.Controller, loc *time.Location) *CandidateService {
	if ctrl == nil {
		return nil
	}
	if loc == nil {
		loc = time.Local
	}
	return &CandidateService{ctrl: ctrl, location: loc}
}

// List returns candidates in creation order, optionally filtered by status.
func (s *CandidateService) List(ctx context.Context, status string) (CandidateListResponse, error) {
	var filter candidate.Status
	if strings.TrimSpace(status) != "" {
		parsed, err := candidate.ParseStatus(status)
		if err != nil {
			return CandidateListResponse{}, err
		}
		filter = parsed
	}
	all, err := s.ctrl.All(ctx)
	if err != nil {
		return CandidateListResponse{}, err
	}
	subset := all
	if filter != "" {
		subset = make([]candidate.Candidate, 0, len(all))
		for _, c := range all {
			if c.Status == filter {
				subset = append(subset, c)
			}
		}
	}
	items := FromCandidates(ranking.Annotate(all, subset))
	return CandidateListResponse{Items: items, Total: len(items)}, nil
}

// Describe fetches a single candidate with its number.
func (s *CandidateService) Describe(ctx context.Context, id string) (Candidate, error) {
	found, err := s.ctrl.Get(ctx, id)
	if err != nil {
		return Candidate{}, err
	}
	return s.numbered(ctx, *found)
}

// Submit registers a new candidate.
func (s *CandidateService) Submit(ctx context.Context, req SubmitRequest) (Candidate, error) {
	created, err := s.ctrl.Submit(ctx, lifecycle.SubmitRequest{
		URL:          req.URL,
		Gender:       req.Gender,
		HasReferrer:  req.HasReferrer,
		ReferrerName: req.ReferrerName,
		ReferrerMemo: req.ReferrerMemo,
		Memo:         req.Memo,
	})
	if err != nil {
		return Candidate{}, err
	}
	return s.numbered(ctx, *created)
}

// Update applies a partial update.
func (s *CandidateService) Update(ctx context.Context, id string, req UpdateRequest) (Candidate, error) {
	if req.Status.Set && req.Status.Null {
		return Candidate{}, services.Wrap(services.ErrValidation, "update", "validate", "status cannot be null", nil)
	}
	updated, err := s.ctrl.Update(ctx, id, req.Patch())
	if err != nil {
		return Candidate{}, err
	}
	return s.numbered(ctx, *updated)
}

// Judge moves a candidate to contact, stay or pass.
func (s *CandidateService) Judge(ctx context.Context, id string, status string, memo *string) (Candidate, error) {
	updated, err := s.ctrl.Judge(ctx, id, candidate.Status(status), memo)
	if err != nil {
		return Candidate{}, err
	}
	return s.numbered(ctx, *updated)
}

// SetContactStatus records the contact sub-status.
func (s *CandidateService) SetContactStatus(ctx context.Context, id string, cs string) (Candidate, error) {
	updated, err := s.ctrl.SetContactStatus(ctx, id, candidate.ContactStatus(cs))
	if err != nil {
		return Candidate{}, err
	}
	return s.numbered(ctx, *updated)
}

// SetMemo replaces the memo.
func (s *CandidateService) SetMemo(ctx context.Context, id, memo string) (Candidate, error) {
	updated, err := s.ctrl.SetMemo(ctx, id, memo)
	if err != nil {
		return Candidate{}, err
	}
	return s.numbered(ctx, *updated)
}

// Delete removes one candidate.
func (s *CandidateService) Delete(ctx context.Context, id string) error {
	return s.ctrl.Delete(ctx, id)
}

// DeleteMany deletes ids independently.
func (s *CandidateService) DeleteMany(ctx context.Context, ids []string) BatchDeleteResponse {
	return s.ctrl.DeleteMany(ctx, ids)
}

// Stats computes dashboard statistics. A non-empty tz overrides the
// configured day boundary.
func (s *CandidateService) Stats(ctx context.Context, tz string) (StatsResponse, error) {
	loc := s.location
	if strings.TrimSpace(tz) != "" {
		parsed, err := config.LoadLocation(tz)
		if err != nil {
			return StatsResponse{}, services.Wrap(services.ErrValidation, "stats", "timezone", tz, err)
		}
		loc = parsed
	}
	all, err := s.ctrl.All(ctx)
	if err != nil {
		return StatsResponse{}, err
	}
	return StatsResponse{Stats: ranking.Compute(all, loc), Timezone: loc.String()}, nil
}

// Count returns the number of stored candidates.
func (s *CandidateService) Count(ctx context.Context) (int, error) {
	all, err := s.ctrl.All(ctx)
	if err != nil {
		return 0, err
	}
	return len(all), nil
}

func (s *CandidateService) numbered(ctx context.Context, c candidate.Candidate) (Candidate, error) {
	all, err := s.ctrl.All(ctx)
	if err != nil {
		return Candidate{}, err
	}
	annotated := ranking.Annotate(all, []candidate.Candidate{c})
	return FromCandidate(annotated[0]), nil
}
