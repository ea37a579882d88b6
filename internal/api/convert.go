package api

import (
	"strings"
	"time"

	"clipscout/internal/candidate"
	"clipscout/internal/deps"
	"clipscout/internal/ranking"
)

// FromCandidate converts a numbered candidate to its API representation.
func FromCandidate(n ranking.Numbered) Candidate {
	c := n.Candidate
	dto := Candidate{
		ID:           c.ID,
		Number:       n.Number,
		URL:          c.URL,
		Username:     c.Username,
		VideoPath:    c.VideoPath,
		IconPath:     c.IconPath,
		Status:       string(c.Status),
		StatusLabel:  c.Status.Label(),
		Memo:         c.Memo,
		HasReferrer:  c.HasReferrer,
		ReferrerName: c.ReferrerName,
		ReferrerMemo: c.ReferrerMemo,
		CreatedAt:    formatTime(c.CreatedAt),
		UpdatedAt:    formatTime(c.UpdatedAt),
	}
	if c.ContactStatus != candidate.ContactNone {
		cs := string(c.ContactStatus)
		dto.ContactStatus = &cs
		dto.ContactStatusLabel = c.ContactStatus.Label()
	}
	if c.Gender != candidate.GenderNone {
		g := string(c.Gender)
		dto.Gender = &g
	}
	return dto
}

// FromCandidates converts numbered candidates into API DTOs.
func FromCandidates(items []ranking.Numbered) []Candidate {
	out := make([]Candidate, 0, len(items))
	for _, item := range items {
		out = append(out, FromCandidate(item))
	}
	return out
}

// FromDependencies converts dependency checks into API DTOs.
func FromDependencies(statuses []deps.Status) []DependencyStatus {
	out := make([]DependencyStatus, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, DependencyStatus{
			Name:        s.Name,
			Command:     s.Command,
			Description: s.Description,
			Optional:    s.Optional,
			Available:   s.Available,
			Detail:      strings.TrimSpace(s.Detail),
		})
	}
	return out
}

// Patch converts the request into a candidate patch. An explicit null
// contactStatus clears it.
func (r UpdateRequest) Patch() candidate.Patch {
	var patch candidate.Patch
	if r.Status.Set && !r.Status.Null {
		status := candidate.Status(r.Status.Value)
		patch.Status = &status
	}
	if r.ContactStatus.Set {
		cs := candidate.ContactStatus(r.ContactStatus.Value)
		patch.ContactStatus = &cs
	}
	if r.Memo.Set {
		memo := r.Memo.Value
		patch.Memo = &memo
	}
	return patch
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateTimeFormat)
}
