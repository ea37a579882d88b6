package candidate_test

import (
	"errors"
	"testing"

	"clipscout/internal/candidate"
	"clipscout/internal/services"
)

func TestParseEnums(t *testing.T) {
	if s, err := candidate.ParseStatus(" Contact "); err != nil || s != candidate.StatusContact {
		t.Fatalf("ParseStatus: %v %v", s, err)
	}
	if _, err := candidate.ParseStatus("archived"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if g, err := candidate.ParseGender("null"); err != nil || g != candidate.GenderNone {
		t.Fatalf("ParseGender null: %v %v", g, err)
	}
	if _, err := candidate.ParseGender("robot"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if cs, err := candidate.ParseContactStatus("no_response"); err != nil || cs != candidate.ContactNoResponse {
		t.Fatalf("ParseContactStatus: %v %v", cs, err)
	}
	if _, err := candidate.ParseContactStatus("ghosted"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestApplyStatusChangeClearsContactStatus(t *testing.T) {
	c := candidate.Candidate{Status: candidate.StatusContact, ContactStatus: candidate.ContactInProgress}
	next, err := c.Apply(candidate.Patch{Status: candidate.StatusPtr(candidate.StatusStay)})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if next.Status != candidate.StatusStay || next.ContactStatus != candidate.ContactNone {
		t.Fatalf("unexpected result: %+v", next)
	}
}

func TestApplyUnreviewedToContactHasNoSubStatus(t *testing.T) {
	c := candidate.Candidate{Status: candidate.StatusUnreviewed}
	next, err := c.Apply(candidate.Patch{Status: candidate.StatusPtr(candidate.StatusContact)})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if next.Status != candidate.StatusContact || next.ContactStatus != candidate.ContactNone {
		t.Fatalf("unexpected result: %+v", next)
	}
}

func TestApplyContactStatusRequiresContact(t *testing.T) {
	c := candidate.Candidate{Status: candidate.StatusStay}
	_, err := c.Apply(candidate.Patch{ContactStatus: candidate.ContactStatusPtr(candidate.ContactContacted)})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	next, err := c.Apply(candidate.Patch{
		Status:        candidate.StatusPtr(candidate.StatusContact),
		ContactStatus: candidate.ContactStatusPtr(candidate.ContactContacted),
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if next.ContactStatus != candidate.ContactContacted {
		t.Fatalf("expected contact status kept, got %+v", next)
	}
}

func TestApplyContactSubStatusMovesFreely(t *testing.T) {
	c := candidate.Candidate{Status: candidate.StatusContact}
	order := []candidate.ContactStatus{
		candidate.ContactInProgress, candidate.ContactContacted, candidate.ContactNoResponse, candidate.ContactInProgress,
	}
	for _, cs := range order {
		next, err := c.Apply(candidate.Patch{ContactStatus: candidate.ContactStatusPtr(cs)})
		if err != nil {
			t.Fatalf("Apply %s: %v", cs, err)
		}
		if next.ContactStatus != cs {
			t.Fatalf("expected %s, got %s", cs, next.ContactStatus)
		}
		c = next
	}
}

func TestApplySameStatusKeepsSubStatusAndSetsMemo(t *testing.T) {
	c := candidate.Candidate{Status: candidate.StatusContact, ContactStatus: candidate.ContactContacted, Memo: "old"}
	next, err := c.Apply(candidate.Patch{Status: candidate.StatusPtr(candidate.StatusContact), Memo: candidate.StringPtr("new")})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if next.ContactStatus != candidate.ContactContacted || next.Memo != "new" {
		t.Fatalf("unexpected result: %+v", next)
	}
	if c.Memo != "old" {
		t.Fatal("Apply must not mutate the receiver")
	}
}
