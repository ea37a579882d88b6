package candidate

import (
	"fmt"
	"strings"
	"time"

	"clipscout/internal/services"
)

// Status is the primary review bucket.
type Status string

const (
	StatusUnreviewed Status = "unreviewed"
	StatusContact    Status = "contact"
	StatusStay       Status = "stay"
	StatusPass       Status = "pass"
)

var statusLabels = map[Status]string{
	StatusUnreviewed: "Unreviewed",
	StatusContact:    "Contact",
	StatusStay:       "Stay",
	StatusPass:       "Pass",
}

// Statuses lists every status in workflow order.
func Statuses() []Status {
	return []Status{StatusUnreviewed, StatusContact, StatusStay, StatusPass}
}

// ParseStatus validates a status string.
func ParseStatus(value string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := statusLabels[status]; !ok {
		return "", fmt.Errorf("%w: invalid status %q", services.ErrValidation, value)
	}
	return status, nil
}

// Label returns the human-readable status name.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// ContactStatus is the secondary state tracked while Status is contact.
// The zero value means none.
type ContactStatus string

const (
	ContactNone       ContactStatus = ""
	ContactContacted  ContactStatus = "contacted"
	ContactNoResponse ContactStatus = "no_response"
	ContactInProgress ContactStatus = "in_progress"
)

var contactLabels = map[ContactStatus]string{
	ContactContacted:  "Contacted",
	ContactNoResponse: "No response",
	ContactInProgress: "In progress",
}

// ParseContactStatus validates a contact sub-status. Blank and "null" parse to ContactNone.
func ParseContactStatus(value string) (ContactStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" || normalized == "null" || normalized == "none" {
		return ContactNone, nil
	}
	cs := ContactStatus(normalized)
	if _, ok := contactLabels[cs]; !ok {
		return "", fmt.Errorf("%w: invalid contact status %q", services.ErrValidation, value)
	}
	return cs, nil
}

// Label returns the human-readable sub-status name.
func (c ContactStatus) Label() string {
	if c == ContactNone {
		return "-"
	}
	if label, ok := contactLabels[c]; ok {
		return label
	}
	return string(c)
}

// Gender partitions ranking. The zero value means not recorded.
type Gender string

const (
	GenderNone   Gender = ""
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ParseGender validates a gender string. Blank and "null" parse to GenderNone.
func ParseGender(value string) (Gender, error) {
	switch g := Gender(strings.ToLower(strings.TrimSpace(value))); g {
	case GenderMale, GenderFemale, GenderOther:
		return g, nil
	case "", "null", "none":
		return GenderNone, nil
	default:
		return "", fmt.Errorf("%w: invalid gender %q", services.ErrValidation, value)
	}
}

// Candidate is one tracked submission under review.
type Candidate struct {
	ID            string
	URL           string
	Username      string
	VideoPath     string
	IconPath      string
	Status        Status
	ContactStatus ContactStatus
	Memo          string
	Gender        Gender
	HasReferrer   bool
	ReferrerName  string
	ReferrerMemo  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewCandidate carries the fields supplied at creation. The store assigns
// id and timestamps; status always starts unreviewed.
type NewCandidate struct {
	URL          string
	Username     string
	VideoPath    string
	IconPath     string
	Memo         string
	Gender       Gender
	HasReferrer  bool
	ReferrerName string
	ReferrerMemo string
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Status        *Status
	ContactStatus *ContactStatus
	Memo          *string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Status == nil && p.ContactStatus == nil && p.Memo == nil
}

// Apply returns c with p applied. A status change clears the contact
// sub-status unless p also sets one and the resulting status is contact.
// Setting a sub-status while the resulting status is not contact fails.
func (c Candidate) Apply(p Patch) (Candidate, error) {
	next := c
	if p.Status != nil {
		status, err := ParseStatus(string(*p.Status))
		if err != nil {
			return c, err
		}
		if status != c.Status {
			next.ContactStatus = ContactNone
		}
		next.Status = status
	}
	if p.ContactStatus != nil {
		cs, err := ParseContactStatus(string(*p.ContactStatus))
		if err != nil {
			return c, err
		}
		if cs != ContactNone && next.Status != StatusContact {
			return c, fmt.Errorf("%w: contact status %q requires status %q (current %q)",
				services.ErrValidation, cs, StatusContact, next.Status)
		}
		next.ContactStatus = cs
	}
	if p.Memo != nil {
		next.Memo = *p.Memo
	}
	return next, nil
}

// StatusPtr returns a pointer to s, for building patches.
func StatusPtr(s Status) *Status { return &s }

// ContactStatusPtr returns a pointer to cs, for building patches.
func ContactStatusPtr(cs ContactStatus) *ContactStatus { return &cs }

// StringPtr returns a pointer to v, for building patches.
func StringPtr(v string) *string { return &v }
