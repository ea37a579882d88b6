package candidate

import (
	"fmt"
	"strings"
	"time"

	"clipscout/internal/services"
)

// TimeLayout is the fixed-width UTC layout used for stored timestamps, so
// lexical order matches chronological order.
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime accepts TimeLayout and any RFC 3339 timestamp.
func ParseTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// Record is the storage-boundary form of a candidate. Optional columns are
// pointers so absent values survive the trip and default on read.
type Record struct {
	ID            string  `json:"id"`
	URL           string  `json:"url"`
	Username      string  `json:"username"`
	VideoPath     string  `json:"video_path"`
	IconPath      string  `json:"icon_path"`
	Status        string  `json:"status"`
	Memo          *string `json:"memo"`
	Gender        *string `json:"gender"`
	ContactStatus *string `json:"contact_status"`
	HasReferrer   *bool   `json:"has_referrer"`
	ReferrerName  *string `json:"referrer_name"`
	ReferrerMemo  *string `json:"referrer_memo"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// ToRecord maps c to its storage record.
func ToRecord(c Candidate) Record {
	hasReferrer := c.HasReferrer
	return Record{
		ID:            c.ID,
		URL:           c.URL,
		Username:      c.Username,
		VideoPath:     c.VideoPath,
		IconPath:      c.IconPath,
		Status:        string(c.Status),
		Memo:          &c.Memo,
		Gender:        optionalString(string(c.Gender)),
		ContactStatus: optionalString(string(c.ContactStatus)),
		HasReferrer:   &hasReferrer,
		ReferrerName:  &c.ReferrerName,
		ReferrerMemo:  &c.ReferrerMemo,
		CreatedAt:     FormatTime(c.CreatedAt),
		UpdatedAt:     FormatTime(c.UpdatedAt),
	}
}

// Candidate maps the record back, defaulting absent optional fields.
func (r Record) Candidate() (Candidate, error) {
	status := StatusUnreviewed
	if strings.TrimSpace(r.Status) != "" {
		parsed, err := ParseStatus(r.Status)
		if err != nil {
			return Candidate{}, fmt.Errorf("record %s: %w", r.ID, err)
		}
		status = parsed
	}
	gender, err := ParseGender(deref(r.Gender))
	if err != nil {
		return Candidate{}, fmt.Errorf("record %s: %w", r.ID, err)
	}
	contact, err := ParseContactStatus(deref(r.ContactStatus))
	if err != nil {
		return Candidate{}, fmt.Errorf("record %s: %w", r.ID, err)
	}
	createdAt, err := ParseTime(r.CreatedAt)
	if err != nil {
		return Candidate{}, fmt.Errorf("%w: record %s: created_at: %v", services.ErrValidation, r.ID, err)
	}
	updatedAt := createdAt
	if strings.TrimSpace(r.UpdatedAt) != "" {
		if updatedAt, err = ParseTime(r.UpdatedAt); err != nil {
			return Candidate{}, fmt.Errorf("%w: record %s: updated_at: %v", services.ErrValidation, r.ID, err)
		}
	}
	return Candidate{
		ID:            r.ID,
		URL:           r.URL,
		Username:      r.Username,
		VideoPath:     r.VideoPath,
		IconPath:      r.IconPath,
		Status:        status,
		ContactStatus: contact,
		Memo:          deref(r.Memo),
		Gender:        gender,
		HasReferrer:   r.HasReferrer != nil && *r.HasReferrer,
		ReferrerName:  deref(r.ReferrerName),
		ReferrerMemo:  deref(r.ReferrerMemo),
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}, nil
}

// Legacy is one entry of the camelCase JSON file the original single-user
// store kept. Optional fields may be missing on older entries.
type Legacy struct {
	ID            string  `json:"id"`
	URL           string  `json:"url"`
	Username      string  `json:"username"`
	VideoPath     string  `json:"videoPath"`
	IconPath      string  `json:"iconPath"`
	Status        string  `json:"status"`
	Memo          *string `json:"memo"`
	Gender        *string `json:"gender"`
	ContactStatus *string `json:"contactStatus"`
	HasReferrer   *bool   `json:"hasReferrer"`
	ReferrerName  *string `json:"referrerName"`
	ReferrerMemo  *string `json:"referrerMemo"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// Record converts a legacy entry to the storage record form.
func (l Legacy) Record() Record {
	return Record{
		ID:            strings.TrimSpace(l.ID),
		URL:           strings.TrimSpace(l.URL),
		Username:      l.Username,
		VideoPath:     l.VideoPath,
		IconPath:      l.IconPath,
		Status:        l.Status,
		Memo:          l.Memo,
		Gender:        l.Gender,
		ContactStatus: l.ContactStatus,
		HasReferrer:   l.HasReferrer,
		ReferrerName:  l.ReferrerName,
		ReferrerMemo:  l.ReferrerMemo,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
