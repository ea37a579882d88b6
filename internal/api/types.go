package api

import (
	"bytes"
	"encoding/json"

	"clipscout/internal/lifecycle"
	"clipscout/internal/ranking"
)

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Candidate describes a candidate in a transport-friendly format.
type Candidate struct {
	ID                 string  `json:"id"`
	Number             int     `json:"number"`
	URL                string  `json:"url"`
	Username           string  `json:"username"`
	VideoPath          string  `json:"videoPath"`
	IconPath           string  `json:"iconPath"`
	Status             string  `json:"status"`
	StatusLabel        string  `json:"statusLabel"`
	ContactStatus      *string `json:"contactStatus"`
	ContactStatusLabel string  `json:"contactStatusLabel,omitempty"`
	Memo               string  `json:"memo"`
	Gender             *string `json:"gender"`
	HasReferrer        bool    `json:"hasReferrer"`
	ReferrerName       string  `json:"referrerName"`
	ReferrerMemo       string  `json:"referrerMemo"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt"`
}

// CandidateListResponse wraps a collection of candidates.
type CandidateListResponse struct {
	Items []Candidate `json:"items"`
	Total int         `json:"total"`
}

// SubmitRequest is the body of a new-candidate submission.
type SubmitRequest struct {
	URL          string `json:"url"`
	Gender       string `json:"gender"`
	HasReferrer  bool   `json:"hasReferrer"`
	ReferrerName string `json:"referrerName"`
	ReferrerMemo string `json:"referrerMemo"`
	Memo         string `json:"memo"`
}

// UpdateRequest is the body of a candidate patch. Absent fields are left
// unchanged.
type UpdateRequest struct {
	Status        OptionalString `json:"status"`
	ContactStatus OptionalString `json:"contactStatus"`
	Memo          OptionalString `json:"memo"`
}

// OptionalString distinguishes an absent JSON field from an explicit null.
type OptionalString struct {
	Set   bool
	Null  bool
	Value string
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		o.Value = ""
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// BatchDeleteRequest lists ids to delete.
type BatchDeleteRequest struct {
	IDs []string `json:"ids"`
}

// BatchDeleteResponse reports per-id deletion outcomes.
type BatchDeleteResponse = lifecycle.BatchResult

// StatsResponse is the statistics dashboard payload.
type StatsResponse struct {
	ranking.Stats
	Timezone string `json:"timezone"`
}

// DuplicateInfo describes the stored record a submission collided with.
type DuplicateInfo struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	StatusLabel string `json:"statusLabel"`
	Username    string `json:"username"`
	Memo        string `json:"memo"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error         string         `json:"error"`
	Kind          string         `json:"kind,omitempty"`
	Category      string         `json:"category,omitempty"`
	Detail        string         `json:"detail,omitempty"`
	DuplicateInfo *DuplicateInfo `json:"duplicateInfo,omitempty"`
}

// DependencyStatus captures availability of an external dependency.
type DependencyStatus struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Detail      string `json:"detail,omitempty"`
}

// StatusResponse aggregates runtime information for API consumers.
type StatusResponse struct {
	PID           int                `json:"pid"`
	Hosted        bool               `json:"hosted"`
	DeployAllowed bool               `json:"deployAllowed"`
	StorageDriver string             `json:"storageDriver"`
	StoragePath   string             `json:"storagePath"`
	LockFilePath  string             `json:"lockFilePath,omitempty"`
	AssetsDir     string             `json:"assetsDir"`
	Timezone      string             `json:"timezone"`
	Candidates    int                `json:"candidates"`
	Dependencies  []DependencyStatus `json:"dependencies"`
}
