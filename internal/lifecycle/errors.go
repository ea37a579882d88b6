package lifecycle

import (
	"fmt"

	"clipscout/internal/candidate"
	"clipscout/internal/services"
)

// DuplicateError reports a submission whose URL is already tracked. Existing
// is the stored candidate the URL collided with.
type DuplicateError struct {
	URL      string
	Existing candidate.Candidate
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate url %s: already registered as %s (%s)",
		e.URL, e.Existing.Status.Label(), e.Existing.Username)
}

// ErrorKind implements services.ErrorClassifier.
func (e *DuplicateError) ErrorKind() string { return "duplicate" }

func (e *DuplicateError) Unwrap() error { return services.ErrValidation }

// StatusLabel is the human label of the existing candidate's status.
func (e *DuplicateError) StatusLabel() string {
	return e.Existing.Status.Label()
}
