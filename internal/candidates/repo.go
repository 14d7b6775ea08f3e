package candidates

import (
	"context"
	"time"
)

// Filter is the store-level translation of chatbot filter criteria. Zero-value
// fields are absent filters; present fields compose with AND.
type Filter struct {
	// Skills keeps candidates having at least one exact skill-name match.
	Skills []string
	// EducationDegree/EducationField keep candidates with an education record
	// whose degree contains EducationDegree and whose university name contains
	// EducationField, both case-insensitive.
	EducationDegree string
	EducationField  string
	HasEducation    bool
	// StartedOnOrBefore keeps candidates with at least one experience record
	// starting on or before the date.
	StartedOnOrBefore *time.Time
}

// Repo defines persistence operations for candidates.
type Repo interface {
	// UpsertByEmail matches solely on email and overwrites all other candidate
	// fields unconditionally, returning the stored candidate with its ID.
	UpsertByEmail(ctx context.Context, cand Candidate) (Candidate, error)
	// ReplaceCollections discards the candidate's education, experience and
	// skill records and inserts the new sets, in one transaction.
	ReplaceCollections(ctx context.Context, candidateID string, edu []Education, exp []Experience, skills []Skill) error
	// Find returns candidates matching the filter, nested collections loaded.
	Find(ctx context.Context, f Filter) ([]Candidate, error)
}
