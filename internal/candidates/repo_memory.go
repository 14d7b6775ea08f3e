package candidates

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory implementation of Repo, used when no database is
// configured and in tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	byEmail map[string]*Candidate
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byEmail: make(map[string]*Candidate)}
}

// UpsertByEmail inserts or overwrites the candidate keyed by email, keeping
// the existing ID and collections on update.
func (r *MemoryRepo) UpsertByEmail(ctx context.Context, cand Candidate) (Candidate, error) {
	if err := ctx.Err(); err != nil {
		return Candidate{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byEmail[cand.Email]
	if !ok {
		if cand.ID == "" {
			cand.ID = uuid.NewString()
		}
		stored := cand
		stored.Education = nil
		stored.Experience = nil
		stored.Skills = nil
		r.byEmail[cand.Email] = &stored
		cand.ID = stored.ID
		return cand, nil
	}

	existing.Name = cand.Name
	existing.Phone = cand.Phone
	existing.LinkedIn = cand.LinkedIn
	existing.GitHub = cand.GitHub
	existing.Summary = cand.Summary
	cand.ID = existing.ID
	return cand, nil
}

// ReplaceCollections swaps the candidate's nested records under one lock.
func (r *MemoryRepo) ReplaceCollections(ctx context.Context, candidateID string, edu []Education, exp []Experience, skills []Skill) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, cand := range r.byEmail {
		if cand.ID == candidateID {
			cand.Education = append([]Education(nil), edu...)
			cand.Experience = append([]Experience(nil), exp...)
			cand.Skills = append([]Skill(nil), skills...)
			return nil
		}
	}
	return ErrNotFound
}

// Find returns candidates matching the filter. Filters compose with AND; an
// empty filter returns every candidate.
func (r *MemoryRepo) Find(ctx context.Context, f Filter) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Candidate
	for _, cand := range r.byEmail {
		if !matches(cand, f) {
			continue
		}
		out = append(out, *cand)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func matches(cand *Candidate, f Filter) bool {
	if len(f.Skills) > 0 && !hasAnySkill(cand, f.Skills) {
		return false
	}
	if f.HasEducation && !hasEducationMatch(cand, f.EducationDegree, f.EducationField) {
		return false
	}
	if f.StartedOnOrBefore != nil && !hasExperienceBefore(cand, f) {
		return false
	}
	return true
}

func hasAnySkill(cand *Candidate, wanted []string) bool {
	for _, skill := range cand.Skills {
		for _, w := range wanted {
			if skill.Name == w {
				return true
			}
		}
	}
	return false
}

func hasEducationMatch(cand *Candidate, degree, field string) bool {
	degree = strings.ToLower(degree)
	field = strings.ToLower(field)
	for _, edu := range cand.Education {
		if strings.Contains(strings.ToLower(edu.Degree), degree) &&
			strings.Contains(strings.ToLower(edu.University), field) {
			return true
		}
	}
	return false
}

func hasExperienceBefore(cand *Candidate, f Filter) bool {
	for _, exp := range cand.Experience {
		if !exp.StartDate.After(*f.StartedOnOrBefore) {
			return true
		}
	}
	return false
}

var _ Repo = (*MemoryRepo)(nil)
