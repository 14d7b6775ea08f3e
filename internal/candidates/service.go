package candidates

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cvscreen-backend/internal/documents"
	"cvscreen-backend/internal/extract"
	"cvscreen-backend/internal/llm"
)

const dateLayout = "2006-01-02"

// Service runs the analysis and chatbot pipelines over stored candidates.
type Service struct {
	Docs *documents.Service
	LLM  llm.Client
	Repo Repo
	// ReferenceYear anchors the min-years experience cutoff.
	ReferenceYear int
}

// Analyze looks up an uploaded CV, extracts structured candidate data through
// the LLM and persists it. The candidate row is upserted by email; nested
// collections always reflect exactly this extraction, never accumulated ones.
func (s *Service) Analyze(ctx context.Context, cvID string) (Candidate, error) {
	cv, err := s.Docs.Get(ctx, cvID)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) || errors.Is(err, documents.ErrInvalidInput) {
			return Candidate{}, ErrNotFound
		}
		return Candidate{}, err
	}

	text := strings.TrimSpace(cv.ExtractedText)
	if text == "" || text == extract.UnsupportedFormat {
		return Candidate{}, ErrNoExtractedText
	}

	structured, err := llm.ExtractCandidate(ctx, s.LLM, text)
	if err != nil {
		return Candidate{}, err
	}

	cand, edu, exp, skills, err := fromStructured(structured)
	if err != nil {
		return Candidate{}, err
	}

	stored, err := s.Repo.UpsertByEmail(ctx, cand)
	if err != nil {
		return Candidate{}, err
	}
	if err := s.Repo.ReplaceCollections(ctx, stored.ID, edu, exp, skills); err != nil {
		return Candidate{}, err
	}

	stored.Education = edu
	stored.Experience = exp
	stored.Skills = skills
	return stored, nil
}

// Query interprets a free-text question into filter criteria and returns the
// matching candidate views. A blank query is rejected before any model call.
func (s *Service) Query(ctx context.Context, query string) ([]CandidateView, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	criteria, err := llm.InterpretQuery(ctx, s.LLM, query)
	if err != nil {
		return nil, err
	}

	found, err := s.Repo.Find(ctx, s.translate(criteria))
	if err != nil {
		return nil, err
	}

	views := make([]CandidateView, 0, len(found))
	for _, cand := range found {
		views = append(views, toView(cand))
	}
	return views, nil
}

// translate turns LLM filter criteria into a store-level filter. The
// experience cutoff is (ReferenceYear - min_years)-01-01.
func (s *Service) translate(criteria llm.FilterCriteria) Filter {
	f := Filter{Skills: criteria.Skills}
	if criteria.Education != nil {
		f.HasEducation = true
		f.EducationDegree = criteria.Education.Degree
		f.EducationField = criteria.Education.Field
	}
	if criteria.Experience != nil && int(criteria.Experience.MinYears) > 0 {
		cutoff := time.Date(s.ReferenceYear-int(criteria.Experience.MinYears), time.January, 1, 0, 0, 0, 0, time.UTC)
		f.StartedOnOrBefore = &cutoff
	}
	return f
}

// fromStructured maps a validated extraction onto store records. Dates the
// model emitted outside YYYY-MM-DD count as parse failures.
func fromStructured(cv llm.StructuredCV) (Candidate, []Education, []Experience, []Skill, error) {
	cand := Candidate{
		Name:     cv.Name,
		Email:    cv.Email,
		Phone:    cv.Phone,
		LinkedIn: cv.LinkedIn,
		GitHub:   cv.GitHub,
		Summary:  cv.Summary,
	}

	edu := make([]Education, 0, len(cv.Education))
	for _, e := range cv.Education {
		edu = append(edu, Education{
			Degree:     e.Degree,
			University: e.University,
			Year:       int(e.Year),
		})
	}

	exp := make([]Experience, 0, len(cv.Experience))
	for _, e := range cv.Experience {
		start, err := time.Parse(dateLayout, e.StartDate)
		if err != nil {
			return Candidate{}, nil, nil, nil, fmt.Errorf("%w: invalid start_date %q", llm.ErrParse, e.StartDate)
		}
		record := Experience{
			JobTitle:    e.JobTitle,
			Company:     e.Company,
			StartDate:   start,
			Description: e.Description,
		}
		if e.EndDate != nil && strings.TrimSpace(*e.EndDate) != "" {
			end, err := time.Parse(dateLayout, *e.EndDate)
			if err != nil {
				return Candidate{}, nil, nil, nil, fmt.Errorf("%w: invalid end_date %q", llm.ErrParse, *e.EndDate)
			}
			record.EndDate = &end
		}
		exp = append(exp, record)
	}

	skills := make([]Skill, 0, len(cv.Skills))
	for _, name := range cv.Skills {
		skills = append(skills, Skill{Name: name})
	}

	return cand, edu, exp, skills, nil
}
