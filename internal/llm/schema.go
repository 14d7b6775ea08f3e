package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// StructuredCV is the fixed candidate schema the extraction prompt requests.
type StructuredCV struct {
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	LinkedIn   string            `json:"linkedin"`
	GitHub     string            `json:"github"`
	Summary    string            `json:"summary"`
	Education  []EducationEntry  `json:"education"`
	Experience []ExperienceEntry `json:"experience"`
	Skills     []string          `json:"skills"`
}

// EducationEntry is one education item in a StructuredCV.
type EducationEntry struct {
	Degree     string   `json:"degree"`
	University string   `json:"university"`
	Year       FlexYear `json:"year"`
}

// ExperienceEntry is one experience item in a StructuredCV. A nil EndDate
// means a current position.
type ExperienceEntry struct {
	JobTitle    string  `json:"job_title"`
	Company     string  `json:"company"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Description string  `json:"description"`
}

// FlexYear tolerates models emitting years as either numbers or strings.
type FlexYear int

// UnmarshalJSON accepts 2019 and "2019" alike.
func (y *FlexYear) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		*y = 0
		return nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("year %q is not an integer", raw)
	}
	*y = FlexYear(parsed)
	return nil
}

// FilterCriteria is the structured object derived from a free-text chatbot
// query. All keys are optional; a zero value means "no filters".
type FilterCriteria struct {
	Skills     []string          `json:"skills,omitempty"`
	Education  *EducationFilter  `json:"education,omitempty"`
	Experience *ExperienceFilter `json:"experience,omitempty"`
}

// EducationFilter narrows candidates by degree and academic field.
type EducationFilter struct {
	Degree string `json:"degree"`
	Field  string `json:"field"`
}

// ExperienceFilter narrows candidates by minimum years of experience.
type ExperienceFilter struct {
	MinYears FlexYear `json:"min_years"`
}

// IsEmpty reports whether no filter keys are present.
func (f FilterCriteria) IsEmpty() bool {
	return len(f.Skills) == 0 && f.Education == nil && f.Experience == nil
}

// ParseStructuredCV validates the model's extraction output against the fixed
// schema. Any shape mismatch, and a missing name or email, maps to ErrParse so
// callers never trust keys to exist.
func ParseStructuredCV(raw json.RawMessage) (StructuredCV, error) {
	var cv StructuredCV
	if err := strictUnmarshal(raw, &cv); err != nil {
		return StructuredCV{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	cv.Email = strings.TrimSpace(cv.Email)
	cv.Name = strings.TrimSpace(cv.Name)
	if cv.Email == "" {
		return StructuredCV{}, fmt.Errorf("%w: missing email", ErrParse)
	}
	if cv.Name == "" {
		return StructuredCV{}, fmt.Errorf("%w: missing name", ErrParse)
	}
	return cv, nil
}

// ParseFilterCriteria validates the model's query interpretation. An empty
// JSON object is valid and means "no filters".
func ParseFilterCriteria(raw json.RawMessage) (FilterCriteria, error) {
	var criteria FilterCriteria
	if err := strictUnmarshal(raw, &criteria); err != nil {
		return FilterCriteria{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return criteria, nil
}

func strictUnmarshal(raw json.RawMessage, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(v); err != nil {
		return err
	}
	// Trailing garbage after the object is as suspect as a bad object.
	if dec.More() {
		return fmt.Errorf("unexpected trailing data")
	}
	return nil
}
