package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStructuredCV(t *testing.T) {
	raw := json.RawMessage(`{
		"name": "Jane Doe",
		"email": "jane@x.com",
		"phone": "+1 555 0100",
		"linkedin": "https://linkedin.com/in/janedoe",
		"github": "https://github.com/janedoe",
		"summary": "Backend engineer",
		"education": [
			{"degree": "BSc Computer Science", "university": "MIT", "year": "2019"},
			{"degree": "MSc Computer Science", "university": "MIT", "year": 2021}
		],
		"experience": [
			{"job_title": "Engineer", "company": "Acme", "start_date": "2021-06-01", "end_date": null}
		],
		"skills": ["Go", "Python"]
	}`)

	cv, err := ParseStructuredCV(raw)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", cv.Name)
	assert.Equal(t, "jane@x.com", cv.Email)
	require.Len(t, cv.Education, 2)
	assert.Equal(t, FlexYear(2019), cv.Education[0].Year, "string years are accepted")
	assert.Equal(t, FlexYear(2021), cv.Education[1].Year)
	require.Len(t, cv.Experience, 1)
	assert.Nil(t, cv.Experience[0].EndDate, "null end_date means current position")
	assert.Equal(t, []string{"Go", "Python"}, cv.Skills)
}

func TestParseStructuredCVFailures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "malformed json", raw: `{"name": "Jane"`},
		{name: "not an object", raw: `"just a string"`},
		{name: "missing email", raw: `{"name": "Jane Doe"}`},
		{name: "blank email", raw: `{"name": "Jane Doe", "email": "  "}`},
		{name: "missing name", raw: `{"email": "jane@x.com"}`},
		{name: "year not numeric", raw: `{"name":"J","email":"j@x.com","education":[{"degree":"BSc","university":"MIT","year":"twenty"}]}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStructuredCV(json.RawMessage(tt.raw))
			require.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestParseFilterCriteriaEmptyObject(t *testing.T) {
	criteria, err := ParseFilterCriteria(json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.True(t, criteria.IsEmpty())
}

func TestParseFilterCriteriaFull(t *testing.T) {
	raw := json.RawMessage(`{
		"skills": ["Python", "Django"],
		"education": {"degree": "Bachelor", "field": "Computer Science"},
		"experience": {"min_years": 3}
	}`)

	criteria, err := ParseFilterCriteria(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"Python", "Django"}, criteria.Skills)
	require.NotNil(t, criteria.Education)
	assert.Equal(t, "Bachelor", criteria.Education.Degree)
	assert.Equal(t, "Computer Science", criteria.Education.Field)
	require.NotNil(t, criteria.Experience)
	assert.Equal(t, FlexYear(3), criteria.Experience.MinYears)
}

func TestParseFilterCriteriaMalformed(t *testing.T) {
	_, err := ParseFilterCriteria(json.RawMessage(`{"skills": "Python"}`))
	require.ErrorIs(t, err, ErrParse)
}

func TestReasonCodes(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: ErrNotConfigured, want: "llm_not_configured"},
		{err: ErrRateLimited, want: "llm_rate_limited"},
		{err: ErrParse, want: "llm_parse_error"},
		{err: ErrProvider, want: "llm_provider_error"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Reason(tt.err))
	}
}
