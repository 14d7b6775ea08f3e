package candidates

import "time"

// Candidate is a person whose resume has been structurally extracted and
// stored. Email is the unique upsert key; repeated analysis of CVs for the
// same email merges into one candidate.
type Candidate struct {
	ID       string
	Name     string
	Email    string
	Phone    string
	LinkedIn string
	GitHub   string
	Summary  string

	Education  []Education
	Experience []Experience
	Skills     []Skill
}

// Education belongs to exactly one candidate and is fully replaced on each
// analysis run.
type Education struct {
	Degree     string
	University string
	Year       int
}

// Experience belongs to exactly one candidate. A nil EndDate means a current
// position.
type Experience struct {
	JobTitle    string
	Company     string
	StartDate   time.Time
	EndDate     *time.Time
	Description string
}

// Skill is a single tag name. Names are whatever strings the model emitted;
// no normalization or deduplication happens at this layer.
type Skill struct {
	Name string
}
