package candidates

// CandidateView is the shaped chatbot result. Summary, phone and links are
// deliberately absent; they only appear on direct candidate records.
type CandidateView struct {
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Skills     []string         `json:"skills"`
	Education  []EducationView  `json:"education"`
	Experience []ExperienceView `json:"experience"`
}

// EducationView is one education record in a CandidateView.
type EducationView struct {
	Degree     string `json:"degree"`
	University string `json:"university"`
	Year       int    `json:"year"`
}

// ExperienceView is one experience record in a CandidateView.
type ExperienceView struct {
	JobTitle  string `json:"job_title"`
	Company   string `json:"company"`
	StartDate string `json:"start_date"`
}

func toView(cand Candidate) CandidateView {
	view := CandidateView{
		Name:       cand.Name,
		Email:      cand.Email,
		Skills:     make([]string, 0, len(cand.Skills)),
		Education:  make([]EducationView, 0, len(cand.Education)),
		Experience: make([]ExperienceView, 0, len(cand.Experience)),
	}
	for _, skill := range cand.Skills {
		view.Skills = append(view.Skills, skill.Name)
	}
	for _, edu := range cand.Education {
		view.Education = append(view.Education, EducationView{
			Degree:     edu.Degree,
			University: edu.University,
			Year:       edu.Year,
		})
	}
	for _, exp := range cand.Experience {
		view.Experience = append(view.Experience, ExperienceView{
			JobTitle:  exp.JobTitle,
			Company:   exp.Company,
			StartDate: exp.StartDate.Format(dateLayout),
		})
	}
	return view
}
