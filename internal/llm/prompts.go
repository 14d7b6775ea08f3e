package llm

import "fmt"

// extractionPrompt asks the model to pull the fixed candidate schema out of
// raw resume text.
func extractionPrompt(cvText string) string {
	return fmt.Sprintf(`Extract the following details from this CV in JSON format:
{
    "name": "Full name of the candidate",
    "email": "Email address",
    "phone": "Phone number",
    "linkedin": "LinkedIn profile URL",
    "github": "GitHub profile URL (if available)",
    "summary": "Short professional summary",
    "education": [
        {
            "degree": "Degree name",
            "university": "University name",
            "year": "Completion year"
        }
    ],
    "experience": [
        {
            "job_title": "Job title",
            "company": "Company name",
            "start_date": "YYYY-MM-DD",
            "end_date": "YYYY-MM-DD or null if present"
        }
    ],
    "skills": ["Skill1", "Skill2", "Skill3"]
}

CV TEXT:
%s`, cvText)
}

// interpretationPrompt asks the model to translate a free-text query into
// structured filter criteria.
func interpretationPrompt(query string) string {
	return fmt.Sprintf(`Convert this natural language query into structured JSON format:

QUERY: "%s"

Example Output:
{
    "skills": ["Python", "Django"],
    "education": {"degree": "Bachelor", "field": "Computer Science"},
    "experience": {"min_years": 3}
}

If no specific filter is mentioned, return an empty JSON object {}.`, query)
}
