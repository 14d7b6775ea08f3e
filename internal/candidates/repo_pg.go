package candidates

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// UpsertByEmail inserts or updates the candidate row keyed by email.
// Last-write-wins: every non-key field is overwritten.
func (r *PGRepo) UpsertByEmail(ctx context.Context, cand Candidate) (Candidate, error) {
	const query = `
INSERT INTO candidates (id, name, email, phone, linkedin, github, summary)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (email) DO UPDATE SET
    name = EXCLUDED.name,
    phone = EXCLUDED.phone,
    linkedin = EXCLUDED.linkedin,
    github = EXCLUDED.github,
    summary = EXCLUDED.summary
RETURNING id`

	id := cand.ID
	if id == "" {
		id = uuid.NewString()
	}

	var storedID string
	err := r.DB.QueryRowContext(
		ctx,
		query,
		id,
		cand.Name,
		cand.Email,
		nullable(cand.Phone),
		nullable(cand.LinkedIn),
		nullable(cand.GitHub),
		nullable(cand.Summary),
	).Scan(&storedID)
	if err != nil {
		return Candidate{}, fmt.Errorf("upsert candidate email=%s: %w", cand.Email, err)
	}

	cand.ID = storedID
	return cand, nil
}

// ReplaceCollections deletes and re-inserts the candidate's nested records in
// a single transaction, so concurrent analysis of the same candidate cannot
// interleave partial deletes and inserts.
func (r *PGRepo) ReplaceCollections(ctx context.Context, candidateID string, edu []Education, exp []Experience, skills []Skill) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace tx: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"education", "experience", "skills"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE candidate_id = $1", table), candidateID); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}

	for _, e := range edu {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO education (candidate_id, degree, university, year) VALUES ($1, $2, $3, $4)`,
			candidateID, e.Degree, e.University, e.Year,
		); err != nil {
			return fmt.Errorf("insert education: %w", err)
		}
	}

	for _, e := range exp {
		var endDate sql.NullTime
		if e.EndDate != nil {
			endDate = sql.NullTime{Time: *e.EndDate, Valid: true}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO experience (candidate_id, job_title, company, start_date, end_date, description) VALUES ($1, $2, $3, $4, $5, $6)`,
			candidateID, e.JobTitle, e.Company, e.StartDate, endDate, nullable(e.Description),
		); err != nil {
			return fmt.Errorf("insert experience: %w", err)
		}
	}

	for _, s := range skills {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO skills (candidate_id, name) VALUES ($1, $2)`,
			candidateID, s.Name,
		); err != nil {
			return fmt.Errorf("insert skill: %w", err)
		}
	}

	return tx.Commit()
}

// Find returns candidates matching the filter with nested collections loaded.
// Filters compose with AND; an empty filter returns every candidate.
func (r *PGRepo) Find(ctx context.Context, f Filter) ([]Candidate, error) {
	query := `SELECT id, name, email, phone, linkedin, github, summary FROM candidates c`
	var conds []string
	var args []any

	if len(f.Skills) > 0 {
		placeholders := make([]string, 0, len(f.Skills))
		for _, skill := range f.Skills {
			args = append(args, skill)
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM skills s WHERE s.candidate_id = c.id AND s.name IN (%s))",
			strings.Join(placeholders, ", "),
		))
	}

	if f.HasEducation {
		args = append(args, escapeLike(f.EducationDegree))
		degreeArg := len(args)
		args = append(args, escapeLike(f.EducationField))
		fieldArg := len(args)
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM education e WHERE e.candidate_id = c.id AND e.degree ILIKE '%%' || $%d || '%%' AND e.university ILIKE '%%' || $%d || '%%')",
			degreeArg, fieldArg,
		))
	}

	if f.StartedOnOrBefore != nil {
		args = append(args, *f.StartedOnOrBefore)
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM experience x WHERE x.candidate_id = c.id AND x.start_date <= $%d)",
			len(args),
		))
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY c.name"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find candidates: %w", err)
	}
	defer rows.Close()

	var out []Candidate
	for rows.Next() {
		var cand Candidate
		var phone, linkedin, github, summary sql.NullString
		if err := rows.Scan(&cand.ID, &cand.Name, &cand.Email, &phone, &linkedin, &github, &summary); err != nil {
			return nil, err
		}
		cand.Phone = phone.String
		cand.LinkedIn = linkedin.String
		cand.GitHub = github.String
		cand.Summary = summary.String
		out = append(out, cand)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if err := r.loadCollections(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *PGRepo) loadCollections(ctx context.Context, cand *Candidate) error {
	eduRows, err := r.DB.QueryContext(ctx,
		`SELECT degree, university, year FROM education WHERE candidate_id = $1 ORDER BY id`, cand.ID)
	if err != nil {
		return fmt.Errorf("load education: %w", err)
	}
	defer eduRows.Close()
	for eduRows.Next() {
		var e Education
		if err := eduRows.Scan(&e.Degree, &e.University, &e.Year); err != nil {
			return err
		}
		cand.Education = append(cand.Education, e)
	}
	if err := eduRows.Err(); err != nil {
		return err
	}

	expRows, err := r.DB.QueryContext(ctx,
		`SELECT job_title, company, start_date, end_date, description FROM experience WHERE candidate_id = $1 ORDER BY id`, cand.ID)
	if err != nil {
		return fmt.Errorf("load experience: %w", err)
	}
	defer expRows.Close()
	for expRows.Next() {
		var e Experience
		var endDate sql.NullTime
		var description sql.NullString
		if err := expRows.Scan(&e.JobTitle, &e.Company, &e.StartDate, &endDate, &description); err != nil {
			return err
		}
		if endDate.Valid {
			end := endDate.Time
			e.EndDate = &end
		}
		e.Description = description.String
		cand.Experience = append(cand.Experience, e)
	}
	if err := expRows.Err(); err != nil {
		return err
	}

	skillRows, err := r.DB.QueryContext(ctx,
		`SELECT name FROM skills WHERE candidate_id = $1 ORDER BY id`, cand.ID)
	if err != nil {
		return fmt.Errorf("load skills: %w", err)
	}
	defer skillRows.Close()
	for skillRows.Next() {
		var s Skill
		if err := skillRows.Scan(&s.Name); err != nil {
			return err
		}
		cand.Skills = append(cand.Skills, s)
	}
	return skillRows.Err()
}

// escapeLike makes a user- or model-supplied term match literally inside an
// ILIKE pattern; Postgres treats backslash as the escape character by default.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func nullable(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
