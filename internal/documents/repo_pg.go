package documents

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new uploaded CV.
func (r *PGRepo) Create(ctx context.Context, cv UploadedCV) error {
	const query = `
INSERT INTO uploaded_cvs (id, file_name, storage_key, mime_type, size_bytes, extracted_text, uploaded_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	var extracted sql.NullString
	if cv.ExtractedText != "" {
		extracted = sql.NullString{String: cv.ExtractedText, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		cv.ID,
		cv.FileName,
		cv.StorageKey,
		cv.MimeType,
		cv.SizeBytes,
		extracted,
		cv.UploadedAt,
	)
	return err
}

// GetByID fetches an uploaded CV by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (UploadedCV, error) {
	const query = `
SELECT id, file_name, storage_key, mime_type, size_bytes, extracted_text, uploaded_at
FROM uploaded_cvs
WHERE id = $1`

	var cv UploadedCV
	var mimeType sql.NullString
	var extracted sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&cv.ID,
		&cv.FileName,
		&cv.StorageKey,
		&mimeType,
		&cv.SizeBytes,
		&extracted,
		&cv.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return UploadedCV{}, ErrNotFound
		}
		return UploadedCV{}, err
	}
	if mimeType.Valid {
		cv.MimeType = mimeType.String
	}
	if extracted.Valid {
		cv.ExtractedText = extracted.String
	}
	return cv, nil
}

// UpdateExtractedText overwrites the extracted text for a CV.
func (r *PGRepo) UpdateExtractedText(ctx context.Context, id, text string) error {
	const query = `
UPDATE uploaded_cvs SET extracted_text = $1 WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, text, id)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SearchByText returns CVs whose extracted text contains the keyword,
// case-insensitive, newest first.
func (r *PGRepo) SearchByText(ctx context.Context, keyword string) ([]UploadedCV, error) {
	const query = `
SELECT id, file_name, storage_key, mime_type, size_bytes, extracted_text, uploaded_at
FROM uploaded_cvs
WHERE extracted_text ILIKE '%' || $1 || '%'
ORDER BY uploaded_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, escapeLike(keyword))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []UploadedCV
	for rows.Next() {
		var cv UploadedCV
		var mimeType sql.NullString
		var extracted sql.NullString
		if err := rows.Scan(
			&cv.ID,
			&cv.FileName,
			&cv.StorageKey,
			&mimeType,
			&cv.SizeBytes,
			&extracted,
			&cv.UploadedAt,
		); err != nil {
			return nil, err
		}
		if mimeType.Valid {
			cv.MimeType = mimeType.String
		}
		if extracted.Valid {
			cv.ExtractedText = extracted.String
		}
		out = append(out, cv)
	}
	return out, rows.Err()
}

// escapeLike makes a user-supplied term match literally inside an ILIKE
// pattern; Postgres treats backslash as the escape character by default.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

var _ Repo = (*PGRepo)(nil)
