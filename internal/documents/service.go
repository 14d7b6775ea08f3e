package documents

import (
	"bytes"
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"cvscreen-backend/internal/extract"
	"cvscreen-backend/internal/shared/storage/object"
)

// Service contains business logic for uploaded CVs.
type Service struct {
	Store object.ObjectStore
	Repo  Repo
}

// Upload saves the file to object storage, extracts its text and records the
// document. Extraction never fails the upload: unsupported or corrupt files
// are stored with the unsupported-format marker as their text.
func (s *Service) Upload(ctx context.Context, fileName string, r io.Reader) (UploadedCV, error) {
	if fileName == "" {
		return UploadedCV{}, ErrInvalidInput
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return UploadedCV{}, err
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, fileName, bytes.NewReader(data))
	if err != nil {
		return UploadedCV{}, err
	}

	cv := UploadedCV{
		ID:            uuid.NewString(),
		FileName:      fileName,
		StorageKey:    storageKey,
		MimeType:      mimeType,
		SizeBytes:     size,
		ExtractedText: extract.Text(ctx, fileName, data),
		UploadedAt:    time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, cv); err != nil {
		return UploadedCV{}, err
	}

	return cv, nil
}

// Search returns CVs whose extracted text contains the keyword.
func (s *Service) Search(ctx context.Context, keyword string) ([]UploadedCV, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.SearchByText(ctx, keyword)
}

// Reextract re-runs text extraction over the stored file and overwrites the
// document's extracted text. The upload timestamp is untouched.
func (s *Service) Reextract(ctx context.Context, id string) (UploadedCV, error) {
	cv, err := s.Get(ctx, id)
	if err != nil {
		return UploadedCV{}, err
	}

	f, err := s.Store.Open(ctx, cv.StorageKey)
	if err != nil {
		return UploadedCV{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return UploadedCV{}, err
	}

	cv.ExtractedText = extract.Text(ctx, cv.FileName, data)
	if err := s.Repo.UpdateExtractedText(ctx, cv.ID, cv.ExtractedText); err != nil {
		return UploadedCV{}, err
	}
	return cv, nil
}

// Get returns an uploaded CV by ID.
func (s *Service) Get(ctx context.Context, id string) (UploadedCV, error) {
	if id == "" {
		return UploadedCV{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, id)
}
