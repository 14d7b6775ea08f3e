package documents

import "context"

// Repo defines persistence operations for uploaded CVs.
type Repo interface {
	Create(ctx context.Context, cv UploadedCV) error
	GetByID(ctx context.Context, id string) (UploadedCV, error)
	UpdateExtractedText(ctx context.Context, id, text string) error
	SearchByText(ctx context.Context, keyword string) ([]UploadedCV, error)
}
