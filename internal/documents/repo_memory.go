package documents

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo, used when no database is
// configured and in tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]UploadedCV
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]UploadedCV)}
}

// Create stores an uploaded CV.
func (r *MemoryRepo) Create(ctx context.Context, cv UploadedCV) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[cv.ID] = cv
	return nil
}

// GetByID returns an uploaded CV by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (UploadedCV, error) {
	if err := ctx.Err(); err != nil {
		return UploadedCV{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	cv, ok := r.data[id]
	if !ok {
		return UploadedCV{}, ErrNotFound
	}
	return cv, nil
}

// UpdateExtractedText overwrites the extracted text for a CV.
func (r *MemoryRepo) UpdateExtractedText(ctx context.Context, id, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cv, ok := r.data[id]
	if !ok {
		return ErrNotFound
	}
	cv.ExtractedText = text
	r.data[id] = cv
	return nil
}

// SearchByText returns CVs whose extracted text contains the keyword,
// case-insensitive, newest first.
func (r *MemoryRepo) SearchByText(ctx context.Context, keyword string) ([]UploadedCV, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	needle := strings.ToLower(keyword)

	r.mu.RLock()
	var out []UploadedCV
	for _, cv := range r.data {
		if strings.Contains(strings.ToLower(cv.ExtractedText), needle) {
			out = append(out, cv)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
