package documents

import "time"

// UploadedCVResponse is the outward-facing representation of an uploaded CV.
type UploadedCVResponse struct {
	ID            string    `json:"id"`
	File          string    `json:"file"`
	UploadedAt    time.Time `json:"uploaded_at"`
	ExtractedText string    `json:"extracted_text"`
}

func toResponse(cv UploadedCV) UploadedCVResponse {
	return UploadedCVResponse{
		ID:            cv.ID,
		File:          "/files/" + cv.StorageKey,
		UploadedAt:    cv.UploadedAt,
		ExtractedText: cv.ExtractedText,
	}
}
