package documents

import "time"

// UploadedCV represents an uploaded resume document. UploadedAt is set once on
// upload; ExtractedText is overwritten on re-extraction and holds the
// unsupported-format marker when the file could not be processed.
type UploadedCV struct {
	ID            string
	FileName      string
	StorageKey    string
	MimeType      string
	SizeBytes     int64
	ExtractedText string
	UploadedAt    time.Time
}
