package candidates

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrNoExtractedText = errors.New("no extracted text found")
	ErrEmptyQuery      = errors.New("query is required")
)
