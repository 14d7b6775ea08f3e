package util

import (
	"errors"
	"strings"
)

var errInvalidFileName = errors.New("invalid file name")

// SanitizeFileName makes an uploaded file name safe to use as a single path
// segment: traversal patterns are rejected, separators become underscores.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errInvalidFileName
	}
	cleaned := strings.TrimSpace(name)
	cleaned = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\':
			return '_'
		}
		return r
	}, cleaned)
	if cleaned == "" {
		return "", errInvalidFileName
	}
	return cleaned, nil
}
