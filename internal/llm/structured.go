package llm

import (
	"context"
	"fmt"
	"strings"
)

// ExtractCandidate sends resume text through the extraction prompt and parses
// the reply into the fixed candidate schema.
func ExtractCandidate(ctx context.Context, client Client, cvText string) (StructuredCV, error) {
	raw, err := client.CompleteJSON(ctx, extractionPrompt(cvText))
	if err != nil {
		return StructuredCV{}, err
	}
	return ParseStructuredCV(raw)
}

// InterpretQuery translates a free-text query into filter criteria. A blank
// query is rejected here, before any model call.
func InterpretQuery(ctx context.Context, client Client, query string) (FilterCriteria, error) {
	if strings.TrimSpace(query) == "" {
		return FilterCriteria{}, fmt.Errorf("query is empty")
	}
	raw, err := client.CompleteJSON(ctx, interpretationPrompt(query))
	if err != nil {
		return FilterCriteria{}, err
	}
	return ParseFilterCriteria(raw)
}
