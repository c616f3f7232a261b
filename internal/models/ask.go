package models

import (
	"fmt"

	"github.com/hyperjump/kotae/internal/match"
)

// Answer sources reported in AskResult.
const (
	// SourceFAQ means the answer came from a matched FAQ entry.
	SourceFAQ = "faq"
	// SourceGenerated means the answer came from the text-generation fallback.
	SourceGenerated = "generated"
	// SourceNone means no FAQ matched and no fallback ran.
	SourceNone = "none"
)

// AskQuery represents an ask request.
type AskQuery struct {
	Question string `json:"question"`
	// Threshold is the minimum confidence for a match; 0 means the default.
	Threshold float64 `json:"threshold,omitempty"`
	// Generate enables the text-generation fallback when no FAQ matches.
	Generate bool `json:"generate,omitempty"`
}

// Validate ensures the ask query has valid fields and sets defaults.
// Returns an error if the question is empty; a zero or negative threshold is
// replaced with the default and values above 1 are clamped to 1.
func (q *AskQuery) Validate() error {
	if q.Question == "" {
		return fmt.Errorf("question cannot be empty")
	}
	if q.Threshold <= 0 {
		q.Threshold = match.DefaultThreshold
	}
	if q.Threshold > 1 {
		q.Threshold = 1
	}
	return nil
}

// AskResult is the response for an ask request.
type AskResult struct {
	Answer          string  `json:"answer"`
	Confidence      float64 `json:"confidence"`
	MatchedQuestion *string `json:"matched_question"`
	Source          string  `json:"source"`
	QueryTimeMs     int64   `json:"query_time_ms"`
}
