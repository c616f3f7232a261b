// Package models defines core data structures for FAQs, ask queries, and results.
package models

import "time"

// FAQ represents a persisted question/answer pair.
type FAQ struct {
	ID        string    `json:"id" db:"id"`
	Question  string    `json:"question" db:"question"`
	Answer    string    `json:"answer" db:"answer"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// FAQInput is the input for creating a FAQ.
type FAQInput struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
