// Package storage defines the persistence interface for FAQ entries.
package storage

import (
	"context"

	"github.com/hyperjump/kotae/internal/models"
)

// Store defines FAQ persistence operations. ListFAQs returns entries in
// insertion order, which the matcher relies on for its tie-break behavior.
type Store interface {
	CreateFAQ(ctx context.Context, faq *models.FAQ) error
	GetFAQ(ctx context.Context, id string) (*models.FAQ, error)
	ListFAQs(ctx context.Context) ([]*models.FAQ, error)
	DeleteFAQ(ctx context.Context, id string) error
	CountFAQs(ctx context.Context) (int64, error)

	Close() error
}
