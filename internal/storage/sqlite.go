// Package storage provides the SQLite implementation of the Store interface.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/kotae/internal/models"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS faqs (
		id TEXT PRIMARY KEY,
		question TEXT NOT NULL,
		answer TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_faqs_created_at ON faqs(created_at);
	`
	_, err := db.Exec(schema)
	return err
}

// CreateFAQ inserts a FAQ. A missing ID is filled with a new uuid.
func (s *SQLiteStore) CreateFAQ(ctx context.Context, faq *models.FAQ) error {
	if faq.ID == "" {
		faq.ID = uuid.New().String()
	}
	faq.CreatedAt = time.Now()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO faqs (id, question, answer, created_at) VALUES (?, ?, ?, ?)`,
		faq.ID, faq.Question, faq.Answer, faq.CreatedAt,
	)
	return err
}

// GetFAQ returns a FAQ by ID.
func (s *SQLiteStore) GetFAQ(ctx context.Context, id string) (*models.FAQ, error) {
	var faq models.FAQ
	err := s.db.QueryRowContext(ctx,
		`SELECT id, question, answer, created_at FROM faqs WHERE id = ?`, id,
	).Scan(&faq.ID, &faq.Question, &faq.Answer, &faq.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("faq not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &faq, nil
}

// ListFAQs returns all FAQs in insertion order.
func (s *SQLiteStore) ListFAQs(ctx context.Context) ([]*models.FAQ, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, question, answer, created_at FROM faqs ORDER BY rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var faqs []*models.FAQ
	for rows.Next() {
		var faq models.FAQ
		if err := rows.Scan(&faq.ID, &faq.Question, &faq.Answer, &faq.CreatedAt); err != nil {
			return nil, err
		}
		faqs = append(faqs, &faq)
	}
	return faqs, rows.Err()
}

// DeleteFAQ deletes a FAQ by ID.
func (s *SQLiteStore) DeleteFAQ(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM faqs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("faq not found: %s", id)
	}
	return nil
}

// CountFAQs returns the number of stored FAQs.
func (s *SQLiteStore) CountFAQs(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM faqs`).Scan(&count)
	return count, err
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
