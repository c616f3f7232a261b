// Package loader parses external FAQ sources (pipe-delimited text, Excel
// sheets, Word/ODT documents, PDFs) into question/answer pairs and feeds
// them to the matcher and the store. File-level failures are loader
// concerns; the matching engine itself never errors.
package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/kotae/internal/match"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/storage"
)

// Pair is one question/answer pair parsed from a source file.
type Pair struct {
	Question string
	Answer   string
}

// ParsePairs parses line-oriented "question|answer" text. Blank lines and
// lines without a separator are skipped; the first "|" splits the line and
// both fields are trimmed.
func ParsePairs(text string) []Pair {
	var pairs []Pair
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(line, "|") {
			continue
		}
		q, a, _ := strings.Cut(line, "|")
		pairs = append(pairs, Pair{
			Question: strings.TrimSpace(q),
			Answer:   strings.TrimSpace(a),
		})
	}
	return pairs
}

// LoadFile reads the FAQ source at path and returns its pairs.
// Supported formats: .txt/.faq (pipe-delimited lines), .xlsx (first two
// columns per row), .docx and .odt (extracted text parsed as pipe lines),
// .pdf (extracted text parsed as pipe lines).
func LoadFile(path string) ([]Pair, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt", ".faq", "":
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		return ParsePairs(string(content)), nil
	case ".xlsx":
		return loadExcel(path)
	case ".docx":
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		text, err := extractDOCX(content)
		if err != nil {
			return nil, err
		}
		return ParsePairs(text), nil
	case ".odt":
		text, err := extractODT(path)
		if err != nil {
			return nil, err
		}
		return ParsePairs(text), nil
	case ".pdf":
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		text, err := extractPDF(content)
		if err != nil {
			return nil, err
		}
		return ParsePairs(text), nil
	default:
		return nil, fmt.Errorf("unsupported FAQ source format: %s", ext)
	}
}

// ImportFile loads the source at path and persists every pair to the store.
// Returns the number of imported pairs.
func ImportFile(ctx context.Context, store storage.Store, path string) (int, error) {
	pairs, err := LoadFile(path)
	if err != nil {
		return 0, err
	}
	for _, p := range pairs {
		faq := &models.FAQ{Question: p.Question, Answer: p.Answer}
		if err := store.CreateFAQ(ctx, faq); err != nil {
			return 0, fmt.Errorf("store faq: %w", err)
		}
	}
	return len(pairs), nil
}

// BuildMatcher builds a matcher from the store contents followed by the
// given source files, in that order (insertion order drives tie-breaks).
// A source file that fails to load is logged and skipped so that one bad
// file does not take the whole corpus down.
func BuildMatcher(ctx context.Context, store storage.Store, sources []string, logger *zap.Logger) (*match.Matcher, error) {
	m := match.NewMatcher()
	if store != nil {
		faqs, err := store.ListFAQs(ctx)
		if err != nil {
			return nil, fmt.Errorf("list faqs: %w", err)
		}
		for _, faq := range faqs {
			m.AddEntry(faq.Question, faq.Answer)
		}
	}
	for _, src := range sources {
		pairs, err := LoadFile(src)
		if err != nil {
			logger.Warn("skipping FAQ source", zap.String("path", src), zap.Error(err))
			continue
		}
		for _, p := range pairs {
			m.AddEntry(p.Question, p.Answer)
		}
		logger.Debug("loaded FAQ source", zap.String("path", src), zap.Int("pairs", len(pairs)))
	}
	return m, nil
}
