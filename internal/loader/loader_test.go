package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/storage"
)

func TestParsePairs(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Pair
	}{
		{
			name:  "simple lines",
			input: "How do I register?|On the website.\nIs there a fee?|No, it is free.",
			expected: []Pair{
				{"How do I register?", "On the website."},
				{"Is there a fee?", "No, it is free."},
			},
		},
		{
			name:     "blank lines and lines without separator skipped",
			input:    "\n\njust a note\nQ?|A\n   \n",
			expected: []Pair{{"Q?", "A"}},
		},
		{
			name:     "only first pipe splits",
			input:    "What does a|b mean?|It is a pattern.",
			expected: []Pair{{"What does a", "b mean?|It is a pattern."}},
		},
		{
			name:     "fields are trimmed",
			input:    "  Q?  |  A  ",
			expected: []Pair{{"Q?", "A"}},
		},
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePairs(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d pairs, want %d: %v", len(got), len(tt.expected), got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("pair[%d] = %+v, want %+v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLoadFile_text(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "faqs.txt")
	content := "How do I register?|On the website.\nIs there a fee?|No.\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	pairs, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 2 {
		t.Fatalf("got %d pairs, want 2", len(pairs))
	}
	if pairs[0].Question != "How do I register?" {
		t.Errorf("pairs[0].Question = %q", pairs[0].Question)
	}
}

func TestLoadFile_missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoadFile_unsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "faqs.exe")
	if err := os.WriteFile(path, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}

func TestLoadFile_excel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "faqs.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	cells := [][]string{
		{"Question", "Answer"},
		{"How do I register?", "On the website."},
		{"Is there a fee?", "No."},
		{"", "orphan answer"},
	}
	for i, row := range cells {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	pairs, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 2 {
		t.Fatalf("got %d pairs, want 2 (header and empty-question rows skipped): %v", len(pairs), pairs)
	}
	if pairs[1].Question != "Is there a fee?" || pairs[1].Answer != "No." {
		t.Errorf("pairs[1] = %+v", pairs[1])
	}
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "faqs.txt")
	if err := os.WriteFile(path, []byte("Q1?|A1\nQ2?|A2\n"), 0600); err != nil {
		t.Fatal(err)
	}
	store, err := storage.NewSQLiteStore(filepath.Join(dir, "faqs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	n, err := ImportFile(context.Background(), store, path)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("imported %d, want 2", n)
	}
	count, err := store.CountFAQs(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("store count = %d, want 2", count)
	}
}

func TestBuildMatcher_storeThenSources(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := storage.NewSQLiteStore(filepath.Join(dir, "faqs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	if err := store.CreateFAQ(ctx, &models.FAQ{Question: "from store?", Answer: "store answer"}); err != nil {
		t.Fatal(err)
	}

	src := filepath.Join(dir, "faqs.txt")
	if err := os.WriteFile(src, []byte("from file?|file answer\n"), 0600); err != nil {
		t.Fatal(err)
	}

	m, err := BuildMatcher(ctx, store, []string{src}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	entries := m.Entries()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Question != "from store?" || entries[1].Question != "from file?" {
		t.Errorf("entry order wrong: %v", entries)
	}
}

func TestBuildMatcher_skipsBadSource(t *testing.T) {
	m, err := BuildMatcher(context.Background(), nil, []string{"/does/not/exist.txt"}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if m.Len() != 0 {
		t.Errorf("matcher should be empty, got %d entries", m.Len())
	}
}
